package checkers

import "strconv"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "Red"
	case Black:
		return "Black"
	}
	return "None"
}

// Square indexes the board row-major: row = s/8, col = s%8.
type Square int

const NoSquare Square = -1

func (s Square) Row() int { return int(s) / Cols }
func (s Square) Col() int { return int(s) % Cols }

func (s Square) OnBoard() bool { return s >= 0 && s < NumSquares }

// Playable reports whether s is a dark square; pieces only ever stand on these.
func (s Square) Playable() bool {
	return s.OnBoard() && (s.Row()+s.Col())&1 == 1
}

func (s Square) String() string { return strconv.Itoa(int(s)) }

// Cell is what a shell needs to draw one square.
type Cell int8

const (
	EmptyLight Cell = iota
	EmptyDark
	RedPiece
	RedKing
	BlackPiece
	BlackKing
)

// Rune returns the board legend character for c.
func (c Cell) Rune() rune {
	switch c {
	case EmptyDark:
		return '.'
	case RedPiece:
		return 'r'
	case RedKing:
		return 'R'
	case BlackPiece:
		return 'b'
	case BlackKing:
		return 'B'
	}
	return '#'
}

func (c Cell) String() string {
	switch c {
	case EmptyLight:
		return "empty light square"
	case EmptyDark:
		return "empty dark square"
	case RedPiece:
		return "red piece"
	case RedKing:
		return "red king"
	case BlackPiece:
		return "black piece"
	case BlackKing:
		return "black king"
	}
	return "unknown"
}

// Move is one step of a turn: a simple diagonal move or a single jump.
type Move struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Jump     bool   `json:"jump"`
	Captured Square `json:"captured"`
}

func SimpleMove(from, to Square) Move {
	return Move{From: from, To: to, Captured: NoSquare}
}

func JumpMove(from, to, over Square) Move {
	return Move{From: from, To: to, Jump: true, Captured: over}
}

// Jump is a capture option from a known square.
type Jump struct {
	Landing  Square `json:"landing"`
	Midpoint Square `json:"midpoint"`
}

// Position = four disjoint piece sets + side to move.
type Position struct {
	Red        Bitboard
	RedKings   Bitboard
	Black      Bitboard
	BlackKings Bitboard
	SideToMove Side
	Hash       uint64
}
