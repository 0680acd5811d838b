package checkers

import "fmt"

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols

	// rows of men each side starts with
	setupRows = 3
)

func SquareAt(row, col int) (Square, bool) {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return NoSquare, false
	}
	return Square(row*Cols + col), true
}

// forwardDir is the row delta a plain piece of side moves by: Red up (-1), Black down (+1).
func forwardDir(side Side) int {
	switch side {
	case Red:
		return -1
	case Black:
		return +1
	}
	return 0
}

// promotionRow is the far row where a plain piece of side is crowned.
func promotionRow(side Side) int {
	if side == Red {
		return 0
	}
	return Rows - 1
}

func NewInitialPosition() *Position {
	pos := &Position{SideToMove: Black}
	for sq := Square(0); sq < NumSquares; sq++ {
		if !sq.Playable() {
			continue
		}
		switch row := sq.Row(); {
		case row < setupRows:
			pos.Black = pos.Black.Add(sq)
		case row >= Rows-setupRows:
			pos.Red = pos.Red.Add(sq)
		}
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

func (p *Position) Occupancy() Bitboard {
	return p.Red | p.RedKings | p.Black | p.BlackKings
}

// Pieces returns every piece of side, men and kings.
func (p *Position) Pieces(side Side) Bitboard {
	switch side {
	case Red:
		return p.Red | p.RedKings
	case Black:
		return p.Black | p.BlackKings
	}
	return 0
}

func (p *Position) Kings() Bitboard { return p.RedKings | p.BlackKings }

func (p *Position) IsKing(sq Square) bool { return p.Kings().Has(sq) }

// Owner returns the side whose piece stands on sq, or NoSide.
func (p *Position) Owner(sq Square) Side {
	switch {
	case p.Pieces(Red).Has(sq):
		return Red
	case p.Pieces(Black).Has(sq):
		return Black
	}
	return NoSide
}

// sets returns pointers to the men and kings bitboards of side.
func (p *Position) sets(side Side) (men, kings *Bitboard) {
	if side == Red {
		return &p.Red, &p.RedKings
	}
	return &p.Black, &p.BlackKings
}

func (p *Position) DescribeCell(sq Square) Cell {
	switch {
	case !sq.Playable():
		return EmptyLight
	case p.Red.Has(sq):
		return RedPiece
	case p.RedKings.Has(sq):
		return RedKing
	case p.Black.Has(sq):
		return BlackPiece
	case p.BlackKings.Has(sq):
		return BlackKing
	}
	return EmptyDark
}

// EndTurn passes the move to the other side.
func (p *Position) EndTurn() {
	p.EnsureHash()
	p.SideToMove = p.SideToMove.Opposite()
	p.Hash ^= zobristSide
}

// withTurn returns a copy of p with side to move set to side.
func (p Position) withTurn(side Side) Position {
	if p.SideToMove != side {
		p.SideToMove = side
		p.Hash = 0
	}
	return p
}

// Validate checks the board invariants: disjoint piece sets, dark squares only, a real side to move.
func (p *Position) Validate() error {
	sets := [4]Bitboard{p.Red, p.RedKings, p.Black, p.BlackKings}
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if overlap := sets[i] & sets[j]; overlap != 0 {
				return fmt.Errorf("piece sets %d and %d overlap at %v", i, j, overlap.Squares())
			}
		}
	}
	var bad []Square
	p.Occupancy().Iter(func(sq Square) {
		if !sq.Playable() {
			bad = append(bad, sq)
		}
	})
	if len(bad) > 0 {
		return fmt.Errorf("pieces on light squares %v", bad)
	}
	if p.SideToMove != Red && p.SideToMove != Black {
		return fmt.Errorf("invalid side to move %d", p.SideToMove)
	}
	return nil
}
