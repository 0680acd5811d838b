package checkers

import (
	"errors"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

var letterToCell = map[rune]Cell{
	'r': RedPiece,
	'R': RedKing,
	'b': BlackPiece,
	'B': BlackKing,
}

// Encode writes p in a FEN-like form: eight rows joined by "/", digits for runs of
// empty squares, r/R/b/B for pieces, then " r" or " b" for the side to move.
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			sq, _ := SquareAt(r, c)
			cell := p.DescribeCell(sq)
			if cell == EmptyLight || cell == EmptyDark {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(cell.Rune())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Red {
		sb.WriteByte('r')
	} else {
		sb.WriteByte('b')
	}
	return sb.String()
}

func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 2 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, ErrInvalidFEN
	}
	pos := &Position{}
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			cell, ok := letterToCell[ch]
			if !ok || c >= Cols {
				return nil, ErrInvalidFEN
			}
			sq, _ := SquareAt(r, c)
			if !sq.Playable() {
				return nil, ErrInvalidFEN
			}
			switch cell {
			case RedPiece:
				pos.Red = pos.Red.Add(sq)
			case RedKing:
				pos.RedKings = pos.RedKings.Add(sq)
			case BlackPiece:
				pos.Black = pos.Black.Add(sq)
			case BlackKing:
				pos.BlackKings = pos.BlackKings.Add(sq)
			}
			c++
		}
		if c != Cols {
			return nil, ErrInvalidFEN
		}
	}
	switch parts[1] {
	case "r":
		pos.SideToMove = Red
	case "b":
		pos.SideToMove = Black
	default:
		return nil, ErrInvalidFEN
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
