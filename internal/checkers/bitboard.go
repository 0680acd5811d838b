package checkers

import (
	"math/bits"

	"checkers/internal/bitset"
)

// Bitboard represents a 64-bit set of squares.
type Bitboard uint64

func BB(s Square) Bitboard { return Bitboard(0).Add(s) }

func (b Bitboard) Empty() bool { return b == 0 }

func (b Bitboard) Has(s Square) bool { return bitset.Get(uint64(b), int(s)) == 1 }

func (b Bitboard) Add(s Square) Bitboard { return Bitboard(bitset.Set(uint64(b), int(s))) }

func (b Bitboard) Remove(s Square) Bitboard { return Bitboard(bitset.Clear(uint64(b), int(s))) }

func (b Bitboard) Toggle(s Square) Bitboard { return Bitboard(bitset.Toggle(uint64(b), int(s))) }

func (b Bitboard) Count() int { return bitset.Count(uint64(b)) }

// PopLSB returns the lowest set square and the remaining set.
func (b Bitboard) PopLSB() (Square, Bitboard) {
	if b == 0 {
		return NoSquare, 0
	}
	sq := Square(bits.TrailingZeros64(uint64(b)))
	return sq, b & (b - 1)
}

// Iter calls fn for every set square in ascending order.
func (b Bitboard) Iter(fn func(Square)) {
	for bb := b; bb != 0; {
		var sq Square
		sq, bb = bb.PopLSB()
		fn(sq)
	}
}

func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	b.Iter(func(s Square) { out = append(out, s) })
	return out
}

func (b Bitboard) String() string { return bitset.FormatHex(uint64(b)) }
