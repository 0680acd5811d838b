package checkers

import "sync"

var (
	zobristOnce sync.Once

	// [side][0=man,1=king][square]
	zobristPieces [2][2][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for kind := 0; kind < 2; kind++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][kind][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(side Side, king bool, sq Square) uint64 {
	initZobrist()
	if !sq.OnBoard() || (side != Red && side != Black) {
		return 0
	}
	kind := 0
	if king {
		kind = 1
	}
	return zobristPieces[side][kind][sq]
}

// CalculateHash recomputes the Zobrist hash of the whole position.
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	p.Red.Iter(func(sq Square) { h ^= pieceHashKey(Red, false, sq) })
	p.RedKings.Iter(func(sq Square) { h ^= pieceHashKey(Red, true, sq) })
	p.Black.Iter(func(sq Square) { h ^= pieceHashKey(Black, false, sq) })
	p.BlackKings.Iter(func(sq Square) { h ^= pieceHashKey(Black, true, sq) })
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	return h
}

// EnsureHash fills in Hash if it was never computed and returns it.
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
