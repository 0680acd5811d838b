package checkers

// ApplyMove moves the piece of the side to move along m, removes the captured piece of a jump
// and crowns a plain piece reaching the far row. The move is assumed legal (checked by the caller);
// the turn is not passed.
func (p *Position) ApplyMove(m Move) (promoted bool) {
	side := p.SideToMove
	men, kings := p.sets(side)
	h := p.EnsureHash()

	wasKing := kings.Has(m.From)
	if wasKing {
		h ^= pieceHashKey(side, true, m.From)
	} else if men.Has(m.From) {
		h ^= pieceHashKey(side, false, m.From)
	}
	*men = men.Remove(m.From)
	*kings = kings.Remove(m.From)

	if m.Jump {
		oppMen, oppKings := p.sets(side.Opposite())
		switch {
		case oppKings.Has(m.Captured):
			h ^= pieceHashKey(side.Opposite(), true, m.Captured)
		case oppMen.Has(m.Captured):
			h ^= pieceHashKey(side.Opposite(), false, m.Captured)
		}
		*oppMen = oppMen.Remove(m.Captured)
		*oppKings = oppKings.Remove(m.Captured)
	}

	switch {
	case wasKing:
		*kings = kings.Add(m.To)
	case m.To.Row() == promotionRow(side):
		*kings = kings.Add(m.To)
		promoted = true
	default:
		*men = men.Add(m.To)
	}
	h ^= pieceHashKey(side, wasKing || promoted, m.To)
	p.Hash = h
	return promoted
}
