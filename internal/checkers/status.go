package checkers

// HasLegalMove reports whether side would have any simple move or jump if it were its turn.
// It works on a copy; p is not modified.
func (p *Position) HasLegalMove(side Side) bool {
	view := p.withTurn(side)
	found := false
	view.Pieces(side).Iter(func(sq Square) {
		if found {
			return
		}
		for _, d := range Directions {
			if to, ok := d.Step(sq, 1); ok && view.IsValidSimpleMove(sq, to) {
				found = true
				return
			}
		}
		if view.canJumpFrom(sq) {
			found = true
		}
	})
	return found
}

// HasWon is asked right after the side to move finished its turn: that side has won when
// the opponent has no pieces left or no legal reply.
func (p Position) HasWon() (Side, bool) {
	mover := p.SideToMove
	opp := mover.Opposite()
	if p.Pieces(opp).Empty() {
		return mover, true
	}
	if !p.HasLegalMove(opp) {
		return mover, true
	}
	return NoSide, false
}
