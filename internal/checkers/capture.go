package checkers

// CaptureAvailable reports whether any piece of the side to move can jump.
// When it does, simple moves are illegal this turn.
func (p *Position) CaptureAvailable() bool {
	found := false
	p.Pieces(p.SideToMove).Iter(func(sq Square) {
		if !found && p.canJumpFrom(sq) {
			found = true
		}
	})
	return found
}

func (p *Position) canJumpFrom(sq Square) bool {
	for _, d := range Directions {
		landing, ok := d.Step(sq, 2)
		if !ok {
			continue
		}
		if _, ok := p.FindJumpMidpoint(sq, landing); ok {
			return true
		}
	}
	return false
}

// JumpsFrom lists the captures open to the piece on sq, in Directions order.
// Used both for a first capture and to continue a multi-jump.
func (p *Position) JumpsFrom(sq Square) []Jump {
	var out []Jump
	for _, d := range Directions {
		landing, ok := d.Step(sq, 2)
		if !ok {
			continue
		}
		if mid, ok := p.FindJumpMidpoint(sq, landing); ok {
			out = append(out, Jump{Landing: landing, Midpoint: mid})
		}
	}
	return out
}
