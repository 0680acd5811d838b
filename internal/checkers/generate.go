package checkers

// LegalMoves lists every legal single step for the side to move. When a capture exists
// only jumps are returned.
func (p *Position) LegalMoves() []Move {
	var jumps, simple []Move
	p.Pieces(p.SideToMove).Iter(func(sq Square) {
		for _, j := range p.JumpsFrom(sq) {
			jumps = append(jumps, JumpMove(sq, j.Landing, j.Midpoint))
		}
		if len(jumps) > 0 {
			return
		}
		for _, d := range Directions {
			if to, ok := d.Step(sq, 1); ok && p.IsValidSimpleMove(sq, to) {
				simple = append(simple, SimpleMove(sq, to))
			}
		}
	})
	if len(jumps) > 0 {
		return jumps
	}
	return simple
}
