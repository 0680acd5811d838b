package checkers

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IsValidSimpleMove reports whether src -> dest is a legal one-step diagonal for the side to move.
// Ownership of src is not checked here; TryMove does that.
func (p *Position) IsValidSimpleMove(src, dest Square) bool {
	return p.checkSimpleMove(src, dest) == nil
}

// FindJumpMidpoint returns the square jumped over when src -> dest is a legal capture
// for the side to move.
func (p *Position) FindJumpMidpoint(src, dest Square) (Square, bool) {
	mid, err := p.checkJump(src, dest)
	return mid, err == nil
}

func (p *Position) checkEndpoints(src, dest Square) error {
	if !src.OnBoard() || !dest.OnBoard() {
		return ErrOutOfRange
	}
	if !src.Playable() || !dest.Playable() {
		return ErrNotPlayable
	}
	if p.Occupancy().Has(dest) {
		return ErrDestinationOccupied
	}
	return nil
}

// checkDirection rejects backward moves by plain pieces; dist is 1 for a step and 2 for a jump.
func (p *Position) checkDirection(src Square, rowChange, dist int) error {
	if p.IsKing(src) {
		return nil
	}
	if rowChange != forwardDir(p.SideToMove)*dist {
		return ErrWrongDirection
	}
	return nil
}

func (p *Position) checkSimpleMove(src, dest Square) error {
	if err := p.checkEndpoints(src, dest); err != nil {
		return err
	}
	dr := dest.Row() - src.Row()
	dc := dest.Col() - src.Col()
	if abs(dr) != 1 || abs(dc) != 1 {
		return ErrNotDiagonal
	}
	return p.checkDirection(src, dr, 1)
}

func (p *Position) checkJump(src, dest Square) (Square, error) {
	if err := p.checkEndpoints(src, dest); err != nil {
		return NoSquare, err
	}
	dr := dest.Row() - src.Row()
	dc := dest.Col() - src.Col()
	if abs(dr) != 2 || abs(dc) != 2 {
		return NoSquare, ErrNotDiagonal
	}
	mid, _ := SquareAt((src.Row()+dest.Row())/2, (src.Col()+dest.Col())/2)
	if !p.Pieces(p.SideToMove.Opposite()).Has(mid) {
		return NoSquare, ErrNoMidpointPiece
	}
	if err := p.checkDirection(src, dr, 2); err != nil {
		return NoSquare, err
	}
	return mid, nil
}
