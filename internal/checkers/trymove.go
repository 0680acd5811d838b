package checkers

// MoveResult describes a step TryMove applied.
type MoveResult struct {
	Move     Move
	Promoted bool
}

func isJumpShape(src, dest Square) bool {
	return abs(dest.Row()-src.Row()) == 2 && abs(dest.Col()-src.Col()) == 2
}

// TryMove validates src -> dest for the side to move and applies it. A rejected move leaves p
// untouched and returns a *MoveError wrapping one of the move sentinels. The turn is not passed.
func (p *Position) TryMove(src, dest Square) (MoveResult, error) {
	if !src.OnBoard() || !dest.OnBoard() {
		return MoveResult{}, rejectMove(src, dest, ErrOutOfRange)
	}
	if !src.Playable() || !dest.Playable() {
		return MoveResult{}, rejectMove(src, dest, ErrNotPlayable)
	}
	if !p.Pieces(p.SideToMove).Has(src) {
		return MoveResult{}, rejectMove(src, dest, ErrWrongOwner)
	}

	var m Move
	if isJumpShape(src, dest) {
		mid, err := p.checkJump(src, dest)
		if err != nil {
			return MoveResult{}, rejectMove(src, dest, err)
		}
		m = JumpMove(src, dest, mid)
	} else {
		if p.CaptureAvailable() {
			return MoveResult{}, rejectMove(src, dest, ErrCaptureRequired)
		}
		if err := p.checkSimpleMove(src, dest); err != nil {
			return MoveResult{}, rejectMove(src, dest, err)
		}
		m = SimpleMove(src, dest)
	}
	promoted := p.ApplyMove(m)
	return MoveResult{Move: m, Promoted: promoted}, nil
}
