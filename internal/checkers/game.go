package checkers

import "fmt"

type Phase int8

const (
	PhaseAwaitingMove Phase = iota
	PhaseJumpChain
	PhaseOver
)

func (ph Phase) String() string {
	switch ph {
	case PhaseAwaitingMove:
		return "awaiting_move"
	case PhaseJumpChain:
		return "jump_chain"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// TurnResult reports what a Game call did.
type TurnResult struct {
	// Moved is false when the call only closed a chain.
	Moved    bool
	Move     Move
	Promoted bool
	// Continuations are the jumps still open to the same piece; the turn is not over while
	// this is non-empty.
	Continuations []Jump
	TurnOver      bool
	Winner        Side
}

// Game drives one match: whole turns, jump chains and the end of the game.
// A Game is not safe for concurrent use.
type Game struct {
	pos       Position
	phase     Phase
	chainFrom Square
	winner    Side
	plies     int
	last      *TurnResult
}

func NewGame() *Game {
	g, _ := NewGameFrom(NewInitialPosition())
	return g
}

// NewGameFrom starts a game at an arbitrary position, e.g. one read with DecodePosition.
func NewGameFrom(pos *Position) (*Game, error) {
	if err := pos.Validate(); err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}
	g := &Game{
		pos:       *pos,
		phase:     PhaseAwaitingMove,
		chainFrom: NoSquare,
		winner:    NoSide,
	}
	g.pos.EnsureHash()
	return g, nil
}

func (g *Game) Position() Position { return g.pos }
func (g *Game) Phase() Phase       { return g.phase }
func (g *Game) Turn() Side         { return g.pos.SideToMove }
func (g *Game) Plies() int         { return g.plies }

func (g *Game) Winner() (Side, bool) {
	return g.winner, g.phase == PhaseOver
}

// ChainFrom returns the square of the piece that must keep jumping.
func (g *Game) ChainFrom() (Square, bool) {
	return g.chainFrom, g.phase == PhaseJumpChain
}

// Move plays the first step of a turn.
func (g *Game) Move(src, dest Square) (TurnResult, error) {
	switch g.phase {
	case PhaseOver:
		return TurnResult{}, ErrGameOver
	case PhaseJumpChain:
		return TurnResult{}, ErrChainInProgress
	}
	res, err := g.pos.TryMove(src, dest)
	if err != nil {
		return TurnResult{}, err
	}
	tr := TurnResult{Moved: true, Move: res.Move, Promoted: res.Promoted, Winner: NoSide}
	return g.afterStep(tr), nil
}

// Continue extends a jump chain to landing. A landing that is not on offer ends the chain;
// captures already made stay on the board and ErrInvalidContinuation is returned with the
// finished turn.
func (g *Game) Continue(landing Square) (TurnResult, error) {
	switch g.phase {
	case PhaseOver:
		return TurnResult{}, ErrGameOver
	case PhaseAwaitingMove:
		return TurnResult{}, ErrNoChain
	}
	for _, j := range g.pos.JumpsFrom(g.chainFrom) {
		if j.Landing != landing {
			continue
		}
		m := JumpMove(g.chainFrom, j.Landing, j.Midpoint)
		promoted := g.pos.ApplyMove(m)
		return g.afterStep(TurnResult{Moved: true, Move: m, Promoted: promoted, Winner: NoSide}), nil
	}
	tr := TurnResult{Winner: NoSide}
	g.finishTurn(&tr)
	return tr, ErrInvalidContinuation
}

// EndChain stops a jump chain early.
func (g *Game) EndChain() (TurnResult, error) {
	switch g.phase {
	case PhaseOver:
		return TurnResult{}, ErrGameOver
	case PhaseAwaitingMove:
		return TurnResult{}, ErrNoChain
	}
	tr := TurnResult{Winner: NoSide}
	g.finishTurn(&tr)
	return tr, nil
}

func (g *Game) afterStep(tr TurnResult) TurnResult {
	if tr.Move.Jump {
		if jumps := g.pos.JumpsFrom(tr.Move.To); len(jumps) > 0 {
			g.phase = PhaseJumpChain
			g.chainFrom = tr.Move.To
			tr.Continuations = jumps
			g.remember(tr)
			return tr
		}
	}
	g.finishTurn(&tr)
	return tr
}

func (g *Game) finishTurn(tr *TurnResult) {
	g.plies++
	g.chainFrom = NoSquare
	tr.TurnOver = true
	if w, ok := g.pos.HasWon(); ok {
		g.phase = PhaseOver
		g.winner = w
		tr.Winner = w
	} else {
		g.pos.EndTurn()
		g.phase = PhaseAwaitingMove
	}
	g.remember(*tr)
}

func (g *Game) remember(tr TurnResult) {
	g.last = &tr
}

// LegalMoves lists what the side to move may play now: continuation jumps during a chain,
// nothing once the game is over.
func (g *Game) LegalMoves() []Move {
	switch g.phase {
	case PhaseOver:
		return nil
	case PhaseJumpChain:
		jumps := g.pos.JumpsFrom(g.chainFrom)
		out := make([]Move, 0, len(jumps))
		for _, j := range jumps {
			out = append(out, JumpMove(g.chainFrom, j.Landing, j.Midpoint))
		}
		return out
	}
	return g.pos.LegalMoves()
}

// Snapshot is a read-only view of a game for front-ends.
type Snapshot struct {
	Position        Position
	Phase           Phase
	Turn            Side
	Winner          Side
	ChainFrom       Square
	Continuations   []Jump
	CaptureRequired bool
	LegalMoves      []Move
	Plies           int
	Last            *TurnResult
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Position:   g.pos,
		Phase:      g.phase,
		Turn:       g.pos.SideToMove,
		Winner:     g.winner,
		ChainFrom:  g.chainFrom,
		LegalMoves: g.LegalMoves(),
		Plies:      g.plies,
	}
	switch g.phase {
	case PhaseJumpChain:
		s.Continuations = g.pos.JumpsFrom(g.chainFrom)
		s.CaptureRequired = true
	case PhaseAwaitingMove:
		s.CaptureRequired = g.pos.CaptureAvailable()
	}
	if g.last != nil {
		last := *g.last
		s.Last = &last
	}
	return s
}
