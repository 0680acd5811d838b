// Package session is what the terminal front-ends play through: a game held in this
// process, or one held by a server.
package session

import (
	"context"
	"fmt"

	"checkers/internal/checkers"
)

type Session interface {
	Snapshot(ctx context.Context) (checkers.Snapshot, error)
	Move(ctx context.Context, from, to checkers.Square) (checkers.TurnResult, error)
	Continue(ctx context.Context, landing checkers.Square) (checkers.TurnResult, error)
	EndChain(ctx context.Context) (checkers.TurnResult, error)
	// Reset starts over from the session's starting position.
	Reset(ctx context.Context) error
}

// Local keeps the game in memory.
type Local struct {
	start checkers.Position
	game  *checkers.Game
}

var _ Session = (*Local)(nil)

// NewLocal starts a session at start, or at the standard opening when start is nil.
func NewLocal(start *checkers.Position) (*Local, error) {
	if start == nil {
		start = checkers.NewInitialPosition()
	}
	g, err := checkers.NewGameFrom(start)
	if err != nil {
		return nil, fmt.Errorf("new local session: %w", err)
	}
	return &Local{start: *start, game: g}, nil
}

func (l *Local) Game() *checkers.Game { return l.game }

func (l *Local) Snapshot(context.Context) (checkers.Snapshot, error) {
	return l.game.Snapshot(), nil
}

func (l *Local) Move(_ context.Context, from, to checkers.Square) (checkers.TurnResult, error) {
	return l.game.Move(from, to)
}

func (l *Local) Continue(_ context.Context, landing checkers.Square) (checkers.TurnResult, error) {
	return l.game.Continue(landing)
}

func (l *Local) EndChain(context.Context) (checkers.TurnResult, error) {
	return l.game.EndChain()
}

func (l *Local) Reset(context.Context) error {
	start := l.start
	g, err := checkers.NewGameFrom(&start)
	if err != nil {
		return err
	}
	l.game = g
	return nil
}
