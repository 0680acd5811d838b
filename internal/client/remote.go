package client

import (
	"context"
	"errors"
	"fmt"

	"checkers/internal/checkers"
	"checkers/internal/server/game"
	httpserver "checkers/internal/server/http"
	"checkers/internal/session"
)

// RemoteSession plays a game hosted by a server.
type RemoteSession struct {
	c     *Client
	id    string
	start string
}

var _ session.Session = (*RemoteSession)(nil)

// NewRemoteSession creates a game on the server, starting at fen or at the opening when
// fen is empty.
func NewRemoteSession(ctx context.Context, c *Client, fen string) (*RemoteSession, error) {
	resp, err := c.NewGame(ctx, fen)
	if err != nil {
		return nil, err
	}
	return &RemoteSession{c: c, id: resp.GameID, start: fen}, nil
}

func (s *RemoteSession) ID() string { return s.id }

func (s *RemoteSession) Snapshot(ctx context.Context) (checkers.Snapshot, error) {
	resp, err := s.c.State(ctx, s.id)
	if err != nil {
		return checkers.Snapshot{}, err
	}
	return ResponseToSnapshot(resp)
}

func (s *RemoteSession) Move(ctx context.Context, from, to checkers.Square) (checkers.TurnResult, error) {
	return turnOf(s.c.Play(ctx, s.id, int(from), int(to)))
}

func (s *RemoteSession) Continue(ctx context.Context, landing checkers.Square) (checkers.TurnResult, error) {
	return turnOf(s.c.Continue(ctx, s.id, int(landing)))
}

func (s *RemoteSession) EndChain(ctx context.Context) (checkers.TurnResult, error) {
	return turnOf(s.c.EndChain(ctx, s.id))
}

// Reset drops the hosted game and opens a new one from the same start.
func (s *RemoteSession) Reset(ctx context.Context) error {
	if err := s.c.Delete(ctx, s.id); err != nil && !errors.Is(err, game.ErrNotFound) {
		return err
	}
	resp, err := s.c.NewGame(ctx, s.start)
	if err != nil {
		return err
	}
	s.id = resp.GameID
	return nil
}

func turnOf(resp *httpserver.GameResponse, err error) (checkers.TurnResult, error) {
	if err != nil {
		return checkers.TurnResult{}, err
	}
	var tr checkers.TurnResult
	if resp.Last != nil {
		tr = dtoToTurn(*resp.Last)
	}
	if resp.Warning != "" {
		werr, ok := checkers.ErrorFromCode(resp.Warning)
		if !ok {
			werr = fmt.Errorf("server warning %q", resp.Warning)
		}
		return tr, werr
	}
	return tr, nil
}

// ResponseToSnapshot rebuilds an engine snapshot from a server response.
func ResponseToSnapshot(resp *httpserver.GameResponse) (checkers.Snapshot, error) {
	pos, err := checkers.DecodePosition(resp.Position)
	if err != nil {
		return checkers.Snapshot{}, fmt.Errorf("server position: %w", err)
	}
	s := checkers.Snapshot{
		Position:        *pos,
		Turn:            intToSide(resp.ToMove),
		Winner:          checkers.NoSide,
		ChainFrom:       checkers.Square(resp.ChainFrom),
		CaptureRequired: resp.CaptureRequired,
		Plies:           resp.Plies,
	}
	switch resp.Status {
	case httpserver.StatusJumpChain:
		s.Phase = checkers.PhaseJumpChain
	case httpserver.StatusRedWins:
		s.Phase, s.Winner = checkers.PhaseOver, checkers.Red
	case httpserver.StatusBlackWins:
		s.Phase, s.Winner = checkers.PhaseOver, checkers.Black
	default:
		s.Phase = checkers.PhaseAwaitingMove
	}
	for _, j := range resp.Continuations {
		s.Continuations = append(s.Continuations, checkers.Jump{Landing: checkers.Square(j.Landing), Midpoint: checkers.Square(j.Midpoint)})
	}
	for _, m := range resp.LegalMoves {
		s.LegalMoves = append(s.LegalMoves, dtoToMove(m))
	}
	if resp.Last != nil {
		tr := dtoToTurn(*resp.Last)
		s.Last = &tr
	}
	return s, nil
}

func intToSide(v int) checkers.Side {
	switch v {
	case 0:
		return checkers.Red
	case 1:
		return checkers.Black
	}
	return checkers.NoSide
}

func dtoToMove(m httpserver.LegalMoveDTO) checkers.Move {
	return checkers.Move{
		From:     checkers.Square(m.From),
		To:       checkers.Square(m.To),
		Jump:     m.Jump,
		Captured: checkers.Square(m.Captured),
	}
}

func dtoToTurn(t httpserver.TurnDTO) checkers.TurnResult {
	tr := checkers.TurnResult{
		Moved:    t.Moved,
		Move:     dtoToMove(t.Move),
		Promoted: t.Promoted,
		TurnOver: t.TurnOver,
		Winner:   intToSide(t.Winner),
	}
	for _, j := range t.Continuations {
		tr.Continuations = append(tr.Continuations, checkers.Jump{Landing: checkers.Square(j.Landing), Midpoint: checkers.Square(j.Midpoint)})
	}
	return tr
}
