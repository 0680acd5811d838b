package httpserver

import (
	"fmt"

	"checkers/internal/checkers"
)

type MoveDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// LegalMoveDTO is a move as listed to the client; Captured is -1 for a simple move.
type LegalMoveDTO struct {
	From     int  `json:"from"`
	To       int  `json:"to"`
	Jump     bool `json:"jump"`
	Captured int  `json:"captured"`
}

type JumpDTO struct {
	Landing  int `json:"landing"`
	Midpoint int `json:"midpoint"`
}

// TurnDTO is the outcome of the last call that changed the game.
type TurnDTO struct {
	Moved         bool         `json:"moved"`
	Move          LegalMoveDTO `json:"move"`
	Promoted      bool         `json:"promoted"`
	Continuations []JumpDTO    `json:"continuations"`
	TurnOver      bool         `json:"turn_over"`
	Winner        int          `json:"winner"`
}

// NewGameRequest may carry a FEN to start from; empty means the opening.
type NewGameRequest struct {
	Position string `json:"position"`
}

type GameRequest struct {
	GameID string `json:"game_id"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type ContinueRequest struct {
	GameID  string `json:"game_id"`
	Landing int    `json:"landing"`
}

// GameResponse is returned by every endpoint that reports a game.
type GameResponse struct {
	GameID          string         `json:"game_id"`
	Position        string         `json:"position"` // FEN
	ToMove          int            `json:"to_move"`  // 0=red, 1=black
	LegalMoves      []LegalMoveDTO `json:"legal_moves"`
	Status          string         `json:"status"` // ongoing / jump_chain / red_wins / black_wins
	CaptureRequired bool           `json:"capture_required"`
	ChainFrom       int            `json:"chain_from"`
	Continuations   []JumpDTO      `json:"continuations"`
	Plies           int            `json:"plies"`
	Hash            string         `json:"hash"`
	Last            *TurnDTO       `json:"last,omitempty"`
	// Warning carries the code of a rejection that still changed the game, i.e. a
	// continuation that ended the chain.
	Warning string `json:"warning,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

const (
	StatusOngoing   = "ongoing"
	StatusJumpChain = "jump_chain"
	StatusRedWins   = "red_wins"
	StatusBlackWins = "black_wins"
)

func sideToInt(s checkers.Side) int {
	switch s {
	case checkers.Red:
		return 0
	case checkers.Black:
		return 1
	default:
		return -1
	}
}

func statusOf(s checkers.Snapshot) string {
	switch s.Phase {
	case checkers.PhaseJumpChain:
		return StatusJumpChain
	case checkers.PhaseOver:
		if s.Winner == checkers.Red {
			return StatusRedWins
		}
		return StatusBlackWins
	}
	return StatusOngoing
}

func moveToDTO(m checkers.Move) LegalMoveDTO {
	return LegalMoveDTO{From: int(m.From), To: int(m.To), Jump: m.Jump, Captured: int(m.Captured)}
}

func movesToDTO(ms []checkers.Move) []LegalMoveDTO {
	out := make([]LegalMoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func jumpsToDTO(js []checkers.Jump) []JumpDTO {
	out := make([]JumpDTO, len(js))
	for i, j := range js {
		out[i] = JumpDTO{Landing: int(j.Landing), Midpoint: int(j.Midpoint)}
	}
	return out
}

func turnToDTO(tr *checkers.TurnResult) *TurnDTO {
	if tr == nil {
		return nil
	}
	return &TurnDTO{
		Moved:         tr.Moved,
		Move:          moveToDTO(tr.Move),
		Promoted:      tr.Promoted,
		Continuations: jumpsToDTO(tr.Continuations),
		TurnOver:      tr.TurnOver,
		Winner:        sideToInt(tr.Winner),
	}
}

func snapshotToResponse(id string, s checkers.Snapshot) GameResponse {
	return GameResponse{
		GameID:          id,
		Position:        s.Position.Encode(),
		ToMove:          sideToInt(s.Turn),
		LegalMoves:      movesToDTO(s.LegalMoves),
		Status:          statusOf(s),
		CaptureRequired: s.CaptureRequired,
		ChainFrom:       int(s.ChainFrom),
		Continuations:   jumpsToDTO(s.Continuations),
		Plies:           s.Plies,
		Hash:            fmt.Sprintf("%016x", s.Position.Hash),
		Last:            turnToDTO(s.Last),
	}
}

// etag changes whenever the board, the phase or the ply count does.
func etag(s checkers.Snapshot) string {
	return fmt.Sprintf(`"%016x-%d-%d"`, s.Position.Hash, s.Phase, s.Plies)
}
