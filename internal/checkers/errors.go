package checkers

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange          = errors.New("square out of range")
	ErrNotPlayable         = errors.New("moves must use dark squares only")
	ErrWrongOwner          = errors.New("source square does not hold a piece of the side to move")
	ErrDestinationOccupied = errors.New("destination square is occupied")
	ErrNotDiagonal         = errors.New("move is not a one- or two-step diagonal")
	ErrWrongDirection      = errors.New("plain pieces may only move forward")
	ErrCaptureRequired     = errors.New("a capture is available and must be taken")
	ErrNoMidpointPiece     = errors.New("no opponent piece to jump over")

	ErrGameOver            = errors.New("game is over")
	ErrChainInProgress     = errors.New("a multi-jump is in progress")
	ErrNoChain             = errors.New("no multi-jump in progress")
	ErrInvalidContinuation = errors.New("not a valid landing for an additional jump; multi-jump stopped")
)

// MoveError ties a rejection to the move that caused it.
type MoveError struct {
	From, To Square
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %d -> %d: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }

func rejectMove(from, to Square, err error) *MoveError {
	return &MoveError{From: from, To: to, Err: err}
}

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrOutOfRange, "out_of_range"},
	{ErrNotPlayable, "not_playable"},
	{ErrWrongOwner, "wrong_owner"},
	{ErrDestinationOccupied, "destination_occupied"},
	{ErrNotDiagonal, "not_diagonal"},
	{ErrWrongDirection, "wrong_direction"},
	{ErrCaptureRequired, "capture_required"},
	{ErrNoMidpointPiece, "no_midpoint_piece"},
	{ErrGameOver, "game_over"},
	{ErrChainInProgress, "chain_in_progress"},
	{ErrNoChain, "no_chain"},
	{ErrInvalidContinuation, "invalid_continuation"},
	{ErrInvalidFEN, "invalid_fen"},
}

// ErrorCode returns the stable wire code for an engine error, or "" for anything else.
func ErrorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return ""
}

// ErrorFromCode maps a wire code back to its sentinel.
func ErrorFromCode(code string) (error, bool) {
	for _, ec := range errorCodes {
		if ec.code == code {
			return ec.err, true
		}
	}
	return nil, false
}
