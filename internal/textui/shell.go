// Package textui is the line-oriented front-end: a board printed as text and moves typed
// as square numbers.
package textui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"checkers/internal/checkers"
	"checkers/internal/session"
)

var ErrInputClosed = errors.New("input closed")

type Shell struct {
	s   session.Session
	in  *bufio.Scanner
	out io.Writer
}

func New(s session.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{s: s, in: bufio.NewScanner(in), out: out}
}

// Run plays until the game ends or the player types quit. It returns ErrInputClosed when
// the input runs out first.
func (sh *Shell) Run(ctx context.Context) error {
	fmt.Fprint(sh.out, "Welcome to BitBoard Checkers!\n\n")
	WriteReferenceBoard(sh.out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap, err := sh.s.Snapshot(ctx)
		if err != nil {
			return err
		}

		switch snap.Phase {
		case checkers.PhaseOver:
			sh.printBoard(&snap)
			fmt.Fprintf(sh.out, "%s wins!\n", snap.Winner)
			fmt.Fprintln(sh.out, "Game over...")
			return nil
		case checkers.PhaseJumpChain:
			err = sh.chain(ctx, snap.ChainFrom)
		default:
			err = sh.turn(ctx, &snap)
		}
		if errors.Is(err, errQuit) {
			fmt.Fprintln(sh.out, "Bye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var errQuit = errors.New("quit")

func (sh *Shell) printBoard(snap *checkers.Snapshot) {
	WriteLegend(sh.out)
	WriteBoard(sh.out, &snap.Position)
}

func (sh *Shell) turn(ctx context.Context, snap *checkers.Snapshot) error {
	sh.printBoard(snap)
	fmt.Fprintf(sh.out, "\nIt's %s's turn.\n\n", snap.Turn)
	fmt.Fprint(sh.out, "Enter two numbers, first the square you want to move FROM,\n")
	fmt.Fprint(sh.out, "then the square you want to move TO.\n\n")
	if snap.CaptureRequired {
		fmt.Fprintln(sh.out, "A capture is available - you must capture.")
	}

	for {
		fmt.Fprint(sh.out, "Enter your move (two numbers 0-63 separated by a space): ")
		line, err := sh.readLine()
		if err != nil {
			return err
		}
		src, dest, ok := parseMove(line)
		if !ok {
			fmt.Fprintln(sh.out, "Invalid input. Please enter two integers 0-63 separated by a space.")
			continue
		}

		tr, err := sh.s.Move(ctx, src, dest)
		if err != nil {
			if msg, ok := rejection(err, snap.Turn); ok {
				fmt.Fprintln(sh.out, msg)
				continue
			}
			return err
		}
		if len(tr.Continuations) > 0 {
			return sh.chain(ctx, tr.Move.To)
		}
		return nil
	}
}

// chain asks for further landings until the piece on from cannot jump again or the
// player stops.
func (sh *Shell) chain(ctx context.Context, from checkers.Square) error {
	for {
		snap, err := sh.s.Snapshot(ctx)
		if err != nil {
			return err
		}
		if snap.Phase != checkers.PhaseJumpChain {
			return nil
		}
		sh.printBoard(&snap)
		fmt.Fprintf(sh.out, "Multi-jump available from %d. Enter next landing (or -1 to stop if none): ", int(from))

		line, err := sh.readLine()
		if err != nil {
			return err
		}
		next, perr := strconv.Atoi(strings.TrimSpace(line))
		if perr != nil || next == -1 {
			_, err := sh.s.EndChain(ctx)
			return err
		}

		tr, err := sh.s.Continue(ctx, checkers.Square(next))
		if errors.Is(err, checkers.ErrInvalidContinuation) {
			fmt.Fprintln(sh.out, "Not a valid landing for additional jump. Stopping multi-jump.")
			return nil
		}
		if err != nil {
			return err
		}
		if len(tr.Continuations) == 0 {
			return nil
		}
		from = tr.Move.To
	}
}

func (sh *Shell) readLine() (string, error) {
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", err
		}
		return "", ErrInputClosed
	}
	line := strings.TrimSpace(sh.in.Text())
	switch strings.ToLower(line) {
	case "q", "quit", "exit":
		return "", errQuit
	}
	return line, nil
}

func parseMove(line string) (checkers.Square, checkers.Square, bool) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, false
	}
	src, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	dest, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return checkers.Square(src), checkers.Square(dest), true
}

// rejection turns a refused move into the line shown to the player. ok is false for errors
// that are not about the move itself.
func rejection(err error, turn checkers.Side) (string, bool) {
	switch {
	case errors.Is(err, checkers.ErrOutOfRange):
		return "\nNumbers must be between 0 and 63.", true
	case errors.Is(err, checkers.ErrNotPlayable):
		return "\nMoves must be to dark squares only.", true
	case errors.Is(err, checkers.ErrWrongOwner):
		return fmt.Sprintf("\nSquare does not contain your piece (%s).", turn), true
	case errors.Is(err, checkers.ErrCaptureRequired):
		return "You must capture.", true
	}
	var me *checkers.MoveError
	if errors.As(err, &me) {
		return fmt.Sprintf("Invalid move: %v.", me.Err), true
	}
	if checkers.ErrorCode(err) != "" {
		return fmt.Sprintf("Invalid move: %v.", err), true
	}
	return "", false
}
