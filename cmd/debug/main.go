package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"

	"checkers/internal/bitset"
	"checkers/internal/checkers"
	"checkers/internal/textui"
)

func main() {
	app := &cli.App{
		Name:  "debug",
		Usage: "Inspect a position: FEN, bitboards, legal moves and a struct dump",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "fen", Usage: "position to inspect (defaults to the opening)"},
			&cli.BoolFlag{Name: "dump", Usage: "spew the whole Position struct"},
		},
		Action: func(cCtx *cli.Context) error {
			pos := checkers.NewInitialPosition()
			if fen := cCtx.String("fen"); fen != "" {
				p, err := checkers.DecodePosition(fen)
				if err != nil {
					return err
				}
				pos = p
			}
			describe(cCtx.App.Writer, pos, cCtx.Bool("dump"))
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func describe(w io.Writer, pos *checkers.Position, dump bool) {
	fmt.Fprintln(w, "FEN:", pos.Encode())
	fmt.Fprintf(w, "Hash: %016x\n", pos.Hash)
	textui.WriteBoard(w, pos)

	for _, bb := range []struct {
		name string
		b    checkers.Bitboard
	}{
		{"red", pos.Red},
		{"red kings", pos.RedKings},
		{"black", pos.Black},
		{"black kings", pos.BlackKings},
	} {
		fmt.Fprintf(w, "%-12s %s  %s\n", bb.name, bitset.FormatHex(uint64(bb.b)), bitset.FormatBinary(uint64(bb.b)))
	}

	moves := pos.LegalMoves()
	fmt.Fprintf(w, "Legal moves (%s, capture required: %v): %d\n", pos.SideToMove, pos.CaptureAvailable(), len(moves))
	for _, m := range moves {
		if m.Jump {
			fmt.Fprintf(w, "  %d x %d (captures %d)\n", m.From, m.To, m.Captured)
		} else {
			fmt.Fprintf(w, "  %d - %d\n", m.From, m.To)
		}
	}
	if winner, ok := pos.HasWon(); ok {
		fmt.Fprintln(w, "Already won by:", winner)
	}
	if dump {
		spew.Fdump(w, pos)
	}
}
