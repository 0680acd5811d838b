package main

import (
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
	"checkers/internal/logging"
)

func main() {
	app := &cli.App{
		Name:  "selfplay",
		Usage: "Random checkers playouts that check the engine invariants every ply",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pprof", Usage: "serve pprof on this address, e.g. localhost:6060"},
			&cli.StringFlag{Name: "log-level", Value: "info"},
		},
		Before: func(cCtx *cli.Context) error {
			if err := logging.Configure(cCtx.String("log-level"), true); err != nil {
				return err
			}
			if addr := cCtx.String("pprof"); addr != "" {
				go func() {
					log.Info().Str("addr", addr).Msg("pprof listening")
					if err := http.ListenAndServe(addr, nil); err != nil {
						log.Warn().Err(err).Msg("pprof failed")
					}
				}()
			}
			return nil
		},
		Action: playCommand,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "Play random games and tally the results (default)",
				Flags:  playFlags(),
				Action: playCommand,
			},
			{
				Name:   "bench",
				Usage:  "Measure move generation and move application throughput",
				Flags:  benchFlags(),
				Action: benchCommand,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("selfplay")
	}
}

func playFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "games", Value: 10, Usage: "number of games to play"},
		&cli.IntFlag{Name: "max-plies", Value: 400, Usage: "call a game drawn after this many plies"},
		&cli.Int64Flag{Name: "seed", Usage: "random seed (0 uses the clock)"},
	}
}

type tally struct {
	Red, Black, Draw int
	Plies            int
}

func playCommand(cCtx *cli.Context) error {
	games := cCtx.Int("games")
	if games == 0 {
		games = 10
	}
	maxPlies := cCtx.Int("max-plies")
	if maxPlies == 0 {
		maxPlies = 400
	}
	seed := cCtx.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Info().Int64("seed", seed).Int("games", games).Msg("selfplay")

	var t tally
	start := time.Now()
	for i := 0; i < games; i++ {
		winner, plies, err := playGame(rng, maxPlies)
		if err != nil {
			return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
		}
		t.Plies += plies
		switch winner {
		case checkers.Red:
			t.Red++
		case checkers.Black:
			t.Black++
		default:
			t.Draw++
		}
		log.Debug().Int("game", i+1).Stringer("winner", winner).Int("plies", plies).Msg("finished")
	}

	w := cCtx.App.Writer
	fmt.Fprintf(w, "\n=== Final Score (%d games, %v) ===\n", games, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(w, "Red: %d\n", t.Red)
	fmt.Fprintf(w, "Black: %d\n", t.Black)
	fmt.Fprintf(w, "Draws: %d\n", t.Draw)
	fmt.Fprintf(w, "Average plies: %.1f\n", float64(t.Plies)/float64(games))
	return nil
}

// playGame plays random legal moves, jump chains included, until the game ends or maxPlies
// turns have passed. It returns NoSide for a draw.
func playGame(rng *rand.Rand, maxPlies int) (checkers.Side, int, error) {
	g := checkers.NewGame()
	for g.Plies() < maxPlies {
		if w, over := g.Winner(); over {
			return w, g.Plies(), nil
		}
		moves := g.LegalMoves()
		if len(moves) == 0 {
			return checkers.NoSide, g.Plies(), fmt.Errorf("no legal moves at ply %d but the game is not over", g.Plies())
		}
		m := moves[rng.Intn(len(moves))]

		var err error
		if g.Phase() == checkers.PhaseJumpChain {
			_, err = g.Continue(m.To)
		} else {
			_, err = g.Move(m.From, m.To)
		}
		if err != nil {
			return checkers.NoSide, g.Plies(), fmt.Errorf("legal move %d -> %d rejected: %w", m.From, m.To, err)
		}
		if err := checkInvariants(g); err != nil {
			return checkers.NoSide, g.Plies(), err
		}
	}
	if w, over := g.Winner(); over {
		return w, g.Plies(), nil
	}
	pos := g.Position()
	logging.Debugf("ply cap %d reached, scoring a draw: %s", maxPlies, pos.Encode())
	return checkers.NoSide, g.Plies(), nil
}

func checkInvariants(g *checkers.Game) error {
	pos := g.Position()
	if err := pos.Validate(); err != nil {
		return err
	}
	if h := pos.CalculateHash(); h != pos.Hash {
		return fmt.Errorf("hash drift at ply %d: have %016x, want %016x", g.Plies(), pos.Hash, h)
	}
	return nil
}
