package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"

	"checkers/internal/checkers"
)

func benchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{Name: "duration", Value: 2 * time.Second, Usage: "how long to run"},
		&cli.Int64Flag{Name: "seed", Value: 1},
	}
}

type benchResult struct {
	Positions int64
	Moves     int64
	Elapsed   time.Duration
}

func (r benchResult) PerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Positions) / r.Elapsed.Seconds()
}

// runBench walks random games for d, generating every legal move of each position and
// applying one of them through TryMove.
func runBench(rng *rand.Rand, d time.Duration) benchResult {
	var res benchResult
	start := time.Now()
	deadline := start.Add(d)
	pos := checkers.NewInitialPosition()

	for time.Now().Before(deadline) {
		moves := pos.LegalMoves()
		res.Positions++
		res.Moves += int64(len(moves))
		if len(moves) == 0 {
			pos = checkers.NewInitialPosition()
			continue
		}
		m := moves[rng.Intn(len(moves))]
		if _, err := pos.TryMove(m.From, m.To); err != nil {
			pos = checkers.NewInitialPosition()
			continue
		}
		pos.EndTurn()
	}
	res.Elapsed = time.Since(start)
	return res
}

func benchCommand(cCtx *cli.Context) error {
	res := runBench(rand.New(rand.NewSource(cCtx.Int64("seed"))), cCtx.Duration("duration"))
	w := cCtx.App.Writer
	fmt.Fprintf(w, "positions: %d, moves generated: %d, time: %v\n", res.Positions, res.Moves, res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "positions/s: %.0f\n", res.PerSecond())
	return nil
}
