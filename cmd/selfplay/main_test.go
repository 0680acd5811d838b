package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
	"checkers/internal/logging"
)

func TestPlayGameKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 25; i++ {
		winner, plies, err := playGame(rng, 300)
		require.NoError(t, err)
		assert.LessOrEqual(t, plies, 300)
		assert.Contains(t, []checkers.Side{checkers.Red, checkers.Black, checkers.NoSide}, winner)
	}
}

func TestRunBench(t *testing.T) {
	res := runBench(rand.New(rand.NewSource(1)), 20*time.Millisecond)
	assert.Positive(t, res.Positions)
	assert.Positive(t, res.Moves)
	assert.Positive(t, res.PerSecond())
}

func TestPlayGameLogsPlyCap(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer
	require.NoError(t, logging.ConfigureWriter(&buf, "debug", false))

	winner, plies, err := playGame(rand.New(rand.NewSource(3)), 2)
	require.NoError(t, err)
	assert.Equal(t, checkers.NoSide, winner)
	assert.Equal(t, 2, plies)
	assert.Contains(t, buf.String(), "ply cap 2 reached")
}
