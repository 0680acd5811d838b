package checkers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doubleJumpFEN = "1b6/2r5/8/2r5/8/8/8/6r1 b"

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGameFrom(mustDecode(t, fen))
	require.NoError(t, err)
	return g
}

func TestNewGameSnapshot(t *testing.T) {
	g := NewGame()
	s := g.Snapshot()
	assert.Equal(t, PhaseAwaitingMove, s.Phase)
	assert.Equal(t, Black, s.Turn)
	assert.Equal(t, NoSide, s.Winner)
	assert.Equal(t, NoSquare, s.ChainFrom)
	assert.False(t, s.CaptureRequired)
	assert.Len(t, s.LegalMoves, 7)
	assert.Nil(t, s.Last)
	assert.Zero(t, s.Plies)
}

func TestNewGameFromRejectsBrokenPosition(t *testing.T) {
	_, err := NewGameFrom(&Position{Red: BB(0), SideToMove: Red})
	assert.Error(t, err)
}

func TestSimpleMovePassesTurn(t *testing.T) {
	g := NewGame()
	tr, err := g.Move(17, 24)
	require.NoError(t, err)
	assert.True(t, tr.Moved)
	assert.True(t, tr.TurnOver)
	assert.Empty(t, tr.Continuations)
	assert.Equal(t, Red, g.Turn())
	assert.Equal(t, 1, g.Plies())

	_, err = g.Move(17, 26)
	assert.ErrorIs(t, err, ErrWrongOwner)
	assert.Equal(t, Red, g.Turn(), "a rejected move keeps the turn")
}

func TestMultiJump(t *testing.T) {
	g := mustGame(t, doubleJumpFEN)

	tr, err := g.Move(1, 19)
	require.NoError(t, err)
	assert.True(t, tr.Move.Jump)
	assert.False(t, tr.TurnOver)
	assert.Equal(t, []Jump{{Landing: 33, Midpoint: 26}}, tr.Continuations)
	assert.Equal(t, PhaseJumpChain, g.Phase())
	from, ok := g.ChainFrom()
	require.True(t, ok)
	assert.Equal(t, Square(19), from)
	assert.Equal(t, Black, g.Turn())

	_, err = g.Move(62, 53)
	assert.ErrorIs(t, err, ErrChainInProgress)

	s := g.Snapshot()
	assert.True(t, s.CaptureRequired)
	assert.Equal(t, []Move{JumpMove(19, 33, 26)}, s.LegalMoves)

	tr, err = g.Continue(33)
	require.NoError(t, err)
	assert.True(t, tr.TurnOver)
	assert.Equal(t, Square(26), tr.Move.Captured)
	assert.Equal(t, Red, g.Turn())
	assert.Equal(t, PhaseAwaitingMove, g.Phase())

	pos := g.Position()
	assert.Equal(t, 1, pos.Pieces(Red).Count())
	assert.True(t, pos.Black.Has(33))
	assert.Equal(t, 1, g.Plies(), "a whole chain is one ply")
}

func TestInvalidContinuationEndsChain(t *testing.T) {
	g := mustGame(t, doubleJumpFEN)
	_, err := g.Move(1, 19)
	require.NoError(t, err)

	tr, err := g.Continue(37)
	assert.ErrorIs(t, err, ErrInvalidContinuation)
	assert.True(t, tr.TurnOver)
	assert.Equal(t, Red, g.Turn())
	assert.Equal(t, PhaseAwaitingMove, g.Phase())

	pos := g.Position()
	assert.Equal(t, 2, pos.Pieces(Red).Count(), "first capture stays")
	assert.True(t, pos.Black.Has(19))
}

func TestEndChain(t *testing.T) {
	g := NewGame()
	_, err := g.Continue(33)
	assert.ErrorIs(t, err, ErrNoChain)
	_, err = g.EndChain()
	assert.ErrorIs(t, err, ErrNoChain)

	g = mustGame(t, doubleJumpFEN)
	_, err = g.Move(1, 19)
	require.NoError(t, err)
	tr, err := g.EndChain()
	require.NoError(t, err)
	assert.False(t, tr.Moved)
	assert.True(t, tr.TurnOver)
	assert.Equal(t, Red, g.Turn())
	assert.True(t, g.Position().Red.Has(26))
}

func TestChainContinuesAfterPromotion(t *testing.T) {
	g := mustGame(t, "8/8/1r6/8/8/2b5/3r1r2/8 b")

	tr, err := g.Move(42, 60)
	require.NoError(t, err)
	assert.True(t, tr.Promoted)
	assert.Equal(t, []Jump{{Landing: 46, Midpoint: 53}}, tr.Continuations)

	tr, err = g.Continue(46)
	require.NoError(t, err)
	assert.False(t, tr.Promoted)
	assert.True(t, tr.TurnOver)
	pos := g.Position()
	assert.True(t, pos.BlackKings.Has(46))
	assert.Equal(t, 1, pos.Pieces(Red).Count())
}

func TestCaptureLastPieceWins(t *testing.T) {
	g := mustGame(t, "8/8/8/8/1b6/2r5/8/8 b")

	tr, err := g.Move(33, 51)
	require.NoError(t, err)
	assert.True(t, tr.TurnOver)
	assert.Equal(t, Black, tr.Winner)
	assert.Equal(t, PhaseOver, g.Phase())
	w, over := g.Winner()
	assert.True(t, over)
	assert.Equal(t, Black, w)
	assert.Nil(t, g.LegalMoves())

	_, err = g.Move(51, 58)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.Continue(42)
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = g.EndChain()
	assert.ErrorIs(t, err, ErrGameOver)
}

// Plays seeded random games and checks the board invariants after every step.
func TestRandomPlayoutInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame()
		first := g.Position()
		prev := first.Occupancy().Count()

		for step := 0; step < 400 && g.Phase() != PhaseOver; step++ {
			moves := g.LegalMoves()
			require.NotEmpty(t, moves, "seed %d step %d: no moves but game not over", seed, step)
			m := moves[rng.Intn(len(moves))]

			var err error
			if g.Phase() == PhaseJumpChain {
				_, err = g.Continue(m.To)
			} else {
				_, err = g.Move(m.From, m.To)
			}
			require.NoError(t, err, "seed %d step %d: %+v", seed, step, m)

			pos := g.Position()
			require.NoError(t, pos.Validate())
			require.Equal(t, pos.CalculateHash(), pos.Hash, "seed %d step %d: stale hash", seed, step)
			n := pos.Occupancy().Count()
			require.LessOrEqual(t, n, prev)
			prev = n
		}
	}
}
