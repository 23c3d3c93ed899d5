package oracle

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/chessduel/game"
)

// countingAnalyser scores every position at a fixed value for the side to move.
type countingAnalyser struct {
	score Score
	calls int
	err   error
}

func (a *countingAnalyser) Analyse(s game.State, depth int) (Score, error) {
	a.calls++
	return a.score, a.err
}

func play(t *testing.T, g *game.Chess, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := g.Decode(s)
		require.NoError(t, err)
		g.Push(m)
	}
}

func TestScoreValue(t *testing.T) {
	require.Equal(t, 35, Score{CP: 35}.Value())
	require.Equal(t, MateScore-3, Score{Mate: 3}.Value())
	require.Equal(t, -MateScore+2, Score{Mate: -2}.Value())
}

func TestCacheMemoizes(t *testing.T) {
	a := &countingAnalyser{score: Score{CP: 10}}
	c := NewCache(a, zerolog.Nop())
	g := game.ChessGame()

	scores, err := c.Scores(g, chess.White, 2)
	require.NoError(t, err)
	require.Len(t, scores, 20)
	require.Equal(t, 20, a.calls)

	// after White's move Black is to move, so +10 for Black is -10 for White
	require.Equal(t, -10.0, scores["e2e4"])

	again, err := c.Scores(g, chess.White, 2)
	require.NoError(t, err)
	require.Equal(t, scores, again)
	require.Equal(t, 20, a.calls)

	// side and depth are part of the key
	black, err := c.Scores(g, chess.Black, 2)
	require.NoError(t, err)
	require.Equal(t, 10.0, black["e2e4"])
	_, err = c.Scores(g, chess.White, 3)
	require.NoError(t, err)
	require.Equal(t, 60, a.calls)
	require.Equal(t, 3, c.Len())

	hits, misses := c.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(3), misses)
}

func TestCacheGameEndingMoves(t *testing.T) {
	a := &countingAnalyser{score: Score{CP: -50}}
	c := NewCache(a, zerolog.Nop())
	g := game.ChessGame()
	play(t, g, "f2f3", "e7e5", "g2g4")
	key := g.Key()

	scores, err := c.Scores(g, chess.Black, 1)
	require.NoError(t, err)
	require.Equal(t, float64(MateScore), scores["d8h4"])
	require.Equal(t, len(scores)-1, a.calls)
	require.Equal(t, key, g.Key())
}

func TestCachePropagatesErrors(t *testing.T) {
	a := &countingAnalyser{err: errors.New("engine crashed")}
	c := NewCache(a, zerolog.Nop())
	g := game.ChessGame()
	key := g.Key()

	_, err := c.Scores(g, chess.White, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "engine crashed")
	require.Equal(t, key, g.Key())
	require.Equal(t, 0, c.Len())
}

func TestHeuristic(t *testing.T) {
	h := Heuristic{Logger: zerolog.Nop()}

	t.Run("symmetric start", func(t *testing.T) {
		sc, err := h.Analyse(game.ChessGame(), 0)
		require.NoError(t, err)
		require.Equal(t, Score{CP: 200}, sc) // castling rights bonus only
	})
	t.Run("side to move perspective", func(t *testing.T) {
		g, err := game.FromFEN("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
		require.NoError(t, err)
		sc, err := h.Analyse(g, 0)
		require.NoError(t, err)
		require.Equal(t, -500, sc.Value())
	})
	t.Run("mate is found by searching", func(t *testing.T) {
		g := game.ChessGame()
		play(t, g, "f2f3", "e7e5", "g2g4")
		sc, err := h.Analyse(g, 1)
		require.NoError(t, err)
		require.Equal(t, 1, sc.Mate)
	})
}

func TestPositionCmd(t *testing.T) {
	g := game.ChessGame()
	start := g.Position()
	play(t, g, "e2e4", "e7e5", "g1f3")

	cmd := positionCmd(g)
	require.Equal(t, start.String(), cmd.Position.String())
	require.Len(t, cmd.Moves, 3)
	require.Equal(t, "g1f3", cmd.Moves[2].String())
	require.Contains(t, cmd.String(), "e2e4 e7e5 g1f3")
}
