package eval

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"

	"github.com/chessduel/game"
)

func fromFEN(t *testing.T, fen string) *game.Chess {
	t.Helper()
	g, err := game.FromFEN(fen)
	require.NoError(t, err)
	return g
}

func play(t *testing.T, g *game.Chess, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := g.Decode(s)
		require.NoError(t, err)
		g.Push(m)
	}
}

func TestMaterialStartIsZero(t *testing.T) {
	require.Equal(t, float32(0), Material(game.ChessGame()))
}

func TestMaterialCounts(t *testing.T) {
	// white is up a queen for a rook
	g := fromFEN(t, "4k2r/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.Equal(t, float32(4), Material(g))
	require.Equal(t, PieceValue(chess.Queen)-PieceValue(chess.Rook), Material(g))
	require.Zero(t, PieceValue(chess.King))
}

func TestMaterialMate(t *testing.T) {
	g := game.ChessGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	require.True(t, math32.IsInf(Material(g), -1))
	require.True(t, math32.IsInf(Evaluate(g), -1))
	require.True(t, IsMate(Evaluate(g)))

	g = game.ChessGame()
	play(t, g, "e2e4", "f7f6", "d2d4", "g7g5", "d1h5")
	require.True(t, math32.IsInf(Evaluate(g), 1))
}

func TestMaterialStalemate(t *testing.T) {
	g := fromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.Equal(t, float32(0), Material(g))
}

func TestEvaluateStartIsCastlingBonus(t *testing.T) {
	// symmetric position: only the global castling bonus survives
	require.InDelta(t, 2.0, Evaluate(game.ChessGame()), 1e-6)
}

func TestPhaseOf(t *testing.T) {
	g := game.ChessGame()
	require.Equal(t, Opening, PhaseOf(g))
	for i := 0; i < 5; i++ {
		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	require.Equal(t, 20, g.Ply())
	require.Equal(t, Middlegame, PhaseOf(g))
}

func TestCentralControl(t *testing.T) {
	g := game.ChessGame()
	require.Equal(t, float32(0), CentralControl(g, chess.White))
	play(t, g, "e2e4")
	// e4 occupied, d5 attacked by the e4 pawn
	require.InDelta(t, 0.6, CentralControl(g, chess.White), 1e-6)
}

func TestDevelopment(t *testing.T) {
	g := game.ChessGame()
	require.Equal(t, float32(0), Development(g, chess.White))
	play(t, g, "g1f3", "b8c6")
	require.InDelta(t, 0.3, Development(g, chess.White), 1e-6)
	require.InDelta(t, 0.3, Development(g, chess.Black), 1e-6)
}

func TestEarlyQueenPenalty(t *testing.T) {
	g := game.ChessGame()
	require.Equal(t, float32(0), EarlyQueenPenalty(g, chess.White))

	play(t, g, "e2e4", "e7e5", "d1h5")
	require.InDelta(t, -0.35, EarlyQueenPenalty(g, chess.White), 1e-6)
	require.Equal(t, float32(0), EarlyQueenPenalty(g, chess.Black))
	play(t, g, "b8c6")
	require.InDelta(t, -0.7*2.0/6, EarlyQueenPenalty(g, chess.White), 1e-6)
	play(t, g, "h5f3", "g8f6")
	require.Equal(t, float32(0), EarlyQueenPenalty(g, chess.White)) // ply 6 and later

	g = game.ChessGame()
	play(t, g, "e2e4", "e7e5", "g1f3", "a7a6", "f1c4", "a6a5", "d1e2")
	require.InDelta(t, -0.2, EarlyQueenPenalty(g, chess.White), 1e-6)
}

func TestKingSafety(t *testing.T) {
	t.Run("not castled", func(t *testing.T) {
		require.Equal(t, float32(0), KingSafety(game.ChessGame(), chess.White))
	})
	t.Run("castled with shield", func(t *testing.T) {
		g := fromFEN(t, "4k3/8/8/8/8/8/5PPP/6K1 w - - 0 1")
		require.True(t, HasCastled(g, chess.White))
		require.Equal(t, float32(0), KingSafety(g, chess.White))
	})
	t.Run("castled without shield", func(t *testing.T) {
		g := fromFEN(t, "4k3/8/8/8/8/5PP1/7P/6K1 w - - 0 1")
		require.Equal(t, float32(-0.5), KingSafety(g, chess.White))
	})
	t.Run("black castled queenside", func(t *testing.T) {
		g := fromFEN(t, "2k5/8/8/8/8/8/8/4K3 w - - 0 1")
		require.True(t, HasCastled(g, chess.Black))
		require.False(t, HasCastled(g, chess.White))
		require.Equal(t, float32(-0.5), KingSafety(g, chess.Black))
	})
}

func TestCastling(t *testing.T) {
	require.Equal(t, float32(2), Castling(game.ChessGame()))
	g := fromFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w Kq - 0 1")
	require.Equal(t, float32(1), Castling(g))
}

func TestEndgameTerms(t *testing.T) {
	g := fromFEN(t, "8/8/4k3/8/8/3PK3/8/8 w - - 0 1")
	require.InDelta(t, 0.2, PawnAdvancement(g, chess.White), 1e-6)
	require.InDelta(t, 0.8, KingActivity(g, chess.White), 1e-6)
	require.InDelta(t, 0.8, KingActivity(g, chess.Black), 1e-6)
}

func TestActivity(t *testing.T) {
	g := game.ChessGame()
	// knights reach 3 squares each, bishops, rooks and queen 2 + 2 + 2 + 5
	require.InDelta(t, 0.1*(3+3+2+2+2+2+5), Activity(g, chess.White), 1e-5)
	require.InDelta(t, Activity(g, chess.White), Activity(g, chess.Black), 1e-6)
}
