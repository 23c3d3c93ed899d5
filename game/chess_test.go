package game

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, g *Chess, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := g.Decode(s)
		require.NoError(t, err)
		g.Push(m)
	}
}

func TestPushPop(t *testing.T) {
	g := ChessGame()
	start := g.Key()
	require.Equal(t, 0, g.Ply())
	require.Len(t, g.LegalMoves(), 20)

	play(t, g, "e2e4", "e7e5")
	require.Equal(t, 2, g.Ply())
	require.Equal(t, chess.White, g.Turn())
	require.Equal(t, "e7e5", g.LastMove().String())

	g.Pop()
	g.Pop()
	require.Equal(t, start, g.Key())
	require.Nil(t, g.LastMove())
	require.Panics(t, g.Pop)
}

func TestApplyUndo(t *testing.T) {
	g := ChessGame()
	start := g.Key()
	for _, m := range g.LegalMoves() {
		func() {
			undo := g.Apply(m)
			defer undo()
			require.NotEqual(t, start, g.Key())
		}()
		require.Equal(t, start, g.Key())
	}
}

func TestMovesAndStart(t *testing.T) {
	g, err := FromFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	start := g.Key()
	require.Empty(t, g.Moves())

	play(t, g, "a1a7", "e8d8", "a7a1")
	moves := g.Moves()
	require.Len(t, moves, 3)
	require.Equal(t, "a1a7", moves[0].String())
	require.Equal(t, "a7a1", moves[2].String())
	require.Equal(t, start, g.Start().String())

	g.Pop()
	require.Len(t, g.Moves(), 2)
}

func TestCloneIsIndependent(t *testing.T) {
	g := ChessGame()
	c := g.Clone()
	play(t, g, "d2d4")
	require.False(t, g.Eq(c))
	require.Equal(t, 0, c.Ply())

	c2 := c.(*Chess)
	play(t, c2, "d2d4")
	require.True(t, g.Eq(c2))
}

func TestAttacks(t *testing.T) {
	g := ChessGame()
	require.Equal(t, 3, g.Attacks(chess.B1)) // a3, c3, d2
	require.Equal(t, 1, g.Attacks(chess.A2))
	require.Equal(t, 2, g.Attacks(chess.E2))
	require.True(t, g.AttackedBy(chess.White, chess.F3))
	require.False(t, g.AttackedBy(chess.White, chess.E4))
	require.True(t, g.AttackedBy(chess.Black, chess.F6))
	require.Equal(t, 0, g.Attacks(chess.E4))

	// rook on a1 is boxed in by its own pieces but still "attacks" them
	require.Equal(t, 2, g.Attacks(chess.A1))
}

func TestCheckAndMate(t *testing.T) {
	g := ChessGame()
	play(t, g, "f2f3", "e7e5", "g2g4")
	require.False(t, g.Ended())
	m, err := g.Decode("d8h4")
	require.NoError(t, err)
	require.True(t, g.GivesCheck(m))
	g.Push(m)

	require.True(t, g.InCheck())
	require.True(t, g.IsCheckmate())
	require.True(t, g.Ended())
	require.Equal(t, chess.BlackWon, g.Outcome())
	require.Equal(t, chess.Checkmate, g.Method())
}

func TestStalemate(t *testing.T) {
	g, err := FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	require.True(t, g.IsStalemate())
	require.True(t, g.Ended())
	require.Equal(t, chess.Draw, g.Outcome())
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen   string
		ended bool
	}{
		{"8/8/4k3/8/8/4K3/8/8 w - - 0 1", true},
		{"8/8/4k3/8/8/4KN2/8/8 w - - 0 1", true},
		{"8/8/4k3/8/8/4KB2/8/8 w - - 0 1", true},
		{"8/8/4k3/8/8/4KR2/8/8 w - - 0 1", false},
		{"8/8/4k3/8/8/3NKN2/8/8 w - - 0 1", false},
	}
	for _, c := range cases {
		t.Run(c.fen, func(t *testing.T) {
			g, err := FromFEN(c.fen)
			require.NoError(t, err)
			require.Equal(t, c.ended, g.Ended())
		})
	}
}

func TestSeventyFiveMoveRule(t *testing.T) {
	g, err := FromFEN("8/8/4k3/8/8/4KR2/8/8 w - - 150 120")
	require.NoError(t, err)
	require.Equal(t, chess.SeventyFiveMoveRule, g.Method())
	require.Equal(t, chess.Draw, g.Outcome())
}

func TestFivefoldRepetition(t *testing.T) {
	g := ChessGame()
	for i := 0; i < 4; i++ {
		require.False(t, g.Ended())
		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	require.Equal(t, chess.FivefoldRepetition, g.Method())
}

func TestCastlingQueries(t *testing.T) {
	g, err := FromFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	require.True(t, g.CanCastle(chess.White, KingSide))
	require.True(t, g.CanCastle(chess.Black, QueenSide))

	m, err := g.Decode("e1g1")
	require.NoError(t, err)
	require.True(t, g.IsCastling(m))
	g.Push(m)
	require.Equal(t, chess.G1, g.King(chess.White))
	require.False(t, g.CanCastle(chess.White, QueenSide))
}

func TestCaptureTag(t *testing.T) {
	g := ChessGame()
	play(t, g, "e2e4", "d7d5")
	m, err := g.Decode("e4d5")
	require.NoError(t, err)
	require.True(t, g.IsCapture(m))

	quiet, err := g.Decode("a2a3")
	require.NoError(t, err)
	require.False(t, g.IsCapture(quiet))
}

func TestDecodeIllegal(t *testing.T) {
	g := ChessGame()
	_, err := g.Decode("e2e5")
	require.Error(t, err)
}
