package duel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/chessduel/game"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	require.True(t, DefaultConfig().IsValid())

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "duel.yaml", `
name: test
white:
  kind: rollout
  simulations: 3
  max_depth: 5
black:
  kind: mcts
mcts:
  simulations: 7
  prior_weight: 0.5
engine:
  path: /usr/bin/stockfish
  depth: 10
  options:
    Threads: "2"
move_limit: 40
`)
		conf, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "test", conf.Name)
		require.Equal(t, Rollout, conf.White.Kind)
		require.Equal(t, 3, conf.White.Simulations)
		require.Equal(t, 7, conf.MCTS.Simulations)
		require.Equal(t, float32(0.5), conf.MCTS.PriorWeight)
		require.Equal(t, 25, conf.MCTS.MaxDepth) // default kept
		require.Equal(t, "2", conf.Engine.Options["Threads"])
		require.Equal(t, 40, conf.MoveLimit)

		// the engine searches at its own depth
		require.Equal(t, 10, conf.treeConfig().OracleDepth)
		conf.Engine.Path = ""
		require.Equal(t, DefaultConfig().MCTS.OracleDepth, conf.treeConfig().OracleDepth)
	})
	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "duel.json", `{"white": {"kind": "alphabeta", "depth": 2}, "black": {"kind": "alphabeta", "depth": 1}}`)
		conf, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 2, conf.White.Depth)
		require.Equal(t, AlphaBeta, conf.Black.Kind)
	})
	t.Run("invalid", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "white:\n  kind: minimax\n")
		_, err := LoadConfig(path)
		require.Error(t, err)

		path = writeFile(t, "depth.yaml", "engine:\n  path: /usr/bin/stockfish\n  depth: 0\n")
		_, err = LoadConfig(path)
		require.Error(t, err)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestNewAgent(t *testing.T) {
	g := game.ChessGame()
	conf := DefaultConfig()

	_, err := NewAgent("x", AgentConfig{Kind: "minimax"}, conf, g, zerolog.Nop())
	require.Error(t, err)

	a, err := NewAgent("m", AgentConfig{Kind: MCTS}, conf, g, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, Tree(a))
	require.NoError(t, a.Close())

	ab, err := NewAgent("ab", AgentConfig{Kind: AlphaBeta, Depth: 1}, conf, g, zerolog.Nop())
	require.NoError(t, err)
	require.Nil(t, Tree(ab))

	conf.Engine.Path = filepath.Join(t.TempDir(), "no-such-engine")
	_, err = NewAgent("m", AgentConfig{Kind: MCTS}, conf, g, zerolog.Nop())
	require.Error(t, err)
}

func smallConfig(t *testing.T) Config {
	conf := DefaultConfig()
	conf.Name = "test"
	conf.MCTS.Simulations = 2
	conf.MCTS.MaxDepth = 4
	conf.MCTS.OracleDepth = 0
	conf.MCTS.Seed = 42
	conf.MoveLimit = 8
	conf.SaveDir = t.TempDir()
	return conf
}

func TestDuelAlphaBetaAgainstMCTS(t *testing.T) {
	conf := smallConfig(t)
	conf.White = AgentConfig{Kind: AlphaBeta, Depth: 1}

	d, err := New(conf, zerolog.Nop())
	require.NoError(t, err)
	defer func() { require.NoError(t, d.Close()) }()

	require.NoError(t, d.Run(2))
	require.Equal(t, 2, d.GameNumber())

	w, b := d.Record()
	require.Equal(t, 2, w.Wins+w.Loss+w.Draw)
	require.Equal(t, w.Wins, b.Loss)
	require.Equal(t, w.Draw, b.Draw)

	require.Zero(t, d.State().Ply())
	require.True(t, Tree(d.black).Current().Eq(game.ChessGame()))

	for _, name := range []string{"test-000.pgn", "test-001.pgn"} {
		bs, err := os.ReadFile(filepath.Join(conf.SaveDir, name))
		require.NoError(t, err)
		require.Contains(t, string(bs), `[White "white:alphabeta"]`)
		require.Contains(t, string(bs), "1.")
	}
	require.Contains(t, d.PGN(), `[Black "black:mcts"]`)
}

func TestDuelMCTSAgainstRollout(t *testing.T) {
	conf := smallConfig(t)
	conf.White = AgentConfig{Kind: MCTS}
	conf.Black = AgentConfig{Kind: Rollout, Simulations: 1, MaxDepth: 2, Seed: 3}
	conf.SaveDir = ""

	d, err := New(conf, zerolog.Nop())
	require.NoError(t, err)
	defer d.Close()

	outcome, err := d.Play()
	require.NoError(t, err)
	require.NotEmpty(t, string(outcome))
	require.NotEmpty(t, d.PGN())
}

func TestNewInvalid(t *testing.T) {
	conf := DefaultConfig()
	conf.White.Depth = 0
	_, err := New(conf, zerolog.Nop())
	require.Error(t, err)
}
