package duel

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chessduel/mcts"
	"github.com/chessduel/oracle"
)

// Kind names a move selection strategy.
type Kind string

const (
	AlphaBeta Kind = "alphabeta"
	MCTS      Kind = "mcts"
	Rollout   Kind = "rollout"
)

func (k Kind) IsValid() bool {
	switch k {
	case AlphaBeta, MCTS, Rollout:
		return true
	}
	return false
}

// AgentConfig describes one player. Fields that do not apply to Kind are ignored.
type AgentConfig struct {
	Kind        Kind  `json:"kind" yaml:"kind"`
	Depth       int   `json:"depth" yaml:"depth"`               // alphabeta search depth
	Simulations int   `json:"simulations" yaml:"simulations"`   // rollout playouts per move
	MaxDepth    int   `json:"max_depth" yaml:"max_depth"`       // rollout playout length
	Seed        int64 `json:"seed" yaml:"seed"`                 // rollout random source, 0 seeds from the clock
}

func (c AgentConfig) IsValid() bool {
	switch c.Kind {
	case AlphaBeta:
		return c.Depth > 0
	case Rollout:
		return c.Simulations > 0 && c.MaxDepth >= 0
	case MCTS:
		return true
	}
	return false
}

// Config for a duel between two agents.
type Config struct {
	Name      string        `json:"name" yaml:"name"`
	White     AgentConfig   `json:"white" yaml:"white"`
	Black     AgentConfig   `json:"black" yaml:"black"`
	MCTS      mcts.Config   `json:"mcts" yaml:"mcts"`             // used by mcts agents
	Engine    oracle.Config `json:"engine" yaml:"engine"`         // mcts oracle, heuristic when Path is empty; Depth overrides MCTS.OracleDepth
	MoveLimit int           `json:"move_limit" yaml:"move_limit"` // plies per game, 0 for no limit
	SaveDir   string        `json:"save_dir" yaml:"save_dir"`     // PGN output directory, empty to skip saving
}

// DefaultConfig pits alpha-beta as White against MCTS as Black.
func DefaultConfig() Config {
	return Config{
		Name:      "chessduel",
		White:     AgentConfig{Kind: AlphaBeta, Depth: 3},
		Black:     AgentConfig{Kind: MCTS},
		MCTS:      mcts.DefaultConfig(),
		Engine:    oracle.DefaultConfig(),
		MoveLimit: 300,
	}
}

func (c Config) IsValid() bool {
	if !c.White.IsValid() || !c.Black.IsValid() || c.MoveLimit < 0 {
		return false
	}
	if c.White.Kind == MCTS || c.Black.Kind == MCTS {
		if c.Engine.Path != "" && !c.Engine.IsValid() {
			return false
		}
		return c.treeConfig().IsValid()
	}
	return true
}

// LoadConfig reads a YAML (or JSON) file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	bs, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrap(err, "duel: reading config")
	}
	if err := yaml.Unmarshal(bs, &conf); err != nil {
		return conf, errors.Wrapf(err, "duel: parsing %s", path)
	}
	if !conf.IsValid() {
		return conf, errors.Errorf("duel: invalid config in %s", path)
	}
	return conf, nil
}

// Record counts the results of one side.
type Record struct {
	Wins, Loss, Draw int
}
