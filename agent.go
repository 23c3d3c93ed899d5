package duel

import (
	"io"
	"math/rand"
	"time"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
	"github.com/chessduel/mcts"
	"github.com/chessduel/oracle"
	"github.com/chessduel/search"
)

// An Agent is a player. Search must leave g as it found it.
type Agent interface {
	Name() string
	Search(g game.State) (*chess.Move, error)
	// Observe is told about every move played in the game, including the agent's own.
	Observe(g game.State, m *chess.Move) error
	// Reset starts a new game at g.
	Reset(g game.State)
	io.Closer
}

// NewAgent builds the agent described by conf. Engine settings in all are
// used by mcts agents.
func NewAgent(name string, conf AgentConfig, all Config, g game.State, logger zerolog.Logger) (Agent, error) {
	logger = logger.With().Str("agent", name).Logger()
	switch conf.Kind {
	case AlphaBeta:
		return &abAgent{name: name, searcher: search.NewSearcher(conf.Depth, logger)}, nil
	case Rollout:
		seed := conf.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return &rolloutAgent{
			name:        name,
			simulations: conf.Simulations,
			maxDepth:    conf.MaxDepth,
			r:           rand.New(rand.NewSource(seed)),
		}, nil
	case MCTS:
		a := &mctsAgent{name: name}
		var analyser oracle.Analyser = oracle.Heuristic{Logger: logger}
		if all.Engine.Path != "" {
			eng, err := oracle.NewUCI(all.Engine, logger)
			if err != nil {
				return nil, errors.WithMessagef(err, "duel: agent %s", name)
			}
			a.engine = eng
			analyser = eng
		}
		a.tree = mcts.New(g, all.treeConfig(), analyser, logger)
		return a, nil
	}
	return nil, errors.Errorf("duel: unknown agent kind %q", conf.Kind)
}

// treeConfig is the MCTS configuration of an mcts agent. A configured engine
// analyses at its own depth.
func (c Config) treeConfig() mcts.Config {
	conf := c.MCTS
	if c.Engine.Path != "" {
		conf.OracleDepth = c.Engine.Depth
	}
	return conf
}

type abAgent struct {
	name     string
	searcher *search.Searcher
}

func (a *abAgent) Name() string                              { return a.name }
func (a *abAgent) Search(g game.State) (*chess.Move, error)  { return a.searcher.BestMove(g) }
func (a *abAgent) Observe(g game.State, m *chess.Move) error { return nil }
func (a *abAgent) Reset(g game.State)                        {}
func (a *abAgent) Close() error                              { return nil }

type rolloutAgent struct {
	name                  string
	simulations, maxDepth int
	r                     *rand.Rand
}

func (a *rolloutAgent) Name() string { return a.name }
func (a *rolloutAgent) Search(g game.State) (*chess.Move, error) {
	return search.Rollout(g, a.simulations, a.maxDepth, a.r)
}
func (a *rolloutAgent) Observe(g game.State, m *chess.Move) error { return nil }
func (a *rolloutAgent) Reset(g game.State)                        {}
func (a *rolloutAgent) Close() error                              { return nil }

// mctsAgent keeps its tree in step with the game: its own moves advance the
// tree inside Run, the opponent's through UpdateCurrent.
type mctsAgent struct {
	name   string
	tree   *mcts.MCTS
	engine *oracle.UCI // nil with the heuristic oracle
}

func (a *mctsAgent) Name() string { return a.name }

func (a *mctsAgent) Search(g game.State) (*chess.Move, error) {
	if !a.tree.Current().Eq(g) {
		return nil, errors.Errorf("duel: agent %s tree is at %v, game at %v", a.name, a.tree.Current().Key(), g.Key())
	}
	return a.tree.Run()
}

func (a *mctsAgent) Observe(g game.State, m *chess.Move) error {
	if a.tree.Current().Eq(g) {
		return nil
	}
	_, err := a.tree.UpdateCurrent(g, m)
	return errors.WithMessagef(err, "duel: agent %s", a.name)
}

func (a *mctsAgent) Reset(g game.State) { a.tree.Reset(g) }

func (a *mctsAgent) Close() error {
	if a.engine == nil {
		return nil
	}
	return a.engine.Close()
}

// Tree exposes the search tree of an mcts agent, nil for other kinds.
func Tree(a Agent) *mcts.MCTS {
	if m, ok := a.(*mctsAgent); ok {
		return m.tree
	}
	return nil
}
