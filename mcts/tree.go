package mcts

import (
	"math/rand"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
	"github.com/chessduel/oracle"
)

// Config is the structure to configure the MCTS
type Config struct {
	Simulations int     `json:"simulations" yaml:"simulations"`   // rollouts per Run
	MaxDepth    int     `json:"max_depth" yaml:"max_depth"`       // plies per rollout
	OracleDepth int     `json:"oracle_depth" yaml:"oracle_depth"` // engine depth for the priors
	PriorPlies  int     `json:"prior_plies" yaml:"prior_plies"`   // below this tree depth selection uses the oracle alone
	PriorWeight float32 `json:"prior_weight" yaml:"prior_weight"` // oracle share of the blended score, between 0 and 1
	Exploration float32 `json:"exploration" yaml:"exploration"`   // UCB1 value of unvisited nodes
	Seed        int64   `json:"seed" yaml:"seed"`                 // 0 seeds from the clock
}

func DefaultConfig() Config {
	return Config{
		Simulations: 15,
		MaxDepth:    25,
		OracleDepth: 2,
		PriorPlies:  5,
		PriorWeight: 0.7,
		Exploration: 100,
	}
}

func (c Config) IsValid() bool {
	return c.Simulations >= 0 &&
		c.MaxDepth >= 0 &&
		c.OracleDepth >= 0 &&
		c.PriorPlies >= 0 &&
		c.PriorWeight >= 0 && c.PriorWeight <= 1 &&
		c.Exploration > 0
}

// MCTS is a persistent search tree for one game session. Nodes live in an
// arena addressed by Naughty indices; the tree is single-threaded.
type MCTS struct {
	Config
	analyser oracle.Analyser
	oracle   *oracle.Cache
	rand     *rand.Rand

	// memory related fields
	nodes    []Node
	children [][]Naughty
	lookup   []map[string]Naughty // position key to child, per node
	freelist []Naughty

	root, current Naughty

	lumberjack
}

// New creates a tree rooted at a snapshot of g. The oracle cache built around
// a lives as long as the tree.
func New(g game.State, conf Config, a oracle.Analyser, logger zerolog.Logger) *MCTS {
	if !conf.IsValid() {
		panic("MCTSConf is not valid. Unable to proceed")
	}
	seed := conf.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := &MCTS{
		Config:   conf,
		analyser: a,
		rand:     rand.New(rand.NewSource(seed)),

		nodes:    make([]Node, 0, 1024),
		children: make([][]Naughty, 0, 1024),
		lookup:   make([]map[string]Naughty, 0, 1024),

		lumberjack: makeLumberJack(logger),
	}
	t.oracle = oracle.NewCache(a, t.logger)
	t.root = t.newNode(g.Clone(), nil, nilNode)
	t.current = t.root
	return t
}

// alloc tries to get a node from the free list. If none is found a new node is allocated into the master arena
func (t *MCTS) alloc() Naughty {
	l := len(t.freelist)
	if l == 0 {
		t.nodes = append(t.nodes, Node{id: Naughty(len(t.nodes)), parent: nilNode})
		t.children = append(t.children, nil)
		t.lookup = append(t.lookup, make(map[string]Naughty))
		return Naughty(len(t.nodes) - 1)
	}

	i := t.freelist[l-1]
	t.freelist = t.freelist[:l-1]
	return i
}

// newNode allocates a node for state. A root has parent nilNode.
func (t *MCTS) newNode(state game.State, move *chess.Move, parent Naughty) Naughty {
	n := t.alloc()
	N := &t.nodes[n]
	N.state = state
	N.move = move
	N.black = state.Turn() == chess.Black
	N.status = Active
	N.parent = parent
	N.depth = 0
	if parent.isValid() {
		N.depth = t.nodes[parent].depth + 1
		t.children[parent] = append(t.children[parent], n)
		t.lookup[parent][state.Key()] = n
	}
	return n
}

// free puts the node back into the freelist.
//
// Nothing tracks references to freed nodes, so free must only be called on
// nodes that are unreachable from the current node.
func (t *MCTS) free(n Naughty) {
	t.children[n] = t.children[n][:0]
	for k := range t.lookup[n] {
		delete(t.lookup[n], k)
	}
	t.nodes[n].reset()
	t.freelist = append(t.freelist, n)
}

// cleanup releases every subtree of oldRoot except the one rooted at newRoot.
func (t *MCTS) cleanup(oldRoot, newRoot Naughty) {
	if oldRoot == newRoot {
		return
	}
	for _, kid := range t.children[oldRoot] {
		if kid != newRoot {
			t.cleanChildren(kid)
			t.free(kid)
		}
	}
	keep := t.nodes[newRoot].state.Key()
	for k := range t.lookup[oldRoot] {
		if k != keep {
			delete(t.lookup[oldRoot], k)
		}
	}
	t.children[oldRoot] = append(t.children[oldRoot][:0], newRoot)
}

func (t *MCTS) cleanChildren(root Naughty) {
	for _, kid := range t.children[root] {
		t.cleanChildren(kid) // recursively clean children
		t.free(kid)
	}
}

// Nodes returns the number of live nodes.
func (t *MCTS) Nodes() int { return len(t.nodes) - len(t.freelist) }

// Root returns the session root.
func (t *MCTS) Root() Naughty { return t.root }

// CurrentNode returns the node of the position the next Run searches from.
func (t *MCTS) CurrentNode() Naughty { return t.current }

// Current returns the position the next Run searches from.
func (t *MCTS) Current() game.State { return t.nodes[t.current].state }

// Oracle returns the session's oracle cache.
func (t *MCTS) Oracle() *oracle.Cache { return t.oracle }

// Reset discards the tree and the oracle cache and starts a new session at g.
func (t *MCTS) Reset(g game.State) {
	t.oracle = oracle.NewCache(t.analyser, t.logger)
	t.nodes = t.nodes[:0]
	t.children = t.children[:0]
	t.lookup = t.lookup[:0]
	t.freelist = t.freelist[:0]
	t.root = t.newNode(g.Clone(), nil, nilNode)
	t.current = t.root
}

// Node returns the node at n. The pointer is invalidated by the next node allocation.
func (t *MCTS) Node(n Naughty) *Node { return &t.nodes[n] }

// Children returns the children of n in creation order.
func (t *MCTS) Children(n Naughty) []Naughty { return t.children[n] }
