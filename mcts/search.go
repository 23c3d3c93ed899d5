package mcts

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/chessduel/game"
)

/*
Here lies the majority of the MCTS search code, while node.go and tree.go handles the data structure stuff.

A call to Run advances the tree by exactly one real ply:
	SELECT once at the current node, EXPAND, then SIMULATE and BACKPROPAGATE
	Simulations times from the selected child, and finally move current down.

Selection is not repeated per simulation. Every rollout of one Run starts at
the same child, which differs from textbook MCTS where each iteration selects
from the root again.
*/

// ErrGameOver is returned when a search is asked for at a finished position.
var ErrGameOver = errors.New("mcts: game is over")

// Expand creates a child of n for every legal move whose resulting position
// is not already a child.
func (t *MCTS) Expand(n Naughty) {
	state := t.nodes[n].state
	for _, m := range state.LegalMoves() {
		t.findOrAdd(n, m)
	}
}

// findChild returns the child of n holding the position after m, or nilNode.
func (t *MCTS) findChild(n Naughty, m *chess.Move) Naughty {
	if kid, ok := t.lookup[n][keyAfter(t.nodes[n].state, m)]; ok {
		return kid
	}
	return nilNode
}

// findOrAdd returns the child of n holding the position after m, creating it
// when it does not exist yet.
func (t *MCTS) findOrAdd(n Naughty, m *chess.Move) Naughty {
	if kid := t.findChild(n, m); kid != nilNode {
		return kid
	}
	next := t.nodes[n].state.Clone()
	next.Push(m)
	return t.newNode(next, m, n)
}

// keyAfter returns the key of s after m. s is restored before returning.
func keyAfter(s game.State, m *chess.Move) string {
	undo := s.Apply(m)
	defer undo()
	return s.Key()
}

// Select picks the move to play from the current node.
//
// Every legal move gets an oracle prior and a UCB1 score; both are softmaxed.
// Within the first PriorPlies plies of the session the prior alone ranks the
// moves, deeper the ranking is PriorWeight*prior + (1-PriorWeight)*ucb. One
// of the two best moves is returned at random.
func (t *MCTS) Select() (*chess.Move, error) {
	cur := t.current
	state := t.nodes[cur].state
	if state.Ended() {
		return nil, ErrGameOver
	}
	t.Expand(cur)

	moves := state.LegalMoves()
	prior, err := t.oracle.Scores(state, state.Turn(), t.OracleDepth)
	if err != nil {
		return nil, errors.WithMessage(err, "mcts: select")
	}

	parentVisits := t.nodes[cur].visits
	ucb := make(map[string]float64, len(moves))
	for _, m := range moves {
		kid := t.findChild(cur, m)
		if kid == nilNode {
			panic("Cannot return nil")
		}
		ucb[m.String()] = float64(t.nodes[kid].ucb1(parentVisits, t.Exploration))
	}

	priorOnly := t.nodes[cur].depth < t.PriorPlies
	ranked := blend(moves, softmax(map[string]float64(prior)), softmax(ucb), priorOnly, float64(t.PriorWeight))
	top := 2
	if len(ranked) < top {
		top = len(ranked)
	}
	pick := ranked[t.rand.Intn(top)]
	t.log("Select at depth %d: %v (score %v) among %d moves, prior only %v",
		t.nodes[cur].depth, pick.Move, pick.Score, len(ranked), priorOnly)
	return pick.Move, nil
}

// Simulate plays uniformly random moves from n until the game ends or
// MaxDepth plies were played. Every position reached becomes part of the
// tree. It returns the last node and the result: +1 if White won, -1 if Black
// won, 0 otherwise.
func (t *MCTS) Simulate(n Naughty) (Naughty, float32) {
	for ply := 0; ply < t.MaxDepth; ply++ {
		state := t.nodes[n].state
		if state.Ended() {
			break
		}
		moves := state.LegalMoves()
		n = t.findOrAdd(n, moves[t.rand.Intn(len(moves))])
	}
	return n, reward(t.nodes[n].state)
}

func reward(s game.State) float32 {
	switch s.Outcome() {
	case chess.WhiteWon:
		return 1
	case chess.BlackWon:
		return -1
	}
	return 0
}

// Backpropagate records reward on n and its ancestors, stopping before the
// current node.
func (t *MCTS) Backpropagate(n Naughty, reward float32) {
	for n != t.current {
		if !n.isValid() {
			panic("backpropagation escaped the current subtree")
		}
		t.nodes[n].update(reward)
		n = t.nodes[n].parent
	}
}

// Run selects a move from the current node, simulates from its child and
// makes that child the current node.
func (t *MCTS) Run() (*chess.Move, error) {
	m, err := t.Select()
	if err != nil {
		return nil, err
	}
	child := t.findOrAdd(t.current, m)
	if !t.nodes[child].state.Ended() {
		for i := 0; i < t.Simulations; i++ {
			terminal, r := t.Simulate(child)
			t.Backpropagate(terminal, r)
		}
	}
	t.log("Run: %v visits %d win %v nodes %d", m, t.nodes[child].visits, t.nodes[child].win, t.Nodes())
	t.advance(child)
	return m, nil
}

// UpdateCurrent moves the current node to the position s, reached by playing
// m at the current node. A node created for s is expanded straight away.
func (t *MCTS) UpdateCurrent(s game.State, m *chess.Move) (Naughty, error) {
	cur := t.current
	if t.nodes[cur].state.Ended() {
		return nilNode, ErrGameOver
	}
	if kid, ok := t.lookup[cur][s.Key()]; ok && t.nodes[kid].state.Eq(s) {
		t.advance(kid)
		return kid, nil
	}

	legal := false
	for _, lm := range t.nodes[cur].state.LegalMoves() {
		if lm.S1() == m.S1() && lm.S2() == m.S2() && lm.Promo() == m.Promo() {
			m, legal = lm, true
			break
		}
	}
	if !legal {
		return nilNode, errors.Errorf("mcts: %v is not legal in %v", m, t.nodes[cur].state.Key())
	}
	next := t.nodes[cur].state.Clone()
	next.Push(m)
	if !next.Eq(s) {
		return nilNode, errors.Errorf("mcts: %v does not lead from %v to %v", m, t.nodes[cur].state.Key(), s.Key())
	}
	kid := t.newNode(next, m, cur)
	t.Expand(kid)
	t.advance(kid)
	return kid, nil
}

// advance makes kid, a child of the current node, the current node and frees its siblings.
func (t *MCTS) advance(kid Naughty) {
	old := t.current
	t.current = kid
	t.cleanup(old, kid)
}
