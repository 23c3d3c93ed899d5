package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/notnil/chess"

	"github.com/chessduel/game"
)

type Status uint32

const (
	Invalid Status = iota
	Active
)

func (a Status) String() string {
	switch a {
	case Invalid:
		return "Invalid"
	case Active:
		return "Active"
	}
	return "UNKNOWN STATUS"
}

// Node is one visited position of the search tree. Children are owned
// through the tree's arena; parent is a back reference used only by
// backpropagation.
type Node struct {
	state  game.State  // snapshot, never mutated once the node exists
	move   *chess.Move // move that produced state, nil for the session root
	win    float32     // accumulated reward
	visits uint32      // visits to this node
	black  bool        // Black to move at this node; flips with every ply
	depth  int         // plies from the session root
	status Status

	id     Naughty
	parent Naughty
}

func (n *Node) Format(s fmt.State, c rune) {
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Win %v, Visits %v, Black %v, Depth %d, Status: %v}",
		n.id, n.move, n.win, n.visits, n.black, n.depth, n.status)
}

func (n *Node) ID() Naughty { return n.id }
func (n *Node) Parent() Naughty { return n.parent }
func (n *Node) State() game.State { return n.state }
func (n *Node) Move() *chess.Move { return n.move }
func (n *Node) Win() float32 { return n.win }
func (n *Node) Visits() uint32 { return n.visits }
func (n *Node) Black() bool { return n.black }
func (n *Node) Depth() int { return n.depth }
func (n *Node) IsValid() bool { return n.status != Invalid }
func (n *Node) IsNotVisited() bool { return n.visits == 0 }

// moveKey names the move leading to n, "" for the root.
func (n *Node) moveKey() string {
	if n.move == nil {
		return ""
	}
	return n.move.String()
}

// update records one simulation result. Results are +1 when White won, so
// nodes with Black to move (reached by a White move) add them and the others
// subtract them.
func (n *Node) update(reward float32) {
	if n.black {
		n.win += reward
	} else {
		n.win -= reward
	}
	n.visits++
}

// ucb1 scores n as a child of a node with parentVisits visits. Unvisited
// nodes, or children of an unvisited parent, get the exploration constant.
//
//	UCB1 = (w / n) / sqrt(2) * sqrt(ln(N) / n)
//
// The exploitation term is divided by sqrt(2) rather than the square root
// being scaled by an exploration constant.
func (n *Node) ucb1(parentVisits uint32, exploration float32) float32 {
	if n.visits == 0 || parentVisits == 0 {
		return exploration
	}
	visits := float32(n.visits)
	return (n.win / visits) / math32.Sqrt(2) * math32.Sqrt(math32.Log(float32(parentVisits))/visits)
}

func (n *Node) reset() {
	*n = Node{id: n.id, parent: nilNode}
}
