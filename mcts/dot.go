package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// Dot renders the tree below the current node, at most maxDepth plies deep, in Graphviz DOT.
func (t *MCTS) Dot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}
	if err := t.dotNode(g, t.current, maxDepth); err != nil {
		return "", err
	}
	return g.String(), nil
}

func dotName(n Naughty) string { return fmt.Sprintf("n%d", n) }

func (t *MCTS) dotNode(g *gographviz.Graph, n Naughty, depth int) error {
	N := &t.nodes[n]
	label := fmt.Sprintf("%q", fmt.Sprintf("%s\nw=%.1f v=%d", orRoot(N.moveKey()), N.win, N.visits))
	if err := g.AddNode("mcts", dotName(n), map[string]string{"label": label}); err != nil {
		return errors.Wrapf(err, "mcts: dot node %d", n)
	}
	if depth <= 0 {
		return nil
	}
	for _, kid := range t.children[n] {
		if err := t.dotNode(g, kid, depth-1); err != nil {
			return err
		}
		if err := g.AddEdge(dotName(n), dotName(kid), true, nil); err != nil {
			return errors.Wrapf(err, "mcts: dot edge %d->%d", n, kid)
		}
	}
	return nil
}

func orRoot(move string) string {
	if move == "" {
		return "root"
	}
	return move
}
