// Package oracle supplies per-move prior scores from an analysis engine.
package oracle

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/chessduel/eval"
	"github.com/chessduel/game"
	"github.com/chessduel/search"
)

// MateScore is the centipawn value of a forced win. It is also the score
// given to any move that ends the game.
const MateScore = 100000

// Score is an engine evaluation for the side to move.
type Score struct {
	CP   int // centipawns
	Mate int // moves to mate, negative when being mated, 0 when no mate was found
}

// Value folds a mate announcement into centipawns: a mate in n is worth
// MateScore-n and being mated in n is worth -(MateScore-n).
func (s Score) Value() int {
	switch {
	case s.Mate > 0:
		return MateScore - s.Mate
	case s.Mate < 0:
		return -MateScore - s.Mate
	}
	return s.CP
}

// Analyser is an analysis engine. Analyse scores s for the side to move,
// searching depth plies.
type Analyser interface {
	Analyse(s game.State, depth int) (Score, error)
}

// Heuristic is an Analyser backed by the static evaluator and alpha-beta.
// It stands in for an external engine when none is configured.
type Heuristic struct {
	Logger zerolog.Logger
}

func (h Heuristic) Analyse(s game.State, depth int) (Score, error) {
	var v float32
	if depth <= 0 || s.Ended() {
		v = eval.Evaluate(s)
	} else {
		se := search.NewSearcher(depth, h.Logger)
		v = se.AlphaBeta(s, depth, math32.Inf(-1), math32.Inf(1), s.Turn() == chess.White)
	}
	if s.Turn() == chess.Black {
		v = -v
	}

	switch {
	case math32.IsInf(v, 1):
		return Score{Mate: 1}, nil
	case math32.IsInf(v, -1):
		return Score{Mate: -1}, nil
	}
	return Score{CP: int(math32.Floor(v*100 + 0.5))}, nil
}
