package search

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	"gonum.org/v1/gonum/stat"

	"github.com/chessduel/eval"
	"github.com/chessduel/game"
)

// MateScore replaces a checkmate's infinite evaluation inside rollout
// averages, so that a single mate cannot turn the mean into ±Inf or NaN.
const MateScore = 1000

// Rollout picks a move by averaging random playouts. For every legal move it
// plays simulations games of at most maxDepth random plies and scores the
// final position for the side to move at s. The move with the best mean wins.
func Rollout(s game.State, simulations, maxDepth int, rng *rand.Rand) (*chess.Move, error) {
	moves := s.LegalMoves()
	if s.Ended() || len(moves) == 0 {
		return nil, ErrNoMoves
	}
	if simulations < 1 {
		simulations = 1
	}

	sign := float64(perspective(s.Turn()))
	var best *chess.Move
	bestMean := math32.Inf(-1)
	scores := make([]float64, simulations)
	for _, m := range moves {
		undo := s.Apply(m)
		for i := range scores {
			scores[i] = sign * float64(playout(s, maxDepth, rng))
		}
		undo()

		mean := float32(stat.Mean(scores, nil))
		if best == nil || mean > bestMean {
			best, bestMean = m, mean
		}
	}
	return best, nil
}

// playout plays up to maxDepth random moves from s, evaluates the final
// position and takes every move back.
func playout(s game.State, maxDepth int, rng *rand.Rand) float32 {
	var plies int
	for ; plies < maxDepth && !s.Ended(); plies++ {
		moves := s.LegalMoves()
		s.Push(moves[rng.Intn(len(moves))])
	}
	v := clamp(eval.Evaluate(s), -MateScore, MateScore)
	for ; plies > 0; plies-- {
		s.Pop()
	}
	return v
}
