package mcts

import (
	"math"
	"sort"

	"github.com/notnil/chess"
	"gonum.org/v1/gonum/floats"
)

// pair is a tuple of move and score
type pair struct {
	Move  *chess.Move
	Score float64
}

// byScore is a sortable list of pairs It sorts the list with best score fist
type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

// softmax normalizes scores in place into a probability distribution keyed
// like the input. The maximum is subtracted before exponentiating.
//
// An empty map has no distribution; softmax panics on one.
func softmax(scores map[string]float64) map[string]float64 {
	if len(scores) == 0 {
		panic("softmax of an empty score map")
	}
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = scores[k]
	}
	floats.AddConst(-floats.Max(vals), vals)
	for i := range vals {
		vals[i] = math.Exp(vals[i])
	}
	floats.Scale(1/floats.Sum(vals), vals)

	retVal := make(map[string]float64, len(keys))
	for i, k := range keys {
		retVal[k] = vals[i]
	}
	return retVal
}

// blend ranks moves by their blended prior. Moves keep their legal-move order
// on equal scores.
func blend(moves []*chess.Move, prior, ucb map[string]float64, priorOnly bool, weight float64) []pair {
	retVal := make([]pair, 0, len(moves))
	for _, m := range moves {
		k := m.String()
		score := prior[k]
		if !priorOnly {
			score = weight*prior[k] + (1-weight)*ucb[k]
		}
		retVal = append(retVal, pair{Move: m, Score: score})
	}
	sort.Stable(byScore(retVal))
	return retVal
}
