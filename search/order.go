package search

import (
	"sort"

	"github.com/notnil/chess"

	"github.com/chessduel/eval"
	"github.com/chessduel/game"
)

// pair is a tuple of score and move
type pair struct {
	Move  *chess.Move
	Score float32
}

// byScore is a sortable list of pairs. It sorts the list with best score first
type byScore []pair

func (l byScore) Len() int           { return len(l) }
func (l byScore) Less(i, j int) bool { return l[i].Score > l[j].Score }
func (l byScore) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

func sortedMoves(moves []*chess.Move, score func(*chess.Move) float32) []*chess.Move {
	pairs := make([]pair, len(moves))
	for i, m := range moves {
		pairs[i] = pair{Move: m, Score: score(m)}
	}
	sort.Stable(byScore(pairs))

	retVal := make([]*chess.Move, len(pairs))
	for i, p := range pairs {
		retVal[i] = p.Move
	}
	return retVal
}

// OrderMoves returns moves sorted by a cheap heuristic so that alpha-beta
// cuts early. The result is a permutation of moves; ties keep their order.
func OrderMoves(s game.State, moves []*chess.Move) []*chess.Move {
	early := s.Ply() < eval.OpeningPlies
	return sortedMoves(moves, func(m *chess.Move) float32 {
		var priority float32
		if early {
			if s.IsCastling(m) {
				priority += 13
			}
			switch s.PieceAt(m.S1()).Type() {
			case chess.Knight, chess.Bishop:
				priority += 2
			}
		}
		if s.IsCapture(m) {
			priority += 3
		}
		if s.GivesCheck(m) {
			priority += 2
		}
		return priority
	})
}

// Prioritize ranks moves by capture (+3), check (+2) and whether the
// destination square is attacked by the opponent (+1).
func Prioritize(s game.State, moves []*chess.Move) []*chess.Move {
	opponent := s.Turn().Other()
	return sortedMoves(moves, func(m *chess.Move) float32 {
		var priority float32
		if s.IsCapture(m) {
			priority += 3
		}
		if s.GivesCheck(m) {
			priority += 2
		}
		if s.AttackedBy(opponent, m.S2()) {
			priority++
		}
		return priority
	})
}

// TieBreak picks one of moves, which all reached the same search value. The
// moves are compared by the static evaluation of the position they lead to,
// from the mover's point of view, and remaining ties go to Prioritize.
func TieBreak(s game.State, moves []*chess.Move) *chess.Move {
	switch len(moves) {
	case 0:
		panic("TieBreak called without moves")
	case 1:
		return moves[0]
	}

	sign := perspective(s.Turn())
	scored := make([]pair, len(moves))
	for i, m := range moves {
		undo := s.Apply(m)
		scored[i] = pair{Move: m, Score: sign * eval.Evaluate(s)}
		undo()
	}
	sort.Stable(byScore(scored))

	best := scored[0].Score
	var bestMoves []*chess.Move
	for _, p := range scored {
		if p.Score != best {
			break
		}
		bestMoves = append(bestMoves, p.Move)
	}
	if len(bestMoves) == 1 {
		return bestMoves[0]
	}
	return Prioritize(s, bestMoves)[0]
}

// perspective is +1 for White and -1 for Black.
func perspective(c chess.Color) float32 {
	if c == chess.Black {
		return -1
	}
	return 1
}
