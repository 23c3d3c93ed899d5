package search

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/eval"
	"github.com/chessduel/game"
)

// ErrNoMoves is returned when asked to search a finished game or a position without legal moves.
var ErrNoMoves = errors.New("search: no legal moves")

// Stats counts the work done by a Searcher.
type Stats struct {
	Nodes   uint64 // #nodes visited
	Leaves  uint64 // #nodes scored by the static evaluator
	Cutoffs uint64 // #nodes that cut on beta <= alpha
}

// Searcher runs depth-limited alpha-beta searches.
type Searcher struct {
	Depth int

	stats  Stats
	logger zerolog.Logger
}

// NewSearcher returns a Searcher for the given depth.
func NewSearcher(depth int, logger zerolog.Logger) *Searcher {
	return &Searcher{Depth: depth, logger: logger}
}

// Stats returns the counters of the last BestMove call.
func (se *Searcher) Stats() Stats { return se.stats }

// AlphaBeta returns the minimax value of s to depth plies, White maximizing.
// Moves are tried in OrderMoves order and the loop stops as soon as
// beta <= alpha. s is restored before returning.
func (se *Searcher) AlphaBeta(s game.State, depth int, alpha, beta float32, maximizing bool) float32 {
	se.stats.Nodes++
	if depth == 0 || s.Ended() {
		se.stats.Leaves++
		return eval.Evaluate(s)
	}

	moves := OrderMoves(s, s.LegalMoves())
	if maximizing {
		maxEval := math32.Inf(-1)
		for _, m := range moves {
			v := se.child(s, m, depth-1, alpha, beta, false)
			maxEval = math32.Max(maxEval, v)
			alpha = math32.Max(alpha, v)
			if beta <= alpha {
				se.stats.Cutoffs++
				break
			}
		}
		return maxEval
	}

	minEval := math32.Inf(1)
	for _, m := range moves {
		v := se.child(s, m, depth-1, alpha, beta, true)
		minEval = math32.Min(minEval, v)
		beta = math32.Min(beta, v)
		if beta <= alpha {
			se.stats.Cutoffs++
			break
		}
	}
	return minEval
}

// child searches the position after m and always takes m back.
func (se *Searcher) child(s game.State, m *chess.Move, depth int, alpha, beta float32, maximizing bool) float32 {
	undo := s.Apply(m)
	defer undo()
	return se.AlphaBeta(s, depth, alpha, beta, maximizing)
}

// BestMove returns the root move with the best alpha-beta value for the
// side to move. Equal values are resolved by TieBreak.
func (se *Searcher) BestMove(s game.State) (*chess.Move, error) {
	if se.Depth < 1 {
		return nil, errors.Errorf("search: depth must be positive, got %d", se.Depth)
	}
	moves := s.LegalMoves()
	if s.Ended() || len(moves) == 0 {
		return nil, ErrNoMoves
	}
	se.stats = Stats{}

	// White to move: every reply is a minimizing node, as seen from White.
	mover := s.Turn()
	sign := perspective(mover)
	childMaximizing := mover == chess.Black

	best := math32.Inf(-1)
	var bestMoves []*chess.Move
	for _, m := range moves {
		v := sign * se.child(s, m, se.Depth-1, math32.Inf(-1), math32.Inf(1), childMaximizing)
		switch {
		case v > best || bestMoves == nil:
			best = v
			bestMoves = []*chess.Move{m}
		case v == best:
			bestMoves = append(bestMoves, m)
		}
	}

	retVal := bestMoves[0]
	if len(bestMoves) > 1 {
		retVal = TieBreak(s, bestMoves)
	}
	se.logger.Debug().
		Str("move", retVal.String()).
		Float32("value", best).
		Int("ties", len(bestMoves)).
		Uint64("nodes", se.stats.Nodes).
		Uint64("cutoffs", se.stats.Cutoffs).
		Msg("alpha-beta")
	return retVal, nil
}

// BestMove is a convenience wrapper for a one-off search without logging.
func BestMove(s game.State, depth int) (*chess.Move, error) {
	return NewSearcher(depth, zerolog.Nop()).BestMove(s)
}

// Minimax is the full-width search AlphaBeta must agree with.
func Minimax(s game.State, depth int, maximizing bool) float32 {
	if depth == 0 || s.Ended() {
		return eval.Evaluate(s)
	}
	best := math32.Inf(1)
	if maximizing {
		best = math32.Inf(-1)
	}
	for _, m := range s.LegalMoves() {
		undo := s.Apply(m)
		v := Minimax(s, depth-1, !maximizing)
		undo()
		if maximizing {
			best = math32.Max(best, v)
		} else {
			best = math32.Min(best, v)
		}
	}
	return best
}
