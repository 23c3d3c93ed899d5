package oracle

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
)

// Scores maps a move, in UCI notation, to its score for the requesting side.
type Scores map[string]float64

type cacheKey struct {
	fen   string
	side  chess.Color
	depth int
}

// Cache memoizes per-move scores for a position. Entries are never evicted,
// so a Cache should live no longer than one search session.
type Cache struct {
	analyser Analyser
	entries  map[cacheKey]Scores
	logger   zerolog.Logger

	hits, misses uint64
}

// NewCache returns an empty cache in front of a.
func NewCache(a Analyser, logger zerolog.Logger) *Cache {
	return &Cache{
		analyser: a,
		entries:  make(map[cacheKey]Scores),
		logger:   logger,
	}
}

// Scores returns the score of every legal move in s from side's point of
// view. Moves that end the game get MateScore without consulting the engine.
// s is restored before returning.
func (c *Cache) Scores(s game.State, side chess.Color, depth int) (Scores, error) {
	k := cacheKey{fen: s.Key(), side: side, depth: depth}
	if scores, ok := c.entries[k]; ok {
		c.hits++
		return scores, nil
	}
	c.misses++

	moves := s.LegalMoves()
	scores := make(Scores, len(moves))
	for _, m := range moves {
		v, err := c.score(s, m, side, depth)
		if err != nil {
			return nil, errors.WithMessagef(err, "oracle: scoring %v in %v", m, k.fen)
		}
		scores[m.String()] = v
	}
	c.entries[k] = scores
	c.logger.Debug().
		Str("fen", k.fen).
		Int("moves", len(scores)).
		Int("entries", len(c.entries)).
		Msg("oracle miss")
	return scores, nil
}

func (c *Cache) score(s game.State, m *chess.Move, side chess.Color, depth int) (float64, error) {
	undo := s.Apply(m)
	defer undo()
	if s.Ended() {
		return MateScore, nil
	}
	sc, err := c.analyser.Analyse(s, depth)
	if err != nil {
		return 0, err
	}
	v := float64(sc.Value())
	if s.Turn() != side {
		v = -v
	}
	return v, nil
}

// Len returns the number of cached positions.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns the cache hit and miss counts.
func (c *Cache) Stats() (hits, misses uint64) { return c.hits, c.misses }
