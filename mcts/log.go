package mcts

import "github.com/rs/zerolog"

// lumberjack is the tree's trace log. It is silent unless the logger is at debug level.
type lumberjack struct {
	logger zerolog.Logger
}

func makeLumberJack(logger zerolog.Logger) lumberjack {
	return lumberjack{logger: logger.With().Str("component", "mcts").Logger()}
}

func (l *lumberjack) log(format string, attrs ...interface{}) {
	l.logger.Debug().Msgf(format, attrs...)
}

// Logger returns the tree's logger.
func (l *lumberjack) Logger() zerolog.Logger { return l.logger }
