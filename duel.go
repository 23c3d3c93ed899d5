// Package duel plays chess games between move selection agents: a depth
// limited alpha-beta searcher, an MCTS whose selection is steered by an
// analysis engine, and a random rollout sampler.
package duel

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
)

// Duel is the top level structure and the entry point of the API.
// It wraps an Arena with the agents built from a Config.
type Duel struct {
	Arena

	conf Config
}

// New builds both agents and the arena. Agents started before a failure are closed.
func New(conf Config, logger zerolog.Logger) (*Duel, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("duel: invalid config %+v", conf)
	}
	g := game.ChessGame()
	white, err := NewAgent("white:"+string(conf.White.Kind), conf.White, conf, g, logger)
	if err != nil {
		return nil, err
	}
	black, err := NewAgent("black:"+string(conf.Black.Kind), conf.Black, conf, g, logger)
	if err != nil {
		if cerr := white.Close(); cerr != nil {
			err = multierror.Append(err, cerr)
		}
		return nil, err
	}
	return &Duel{
		Arena: MakeArena(white, black, conf, logger),
		conf:  conf,
	}, nil
}

// Config returns the configuration the duel was built from.
func (d *Duel) Config() Config { return d.conf }

// Run plays games one after another and stops at the first error.
func (d *Duel) Run(games int) error {
	for i := 0; i < games; i++ {
		if _, err := d.Play(); err != nil {
			return errors.WithMessagef(err, "duel: game %d", d.GameNumber())
		}
	}
	w, b := d.Record()
	d.logger.Info().
		Int("games", games).
		Interface("white", w).
		Interface("black", b).
		Msg("duel finished")
	return nil
}

// Close releases both agents, collecting every error.
func (d *Duel) Close() error {
	var errs error
	for _, a := range []Agent{d.white, d.black} {
		if err := a.Close(); err != nil {
			errs = multierror.Append(errs, errors.WithMessagef(err, "closing %s", a.Name()))
		}
	}
	return errs
}
