package duel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
)

// Arena plays games between a White and a Black agent.
type Arena struct {
	game         *game.Chess
	record       *chess.Game
	white, black Agent

	// state
	currentPlayer *Agent
	whiteRecord   Record
	blackRecord   Record
	logger        zerolog.Logger

	name       string
	gameNumber int // which game is this in
	moveLimit  int
	saveDir    string
	lastPGN    string
}

// MakeArena makes an arena for the agents. Both agents are owned by the arena
// and closed by Duel.Close.
func MakeArena(white, black Agent, conf Config, logger zerolog.Logger) Arena {
	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		game:      game.ChessGame(),
		record:    chess.NewGame(),
		white:     white,
		black:     black,
		logger:    logger,
		name:      name,
		moveLimit: conf.MoveLimit,
		saveDir:   conf.SaveDir,
	}
}

// Play plays one game from the starting position and records the result.
// The game stops early when MoveLimit plies were played; that counts as a draw.
func (a *Arena) Play() (chess.Outcome, error) {
	a.currentPlayer = &a.white
	for !a.game.Ended() && (a.moveLimit == 0 || a.game.Ply() < a.moveLimit) {
		player := *a.currentPlayer
		best, err := player.Search(a.game)
		if err != nil {
			return chess.NoOutcome, errors.WithMessagef(err, "duel: %s at ply %d", player.Name(), a.game.Ply())
		}
		m, err := a.game.Decode(best.String())
		if err != nil {
			return chess.NoOutcome, errors.WithMessagef(err, "duel: %s played", player.Name())
		}
		if err := a.record.Move(m); err != nil {
			return chess.NoOutcome, errors.Wrapf(err, "duel: recording %v", m)
		}
		a.game.Push(m)
		a.logger.Debug().
			Str("agent", player.Name()).
			Int("ply", a.game.Ply()).
			Str("move", m.String()).
			Str("fen", a.game.Key()).
			Msg("move")

		for _, ag := range []Agent{a.white, a.black} {
			if err := ag.Observe(a.game, m); err != nil {
				return chess.NoOutcome, err
			}
		}
		a.switchPlayer()
	}

	outcome := a.game.Outcome()
	switch outcome {
	case chess.WhiteWon:
		a.whiteRecord.Wins++
		a.blackRecord.Loss++
	case chess.BlackWon:
		a.blackRecord.Wins++
		a.whiteRecord.Loss++
	default:
		a.whiteRecord.Draw++
		a.blackRecord.Draw++
	}
	a.logger.Info().
		Int("game", a.gameNumber).
		Str("outcome", string(outcome)).
		Str("method", a.game.Method().String()).
		Int("plies", a.game.Ply()).
		Msg("game over")

	if err := a.save(); err != nil {
		return outcome, err
	}
	a.lastPGN = a.record.String()
	a.reset()
	return outcome, nil
}

// save writes the finished game as PGN into the save directory.
func (a *Arena) save() error {
	if a.saveDir == "" {
		return nil
	}
	a.record.AddTagPair("Event", a.name)
	a.record.AddTagPair("Round", fmt.Sprint(a.gameNumber+1))
	a.record.AddTagPair("White", a.white.Name())
	a.record.AddTagPair("Black", a.black.Name())
	if err := os.MkdirAll(a.saveDir, 0o755); err != nil {
		return errors.Wrap(err, "duel: creating save dir")
	}
	path := filepath.Join(a.saveDir, fmt.Sprintf("%s-%03d.pgn", a.name, a.gameNumber))
	if err := os.WriteFile(path, []byte(a.record.String()), 0o644); err != nil {
		return errors.Wrapf(err, "duel: saving %s", path)
	}
	a.logger.Info().Str("path", path).Msg("saved game")
	return nil
}

func (a *Arena) reset() {
	a.game = game.ChessGame()
	a.record = chess.NewGame()
	a.white.Reset(a.game)
	a.black.Reset(a.game)
	a.gameNumber++
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case &a.white:
		a.currentPlayer = &a.black
	case &a.black:
		a.currentPlayer = &a.white
	}
}

// GameNumber returns the number of games played so far.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the duel
func (a *Arena) Name() string { return a.name }

// State of the game
func (a *Arena) State() game.State { return a.game }

// Record returns the results of the White and Black agents.
func (a *Arena) Record() (white, black Record) { return a.whiteRecord, a.blackRecord }

// PGN returns the record of the last finished game.
func (a *Arena) PGN() string { return a.lastPGN }
