package oracle

import (
	"sort"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/chessduel/game"
)

// Config configures the external analysis engine.
type Config struct {
	Path    string            `json:"path" yaml:"path"`       // engine executable, e.g. lc0 or stockfish
	Options map[string]string `json:"options" yaml:"options"` // UCI options, e.g. WeightsFile or Threads
	Depth   int               `json:"depth" yaml:"depth"`     // search depth per analysed position
	Debug   bool              `json:"debug" yaml:"debug"`     // echo the UCI conversation
}

func DefaultConfig() Config {
	return Config{Depth: 2}
}

// IsValid reports whether an engine can be started from c.
func (c Config) IsValid() bool {
	return c.Path != "" && c.Depth > 0
}

// UCI is an Analyser talking to a UCI engine process. The process is started
// once and lives until Close.
type UCI struct {
	eng    *uci.Engine
	logger zerolog.Logger
}

// NewUCI starts the engine described by conf and performs the UCI handshake.
func NewUCI(conf Config, logger zerolog.Logger) (*UCI, error) {
	if !conf.IsValid() {
		return nil, errors.Errorf("oracle: invalid engine config %+v", conf)
	}
	var opts []func(e *uci.Engine)
	if conf.Debug {
		opts = append(opts, uci.Debug)
	}
	eng, err := uci.New(conf.Path, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "oracle: starting %q", conf.Path)
	}

	names := make([]string, 0, len(conf.Options))
	for name := range conf.Options {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := []uci.Cmd{uci.CmdUCI, uci.CmdIsReady}
	for _, name := range names {
		cmds = append(cmds, uci.CmdSetOption{Name: name, Value: conf.Options[name]})
	}
	cmds = append(cmds, uci.CmdUCINewGame, uci.CmdIsReady)
	if err := eng.Run(cmds...); err != nil {
		eng.Close()
		return nil, errors.Wrapf(err, "oracle: handshake with %q", conf.Path)
	}

	logger.Info().Str("engine", conf.Path).Interface("id", eng.ID()).Msg("engine ready")
	return &UCI{eng: eng, logger: logger}, nil
}

// history is a State that remembers how it was reached.
type history interface {
	Start() *chess.Position
	Moves() []*chess.Move
}

// positionCmd describes s to the engine. States with a history are sent as
// their start position and moves so the engine can see repetitions.
func positionCmd(s game.State) uci.CmdPosition {
	if h, ok := s.(history); ok {
		return uci.CmdPosition{Position: h.Start(), Moves: h.Moves()}
	}
	return uci.CmdPosition{Position: s.Position()}
}

func (u *UCI) Analyse(s game.State, depth int) (Score, error) {
	if err := u.eng.Run(positionCmd(s), uci.CmdGo{Depth: depth}); err != nil {
		return Score{}, errors.Wrapf(err, "oracle: analysing %v", s.Key())
	}
	info := u.eng.SearchResults().Info
	return Score{CP: info.Score.CP, Mate: info.Score.Mate}, nil
}

// Close stops the engine process.
func (u *UCI) Close() error {
	return errors.Wrap(u.eng.Close(), "oracle: closing engine")
}
