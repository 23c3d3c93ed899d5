package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	duel "github.com/chessduel"
)

var (
	confFile = flag.String("config", "", "YAML or JSON duel configuration; defaults are used when empty")
	games    = flag.Int("games", 1, "number of games to play")
	white    = flag.String("white", "", "override the White agent kind: alphabeta, mcts or rollout")
	black    = flag.String("black", "", "override the Black agent kind: alphabeta, mcts or rollout")
	engine   = flag.String("engine", "", "UCI engine executable used as the MCTS oracle")
	saveDir  = flag.String("save_dir", "", "directory receiving one PGN file per game")
	debug    = flag.Bool("debug", false, "log every move and the MCTS trace")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf := duel.DefaultConfig()
	if *confFile != "" {
		var err error
		if conf, err = duel.LoadConfig(*confFile); err != nil {
			log.Fatal().Err(err).Msg("loading config")
		}
	}
	if *white != "" {
		conf.White.Kind = duel.Kind(*white)
	}
	if *black != "" {
		conf.Black.Kind = duel.Kind(*black)
	}
	if *engine != "" {
		conf.Engine.Path = *engine
	}
	if *saveDir != "" {
		conf.SaveDir = *saveDir
	}

	d, err := duel.New(conf, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("setting up the duel")
	}
	err = d.Run(*games)
	if cerr := d.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("closing agents")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("duel failed")
	}
}
