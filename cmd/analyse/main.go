package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chessduel/eval"
	"github.com/chessduel/game"
	"github.com/chessduel/mcts"
	"github.com/chessduel/oracle"
	"github.com/chessduel/search"
)

var (
	fen       = flag.String("fen", "", "position to analyse; the starting position when empty")
	fileMoves = flag.String("moves_file", "", "file containing UCI moves played from the position, whitespace separated")
	searcher  = flag.String("searcher", "alphabeta", "alphabeta, mcts or rollout")
	depth     = flag.Int("depth", 3, "alpha-beta depth, or oracle depth for mcts")
	sims      = flag.Int("simulations", 15, "playouts per move for rollout and mcts")
	maxDepth  = flag.Int("max_depth", 25, "playout length for rollout and mcts")
	engine    = flag.String("engine", "", "UCI engine executable used as the MCTS oracle")
	dot       = flag.Int("dot", 0, "print the MCTS tree to this depth in Graphviz format after searching")
	debug     = flag.Bool("debug", false, "debug logging")
)

func loadGame() (*game.Chess, error) {
	g := game.ChessGame()
	if *fen != "" {
		var err error
		if g, err = game.FromFEN(*fen); err != nil {
			return nil, err
		}
	}
	if *fileMoves == "" {
		return g, nil
	}
	f, err := os.Open(*fileMoves)
	if err != nil {
		return nil, errors.Wrap(err, "opening moves file")
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		m, err := g.Decode(strings.TrimSpace(sc.Text()))
		if err != nil {
			return nil, err
		}
		g.Push(m)
	}
	return g, errors.Wrap(sc.Err(), "reading moves file")
}

func choose(g *game.Chess) (*chess.Move, error) {
	switch *searcher {
	case "alphabeta":
		return search.NewSearcher(*depth, log.Logger).BestMove(g)
	case "rollout":
		return search.Rollout(g, *sims, *maxDepth, rand.New(rand.NewSource(time.Now().UnixNano())))
	case "mcts":
		var a oracle.Analyser = oracle.Heuristic{Logger: log.Logger}
		if *engine != "" {
			eng, err := oracle.NewUCI(oracle.Config{Path: *engine, Depth: *depth}, log.Logger)
			if err != nil {
				return nil, err
			}
			defer eng.Close()
			a = eng
		}
		conf := mcts.DefaultConfig()
		conf.Simulations = *sims
		conf.MaxDepth = *maxDepth
		conf.OracleDepth = *depth
		t := mcts.New(g, conf, a, log.Logger)
		m, err := t.Run()
		if err == nil && *dot > 0 {
			var s string
			if s, err = t.Dot(*dot); err == nil {
				fmt.Println(s)
			}
		}
		return m, err
	}
	return nil, errors.Errorf("unknown searcher %q", *searcher)
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	g, err := loadGame()
	if err != nil {
		log.Fatal().Err(err).Msg("loading position")
	}
	fmt.Println(g)
	log.Info().
		Str("fen", g.Key()).
		Str("phase", eval.PhaseOf(g).String()).
		Float32("eval", eval.Evaluate(g)).
		Msg("position")

	m, err := choose(g)
	if err != nil {
		log.Fatal().Err(err).Msg("searching")
	}
	fmt.Printf("best move: %v\n", m)
}
