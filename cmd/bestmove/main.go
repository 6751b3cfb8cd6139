package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessai/internal/chess"
	"chessai/internal/engine"
)

func main() {
	defaults := engine.DefaultSearchConfig()
	fen := flag.String("fen", "", "position in FEN (default: initial position)")
	depth := flag.Int("depth", defaults.MaxDepth, "max search depth")
	budget := flag.Duration("time", defaults.TimeLimit, "time budget")
	verbose := flag.Bool("v", false, "log every completed depth")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	pos := chess.NewInitialPosition()
	if *fen != "" {
		p, err := chess.DecodePosition(*fen)
		if err != nil {
			log.Error().Err(err).Msg("bad-fen")
			os.Exit(2)
		}
		pos = p
	}
	if pos.GameOver {
		log.Info().Str("winner", pos.Winner.String()).Msg("game-already-over")
		os.Exit(1)
	}

	e := engine.NewEngine(engine.SearchConfig{MaxDepth: *depth, TimeLimit: *budget})
	res := e.Search(pos)
	if !res.Found {
		fmt.Println("bestmove (none)")
		os.Exit(1)
	}

	st := res.Stats
	fmt.Printf("bestmove %s score %d depth %d nodes %d qnodes %d time %v\n",
		res.BestMove.UCI(), res.Score, res.Depth, st.Nodes, st.QNodes, res.TimeUsed)
}
