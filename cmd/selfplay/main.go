package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chessai/internal/engine"
	"chessai/internal/match"
)

type PlayerConfig struct {
	Name string
	Cfg  engine.SearchConfig
}

type tally struct {
	mu    sync.Mutex
	wins  map[string]int
	draws int
}

func (t *tally) add(winner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if winner == "" {
		t.draws++
		return
	}
	t.wins[winner]++
}

func main() {
	totalGames := flag.Int("games", 4, "number of games to play")
	parallel := flag.Int("parallel", 2, "games played at the same time")
	depthA := flag.Int("depth-a", 3, "search depth of player A")
	depthB := flag.Int("depth-b", 2, "search depth of player B")
	budget := flag.Duration("time", time.Second, "time budget per move")
	maxPlies := flag.Int("maxplies", 200, "adjudicate a draw after this many plies")
	pgn := flag.Bool("pgn", false, "print the PGN of every game")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	playerA := PlayerConfig{
		Name: fmt.Sprintf("A (depth %d)", *depthA),
		Cfg:  engine.SearchConfig{MaxDepth: *depthA, TimeLimit: *budget},
	}
	playerB := PlayerConfig{
		Name: fmt.Sprintf("B (depth %d)", *depthB),
		Cfg:  engine.SearchConfig{MaxDepth: *depthB, TimeLimit: *budget},
	}

	mgr := match.NewManager()
	score := &tally{wins: make(map[string]int)}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*parallel, 1))
	for i := 0; i < *totalGames; i++ {
		i := i
		// 轮流执白
		white, black := playerA, playerB
		if i%2 == 1 {
			white, black = playerB, playerA
		}
		g.Go(func() error {
			res, err := playGame(ctx, mgr, white, black, *maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			log.Info().
				Int("game", i+1).
				Str("id", res.ID).
				Str("white", white.Name).
				Str("black", black.Name).
				Str("result", res.Result).
				Str("method", res.Method).
				Int("plies", res.Plies).
				Msg("game-finished")
			if *pgn {
				fmt.Printf("[Game \"%s\"]\n%s\n\n", res.ID, res.PGN)
			}
			switch res.Result {
			case "1-0":
				score.add(white.Name)
			case "0-1":
				score.add(black.Name)
			default:
				score.add("")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("selfplay-failed")
		os.Exit(1)
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", playerA.Name, score.wins[playerA.Name])
	fmt.Printf("%s: %d\n", playerB.Name, score.wins[playerB.Name])
	fmt.Printf("Draws: %d\n", score.draws)
}
