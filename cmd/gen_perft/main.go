package main

import (
	"encoding/json"
	"flag"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"chessai/internal/chess"
)

// TestCase 一个随机局面：合法着法列表和 perft 计数，给别的实现对拍用
type TestCase struct {
	FEN   string   `json:"fen"`
	Moves []string `json:"moves"`
	Depth int      `json:"depth"`
	Nodes int64    `json:"nodes"`
}

func main() {
	numGames := flag.Int("games", 10, "number of random games")
	maxPlies := flag.Int("plies", 120, "max plies per random game")
	depth := flag.Int("depth", 2, "perft depth recorded per position")
	out := flag.String("out", "perft_test_data.json", "output file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cases := make([]TestCase, 0, (*numGames)*(*maxPlies))
	for g := 0; g < *numGames; g++ {
		cases = append(cases, randomGame(*maxPlies, *depth)...)
	}

	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshal-failed")
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatal().Err(err).Str("out", *out).Msg("write-failed")
	}
	log.Info().Int("cases", len(cases)).Int("games", *numGames).Str("out", *out).Msg("generated")
}

// randomGame 从初始局面随机走子，每一步之前记录一个用例
func randomGame(maxPlies, depth int) []TestCase {
	var cases []TestCase
	pos := chess.NewInitialPosition()
	for ply := 0; ply < maxPlies && !pos.GameOver; ply++ {
		legal := pos.GenerateLegalMoves()
		if len(legal) == 0 {
			break
		}
		moves := lo.Map(legal, func(m chess.Move, _ int) string { return m.UCI() })
		slices.Sort(moves)
		cases = append(cases, TestCase{
			FEN:   pos.Encode(),
			Moves: moves,
			Depth: depth,
			Nodes: pos.Perft(depth),
		})

		// 随机选一步
		pos.MakeMove(legal[frand.Intn(len(legal))])
	}
	return cases
}
