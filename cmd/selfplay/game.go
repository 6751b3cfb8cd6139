package main

import (
	"context"
	"fmt"

	nchess "github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessai/internal/chess"
	"chessai/internal/engine"
	"chessai/internal/match"
)

type gameResult struct {
	ID     string
	Result string
	Method string
	Plies  int
	PGN    string
}

// playGame 下一整盘。每盘有自己的 Engine 和 Position，
// 每一步同时交给 notnil/chess 复核合法性并记录 PGN。
func playGame(ctx context.Context, mgr *match.Manager, white, black PlayerConfig, maxPlies int) (gameResult, error) {
	state := mgr.NewGame()
	engines := [2]*engine.Engine{
		chess.White: engine.NewEngine(white.Cfg),
		chess.Black: engine.NewEngine(black.Cfg),
	}
	ref := nchess.NewGame(nchess.UseNotation(nchess.UCINotation{}))

	res := gameResult{ID: state.ID, Result: "1/2-1/2", Method: "move-limit"}
	for ply := 0; ply < maxPlies; ply++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		pos := state.Pos
		if pos.GameOver {
			break
		}
		if ref.Outcome() != nchess.NoOutcome {
			// 五次重复或 75 步规则，本引擎不判这些和棋
			res.Method = ref.Method().String()
			break
		}

		sr := engines[pos.SideToMove].Search(pos)
		if !sr.Found {
			return res, fmt.Errorf("ply %d: no move in a live position %s", ply, pos.Encode())
		}
		log.Debug().
			Str("id", state.ID).
			Int("ply", ply).
			Str("move", sr.BestMove.UCI()).
			Int("score", sr.Score).
			Int("depth", sr.Depth).
			Msg("engine-move")

		if err := ref.MoveStr(sr.BestMove.UCI()); err != nil {
			return res, fmt.Errorf("ply %d: reference rejected %s in %s: %w", ply, sr.BestMove.UCI(), pos.Encode(), err)
		}
		if _, err := mgr.Play(state.ID, sr.BestMove); err != nil {
			return res, fmt.Errorf("ply %d: %w", ply, err)
		}
		res.Plies++
	}

	if state.Pos.GameOver {
		res.Result = state.Result()
		res.Method = "checkmate"
		if state.Pos.IsDraw() {
			res.Method = "stalemate"
		}
		if ref.Outcome().String() != res.Result {
			return res, fmt.Errorf("result %s disagrees with reference %s", res.Result, ref.Outcome())
		}
	}
	res.PGN = ref.String()
	return res, nil
}
