package engine

import (
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"chessai/internal/chess"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 999_999

	// 被将死的分数是 -(mateBase - depth)
	mateBase = 20_000
	// 根节点分数超过这个值说明已经找到强制杀，不必再加深
	mateThreshold = 15_000

	aspirationWindow   = 50
	aspirationMinDepth = 4

	nullMoveR        = 2
	nullMoveMinDepth = 3

	// 每 2048 个节点看一次表
	timeCheckMask = 2047
)

// lmrTable[d][m] = round(0.5 + ln(d)·ln(m)/2)，d ∈ [1,8]，m ∈ [1,32]
var lmrTable [9][33]int

func init() {
	for d := 1; d < len(lmrTable); d++ {
		for m := 1; m < len(lmrTable[d]); m++ {
			lmrTable[d][m] = int(0.5 + math.Log(float64(d))*math.Log(float64(m))/2)
		}
	}
}

func lmrReduction(depth, moveIndex int) int {
	r := lmrTable[min(depth, 8)][min(moveIndex, 32)]
	return clamp(r, 0, depth-2)
}

func nullMoveAllowed(inCheck bool, depth, material int) bool {
	return !inCheck && depth >= nullMoveMinDepth && material > endgameMaterial
}

// 搜索结果
type SearchResult struct {
	BestMove chess.Move    // 最佳着法
	Found    bool          // false 表示走子方没有任何合法着法
	Score    int           // 走子方视角的分数
	Depth    int           // 最后一个产出着法的迭代深度，0 表示用的是兜底着法
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
	Stats    Stats
}

// Search 迭代加深 + 渴望窗口。pos 在搜索过程中被原地修改，返回前恢复原样。
func (e *Engine) Search(pos *chess.Position) SearchResult {
	s := newSession(e.cfg)

	bestMove := chess.NoMove
	bestScore := 0
	bestDepth := 0
	prevScore := 0

	for depth := 1; depth <= s.maxDepth; depth++ {
		if s.timeUp() {
			break
		}

		move, score := s.aspirationSearch(pos, depth, prevScore)
		prevScore = score
		if !move.IsNull() {
			bestMove = move
			bestScore = score
			bestDepth = depth
		}

		log.Debug().
			Int("depth", depth).
			Int("score", score).
			Str("move", move.UCI()).
			Int64("nodes", s.stats.Nodes).
			Dur("elapsed", s.elapsed()).
			Msg("depth-complete")

		if abs(score) >= mateThreshold {
			break
		}
	}

	found := !bestMove.IsNull()
	if !found {
		// 一层都没搜完（比如时间预算为 0）：扫描棋盘给一个合法着法
		bestMove, found = anyLegalMove(pos)
	}

	res := SearchResult{
		BestMove: bestMove,
		Found:    found,
		Score:    bestScore,
		Depth:    bestDepth,
		Nodes:    s.stats.Nodes,
		TimeUsed: s.elapsed(),
		Stats:    s.stats,
	}
	log.Info().
		Str("move", res.BestMove.UCI()).
		Bool("found", res.Found).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Nodes).
		Int("tt", s.tt.Len()).
		Dur("elapsed", res.TimeUsed).
		Msg("search-done")
	return res
}

// aspirationSearch 从第 4 层起以上一层分数为中心开 ±50 窗口，
// 落在窗口外就同一深度用全窗口重搜
func (s *session) aspirationSearch(pos *chess.Position, depth, prevScore int) (chess.Move, int) {
	if depth < aspirationMinDepth {
		return s.rootSearch(pos, depth, -scoreInf, scoreInf)
	}
	alpha, beta := prevScore-aspirationWindow, prevScore+aspirationWindow
	move, score := s.rootSearch(pos, depth, alpha, beta)
	if score <= alpha || score >= beta {
		s.stats.AspirationResearches++
		move, score = s.rootSearch(pos, depth, -scoreInf, scoreInf)
	}
	return move, score
}

// 根节点：超时就放弃剩下的着法，返回目前最好的
func (s *session) rootSearch(pos *chess.Position, depth, alpha, beta int) (chess.Move, int) {
	moves := s.orderMoves(pos, 0)

	bestMove := chess.NoMove
	bestScore := -scoreInf
	localAlpha := alpha

	for _, m := range moves {
		if s.timeUp() {
			break
		}
		u := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1, -beta, -localAlpha)
		pos.UnmakeMove(u)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		localAlpha = max(localAlpha, score)
		if localAlpha >= beta {
			break
		}
	}
	return bestMove, bestScore
}

// negamax：fail-soft alpha-beta + 空着裁剪 + LMR + 杀手/历史
func (s *session) negamax(pos *chess.Position, depth, alpha, beta int) int {
	s.stats.Nodes++

	// 超时：返回 0 当作均势，一路退出
	if s.stats.Nodes&timeCheckMask == 0 && s.timeUp() {
		return 0
	}

	key := pos.Hash
	if score, ok := s.tt.Probe(key, depth, alpha, beta); ok {
		s.stats.TTHits++
		return score
	}

	if pos.GameOver {
		if pos.IsDraw() {
			return 0
		}
		return -(mateBase - depth)
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta)
	}

	side := pos.SideToMove
	inCheck := pos.InCheck(side)

	if nullMoveAllowed(inCheck, depth, materialCount(pos)) {
		s.stats.NullTries++
		nu := pos.MakeNullMove()
		nullScore := -s.negamax(pos, depth-1-nullMoveR, -beta, -beta+1)
		pos.UnmakeNullMove(nu)
		if nullScore >= beta {
			s.stats.NullCutoffs++
			return beta
		}
	}

	ply := s.plyFor(depth)
	moves := s.orderMoves(pos, ply)
	if len(moves) == 0 {
		if inCheck {
			return -(mateBase - depth)
		}
		return 0
	}

	origAlpha := alpha
	bestScore := -scoreInf

	for i, m := range moves {
		capture := pos.IsCapture(m)
		quiet := !capture && m.Promo == chess.NoKind

		reduction := 0
		if s.reduce && !inCheck && quiet && depth >= 3 && i >= 3 {
			reduction = lmrReduction(depth, i)
		}

		u := pos.MakeMove(m)
		score := -s.negamax(pos, depth-1-reduction, -beta, -alpha)
		if reduction > 0 && score > alpha {
			// 降层搜索意外地好：全深度验证
			s.stats.LMRResearches++
			score = -s.negamax(pos, depth-1, -beta, -alpha)
		}
		pos.UnmakeMove(u)

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			if quiet {
				s.storeKiller(ply, m)
			}
		}
		if alpha >= beta {
			if quiet {
				s.addHistory(side, m.To, depth)
			}
			break
		}
	}

	s.tt.Store(key, bestScore, depth, classifyBound(bestScore, origAlpha, beta))
	return bestScore
}

// anyLegalMove 按棋盘顺序找第一个合法着法
func anyLegalMove(pos *chess.Position) (chess.Move, bool) {
	side := pos.SideToMove
	for from := 0; from < chess.NumSquares; from++ {
		pc := pos.Piece(from)
		if pc == 0 || pc.Color() != side {
			continue
		}
		quiet, caps := pos.LegalMoves(from)
		for _, targets := range [2][]int{quiet, caps} {
			if len(targets) == 0 {
				continue
			}
			m := chess.Move{From: from, To: targets[0]}
			if pc.Kind() == chess.Pawn && chess.IsPromotionSquare(side, m.To) {
				m.Promo = chess.Queen
			}
			return m, true
		}
	}
	return chess.NoMove, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
