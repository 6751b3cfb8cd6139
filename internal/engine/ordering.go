package engine

import (
	"sort"

	"github.com/samber/lo"

	"chessai/internal/chess"
)

const killerBonus = 9000

// 三个桶的先后是硬约束：吃子 > 杀手 > 安静着法，分数只在桶内排序
type moveBucket uint8

const (
	bucketCapture moveBucket = iota
	bucketKiller
	bucketQuiet
)

type scoredMove struct {
	move   chess.Move
	score  int
	bucket moveBucket
}

// MVV-LVA：用 1..6 的序数而不是厘兵
func captureScore(pos *chess.Position, from, to int) int {
	victim := pos.Piece(to).Kind()
	if victim == chess.NoKind {
		victim = chess.Pawn // 吃过路兵
	}
	attacker := pos.Piece(from).Kind()
	return int(victim)*10 - int(attacker)
}

// 安静着法的位置分增量，王固定用中局表
func pstDelta(k chess.Kind, side chess.Color, from, to int) int {
	return pstValue(k, side, to, false) - pstValue(k, side, from, false)
}

func sortBucket(ms []scoredMove) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].score > ms[j].score
	})
}

func (s *session) isKiller(ply int, m chess.Move) bool {
	km := &s.killers[ply]
	return (!km[0].IsNull() && km[0].SameSquares(m)) || (!km[1].IsNull() && km[1].SameSquares(m))
}

// scoreMoves 生成走子方全部合法着法并分桶打分，返回已经排好序的列表
func (s *session) scoreMoves(pos *chess.Position, ply int) []scoredMove {
	side := pos.SideToMove
	var captures, killers, quiets []scoredMove

	for from := 0; from < chess.NumSquares; from++ {
		pc := pos.Piece(from)
		if pc == 0 || pc.Color() != side {
			continue
		}
		kind := pc.Kind()
		quiet, caps := pos.LegalMoves(from)

		for _, to := range caps {
			score := captureScore(pos, from, to)
			if kind == chess.Pawn && chess.IsPromotionSquare(side, to) {
				for _, promo := range chess.PromotionKinds {
					captures = append(captures, scoredMove{
						move:   chess.Move{From: from, To: to, Promo: promo},
						score:  score + pieceValue[promo],
						bucket: bucketCapture,
					})
				}
				continue
			}
			captures = append(captures, scoredMove{
				move:   chess.Move{From: from, To: to},
				score:  score,
				bucket: bucketCapture,
			})
		}

		for _, to := range quiet {
			// 不吃子的升变也放在安静桶里，按升变子的价值排
			if kind == chess.Pawn && chess.IsPromotionSquare(side, to) {
				for _, promo := range chess.PromotionKinds {
					quiets = append(quiets, scoredMove{
						move:   chess.Move{From: from, To: to, Promo: promo},
						score:  pieceValue[promo],
						bucket: bucketQuiet,
					})
				}
				continue
			}
			m := chess.Move{From: from, To: to}
			delta := pstDelta(kind, side, from, to)
			if s.isKiller(ply, m) {
				killers = append(killers, scoredMove{move: m, score: killerBonus + delta, bucket: bucketKiller})
			} else {
				quiets = append(quiets, scoredMove{move: m, score: s.history[side][to] + delta, bucket: bucketQuiet})
			}
		}
	}

	sortBucket(captures)
	sortBucket(killers)
	sortBucket(quiets)
	return lo.Flatten([][]scoredMove{captures, killers, quiets})
}

func (s *session) orderMoves(pos *chess.Position, ply int) []chess.Move {
	return lo.Map(s.scoreMoves(pos, ply), func(sm scoredMove, _ int) chess.Move {
		return sm.move
	})
}

// orderCaptures 静态搜索用：只要吃子，吃子升变固定升后
func orderCaptures(pos *chess.Position) []chess.Move {
	side := pos.SideToMove
	var captures []scoredMove
	for from := 0; from < chess.NumSquares; from++ {
		pc := pos.Piece(from)
		if pc == 0 || pc.Color() != side {
			continue
		}
		_, caps := pos.LegalMoves(from)
		for _, to := range caps {
			m := chess.Move{From: from, To: to}
			score := captureScore(pos, from, to)
			if pc.Kind() == chess.Pawn && chess.IsPromotionSquare(side, to) {
				m.Promo = chess.Queen
				score += pieceValue[chess.Queen]
			}
			captures = append(captures, scoredMove{move: m, score: score, bucket: bucketCapture})
		}
	}
	sortBucket(captures)
	return lo.Map(captures, func(sm scoredMove, _ int) chess.Move {
		return sm.move
	})
}

// storeKiller 两个槽位的“最近且不同”缓存：新着法进 0 号槽，原 0 号挪到 1 号
func (s *session) storeKiller(ply int, m chess.Move) {
	km := &s.killers[ply]
	if km[0] == m {
		return
	}
	km[1] = km[0]
	km[0] = m
}

func (s *session) addHistory(side chess.Color, to, depth int) {
	s.history[side][to] += depth * depth
}
