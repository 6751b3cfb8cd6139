package engine

import (
	"chessai/internal/chess"
)

// ======= 基础子力估值（厘兵） =======

var pieceValue = [...]int{
	chess.NoKind: 0,
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   20000,
}

const (
	// 非王子力总和低于这个值算残局：换王表，同时关闭空着裁剪
	endgameMaterial = 1500
	mobilityWeight  = 5
)

// 位置表都是白方视角，下标 0 是 a8，黑方用 sq^56 上下翻转
var (
	pstPawn = [chess.NumSquares]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	pstKnight = [chess.NumSquares]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	pstBishop = [chess.NumSquares]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	pstRook = [chess.NumSquares]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	}
	pstQueen = [chess.NumSquares]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	pstKingMid = [chess.NumSquares]int{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	}
	pstKingEnd = [chess.NumSquares]int{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}
)

// 中局用的表；王在排序时总是用中局表
var pstMid = [...]*[chess.NumSquares]int{
	chess.Pawn:   &pstPawn,
	chess.Knight: &pstKnight,
	chess.Bishop: &pstBishop,
	chess.Rook:   &pstRook,
	chess.Queen:  &pstQueen,
	chess.King:   &pstKingMid,
}

// pstValue 返回 (kind, side) 的子在 sq 上的位置分（对该子一方的加分）
func pstValue(k chess.Kind, side chess.Color, sq int, endgame bool) int {
	if side == chess.Black {
		sq ^= 56
	}
	if k == chess.King && endgame {
		return pstKingEnd[sq]
	}
	return pstMid[k][sq]
}

// materialCount 非王子力总和（双方合计）
func materialCount(pos *chess.Position) int {
	total := 0
	for _, pc := range pos.Board.Squares {
		if pc == 0 || pc.Kind() == chess.King {
			continue
		}
		total += pieceValue[pc.Kind()]
	}
	return total
}

// mobility 统计 side 所有棋子的伪合法目标格数量。
// 故意不过滤送将，这个近似是和位置表一起调出来的。
func mobility(pos *chess.Position, side chess.Color) int {
	count := 0
	for sq, pc := range pos.Board.Squares {
		if pc == 0 || pc.Color() != side {
			continue
		}
		quiet, caps := pos.PseudoMoves(sq)
		count += len(quiet) + len(caps)
	}
	return count
}

// Evaluate 从走子方视角评估：正数表示走子方好
func Evaluate(pos *chess.Position) int {
	endgame := materialCount(pos) < endgameMaterial

	var total [2]int
	for sq, pc := range pos.Board.Squares {
		if pc == 0 {
			continue
		}
		k, side := pc.Kind(), pc.Color()
		total[side] += pieceValue[k] + pstValue(k, side, sq, endgame)
	}
	total[chess.White] += mobility(pos, chess.White) * mobilityWeight
	total[chess.Black] += mobility(pos, chess.Black) * mobilityWeight

	raw := total[chess.White] - total[chess.Black]
	if pos.SideToMove == chess.Black {
		return -raw
	}
	return raw
}
