package chess

import "sync"

const zobristKinds = 7 // Kind 范围 [1..6]，0 保留空位不用

var (
	zobristOnce sync.Once

	zobristPieces    [2][zobristKinds][NumSquares]uint64
	zobristSide      uint64
	zobristEnPassant [NumSquares]uint64
)

// splitMix64 固定种子，哈希在不同进程间保持一致
type splitMix64 uint64

func (s *splitMix64) next() uint64 {
	*s += 0x9E3779B97F4A7C15
	z := uint64(*s)
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func initZobrist() {
	zobristOnce.Do(func() {
		rng := splitMix64(0x2545F4914F6CDD1D)
		for side := range zobristPieces {
			for k := Pawn; k <= King; k++ {
				for sq := range zobristPieces[side][k] {
					zobristPieces[side][k][sq] = rng.next()
				}
			}
		}
		zobristSide = rng.next()
		for sq := range zobristEnPassant {
			zobristEnPassant[sq] = rng.next()
		}
	})
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == 0 || sq < 0 || sq >= NumSquares {
		return 0
	}
	return zobristPieces[pc.Color()][pc.Kind()][sq]
}

func enPassantHashKey(sq int) uint64 {
	if sq < 0 || sq >= NumSquares {
		return 0
	}
	return zobristEnPassant[sq]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希：棋子 + 走子方 + 过路兵格。
// 易位权不参与。
func (p *Position) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for sq := 0; sq < NumSquares; sq++ {
		h ^= pieceHashKey(p.Board.Squares[sq], sq)
	}
	if p.SideToMove == Black {
		h ^= zobristSide
	}
	h ^= enPassantHashKey(p.EnPassant)
	return h
}

// EnsureHash 确保 Position.Hash 已初始化；返回当前哈希值。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
