package engine

import "chessai/internal/chess"

// quiescence 只搜吃子，直到局面“安静”。没有深度上限：吃子链总会结束。
func (s *session) quiescence(pos *chess.Position, alpha, beta int) int {
	s.stats.Nodes++
	s.stats.QNodes++

	standPat := Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	alpha = max(alpha, standPat)

	for _, m := range orderCaptures(pos) {
		u := pos.MakeMove(m)
		score := -s.quiescence(pos, -beta, -alpha)
		pos.UnmakeMove(u)

		if score >= beta {
			return beta
		}
		alpha = max(alpha, score)
	}
	return alpha
}
