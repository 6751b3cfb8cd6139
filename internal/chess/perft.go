package chess

// Perft 统计 depth 层的叶子数，用来核对走法生成
func (p *Position) Perft(depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var n int64
	for _, m := range moves {
		u := p.MakeMove(m)
		n += p.Perft(depth - 1)
		p.UnmakeMove(u)
	}
	return n
}
