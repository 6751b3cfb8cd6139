package chess

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
	queenDirs  = [8][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}, {-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}

	knightJumps = [8][2]int{{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}}
)

// 车/象/后：沿方向一直走，遇子停下
func genSlideMoves(p *Position, from int, dirs [][2]int, quiet, caps *[]int) {
	row, col := RowOf(from), ColOf(from)
	side := p.Board.Squares[from].Color()
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			to := Square(r, c)
			pc := p.Board.Squares[to]
			if pc == 0 {
				*quiet = append(*quiet, to)
			} else {
				if pc.Color() != side {
					*caps = append(*caps, to)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 马/王：固定偏移一步
func genStepMoves(p *Position, from int, steps [][2]int, quiet, caps *[]int) {
	row, col := RowOf(from), ColOf(from)
	side := p.Board.Squares[from].Color()
	for _, d := range steps {
		r, c := row+d[0], col+d[1]
		if !onBoard(r, c) {
			continue
		}
		to := Square(r, c)
		pc := p.Board.Squares[to]
		if pc == 0 {
			*quiet = append(*quiet, to)
		} else if pc.Color() != side {
			*caps = append(*caps, to)
		}
	}
}

// 吃过路兵时，side 的兵能使用的目标格所在行
func enPassantRow(side Color) int {
	other := side.Other()
	return pawnStartRow(other) + pawnDir(other)
}

func genPawnMoves(p *Position, from int, quiet, caps *[]int) {
	row, col := RowOf(from), ColOf(from)
	side := p.Board.Squares[from].Color()
	d := pawnDir(side)

	r := row + d
	if !onBoard(r, col) {
		return
	}
	if p.Board.Squares[Square(r, col)] == 0 {
		*quiet = append(*quiet, Square(r, col))
		if row == pawnStartRow(side) && p.Board.Squares[Square(r+d, col)] == 0 {
			*quiet = append(*quiet, Square(r+d, col))
		}
	}

	for _, dc := range [2]int{-1, +1} {
		c := col + dc
		if !onBoard(r, c) {
			continue
		}
		to := Square(r, c)
		pc := p.Board.Squares[to]
		if pc != 0 && pc.Color() != side {
			*caps = append(*caps, to)
			continue
		}
		if to == p.EnPassant && r == enPassantRow(side) {
			*caps = append(*caps, to)
		}
	}
}
