package chess

// IsAttacked 判断 sq 这个格子是否被 by 这一方攻击。
// 反向查找：从 sq 出发按各棋子的走法找有没有对方对应的子。
func (p *Position) IsAttacked(sq int, by Color) bool {
	row, col := RowOf(sq), ColOf(sq)
	squares := &p.Board.Squares

	// 兵：by 方的兵从 (row - dir, col±1) 斜吃到 sq
	pr := row - pawnDir(by)
	pawn := MakePiece(by, Pawn)
	for _, dc := range [2]int{-1, +1} {
		if onBoard(pr, col+dc) && squares[Square(pr, col+dc)] == pawn {
			return true
		}
	}

	knight := MakePiece(by, Knight)
	for _, d := range knightJumps {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) && squares[Square(r, c)] == knight {
			return true
		}
	}

	king := MakePiece(by, King)
	for _, d := range queenDirs {
		r, c := row+d[0], col+d[1]
		if onBoard(r, c) && squares[Square(r, c)] == king {
			return true
		}
	}

	queen := MakePiece(by, Queen)
	if p.slideHits(row, col, rookDirs[:], MakePiece(by, Rook), queen) {
		return true
	}
	return p.slideHits(row, col, bishopDirs[:], MakePiece(by, Bishop), queen)
}

func (p *Position) slideHits(row, col int, dirs [][2]int, a, b Piece) bool {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			pc := p.Board.Squares[Square(r, c)]
			if pc != 0 {
				if pc == a || pc == b {
					return true
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return false
}

func (p *Position) KingSquare(side Color) int {
	king := MakePiece(side, King)
	for sq, pc := range p.Board.Squares {
		if pc == king {
			return sq
		}
	}
	return NoSquare
}

// InCheck 判断 side 这一方的王是否被将军
func (p *Position) InCheck(side Color) bool {
	kingSq := p.KingSquare(side)
	if kingSq == NoSquare {
		return false
	}
	return p.IsAttacked(kingSq, side.Other())
}
