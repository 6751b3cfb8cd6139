package chess

// PseudoMoves 返回 sq 上棋子的伪合法目标格（不考虑自己王被将军，也不含王车易位）
func (p *Position) PseudoMoves(sq int) (quiet, caps []int) {
	pc := p.Board.Squares[sq]
	if pc == 0 {
		return nil, nil
	}
	switch pc.Kind() {
	case Pawn:
		genPawnMoves(p, sq, &quiet, &caps)
	case Knight:
		genStepMoves(p, sq, knightJumps[:], &quiet, &caps)
	case Bishop:
		genSlideMoves(p, sq, bishopDirs[:], &quiet, &caps)
	case Rook:
		genSlideMoves(p, sq, rookDirs[:], &quiet, &caps)
	case Queen:
		genSlideMoves(p, sq, queenDirs[:], &quiet, &caps)
	case King:
		genStepMoves(p, sq, queenDirs[:], &quiet, &caps)
	}
	return quiet, caps
}

// LegalMoves 在伪合法基础上过滤掉送将的走法，并把王车易位目标追加到 quiet
func (p *Position) LegalMoves(sq int) (quiet, caps []int) {
	pc := p.Board.Squares[sq]
	if pc == 0 {
		return nil, nil
	}
	side := pc.Color()
	pq, pcaps := p.PseudoMoves(sq)
	if pc.Kind() == King {
		pq = p.appendCastling(sq, side, pq)
	}

	for _, to := range pq {
		if p.leavesKingSafe(sq, to, side) {
			quiet = append(quiet, to)
		}
	}
	for _, to := range pcaps {
		if p.leavesKingSafe(sq, to, side) {
			caps = append(caps, to)
		}
	}
	return quiet, caps
}

func (p *Position) appendCastling(from int, side Color, quiet []int) []int {
	row := homeRow(side)
	if from != Square(row, 4) || p.KingMoved[side] {
		return quiet
	}
	rights := p.Castling[side]
	if !rights.KingSide && !rights.QueenSide {
		return quiet
	}
	if p.InCheck(side) {
		return quiet
	}
	enemy := side.Other()
	rook := MakePiece(side, Rook)
	sq := &p.Board.Squares

	if rights.KingSide && sq[Square(row, 7)] == rook &&
		sq[Square(row, 5)] == 0 && sq[Square(row, 6)] == 0 &&
		!p.IsAttacked(Square(row, 5), enemy) && !p.IsAttacked(Square(row, 6), enemy) {
		quiet = append(quiet, Square(row, 6))
	}
	if rights.QueenSide && sq[Square(row, 0)] == rook &&
		sq[Square(row, 3)] == 0 && sq[Square(row, 2)] == 0 && sq[Square(row, 1)] == 0 &&
		!p.IsAttacked(Square(row, 3), enemy) && !p.IsAttacked(Square(row, 2), enemy) {
		quiet = append(quiet, Square(row, 2))
	}
	return quiet
}

// 临时在棋盘上走一步看王是否安全，然后原样恢复。
// 王车易位时车的移动不会改变王所在格是否被攻击，这里不用搬车。
func (p *Position) leavesKingSafe(from, to int, side Color) bool {
	sq := &p.Board.Squares
	moved := sq[from]
	captured := sq[to]
	victimSq := NoSquare
	var victim Piece
	if moved.Kind() == Pawn && to == p.EnPassant && captured == 0 {
		victimSq = Square(RowOf(from), ColOf(to))
		victim = sq[victimSq]
		sq[victimSq] = 0
	}
	sq[to] = moved
	sq[from] = 0

	safe := !p.InCheck(side)

	sq[from] = moved
	sq[to] = captured
	if victimSq != NoSquare {
		sq[victimSq] = victim
	}
	return safe
}

// HasLegalMoves 只要找到一个合法着法就返回
func (p *Position) HasLegalMoves(side Color) bool {
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Color() != side {
			continue
		}
		quiet, caps := p.LegalMoves(sq)
		if len(quiet) > 0 || len(caps) > 0 {
			return true
		}
	}
	return false
}

// GenerateLegalMoves 生成走子方的全部合法着法，升变展开成 4 个
func (p *Position) GenerateLegalMoves() []Move {
	side := p.SideToMove
	out := make([]Move, 0, 48)
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Color() != side {
			continue
		}
		quiet, caps := p.LegalMoves(sq)
		for _, targets := range [2][]int{caps, quiet} {
			for _, to := range targets {
				if pc.Kind() == Pawn && IsPromotionSquare(side, to) {
					for _, k := range PromotionKinds {
						out = append(out, Move{From: sq, To: to, Promo: k})
					}
					continue
				}
				out = append(out, Move{From: sq, To: to})
			}
		}
	}
	return out
}

// IsCapture 判断 m 在当前局面下是否吃子（含吃过路兵）
func (p *Position) IsCapture(m Move) bool {
	if p.Board.Squares[m.To] != 0 {
		return true
	}
	return m.To == p.EnPassant && p.Board.Squares[m.From].Kind() == Pawn
}
