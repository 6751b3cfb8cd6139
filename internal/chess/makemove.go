package chess

// Undo 是撤销一步所需的最小增量记录，不复制整个棋盘
type Undo struct {
	Move      Move
	Moved     Piece
	Captured  Piece
	CaptureSq int // 吃过路兵时与 Move.To 不同
	RookFrom  int // 王车易位时车的起止格，否则为 NoSquare
	RookTo    int

	SideToMove Color
	EnPassant  int
	Castling   [2]CastleRights
	KingMoved  [2]bool
	GameOver   bool
	Winner     Color
	Hash       uint64
}

type NullUndo struct {
	EnPassant int
	Hash      uint64
}

// 角上的车被吃或离开时要收回对应的易位权
func (p *Position) clearRookCorner(sq int) {
	switch sq {
	case Square(0, 0):
		p.Castling[Black].QueenSide = false
	case Square(0, 7):
		p.Castling[Black].KingSide = false
	case Square(7, 0):
		p.Castling[White].QueenSide = false
	case Square(7, 7):
		p.Castling[White].KingSide = false
	}
}

// MakeMove 原地走子：这里默认传进来的就是合法招（由上层检查）。
// 同时更新易位权、过路兵格、走子方、增量哈希和终局状态。
func (p *Position) MakeMove(m Move) Undo {
	initZobrist()
	h := p.EnsureHash()

	squares := &p.Board.Squares
	pc := squares[m.From]
	side := pc.Color()

	u := Undo{
		Move:       m,
		Moved:      pc,
		CaptureSq:  NoSquare,
		RookFrom:   NoSquare,
		RookTo:     NoSquare,
		SideToMove: p.SideToMove,
		EnPassant:  p.EnPassant,
		Castling:   p.Castling,
		KingMoved:  p.KingMoved,
		GameOver:   p.GameOver,
		Winner:     p.Winner,
		Hash:       h,
	}

	h ^= enPassantHashKey(p.EnPassant)

	if target := squares[m.To]; target != 0 {
		u.Captured = target
		u.CaptureSq = m.To
		if target.Kind() == Rook {
			p.clearRookCorner(m.To)
		}
	} else if pc.Kind() == Pawn && m.To == p.EnPassant {
		u.CaptureSq = Square(RowOf(m.From), ColOf(m.To))
		u.Captured = squares[u.CaptureSq]
		squares[u.CaptureSq] = 0
	}
	if u.Captured != 0 {
		h ^= pieceHashKey(u.Captured, u.CaptureSq)
	}

	placed := pc
	if pc.Kind() == Pawn && IsPromotionSquare(side, m.To) {
		promo := m.Promo
		if promo == NoKind {
			promo = Queen
		}
		placed = MakePiece(side, promo)
	}
	squares[m.From] = 0
	squares[m.To] = placed
	h ^= pieceHashKey(pc, m.From)
	h ^= pieceHashKey(placed, m.To)

	switch pc.Kind() {
	case King:
		if d := ColOf(m.To) - ColOf(m.From); d == 2 || d == -2 {
			row := RowOf(m.From)
			if d > 0 {
				u.RookFrom, u.RookTo = Square(row, 7), Square(row, 5)
			} else {
				u.RookFrom, u.RookTo = Square(row, 0), Square(row, 3)
			}
			rook := squares[u.RookFrom]
			squares[u.RookTo] = rook
			squares[u.RookFrom] = 0
			h ^= pieceHashKey(rook, u.RookFrom)
			h ^= pieceHashKey(rook, u.RookTo)
		}
		p.KingMoved[side] = true
		p.Castling[side] = CastleRights{}
	case Rook:
		p.clearRookCorner(m.From)
	}

	p.EnPassant = NoSquare
	if pc.Kind() == Pawn {
		if d := RowOf(m.To) - RowOf(m.From); d == 2 || d == -2 {
			p.EnPassant = Square((RowOf(m.From)+RowOf(m.To))/2, ColOf(m.From))
			h ^= enPassantHashKey(p.EnPassant)
		}
	}

	p.SideToMove = side.Other()
	h ^= zobristSide
	p.Hash = h

	p.updateGameOver()
	return u
}

// UnmakeMove 按 Undo 精确恢复 MakeMove 之前的局面
func (p *Position) UnmakeMove(u Undo) {
	squares := &p.Board.Squares
	if u.RookFrom != NoSquare {
		squares[u.RookFrom] = squares[u.RookTo]
		squares[u.RookTo] = 0
	}
	squares[u.Move.To] = 0
	squares[u.Move.From] = u.Moved
	if u.Captured != 0 {
		squares[u.CaptureSq] = u.Captured
	}

	p.SideToMove = u.SideToMove
	p.EnPassant = u.EnPassant
	p.Castling = u.Castling
	p.KingMoved = u.KingMoved
	p.GameOver = u.GameOver
	p.Winner = u.Winner
	p.Hash = u.Hash
}

// MakeNullMove 只换走子方，不动棋子（空着裁剪用）
func (p *Position) MakeNullMove() NullUndo {
	initZobrist()
	u := NullUndo{EnPassant: p.EnPassant, Hash: p.EnsureHash()}
	h := u.Hash ^ enPassantHashKey(p.EnPassant) ^ zobristSide
	p.EnPassant = NoSquare
	p.SideToMove = p.SideToMove.Other()
	p.Hash = h
	return u
}

func (p *Position) UnmakeNullMove(u NullUndo) {
	p.SideToMove = p.SideToMove.Other()
	p.EnPassant = u.EnPassant
	p.Hash = u.Hash
}

// 走子方无合法着法即终局：被将军为负，否则逼和
func (p *Position) updateGameOver() {
	side := p.SideToMove
	if p.HasLegalMoves(side) {
		p.GameOver = false
		p.Winner = NoColor
		return
	}
	p.GameOver = true
	if p.InCheck(side) {
		p.Winner = side.Other()
	} else {
		p.Winner = NoColor
	}
}

// ApplyMove 返回走完之后的新局面，原局面不变（非搜索场景用）
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if m.From < 0 || m.From >= NumSquares || m.To < 0 || m.To >= NumSquares {
		return nil, false
	}
	pc := p.Board.Squares[m.From]
	if pc == 0 || pc.Color() != p.SideToMove || p.GameOver {
		return nil, false
	}
	if !p.IsLegal(m) {
		return nil, false
	}
	np := *p
	np.MakeMove(m)
	return &np, true
}

// IsLegal 检查 m 是否在当前合法着法里；升变必须给出合法的升变子
func (p *Position) IsLegal(m Move) bool {
	for _, lm := range p.GenerateLegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}
