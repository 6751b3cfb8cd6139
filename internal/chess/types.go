package chess

type Color int8

const (
	NoColor Color = -1
	White   Color = 0
	Black   Color = 1
)

func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Kind 的数值同时就是 MVV-LVA 里的序数（兵=1 ... 王=6）
type Kind int8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

type Piece int8 // 0=空；>0 白；<0 黑；abs=Kind

func MakePiece(c Color, k Kind) Piece {
	if k == NoKind || c == NoColor {
		return 0
	}
	if c == White {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

func (p Piece) Color() Color {
	if p == 0 {
		return NoColor
	}
	if p > 0 {
		return White
	}
	return Black
}

type Board struct {
	Squares [NumSquares]Piece
}

type CastleRights struct {
	KingSide  bool
	QueenSide bool
}

// Position 由搜索直接原地修改，MakeMove / UnmakeMove 必须成对出现
type Position struct {
	Board      Board
	SideToMove Color
	EnPassant  int // 吃过路兵目标格，-1 表示没有
	Castling   [2]CastleRights
	KingMoved  [2]bool
	GameOver   bool
	Winner     Color // 对局结束时 NoColor 表示和棋
	Hash       uint64
}

// IsDraw 仅在 GameOver 时有意义
func (p *Position) IsDraw() bool {
	return p.GameOver && p.Winner == NoColor
}

func (p *Position) Piece(sq int) Piece {
	return p.Board.Squares[sq]
}
