package chess

import (
	"strings"
	"unicode"
)

const (
	Rows       = 8
	Cols       = 8
	NumSquares = Rows * Cols

	NoSquare = -1
)

// 行 0 是第 8 横线（黑方底线），行 7 是第 1 横线
func Square(row, col int) int { return row*Cols + col }
func RowOf(sq int) int        { return sq / Cols }
func ColOf(sq int) int        { return sq % Cols }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 兵的前进方向：白向上(-1)，黑向下(+1)
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return +1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

// 升变所在的行
func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return Rows - 1
}

func homeRow(c Color) int {
	if c == White {
		return Rows - 1
	}
	return 0
}

// IsPromotionSquare 报告 side 的兵走到 sq 是否需要升变
func IsPromotionSquare(c Color, sq int) bool {
	return RowOf(sq) == promotionRow(c)
}

var letterToKind = map[rune]Kind{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

var kindToLetter = [...]rune{NoKind: '.', Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k'}

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	ch := kindToLetter[p.Kind()]
	if p.Color() == White {
		return unicode.ToUpper(ch)
	}
	return ch
}

const initialBoardString = `rnbqkbnr
pppppppp
........
........
........
........
PPPPPPPP
RNBQKBNR`

func parseInitialBoard() Board {
	var b Board
	lines := strings.Split(initialBoardString, "\n")
	if len(lines) != Rows {
		panic("initialBoardString 行数不为 8")
	}
	for r, line := range lines {
		if len(line) != Cols {
			panic("initialBoardString 列数不为 8")
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			k, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			b.Squares[Square(r, c)] = MakePiece(side, k)
		}
	}
	return b
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:      parseInitialBoard(),
		SideToMove: White, // 白先
		EnPassant:  NoSquare,
		Castling: [2]CastleRights{
			White: {KingSide: true, QueenSide: true},
			Black: {KingSide: true, QueenSide: true},
		},
		Winner: NoColor,
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// String 打印成 8 行文本，调试用
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[Square(r, c)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
