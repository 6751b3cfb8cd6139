package chess

import (
	"errors"
	"fmt"
	"strings"
)

type Move struct {
	From  int  `json:"from"`
	To    int  `json:"to"`
	Promo Kind `json:"promo,omitempty"`
}

// NoMove 表示“没有着法”。a8->a8 不可能是真实着法
var NoMove = Move{}

func (m Move) IsNull() bool { return m.From == m.To }

// SameSquares 只比较起止格，忽略升变
func (m Move) SameSquares(o Move) bool {
	return m.From == o.From && m.To == o.To
}

var ErrInvalidMove = errors.New("invalid move")

func SquareName(sq int) string {
	if sq < 0 || sq >= NumSquares {
		return "-"
	}
	return string([]byte{byte('a' + ColOf(sq)), byte('1' + (Rows - 1 - RowOf(sq)))})
}

func ParseSquare(s string) (int, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, fmt.Errorf("square %q: %w", s, ErrInvalidMove)
	}
	col := int(s[0] - 'a')
	row := Rows - 1 - int(s[1]-'1')
	return Square(row, col), nil
}

// UCI 长代数记法，例如 e2e4 / e7e8q
func (m Move) UCI() string {
	if m.IsNull() {
		return "0000"
	}
	s := SquareName(m.From) + SquareName(m.To)
	if m.Promo != NoKind {
		s += string(kindToLetter[m.Promo])
	}
	return s
}

func (m Move) String() string { return m.UCI() }

func ParseUCI(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("uci %q: %w", s, ErrInvalidMove)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		k, ok := letterToKind[rune(s[4])]
		if !ok || k == Pawn || k == King {
			return NoMove, fmt.Errorf("uci %q promotion: %w", s, ErrInvalidMove)
		}
		m.Promo = k
	}
	return m, nil
}

// 搜索里对升变的枚举顺序
var PromotionKinds = [...]Kind{Queen, Rook, Bishop, Knight}
