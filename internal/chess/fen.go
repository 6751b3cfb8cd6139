package chess

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Encode 输出标准 FEN；半回合计数不跟踪，固定写 "0 1"
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[Square(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castle := ""
	if p.Castling[White].KingSide {
		castle += "K"
	}
	if p.Castling[White].QueenSide {
		castle += "Q"
	}
	if p.Castling[Black].KingSide {
		castle += "k"
	}
	if p.Castling[Black].QueenSide {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)
	sb.WriteByte(' ')
	sb.WriteString(SquareName(p.EnPassant))
	sb.WriteString(" 0 1")
	return sb.String()
}

var ErrInvalidFEN = errors.New("invalid FEN")

// DecodePosition 解析 FEN。只有棋盘和走子方是必需的，易位权/过路兵格可省略
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%q: need board and side fields: %w", fen, ErrInvalidFEN)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%q: %d ranks: %w", fen, len(rows), ErrInvalidFEN)
	}
	var b Board
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%q: rank %d too long: %w", fen, r, ErrInvalidFEN)
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			k, ok := letterToKind[unicode.ToLower(ch)]
			if !ok {
				return nil, fmt.Errorf("%q: piece %q: %w", fen, ch, ErrInvalidFEN)
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = White
			}
			b.Squares[Square(r, c)] = MakePiece(side, k)
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%q: rank %d width %d: %w", fen, r, c, ErrInvalidFEN)
		}
	}

	pos := &Position{
		Board:     b,
		EnPassant: NoSquare,
		Winner:    NoColor,
	}
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%q: side %q: %w", fen, parts[1], ErrInvalidFEN)
	}

	if len(parts) > 2 && parts[2] != "-" {
		for _, ch := range parts[2] {
			switch ch {
			case 'K':
				pos.Castling[White].KingSide = true
			case 'Q':
				pos.Castling[White].QueenSide = true
			case 'k':
				pos.Castling[Black].KingSide = true
			case 'q':
				pos.Castling[Black].QueenSide = true
			default:
				return nil, fmt.Errorf("%q: castling %q: %w", fen, ch, ErrInvalidFEN)
			}
		}
	}
	if len(parts) > 3 && parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%q: en passant: %w", fen, ErrInvalidFEN)
		}
		pos.EnPassant = sq
	}

	// FEN 不记录王是否动过：王不在原位或已无易位权就当作动过
	for _, side := range [2]Color{White, Black} {
		home := Square(homeRow(side), 4)
		rights := pos.Castling[side]
		pos.KingMoved[side] = b.Squares[home] != MakePiece(side, King) ||
			(!rights.KingSide && !rights.QueenSide)
	}

	pos.Hash = pos.CalculateHash()
	pos.updateGameOver()
	return pos, nil
}

// Mirror 交换颜色并上下翻转棋盘，走子方保持不变
func (p *Position) Mirror() *Position {
	m := &Position{
		SideToMove: p.SideToMove,
		EnPassant:  NoSquare,
		Winner:     p.Winner.Other(),
		GameOver:   p.GameOver,
	}
	for sq, pc := range p.Board.Squares {
		if pc == 0 {
			continue
		}
		m.Board.Squares[Square(Rows-1-RowOf(sq), ColOf(sq))] = -pc
	}
	if p.EnPassant != NoSquare {
		m.EnPassant = Square(Rows-1-RowOf(p.EnPassant), ColOf(p.EnPassant))
	}
	m.Castling[White], m.Castling[Black] = p.Castling[Black], p.Castling[White]
	m.KingMoved[White], m.KingMoved[Black] = p.KingMoved[Black], p.KingMoved[White]
	m.Hash = m.CalculateHash()
	return m
}
