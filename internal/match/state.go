package match

import (
	"time"

	"chessai/internal/chess"
)

type GameState struct {
	ID        string
	Pos       *chess.Position
	History   []chess.Move
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result 用 PGN 的写法给出结果："1-0"、"0-1"、"1/2-1/2"，未结束为 "*"
func (g *GameState) Result() string {
	if !g.Pos.GameOver {
		return "*"
	}
	switch g.Pos.Winner {
	case chess.White:
		return "1-0"
	case chess.Black:
		return "0-1"
	}
	return "1/2-1/2"
}
