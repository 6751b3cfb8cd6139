package engine

import (
	"time"

	"chessai/internal/chess"
)

const (
	defaultMaxDepth  = 5
	defaultTimeLimit = 5 * time.Second
)

// 搜索配置，构造 Engine 时给定
type SearchConfig struct {
	MaxDepth  int           // 最大迭代深度（ply）
	TimeLimit time.Duration // 墙钟预算；0 表示不搜索，直接给一个合法着法
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth:  defaultMaxDepth,
		TimeLimit: defaultTimeLimit,
	}
}

// Engine 本身不保存任何跨调用的状态：置换表、杀手表、历史表
// 都在每次 Search 时新建，所以同一个 Engine 可以在不同 goroutine
// 里对不同的 Position 并行使用。
type Engine struct {
	cfg SearchConfig
}

func NewEngine(cfg SearchConfig) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultMaxDepth
	}
	if cfg.TimeLimit < 0 {
		cfg.TimeLimit = 0
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() SearchConfig {
	return e.cfg
}

// BestMove 是每回合调用一次的入口。第二个返回值为 false 表示走子方确实无棋可走。
func (e *Engine) BestMove(pos *chess.Position) (chess.Move, bool) {
	res := e.Search(pos)
	return res.BestMove, res.Found
}
