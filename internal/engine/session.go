package engine

import (
	"time"

	"chessai/internal/chess"
)

// 杀手表比最大深度多留一些槽位，LMR/空着之后 ply 可能超过 MaxDepth
const killerSlack = 16

// Stats 统计一次搜索里各个剪枝手段的使用情况
type Stats struct {
	Nodes                int64
	QNodes               int64
	TTHits               int64
	NullTries            int64
	NullCutoffs          int64
	LMRResearches        int64
	AspirationResearches int64
}

// session 对应一次顶层搜索：开始时新建，返回时丢弃
type session struct {
	maxDepth int
	budget   time.Duration
	start    time.Time

	tt      *Table
	killers [][2]chess.Move
	history [2][chess.NumSquares]int
	reduce  bool // LMR 开关，只有对照测试会关掉

	stats Stats
}

func newSession(cfg SearchConfig) *session {
	return &session{
		maxDepth: cfg.MaxDepth,
		budget:   cfg.TimeLimit,
		start:    time.Now(),
		tt:       NewTable(),
		killers:  make([][2]chess.Move, cfg.MaxDepth+killerSlack),
		reduce:   true,
	}
}

func (s *session) elapsed() time.Duration {
	return time.Since(s.start)
}

func (s *session) timeUp() bool {
	return s.elapsed() > s.budget
}

func (s *session) plyFor(depth int) int {
	return clamp(s.maxDepth-depth, 0, len(s.killers)-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
