package engine

// Bound 表示存进 TT 的分数是精确值还是上下界
type Bound uint8

const (
	BoundExact Bound = iota
	BoundUpper       // fail-low：没有着法抬高 alpha
	BoundLower       // fail-high：分数 >= beta
)

func (b Bound) String() string {
	switch b {
	case BoundExact:
		return "exact"
	case BoundUpper:
		return "upper"
	case BoundLower:
		return "lower"
	}
	return "unknown"
}

type ttEntry struct {
	Score int
	Depth int
	Bound Bound
}

// Table 是一次搜索内的置换表，键是局面的 Zobrist 哈希（棋子+走子方+过路兵格）。
// 没有容量上限也没有替换策略，写入直接覆盖。
type Table struct {
	m map[uint64]ttEntry
}

func NewTable() *Table {
	return &Table{m: make(map[uint64]ttEntry, 1<<16)}
}

func (t *Table) Len() int { return len(t.m) }

func (t *Table) Store(key uint64, score, depth int, bound Bound) {
	t.m[key] = ttEntry{Score: score, Depth: depth, Bound: bound}
}

func (t *Table) Lookup(key uint64) (ttEntry, bool) {
	e, ok := t.m[key]
	return e, ok
}

// Probe 按深度和窗口判断能否直接用存下的结果返回
func (t *Table) Probe(key uint64, depth, alpha, beta int) (int, bool) {
	e, ok := t.m[key]
	if !ok || e.Depth < depth {
		return 0, false
	}
	switch e.Bound {
	case BoundExact:
		return e.Score, true
	case BoundUpper:
		if e.Score <= alpha {
			return alpha, true
		}
	case BoundLower:
		if e.Score >= beta {
			return beta, true
		}
	}
	return 0, false
}

// classifyBound 用节点开始时的原始窗口给结果分类
func classifyBound(score, alpha, beta int) Bound {
	switch {
	case score <= alpha:
		return BoundUpper
	case score >= beta:
		return BoundLower
	}
	return BoundExact
}
