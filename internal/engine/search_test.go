package engine

import (
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"chessai/internal/chess"
)

// 足够大的预算：测试里只让深度决定何时停
const maxBudget = time.Hour

func mustDecode(t *testing.T, fen string) *chess.Position {
	t.Helper()
	pos, err := chess.DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

func isLegal(pos *chess.Position, m chess.Move) bool {
	for _, lm := range pos.GenerateLegalMoves() {
		if lm == m {
			return true
		}
	}
	return false
}

func TestStartPositionDepthOne(t *testing.T) {
	pos := chess.NewInitialPosition()
	before := *pos

	e := NewEngine(SearchConfig{MaxDepth: 1, TimeLimit: maxBudget})
	mv, ok := e.BestMove(pos)
	if !ok {
		t.Fatalf("expected a move from the initial position")
	}
	if len(pos.GenerateLegalMoves()) != 20 || !isLegal(pos, mv) {
		t.Fatalf("move %v is not one of the 20 opening moves", mv)
	}
	if *pos != before {
		t.Fatalf("search must leave the position untouched")
	}
}

func TestCapturesHangingQueen(t *testing.T) {
	pos := mustDecode(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	e := NewEngine(SearchConfig{MaxDepth: 3, TimeLimit: maxBudget})
	res := e.Search(pos)
	if got := res.BestMove.UCI(); got != "d2d5" {
		t.Fatalf("expected Rxd5, got %s (score %d)", got, res.Score)
	}
}

func TestFindsBackRankMate(t *testing.T) {
	pos := mustDecode(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	e := NewEngine(SearchConfig{MaxDepth: 4, TimeLimit: maxBudget})
	res := e.Search(pos)
	if got := res.BestMove.UCI(); got != "a1a8" {
		t.Fatalf("expected Ra8#, got %s", got)
	}
	if res.Score < mateBase-e.Config().MaxDepth {
		t.Fatalf("mate score %d too far from %d", res.Score, mateBase)
	}
	if res.Depth != 1 {
		t.Fatalf("forced mate should stop deepening at depth 1, got %d", res.Depth)
	}
}

func TestZeroBudgetStillReturnsLegalMove(t *testing.T) {
	pos := chess.NewInitialPosition()
	e := NewEngine(SearchConfig{MaxDepth: 6, TimeLimit: 0})

	done := make(chan SearchResult, 1)
	go func() { done <- e.Search(pos) }()

	select {
	case res := <-done:
		if !res.Found || !isLegal(pos, res.BestMove) {
			t.Fatalf("expected a legal fallback move, got %v found=%v", res.BestMove, res.Found)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("zero budget search blocked")
	}
}

func TestNoLegalMoveIsReported(t *testing.T) {
	for _, fen := range []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", // 被将死
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",                                // 逼和
	} {
		pos := mustDecode(t, fen)
		for _, budget := range []time.Duration{0, maxBudget} {
			e := NewEngine(SearchConfig{MaxDepth: 3, TimeLimit: budget})
			if mv, ok := e.BestMove(pos); ok {
				t.Fatalf("%s: expected no move, got %v", fen, mv)
			}
		}
	}
}

func TestFailSoftBounds(t *testing.T) {
	// 白方多一个后：窄窗口必然 fail-high
	up := mustDecode(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	s := newSession(SearchConfig{MaxDepth: 2, TimeLimit: maxBudget})
	if got := s.negamax(up, 2, -100, 100); got < 100 {
		t.Fatalf("fail-high expected >= beta, got %d", got)
	}

	// 白方少一个后：必然 fail-low
	down := mustDecode(t, "3qk3/8/8/8/8/8/8/4K3 w - - 0 1")
	s = newSession(SearchConfig{MaxDepth: 2, TimeLimit: maxBudget})
	if got := s.negamax(down, 2, -100, 100); got > -100 {
		t.Fatalf("fail-low expected <= alpha, got %d", got)
	}
}

func TestNullMoveNeverInCheck(t *testing.T) {
	if nullMoveAllowed(true, 8, 8000) {
		t.Fatalf("null move must not fire in check")
	}
	if nullMoveAllowed(false, 2, 8000) {
		t.Fatalf("null move needs depth >= 3")
	}
	if nullMoveAllowed(false, 5, endgameMaterial) {
		t.Fatalf("null move is off in the endgame")
	}

	// 深度 3 时只有根节点有资格做空着，统计正好反映根节点的选择
	checked := mustDecode(t, "4k3/8/8/8/8/8/3q4/R2QK2R w - - 0 1")
	s := newSession(SearchConfig{MaxDepth: 3, TimeLimit: maxBudget})
	s.negamax(checked, 3, -scoreInf, scoreInf)
	if s.stats.NullTries != 0 {
		t.Fatalf("null move tried while in check: %d", s.stats.NullTries)
	}

	quiet := mustDecode(t, "4k3/8/8/8/8/8/q7/R2QK2R w - - 0 1")
	s = newSession(SearchConfig{MaxDepth: 3, TimeLimit: maxBudget})
	s.negamax(quiet, 3, -scoreInf, scoreInf)
	if s.stats.NullTries != 1 {
		t.Fatalf("expected exactly one null move at the root, got %d", s.stats.NullTries)
	}
}

func TestLMRTable(t *testing.T) {
	cases := []struct{ d, m, want int }{
		{1, 32, 0},
		{8, 1, 0},
		{3, 3, 1},
		{8, 32, 4},
		{4, 10, 2},
	}
	for _, tc := range cases {
		if got := lmrTable[tc.d][tc.m]; got != tc.want {
			t.Fatalf("lmrTable[%d][%d] = %d, want %d", tc.d, tc.m, got, tc.want)
		}
	}
	// 降层不能超过 depth-2
	if got := lmrReduction(3, 40); got != 1 {
		t.Fatalf("reduction at depth 3 should clamp to 1, got %d", got)
	}
	if got := lmrReduction(20, 40); got != lmrTable[8][32] {
		t.Fatalf("deep reduction should use the capped table entry, got %d", got)
	}
}

func TestAnyLegalMoveScan(t *testing.T) {
	pos := chess.NewInitialPosition()
	m, ok := anyLegalMove(pos)
	if !ok || !isLegal(pos, m) {
		t.Fatalf("fallback move %v not legal", m)
	}

	// 黑王无路可走，唯一能动的是 g 兵升变
	promo := mustDecode(t, "k7/2Q5/1K6/8/8/8/6p1/8 b - - 0 1")
	m, ok = anyLegalMove(promo)
	if !ok || !isLegal(promo, m) || m.Promo != chess.Queen {
		t.Fatalf("fallback move %v should be a legal queen promotion", m)
	}
}

// kiwipete 第 5 层：至少有一个降层着法分数超过 alpha，必须全深度复核
func TestLMRReducedMovesAreVerified(t *testing.T) {
	pos := mustDecode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	e := NewEngine(SearchConfig{MaxDepth: 5, TimeLimit: maxBudget})
	res := e.Search(pos)
	if res.Stats.LMRResearches == 0 {
		t.Fatalf("expected at least one full-depth re-search after a reduced move beat alpha")
	}
	if !isLegal(pos, res.BestMove) {
		t.Fatalf("illegal best move %v", res.BestMove)
	}
}

// 关掉 LMR 做对照：战术局面下两边选同一步，关掉时不应有复核
func TestLMRAgreesWithUnreducedSearch(t *testing.T) {
	fen := "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1"

	reduced := newSession(SearchConfig{MaxDepth: 4, TimeLimit: maxBudget})
	rm, rs := reduced.rootSearch(mustDecode(t, fen), 4, -scoreInf, scoreInf)

	full := newSession(SearchConfig{MaxDepth: 4, TimeLimit: maxBudget})
	full.reduce = false
	fm, fs := full.rootSearch(mustDecode(t, fen), 4, -scoreInf, scoreInf)

	if full.stats.LMRResearches != 0 {
		t.Fatalf("no re-search expected with reductions off, got %d", full.stats.LMRResearches)
	}
	if rm != fm || rm.UCI() != "d2d5" {
		t.Fatalf("reduced search chose %v (%d), unreduced %v (%d)", rm, rs, fm, fs)
	}
	if rs < pieceValue[chess.Queen]/2 || fs < pieceValue[chess.Queen]/2 {
		t.Fatalf("both searches should see the queen win: reduced %d, unreduced %d", rs, fs)
	}
}

func TestAspirationFailureTriggersFullWindow(t *testing.T) {
	fen := "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1"
	cases := []struct {
		name      string
		prevScore int
	}{
		{"fail-low", 5000},   // 真实分数远低于窗口
		{"fail-high", -5000}, // 真实分数远高于窗口
	}
	for _, tc := range cases {
		s := newSession(SearchConfig{MaxDepth: 4, TimeLimit: maxBudget})
		mv, score := s.aspirationSearch(mustDecode(t, fen), 4, tc.prevScore)
		if s.stats.AspirationResearches != 1 {
			t.Fatalf("%s: expected one full-window re-search, got %d", tc.name, s.stats.AspirationResearches)
		}
		if score <= -scoreInf || score >= scoreInf {
			t.Fatalf("%s: full-window score should be finite, got %d", tc.name, score)
		}
		if score > tc.prevScore-aspirationWindow && score < tc.prevScore+aspirationWindow {
			t.Fatalf("%s: score %d inside the window that supposedly failed", tc.name, score)
		}
		if mv.UCI() != "d2d5" {
			t.Fatalf("%s: re-search should pick Rxd5, got %v (%d)", tc.name, mv, score)
		}
	}

	// 第 4 层以下直接全窗口，没有重搜
	s := newSession(SearchConfig{MaxDepth: 3, TimeLimit: maxBudget})
	s.aspirationSearch(mustDecode(t, fen), 3, 5000)
	if s.stats.AspirationResearches != 0 {
		t.Fatalf("shallow depths must not use a window, got %d re-searches", s.stats.AspirationResearches)
	}
}

// 每次 Search 都有独立的 session：并行搜索不同局面和串行结果一致
func TestConcurrentSearchesAreIndependent(t *testing.T) {
	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	e := NewEngine(SearchConfig{MaxDepth: 2, TimeLimit: maxBudget})

	want := make([]SearchResult, len(fens))
	for i, fen := range fens {
		want[i] = e.Search(mustDecode(t, fen))
	}

	got := make([]SearchResult, len(fens))
	var g errgroup.Group
	for i, fen := range fens {
		i := i
		pos := mustDecode(t, fen)
		g.Go(func() error {
			got[i] = e.Search(pos)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i := range fens {
		if got[i].BestMove != want[i].BestMove || got[i].Score != want[i].Score || got[i].Nodes != want[i].Nodes {
			t.Fatalf("%s: concurrent %v/%d/%d, sequential %v/%d/%d", fens[i],
				got[i].BestMove, got[i].Score, got[i].Nodes, want[i].BestMove, want[i].Score, want[i].Nodes)
		}
	}
}
