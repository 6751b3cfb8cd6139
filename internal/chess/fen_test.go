package chess

import (
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1",
	}
	for _, fen := range fens {
		pos, err := DecodePosition(fen)
		if err != nil {
			t.Fatalf("decode %q: %v", fen, err)
		}
		if got := pos.Encode(); got != fen {
			t.Fatalf("round trip mismatch:\n got=%s\nwant=%s", got, fen)
		}
	}
}

func TestInitialPositionMatchesFEN(t *testing.T) {
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := NewInitialPosition().Encode(); got != want {
		t.Fatalf("initial FEN: got=%s want=%s", got, want)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9",
	}
	for _, fen := range bad {
		if _, err := DecodePosition(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("decode %q: expected ErrInvalidFEN, got %v", fen, err)
		}
	}
}

func TestDecodeDetectsFinishedGame(t *testing.T) {
	// 傻瓜杀之后白方被将死
	mated, err := DecodePosition("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	if !mated.GameOver || mated.Winner != Black {
		t.Fatalf("expected black win, got over=%v winner=%v", mated.GameOver, mated.Winner)
	}

	stalemate, err := DecodePosition("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !stalemate.IsDraw() {
		t.Fatalf("expected stalemate draw, got over=%v winner=%v", stalemate.GameOver, stalemate.Winner)
	}
}

func TestMirrorSwapsColorsAndRanks(t *testing.T) {
	pos, _ := DecodePosition("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	m := pos.Mirror()
	if got, want := m.Encode(), "r3k2r/pppbbppp/2n2q1P/1P2p3/3pn3/BN2PNP1/P1PPQPB1/R3K2R w KQkq - 0 1"; got != want {
		t.Fatalf("mirror:\n got=%s\nwant=%s", got, want)
	}
	if back := m.Mirror(); back.Encode() != pos.Encode() {
		t.Fatalf("double mirror should be identity")
	}
}

func TestPieceAccessor(t *testing.T) {
	pos := NewInitialPosition()
	e1, _ := ParseSquare("e1")
	d8, _ := ParseSquare("d8")
	e4, _ := ParseSquare("e4")
	if pos.Piece(e1) != MakePiece(White, King) || pos.Piece(d8) != MakePiece(Black, Queen) || pos.Piece(e4) != 0 {
		t.Fatalf("unexpected pieces e1=%d d8=%d e4=%d", pos.Piece(e1), pos.Piece(d8), pos.Piece(e4))
	}
}
