package movegen

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/position"
)

func TestPerftStartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		{5, 4865609},
	}
	for _, c := range cases {
		p := position.New()
		if got := Perft(p, c.depth); got != c.nodes {
			t.Errorf("Perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		{4, 4085603},
	}
	for _, c := range cases {
		p, err := position.FromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := Perft(p, c.depth); got != c.nodes {
			t.Errorf("Perft(kiwipete, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestGenerateMovesStartPositionCount(t *testing.T) {
	p := position.New()
	moves := GenerateMoves(p)
	if moves.Len() != 20 {
		t.Fatalf("start position should have 20 legal moves, got %d", moves.Len())
	}
}

func TestCastlingGeneratedWhenLegal(t *testing.T) {
	p, err := position.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	moves := GenerateMoves(p)
	foundShort, foundLong := false, false
	for _, m := range moves {
		if m.String() == "e1g1" {
			foundShort = true
		}
		if m.String() == "e1c1" {
			foundLong = true
		}
	}
	if !foundShort || !foundLong {
		t.Fatalf("expected both white castling moves to be generated, got %v", moves)
	}
}

func TestNoCastlingThroughCheck(t *testing.T) {
	// Black rook on f8 covers the f-file down to f1, through which
	// White's king would transit when castling short - it must not be
	// offered.
	p, err := position.FromFEN("4kr2/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	moves := GenerateMoves(p)
	for _, m := range moves {
		if m.String() == "e1g1" {
			t.Fatalf("short castling should not be legal while transit square is attacked")
		}
	}
}
