package notation

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

func TestFormatSANRookMoveAndCapture(t *testing.T) {
	// Same skeleton position as the disambiguation/check-suffix scenario
	// with the white pawn removed from b5 so that b4b5 is itself a legal
	// move to reach the SAN it is supposed to produce.
	fen := "8/2p5/3p4/K6r/1R3p1k/8/4P1P1/8 w - - 0 1"

	p, err := position.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	m := types.NewMove(types.SqB4, types.SqB5, types.WhiteRook, types.PieceNone, types.Normal)
	if got := FormatSAN(p, m); got != "Rb5" {
		t.Fatalf("FormatSAN(b4b5) = %q, want %q", got, "Rb5")
	}

	p, err = position.FromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	m = types.NewMove(types.SqB4, types.SqF4, types.WhiteRook, types.BlackPawn, types.Normal)
	if got := FormatSAN(p, m); got != "Rxf4+" {
		t.Fatalf("FormatSAN(b4f4) = %q, want %q", got, "Rxf4+")
	}
}

func TestParsePACNCastling(t *testing.T) {
	p, err := position.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m, err := ParsePACN(p, "e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type() != types.ShortCastling {
		t.Fatalf("e1g1 should parse as SHORT_CASTLING, got %v", m.Type())
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	p := position.New()
	m, err := ParseSAN(p, "e4")
	if err != nil {
		t.Fatal(err)
	}
	if m.From() != types.SqE2 || m.To() != types.SqE4 {
		t.Fatalf("e4 should parse as e2e4, got %s", m.String())
	}
	if got := FormatSAN(p, m); got != "e4" {
		t.Fatalf("FormatSAN round trip = %q, want %q", got, "e4")
	}
}
