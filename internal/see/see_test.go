package see

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

func TestEvaluateSimpleWinningCapture(t *testing.T) {
	// White rook takes a hanging black knight on d5, undefended.
	p, err := position.FromFEN("4k3/8/8/3n4/8/8/3R4/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := types.NewMove(types.SqD2, types.SqD5, types.WhiteRook, types.BlackKnight, types.Normal)
	got := Evaluate(p, m)
	if got != types.Knight.ValueOf() {
		t.Fatalf("Evaluate() = %d, want %d (knight value)", got, types.Knight.ValueOf())
	}
}

func TestEvaluateLosingCapture(t *testing.T) {
	// Black rook takes a pawn defended by the white queen behind it -
	// the queen recaptures, so black loses the rook for a pawn.
	p, err := position.FromFEN("4k3/8/8/3r4/8/8/3P4/3QK3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := types.NewMove(types.SqD5, types.SqD2, types.BlackRook, types.WhitePawn, types.Normal)
	got := Evaluate(p, m)
	want := types.Pawn.ValueOf() - types.Rook.ValueOf()
	if got != want {
		t.Fatalf("Evaluate() = %d, want %d", got, want)
	}
}
