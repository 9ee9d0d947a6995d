package history

import "testing"

import "github.com/frankkopp/chesscore/internal/types"

func TestScoreZeroWhenNeverAttempted(t *testing.T) {
	h := New()
	m := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	if got := h.Score(m); got != 0 {
		t.Fatalf("expected 0 for a never-attempted move, got %d", got)
	}
}

func TestScoreRisesWithCutoffRatio(t *testing.T) {
	h := New()
	m := types.NewMove(types.SqD2, types.SqD4, types.WhitePawn, types.PieceNone, types.Normal)
	other := types.NewMove(types.SqG1, types.SqF3, types.WhiteKnight, types.PieceNone, types.Normal)

	// m cuts off every time it is tried; other never does.
	for i := 0; i < 10; i++ {
		h.Update(m, true)
		h.Update(other, false)
	}

	if got := h.Score(other); got != 0 {
		t.Fatalf("other should still score 0, got %d", got)
	}
	if got := h.Score(m); got != maxShort {
		t.Fatalf("m cut off on every attempt, expected score %d, got %d", maxShort, got)
	}
}

func TestScoreIndependentPerPieceAndDestination(t *testing.T) {
	h := New()
	knightToF3 := types.NewMove(types.SqG1, types.SqF3, types.WhiteKnight, types.PieceNone, types.Normal)
	pawnToF3 := types.NewMove(types.SqF2, types.SqF3, types.WhitePawn, types.PieceNone, types.Normal)

	h.Update(knightToF3, true)
	h.Update(knightToF3, true)

	if got := h.Score(pawnToF3); got != 0 {
		t.Fatalf("a different piece moving to the same square must not share counters, got %d", got)
	}
}

func TestHalveKeepsRatioRoughlyStable(t *testing.T) {
	h := New()
	m := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	for i := 0; i < 8; i++ {
		h.Update(m, true)
	}
	before := h.Score(m)
	h.Halve()
	after := h.Score(m)
	if after != before {
		t.Fatalf("halving both counters in lockstep should not change the score: before=%d after=%d", before, after)
	}
}
