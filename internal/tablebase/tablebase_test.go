package tablebase

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/position"
)

// stubBackend always reports the same canned result, for exercising
// Tablebase's load/unload and stats-counting behavior without a real
// probing library.
type stubBackend struct {
	result    Result
	found     bool
	maxPieces int
}

func (s stubBackend) Probe(pos *position.Position, soft bool) (Result, bool) {
	return s.result, s.found
}

func (s stubBackend) MaxPieces() int {
	return s.maxPieces
}

func TestNotLoadedAlwaysMisses(t *testing.T) {
	tb := New()
	if tb.Available() {
		t.Fatalf("a fresh facade must report not-available")
	}
	_, ok := tb.Probe(position.New(), true)
	if ok {
		t.Fatalf("a facade with no backend loaded must never report a hit")
	}
	if tb.Stats.Misses != 1 {
		t.Fatalf("expected 1 recorded miss, got %d", tb.Stats.Misses)
	}
}

func TestLoadedBackendIsProbed(t *testing.T) {
	tb := New()
	tb.Load(stubBackend{result: Result{WDL: Win}, found: true, maxPieces: 6})

	if !tb.Available() {
		t.Fatalf("expected Available() after Load")
	}
	if tb.MaxPieces() != 6 {
		t.Fatalf("expected MaxPieces 6, got %d", tb.MaxPieces())
	}

	result, ok := tb.Probe(position.New(), false)
	if !ok || result.WDL != Win {
		t.Fatalf("expected a Win hit, got %+v ok=%v", result, ok)
	}
	if tb.Stats.HardProbes != 1 || tb.Stats.Hits != 1 {
		t.Fatalf("expected one hard probe and one hit, got %+v", tb.Stats)
	}
}

func TestUnloadReturnsToNotLoaded(t *testing.T) {
	tb := New()
	tb.Load(stubBackend{found: true, result: Result{WDL: Draw}})
	tb.Unload()

	if tb.Available() {
		t.Fatalf("expected not-available after Unload")
	}
	if _, ok := tb.Probe(position.New(), true); ok {
		t.Fatalf("an unloaded facade must never report a hit")
	}
}

func TestSoftAndHardProbesCountedSeparately(t *testing.T) {
	tb := New()
	tb.Load(stubBackend{found: false})

	tb.Probe(position.New(), true)
	tb.Probe(position.New(), true)
	tb.Probe(position.New(), false)

	if tb.Stats.SoftProbes != 2 || tb.Stats.HardProbes != 1 {
		t.Fatalf("expected 2 soft and 1 hard probe, got %+v", tb.Stats)
	}
	if tb.Stats.Misses != 3 {
		t.Fatalf("expected all 3 probes to count as misses, got %d", tb.Stats.Misses)
	}
}

func TestScoreOfOrdersFasterMatesHigher(t *testing.T) {
	fast := ScoreOf(Win, 2)
	slow := ScoreOf(Win, 10)
	if fast <= slow {
		t.Fatalf("a faster win (ply 2) should score higher than a slower one (ply 10): fast=%d slow=%d", fast, slow)
	}
}
