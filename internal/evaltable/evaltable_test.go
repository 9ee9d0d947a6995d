package evaltable

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/types"
)

func TestStoreThenProbe(t *testing.T) {
	et := New[types.Key](1)
	key := types.Key(0x1122334455667788)
	et.Store(key, Entry{Value: 42, Exact: true})

	got, ok := et.Probe(key)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got.Value != 42 || !got.Exact {
		t.Fatalf("got %+v", got)
	}
}

func TestProbeMissOnDifferentKey(t *testing.T) {
	et := New[types.Key](1)
	et.Store(types.Key(1), Entry{Value: 7})
	if _, ok := et.Probe(types.Key(2)); ok {
		t.Fatalf("different key at the same or a different slot should miss")
	}
}

func TestZeroSizeTableNeverStores(t *testing.T) {
	et := New[types.Key](0)
	et.Store(types.Key(1), Entry{Value: 1})
	if _, ok := et.Probe(types.Key(1)); ok {
		t.Fatalf("zero-capacity table should never hit")
	}
}
