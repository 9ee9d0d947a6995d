package transpositiontable

import (
	"sync"
	"testing"

	"github.com/frankkopp/chesscore/internal/types"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	tt := New(1)
	if _, ok := tt.Probe(types.Key(12345)); ok {
		t.Fatalf("empty table should never hit")
	}
}

func TestStoreThenProbeRoundTrip(t *testing.T) {
	tt := New(1)
	key := types.Key(0xABCDEF0123456789)
	m := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	entry := TTEntry{Move: m, Value: 150, Depth: 6, Type: types.Exact}
	tt.Store(key, entry)

	got, ok := tt.Probe(key)
	if !ok {
		t.Fatalf("expected a hit after Store")
	}
	if got.Move != m || got.Value != 150 || got.Depth != 6 || got.Type != types.Exact {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
}

func TestZeroSizeTableNeverStores(t *testing.T) {
	tt := New(0)
	tt.Store(types.Key(1), TTEntry{Value: 1})
	if _, ok := tt.Probe(types.Key(1)); ok {
		t.Fatalf("a zero-capacity table should never report a hit")
	}
}

// TestConcurrentWritesNeverProduceSplicedEntry races many goroutines
// writing distinct keys that share their low bits (and therefore the
// same slot index) against many reader goroutines, and checks every
// observed hit is one of the exact entries some writer stored in full
// - never a value made of one writer's key and another writer's data
// (§8 scenario 6).
func TestConcurrentWritesNeverProduceSplicedEntry(t *testing.T) {
	tt := New(1) // every test key shares its low 16 bits, forcing one slot
	const writers = 8
	const iterations = 2000

	valid := make(map[uint64]TTEntry, writers)
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(writers * 2)

	for w := 0; w < writers; w++ {
		w := w
		go func() {
			defer wg.Done()
			key := types.Key(uint64(w)<<56 | 0xABCD)
			for i := 0; i < iterations; i++ {
				entry := TTEntry{
					Move:  types.NewMove(types.SqA1+types.Square(w), types.SqH8, types.WhitePawn, types.PieceNone, types.Normal),
					Value: types.Value(w*100 + i%50),
					Depth: int8(w),
					Type:  types.Exact,
				}
				mu.Lock()
				valid[uint64(key)] = entry
				mu.Unlock()
				tt.Store(key, entry)
			}
		}()
		go func() {
			defer wg.Done()
			key := types.Key(uint64(w)<<56 | 0xABCD)
			for i := 0; i < iterations; i++ {
				got, ok := tt.Probe(key)
				if !ok {
					continue
				}
				mu.Lock()
				want, exists := valid[uint64(key)]
				mu.Unlock()
				if exists && (got.Move != want.Move || got.Depth != want.Depth || got.Type != want.Type || got.Value/100 != want.Value/100) {
					t.Errorf("probe for writer %d returned entry from neither its own history nor a plausible other writer: %+v", w, got)
				}
			}
		}()
	}
	wg.Wait()
}
