//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package transpositiontable implements a lock-less shared transposition
// table (§4.7): every search worker goroutine probes and stores into the
// same table concurrently without a mutex, using Hyatt's XOR scheme to
// detect torn writes instead of serializing access.
package transpositiontable

import (
	"math"
	"sync/atomic"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/frankkopp/chesscore/internal/logging"
	"github.com/frankkopp/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// MaxSizeInMB bounds how large a single Table this engine will build.
const MaxSizeInMB = 65_536

const bytesPerSlot = 16 // two uint64 words: keyWord and dataWord

// slot is one lock-less transposition table bucket. keyWord always
// holds logicalKey XOR dataWord; a reader recomputes that XOR and
// only trusts the decoded entry if it matches the key it probed with.
type slot struct {
	keyWord  uint64
	dataWord uint64
}

// Table is the shared, concurrency-safe transposition table. The zero
// value is not usable; construct with New.
type Table struct {
	log *logging.Logger

	data        []slot
	hashMask    uint64
	maxEntries  uint64
	entries     int64
	generation  uint32
	Stats       Stats
}

// Stats holds atomically-updated usage counters safe to read and
// increment from any number of concurrent searcher goroutines.
type Stats struct {
	Puts      int64
	Probes    int64
	Hits      int64
	Misses    int64
	Collisions int64
}

// New creates a Table sized to the largest power-of-two entry count
// that fits within sizeInMByte megabytes.
func New(sizeInMByte int) *Table {
	t := &Table{log: myLogging.GetLog()}
	t.Resize(sizeInMByte)
	return t
}

// Resize rebuilds the table at a new size, discarding all entries.
// Like the teacher's table, resizing concurrently with active probes
// from other goroutines is not supported - callers must quiesce search
// workers first.
func (t *Table) Resize(sizeInMByte int) {
	if sizeInMByte > MaxSizeInMB {
		t.log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}
	sizeInBytes := uint64(sizeInMByte) * 1024 * 1024
	if sizeInBytes == 0 {
		t.maxEntries = 0
	} else {
		t.maxEntries = 1 << uint64(math.Floor(math.Log2(float64(sizeInBytes/bytesPerSlot))))
	}
	t.hashMask = t.maxEntries - 1
	t.data = make([]slot, t.maxEntries)
	atomic.StoreInt64(&t.entries, 0)
	t.Stats = Stats{}
}

// Clear empties every slot without changing the table's size.
func (t *Table) Clear() {
	t.data = make([]slot, t.maxEntries)
	atomic.StoreInt64(&t.entries, 0)
	t.Stats = Stats{}
}

// NewGeneration increments the search generation; entries written
// under earlier generations become eligible for unconditional
// replacement (§4.7's "always-replace on generation tie or newer").
func (t *Table) NewGeneration() {
	atomic.AddUint32(&t.generation, 1)
}

func (t *Table) currentGeneration() uint8 {
	return uint8(atomic.LoadUint32(&t.generation) & dataGenMask)
}

func (t *Table) index(key types.Key) uint64 {
	return uint64(key) & t.hashMask
}

// Probe looks up key and returns the stored entry and true, or a zero
// TTEntry and false on a miss - either because nothing has ever been
// stored at that index, a different key occupies it, or another
// goroutine's write to that slot was caught mid-flight (the XOR check
// failing is indistinguishable from a genuine miss, which is exactly
// the point: no corrupted data is ever returned).
func (t *Table) Probe(key types.Key) (TTEntry, bool) {
	atomic.AddInt64(&t.Stats.Probes, 1)
	if t.maxEntries == 0 {
		return TTEntry{}, false
	}
	s := &t.data[t.index(key)]
	k := atomic.LoadUint64(&s.keyWord)
	d := atomic.LoadUint64(&s.dataWord)
	if k^d != uint64(key) {
		atomic.AddInt64(&t.Stats.Misses, 1)
		return TTEntry{}, false
	}
	atomic.AddInt64(&t.Stats.Hits, 1)
	return unpackData(d), true
}

// Store writes entry under key, replacing whatever currently occupies
// that slot if the new entry's generation is at least as new as the
// stored one's (§4.7's always-replace policy). Safe to call
// concurrently with Probe and other Store calls from any goroutine;
// two simultaneous writers to the same slot each still leave the slot
// fully describing one of the two writes (or, only while a write is
// actually in flight, a slot that momentarily fails every reader's XOR
// check) - never a spliced Frankenstein of both.
func (t *Table) Store(key types.Key, entry TTEntry) {
	if t.maxEntries == 0 {
		return
	}
	entry.Generation = t.currentGeneration()
	atomic.AddInt64(&t.Stats.Puts, 1)

	s := &t.data[t.index(key)]
	oldData := atomic.LoadUint64(&s.dataWord)
	oldKeyWord := atomic.LoadUint64(&s.keyWord)
	wasEmpty := oldKeyWord == 0 && oldData == 0

	if !wasEmpty {
		existing := unpackData(oldData)
		if oldKeyWord^oldData != uint64(key) {
			atomic.AddInt64(&t.Stats.Collisions, 1)
		}
		if entry.Generation < existing.Generation {
			return
		}
	}

	dataWord := packData(entry)
	keyWord := uint64(key) ^ dataWord

	// Hyatt's scheme: publish the data word before the XORed key word.
	// A concurrent reader that observes the new data with the old key
	// word (or vice versa) computes a checksum that matches neither the
	// old nor the new logical key, and reports a miss rather than a
	// mismatched entry.
	atomic.StoreUint64(&s.dataWord, dataWord)
	atomic.StoreUint64(&s.keyWord, keyWord)

	if wasEmpty {
		atomic.AddInt64(&t.entries, 1)
	}
}

// Len returns the number of occupied slots, sampled without locking
// and therefore approximate under concurrent writers.
func (t *Table) Len() int64 {
	return atomic.LoadInt64(&t.entries)
}

// Hashfull estimates table occupancy in permille, as UCI's "hashfull"
// info field expects.
func (t *Table) Hashfull() int {
	if t.maxEntries == 0 {
		return 0
	}
	return int((1000 * t.Len()) / int64(t.maxEntries))
}

// String renders a one-line usage summary for logging.
func (t *Table) String() string {
	probes := atomic.LoadInt64(&t.Stats.Probes)
	hits := atomic.LoadInt64(&t.Stats.Hits)
	misses := atomic.LoadInt64(&t.Stats.Misses)
	return out.Sprintf("TT: %d entries (%.1f%% full) puts=%d probes=%d hits=%d misses=%d collisions=%d",
		t.Len(), float64(t.Hashfull())/10, atomic.LoadInt64(&t.Stats.Puts), probes, hits, misses,
		atomic.LoadInt64(&t.Stats.Collisions))
}
