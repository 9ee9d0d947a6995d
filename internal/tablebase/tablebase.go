//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package tablebase is a thin endgame-tablebase probing facade. The
// actual tablebase binary format is out of scope (§1's Non-goals) -
// this package exists only to give a search layer something concrete
// to call, modeled as an explicit loaded/not-loaded Backend option
// rather than a catch-all try/swallow around a missing library (§9's
// design note against "Throwable/Error catch-alls").
package tablebase

import (
	"sync/atomic"

	"github.com/frankkopp/chesscore/internal/position"
)

// WDL is the win/draw/loss classification a tablebase probe reports,
// including the two "but the 50-move rule may intervene" variants
// real tablebases distinguish.
type WDL int8

const (
	Loss        WDL = -2
	BlessedLoss WDL = -1 // loss, but the 50-move rule may save it
	Draw        WDL = 0
	CursedWin   WDL = 1 // win, but the 50-move rule may spoil it
	Win         WDL = 2
)

func (w WDL) String() string {
	switch w {
	case Loss:
		return "loss"
	case BlessedLoss:
		return "blessed-loss"
	case Draw:
		return "draw"
	case CursedWin:
		return "cursed-win"
	case Win:
		return "win"
	default:
		return "unknown"
	}
}

// Result is one probe's outcome. DTM (distance to mate, in plies) is
// only meaningful when HasDTM is true - a WDL-only backend leaves it
// unset rather than faking a value.
type Result struct {
	WDL    WDL
	DTM    int
	HasDTM bool
}

// Backend is anything capable of answering tablebase queries for
// positions at or below its piece-count ceiling. Real backends (e.g.
// a Syzygy probe wired to cgo or a remote lookup service) are not
// shipped here; only the facade and its contract are.
type Backend interface {
	// Probe looks up pos. soft requests a memory-resident/cheap lookup
	// only (no disk I/O); a backend that cannot honor soft should
	// simply report not-found rather than block.
	Probe(pos *position.Position, soft bool) (Result, bool)
	// MaxPieces is the largest total piece count (both sides, kings
	// included) this backend has data for.
	MaxPieces() int
}

// Stats counts probe activity for diagnostics, mirroring the
// hit/miss counter style already used by transpositiontable.Stats.
type Stats struct {
	SoftProbes int64
	HardProbes int64
	Hits       int64
	Misses     int64
}

// Tablebase is the facade a search layer calls through. The
// loaded/not-loaded state is represented by backend being nil - an
// explicit Option<Backend>, per §9 - rather than by a Backend
// implementation that quietly swallows its own load failure.
type Tablebase struct {
	backend Backend
	Stats   Stats
}

// New returns a facade with no backend loaded; every probe reports
// not-found until Load installs one.
func New() *Tablebase {
	return &Tablebase{}
}

// Load installs backend, making the facade available. Passing nil is
// equivalent to Unload.
func (t *Tablebase) Load(backend Backend) {
	t.backend = backend
}

// Unload detaches any installed backend, returning the facade to its
// not-loaded state.
func (t *Tablebase) Unload() {
	t.backend = nil
}

// Available reports whether a backend is currently loaded.
func (t *Tablebase) Available() bool {
	return t.backend != nil
}

// MaxPieces returns the loaded backend's piece-count ceiling, or 0 if
// no backend is loaded.
func (t *Tablebase) MaxPieces() int {
	if t.backend == nil {
		return 0
	}
	return t.backend.MaxPieces()
}

// Probe asks the loaded backend for pos, or reports not-found if no
// backend is loaded. A miss here is a normal, expected outcome (§7's
// "transient probing failure"), never an error.
func (t *Tablebase) Probe(pos *position.Position, soft bool) (Result, bool) {
	if soft {
		atomic.AddInt64(&t.Stats.SoftProbes, 1)
	} else {
		atomic.AddInt64(&t.Stats.HardProbes, 1)
	}
	if t.backend == nil {
		atomic.AddInt64(&t.Stats.Misses, 1)
		return Result{}, false
	}
	result, ok := t.backend.Probe(pos, soft)
	if ok {
		atomic.AddInt64(&t.Stats.Hits, 1)
	} else {
		atomic.AddInt64(&t.Stats.Misses, 1)
	}
	return result, ok
}

// ScoreOf converts a WDL verdict to a search-score-shaped integer,
// biased by ply so that faster mates/losses sort ahead of slower
// ones, the same convention as centipawn mate scoring.
func ScoreOf(wdl WDL, ply int) int {
	const mateScore = 30000
	const cursedOffset = 100
	switch wdl {
	case Win:
		return mateScore - ply
	case CursedWin:
		return mateScore - cursedOffset - ply
	case Draw:
		return 0
	case BlessedLoss:
		return -mateScore + cursedOffset + ply
	case Loss:
		return -mateScore + ply
	default:
		return 0
	}
}
