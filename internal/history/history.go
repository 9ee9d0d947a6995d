//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package history implements the relative-history move-ordering table
// (§4.10): two piece×destination counter tables, shared across search
// workers and updated with relaxed atomic increments rather than a
// lock.
package history

import (
	"math"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

// maxShort is the scaling numerator for Score, matching §4.10's
// "MAX_SHORT . history/butterfly" formula.
const maxShort = math.MaxInt16

// Table holds the two 13x64 counter arrays §4.10 specifies, indexed
// by (moved piece, destination square) - the "13" is types.PieceLength,
// covering both colors' six piece types plus the PieceNone slot.
// history counts only cutoff-causing moves; butterfly counts every
// move attempted at that (piece, destination), cutoff or not.
type Table struct {
	history   [types.PieceLength][64]uint64
	butterfly [types.PieceLength][64]uint64
}

// New creates an empty Table.
func New() *Table {
	return &Table{}
}

// Update records that m was searched: butterfly is always
// incremented; history is incremented only when m caused a cutoff.
// Safe to call from any number of search worker goroutines.
func (t *Table) Update(m types.Move, causedCutoff bool) {
	p := m.Piece()
	to := m.To()
	atomic.AddUint64(&t.butterfly[p][to], 1)
	if causedCutoff {
		atomic.AddUint64(&t.history[p][to], 1)
	}
}

// Score returns m's move-ordering score: MAX_SHORT * history/butterfly,
// or 0 if butterfly is still 0 (m has never been attempted).
func (t *Table) Score(m types.Move) int64 {
	p := m.Piece()
	to := m.To()
	b := atomic.LoadUint64(&t.butterfly[p][to])
	if b == 0 {
		return 0
	}
	h := atomic.LoadUint64(&t.history[p][to])
	return int64(maxShort*h) / int64(b)
}

// Halve divides both counter tables in half in place, the optional
// periodic rebalancing §4.10 allows to keep the history/butterfly
// ratio meaningful over a long game. Not called automatically anywhere
// in this package; a search driver may invoke it between iterative-
// deepening iterations if it chooses to.
func (t *Table) Halve() {
	for p := types.PieceNone; p < types.PieceLength; p++ {
		for sq := types.SqA1; sq < types.SqNone; sq++ {
			atomic.StoreUint64(&t.history[p][sq], atomic.LoadUint64(&t.history[p][sq])/2)
			atomic.StoreUint64(&t.butterfly[p][sq], atomic.LoadUint64(&t.butterfly[p][sq])/2)
		}
	}
}

// String renders every (piece, destination) pair with a non-zero
// butterfly count, one line each, for debug logging.
func (t *Table) String() string {
	var sb strings.Builder
	for p := types.PieceNone; p < types.PieceLength; p++ {
		for sq := types.SqA1; sq < types.SqNone; sq++ {
			b := atomic.LoadUint64(&t.butterfly[p][sq])
			if b == 0 {
				continue
			}
			h := atomic.LoadUint64(&t.history[p][sq])
			sb.WriteString(out.Sprintf("%s->%s: history=%d butterfly=%d\n", p.String(), sq.String(), h, b))
		}
	}
	return sb.String()
}
