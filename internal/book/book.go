//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package book reads the Polyglot opening-book binary format (§6): a
// file of 16-byte big-endian entries, sorted ascending by position
// key, looked up by binary search. Entries whose key matches the
// position being probed are resolved to legal engine moves and the
// maximum-weighted one is returned - deterministically, not by
// weighted random choice, per §8's book-lookup scenario.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/frankkopp/chesscore/internal/movegen"
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

const entrySize = 16

// rawEntry is one 16-byte Polyglot record, decoded but not yet
// resolved against any particular position's legal moves.
type rawEntry struct {
	key    uint64
	move   uint16
	weight uint16
}

// Book is an in-memory, sorted Polyglot opening book.
type Book struct {
	entries []rawEntry
}

// Load reads a complete Polyglot book from r. The file is expected to
// already be sorted by key (the format's own invariant); Load sorts
// defensively anyway since a malformed or hand-edited file would
// otherwise silently break binary search.
func Load(r io.Reader) (*Book, error) {
	var buf [entrySize]byte
	var entries []rawEntry

	for {
		_, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("book: reading entry: %w", err)
		}
		entries = append(entries, rawEntry{
			key:    binary.BigEndian.Uint64(buf[0:8]),
			move:   binary.BigEndian.Uint16(buf[8:10]),
			weight: binary.BigEndian.Uint16(buf[10:12]),
			// bytes 12:16 are the learn field, unused for lookup.
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessUnsigned(entries[i].key, entries[j].key)
	})

	return &Book{entries: entries}, nil
}

// lessUnsigned compares two 64-bit Polyglot keys as unsigned values,
// per §6's "compare by adding 0x8000_0000_0000_0000 before signed
// comparison" rule - added here as the equivalent unsigned comparison
// directly, which Go's uint64 < already provides.
func lessUnsigned(a, b uint64) bool {
	return a < b
}

// Len reports how many entries the book holds in total (not unique
// positions - a position may have several candidate moves).
func (b *Book) Len() int {
	return len(b.entries)
}

// find returns the half-open range [lo, hi) of entries matching key,
// via binary search over the sorted slice.
func (b *Book) find(key uint64) (lo, hi int) {
	lo = sort.Search(len(b.entries), func(i int) bool {
		return !lessUnsigned(b.entries[i].key, key)
	})
	hi = sort.Search(len(b.entries), func(i int) bool {
		return lessUnsigned(key, b.entries[i].key)
	})
	return lo, hi
}

// Probe looks up pos's Polyglot key and returns the highest-weighted
// legal move recorded for it. Ties are broken by file order (the
// first maximum-weight entry encountered), keeping selection
// deterministic across runs and across identical books. Reports false
// if the position is absent from the book or none of its recorded
// moves resolve to a legal move on pos (§7's "transient probing
// failure" - not found is a normal, expected outcome).
func (b *Book) Probe(pos *position.Position) (types.Move, bool) {
	key := uint64(pos.PolyglotKey())
	lo, hi := b.find(key)
	if lo >= hi {
		return types.MoveNone, false
	}

	legal := movegen.GenerateMoves(pos)

	var best types.Move
	var bestWeight int32 = -1
	for _, e := range b.entries[lo:hi] {
		m, ok := resolveMove(legal, e.move)
		if !ok {
			continue
		}
		if int32(e.weight) > bestWeight {
			bestWeight = int32(e.weight)
			best = m
		}
	}
	if bestWeight < 0 {
		return types.MoveNone, false
	}
	return best, true
}

// resolveMove decodes raw (Polyglot's from/to/promotion bit layout,
// §6) and matches it against the legal move list to recover the
// fully-flagged engine Move (capture/castle/en-passant/promotion
// type), the same "generate and match" approach notation uses for
// PACN/SAN.
func resolveMove(legal types.MoveList, raw uint16) (types.Move, bool) {
	from, to, promo := decodeRaw(raw)
	for _, m := range legal {
		if m.From() != from || m.To() != to {
			continue
		}
		if promo == types.PtNone {
			if !m.Type().IsPromotion() {
				return m, true
			}
			continue
		}
		if m.Type().IsPromotion() && m.Type().PromotionPieceType() == promo {
			return m, true
		}
	}
	return types.MoveNone, false
}

var promoPieceTypes = [5]types.PieceType{
	types.PtNone, types.Knight, types.Bishop, types.Rook, types.Queen,
}

// decodeRaw unpacks a Polyglot move word per §6:
// to_file(3) | to_rank(3) | from_file(3) | from_rank(3) | promo(3),
// and translates the king-captures-rook castling encoding
// (e1h1/e1a1/e8h8/e8a8) to the engine's own king-two-squares encoding.
func decodeRaw(raw uint16) (from, to types.Square, promo types.PieceType) {
	toFile := types.File(raw & 0x7)
	toRank := types.Rank((raw >> 3) & 0x7)
	fromFile := types.File((raw >> 6) & 0x7)
	fromRank := types.Rank((raw >> 9) & 0x7)
	promoIdx := (raw >> 12) & 0x7

	from = types.SquareOf(fromFile, fromRank)
	to = types.SquareOf(toFile, toRank)

	switch {
	case from == types.SqE1 && to == types.SqH1:
		to = types.SqG1
	case from == types.SqE1 && to == types.SqA1:
		to = types.SqC1
	case from == types.SqE8 && to == types.SqH8:
		to = types.SqG8
	case from == types.SqE8 && to == types.SqA8:
		to = types.SqC8
	}

	if int(promoIdx) < len(promoPieceTypes) {
		promo = promoPieceTypes[promoIdx]
	}
	return from, to, promo
}
