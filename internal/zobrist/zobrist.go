//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package zobrist holds the engine's incremental-hashing key tables: the
// internal transposition key (§4.3) and, separately, the fixed Polyglot
// key table used only to address an opening book.
package zobrist

import "github.com/frankkopp/chesscore/internal/types"

// table holds one random word per (piece, square), one per combined
// castling-rights code, one per en-passant file, and one for side to
// move - everything Position.DoMove XORs in and out incrementally.
type table struct {
	pieces         [types.PieceLength][types.SqLength]types.Key
	castlingRights [16]types.Key
	enPassantFile  [9]types.Key
	nextPlayer     types.Key
}

var engine table

func init() {
	r := newSplitMix64(1070372)
	for pc := types.PieceNone; pc < types.PieceLength; pc++ {
		for sq := types.SqA1; sq < types.SqNone; sq++ {
			engine.pieces[pc][sq] = types.Key(r.next())
		}
	}
	for cr := 0; cr < 16; cr++ {
		engine.castlingRights[cr] = types.Key(r.next())
	}
	for f := types.EpFileA; f < types.EpNone; f++ {
		engine.enPassantFile[f] = types.Key(r.next())
	}
	// EpNone itself deliberately hashes to zero: the invariant in §4.3
	// states index 8 (NONE) contributes nothing to the key.
	engine.enPassantFile[types.EpNone] = 0
	engine.nextPlayer = types.Key(r.next())
}

// Piece returns the key word for a piece standing on a square.
func Piece(p types.Piece, sq types.Square) types.Key {
	return engine.pieces[p][sq]
}

// Castling returns the key word for the combined 4-bit white<<2|black
// castling-rights code (see types.CombinedIndex).
func Castling(combined int) types.Key {
	return engine.castlingRights[combined]
}

// EnPassant returns the key word for an en-passant file, zero for
// types.EpNone.
func EnPassant(ef types.EnPassantFile) types.Key {
	return engine.enPassantFile[ef]
}

// NextPlayer returns the key word XORed in/out on every side-to-move
// flip.
func NextPlayer() types.Key {
	return engine.nextPlayer
}

// splitMix64 is a tiny, fast, deterministic generator used only to seed
// the Zobrist tables at package init - reproducible across runs and
// platforms, which the XOR-hashing discipline in §4.3 depends on.
type splitMix64 struct {
	state uint64
}

func newSplitMix64(seed uint64) *splitMix64 {
	return &splitMix64{state: seed}
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
