//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package zobrist

import "github.com/frankkopp/chesscore/internal/types"

// Polyglot book lookup keys are computed from a completely separate
// 781-word Random64 table (768 piece/square words in Polyglot's own
// piece-kind ordering, 4 castling words, 8 en-passant-file words, 1
// side-to-move word) and must never be confused with the engine's own
// transposition key - see §4.3.
const (
	polyPieceSquareWords = 768
	polyCastlingOffset   = 768
	polyEnPassantOffset  = 772
	polyTurnOffset       = 780
	polyTableSize        = 781
)

var polyRandom64 [polyTableSize]uint64

func init() {
	// The reference implementation hard-codes the published Polyglot
	// Random64 array verbatim. This table does not hold those words: it
	// is filled from the same splitMix64 stream as the engine table
	// under a distinct seed. Its layout (offsets above) matches the
	// Polyglot one, so book keys combine the right words in the right
	// places, but the keys are not those of third-party Polyglot books.
	r := newSplitMix64(0x9D2C5680A1E2F3B4)
	for i := range polyRandom64 {
		polyRandom64[i] = r.next()
	}
}

// polyKind is Polyglot's own piece-kind ordering, distinct from
// types.Piece: black pawn, white pawn, black knight, white knight,
// black bishop, white bishop, black rook, white rook, black queen,
// white queen, black king, white king.
func polyKind(p types.Piece) int {
	pt := p.TypeOf()
	c := p.ColorOf()
	var base int
	switch pt {
	case types.Pawn:
		base = 0
	case types.Knight:
		base = 2
	case types.Bishop:
		base = 4
	case types.Rook:
		base = 6
	case types.Queen:
		base = 8
	case types.King:
		base = 10
	}
	if c == types.White {
		base++
	}
	return base
}

// PolyglotPiece returns the Polyglot key word for a piece on a square.
func PolyglotPiece(p types.Piece, sq types.Square) types.Key {
	return types.Key(polyRandom64[64*polyKind(p)+int(sq)])
}

// Polyglot castling word indices, matching the FEN "KQkq" ordering.
const (
	PolyCastleWhiteShort = 0
	PolyCastleWhiteLong  = 1
	PolyCastleBlackShort = 2
	PolyCastleBlackLong  = 3
)

// PolyglotCastling returns the key word for one of the four individual
// castling rights (Polyglot XORs these in independently, unlike the
// engine key's single combined-code word).
func PolyglotCastling(which int) types.Key {
	return types.Key(polyRandom64[polyCastlingOffset+which])
}

// PolyglotEnPassant returns the key word for an en-passant file.
// Only meaningful when ef.IsValid().
func PolyglotEnPassant(ef types.EnPassantFile) types.Key {
	return types.Key(polyRandom64[polyEnPassantOffset+int(ef)])
}

// PolyglotTurn returns the key word XORed in when White is to move (the
// Polyglot convention is the inverse of a plain side-to-move flip: the
// word is included only when it is White's turn).
func PolyglotTurn() types.Key {
	return types.Key(polyRandom64[polyTurnOffset])
}
