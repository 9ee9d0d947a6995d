//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package types

import "strings"

// Move is a packed move record:
//
//  @formatter:off
//  bit   0.. 5  from      (6 bits, Square)
//  bit   6..11  to        (6 bits, Square)
//  bit  12..15  piece     (4 bits, Piece of the moving man)
//  bit  16..19  captured  (4 bits, Piece captured, PieceNone if none)
//  bit  20..22  type      (3 bits, MoveType)
//  @formatter:on
//
// The zero value (from=A1, to=A1, piece=NULL, captured=NULL, type=NORMAL)
// is the sentinel "no move". Equality between two Move values is plain
// integer equality.
type Move uint32

const (
	fromShift     = 0
	toShift       = 6
	pieceShift    = 12
	capturedShift = 16
	typeShift     = 20

	fromMask     = uint32(0b111111) << fromShift
	toMask       = uint32(0b111111) << toShift
	pieceMask    = uint32(0b1111) << pieceShift
	capturedMask = uint32(0b1111) << capturedShift
	typeMask     = uint32(0b111) << typeShift
)

// MoveType enumerates the eight kinds of move the packed Move can encode.
type MoveType uint8

const (
	Normal MoveType = iota
	ShortCastling
	LongCastling
	EnPassant
	PromotionQueen
	PromotionRook
	PromotionBishop
	PromotionKnight
)

// IsPromotion reports whether mt is one of the four promotion variants.
func (mt MoveType) IsPromotion() bool {
	return mt >= PromotionQueen
}

// PromotionPieceType returns the piece type a PromotionX move type
// promotes to. Panics if mt is not a promotion type - callers are
// expected to check IsPromotion first.
func (mt MoveType) PromotionPieceType() PieceType {
	switch mt {
	case PromotionQueen:
		return Queen
	case PromotionRook:
		return Rook
	case PromotionBishop:
		return Bishop
	case PromotionKnight:
		return Knight
	default:
		panic("not a promotion move type")
	}
}

// MoveNone is the sentinel "no move" value.
const MoveNone Move = 0

// NewMove packs a move record from its fields.
func NewMove(from, to Square, piece, captured Piece, mt MoveType) Move {
	return Move(uint32(from)<<fromShift |
		uint32(to)<<toShift |
		uint32(piece)<<pieceShift |
		uint32(captured)<<capturedShift |
		uint32(mt)<<typeShift)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((uint32(m) & fromMask) >> fromShift)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((uint32(m) & toMask) >> toShift)
}

// Piece returns the piece making the move.
func (m Move) Piece() Piece {
	return Piece((uint32(m) & pieceMask) >> pieceShift)
}

// Captured returns the piece captured by the move, PieceNone if none.
func (m Move) Captured() Piece {
	return Piece((uint32(m) & capturedMask) >> capturedShift)
}

// IsCapture reports whether the move captures a piece, including en
// passant.
func (m Move) IsCapture() bool {
	return m.Captured() != PieceNone
}

// Type returns the move's MoveType.
func (m Move) Type() MoveType {
	return MoveType((uint32(m) & typeMask) >> typeShift)
}

// IsValid reports whether m is anything other than the null move.
func (m Move) IsValid() bool {
	return m != MoveNone
}

// String renders m in pure algebraic coordinate notation (PACN), e.g.
// "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveNone {
		return "-"
	}
	var sb strings.Builder
	sb.WriteString(m.From().String())
	sb.WriteString(m.To().String())
	if t := m.Type(); t.IsPromotion() {
		sb.WriteString(strings.ToLower(t.PromotionPieceType().Char()))
	}
	return sb.String()
}

// StringBits renders the raw bit layout of m, mainly useful when
// debugging move packing.
func (m Move) StringBits() string {
	const width = 23
	v := uint32(m)
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		if v&(1<<(width-1-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}
