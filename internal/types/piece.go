//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package types

// Piece identifies a chess man of a given color. NULL is 0, the six white
// pieces (King, Queen, Rook, Bishop, Knight, Pawn) occupy 1..6 and the six
// black pieces occupy 7..12 in the same order.
type Piece int8

const (
	PieceNone Piece = 0

	WhiteKing   Piece = 1
	WhiteQueen  Piece = 2
	WhiteRook   Piece = 3
	WhiteBishop Piece = 4
	WhiteKnight Piece = 5
	WhitePawn   Piece = 6

	BlackKing   Piece = 7
	BlackQueen  Piece = 8
	BlackRook   Piece = 9
	BlackBishop Piece = 10
	BlackKnight Piece = 11
	BlackPawn   Piece = 12

	PieceLength Piece = 13
)

// MakePiece builds the Piece for the given color and piece type. PtNone
// always yields PieceNone regardless of color.
func MakePiece(c Color, pt PieceType) Piece {
	if pt == PtNone {
		return PieceNone
	}
	return Piece(int(pt) + int(c)*6)
}

// IsValid checks if p is a valid, non-empty piece code.
func (p Piece) IsValid() bool {
	return p > PieceNone && p < PieceLength
}

// ColorOf returns the color of p. Only meaningful when p != PieceNone.
func (p Piece) ColorOf() Color {
	if p <= WhitePawn {
		return White
	}
	return Black
}

// TypeOf returns the piece type of p, PtNone for PieceNone.
func (p Piece) TypeOf() PieceType {
	if p == PieceNone {
		return PtNone
	}
	if p <= WhitePawn {
		return PieceType(p)
	}
	return PieceType(p - 6)
}

// ValueOf returns the static material value of p.
func (p Piece) ValueOf() Value {
	return p.TypeOf().ValueOf()
}

// PieceFromChar returns the Piece denoted by a single FEN piece letter
// ("K","q",...), or PieceNone if s is not exactly one recognized letter.
func PieceFromChar(s string) Piece {
	if len(s) != 1 {
		return PieceNone
	}
	switch s[0] {
	case 'K':
		return WhiteKing
	case 'Q':
		return WhiteQueen
	case 'R':
		return WhiteRook
	case 'B':
		return WhiteBishop
	case 'N':
		return WhiteKnight
	case 'P':
		return WhitePawn
	case 'k':
		return BlackKing
	case 'q':
		return BlackQueen
	case 'r':
		return BlackRook
	case 'b':
		return BlackBishop
	case 'n':
		return BlackKnight
	case 'p':
		return BlackPawn
	default:
		return PieceNone
	}
}

var pieceToChar = [PieceLength]string{
	"-",
	"K", "Q", "R", "B", "N", "P",
	"k", "q", "r", "b", "n", "p",
}

// Char returns the single FEN letter for p, "-" for PieceNone.
func (p Piece) Char() string {
	return pieceToChar[p]
}

// String is an alias of Char, matching the display convention used
// throughout the rest of the package for small ordinal types.
func (p Piece) String() string {
	return p.Char()
}
