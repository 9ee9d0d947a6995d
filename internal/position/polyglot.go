//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package position

import (
	"github.com/frankkopp/chesscore/internal/types"
	"github.com/frankkopp/chesscore/internal/zobrist"
)

// PolyglotKey computes the position's Polyglot opening-book lookup key
// (§4.3, §6) from scratch. Unlike Key(), it is not maintained
// incrementally through DoMove/UndoMove - a book probe happens at most
// once per search root, not once per node, so recomputing on demand
// from the board is simpler and exercises no hot path.
func (p *Position) PolyglotKey() types.Key {
	var key types.Key

	for sq := types.SqA1; sq < types.SqNone; sq++ {
		piece := p.board[sq]
		if piece == types.PieceNone {
			continue
		}
		key ^= zobrist.PolyglotPiece(piece, sq)
	}

	if p.castling[types.White].Has(types.CastlingShort) {
		key ^= zobrist.PolyglotCastling(zobrist.PolyCastleWhiteShort)
	}
	if p.castling[types.White].Has(types.CastlingLong) {
		key ^= zobrist.PolyglotCastling(zobrist.PolyCastleWhiteLong)
	}
	if p.castling[types.Black].Has(types.CastlingShort) {
		key ^= zobrist.PolyglotCastling(zobrist.PolyCastleBlackShort)
	}
	if p.castling[types.Black].Has(types.CastlingLong) {
		key ^= zobrist.PolyglotCastling(zobrist.PolyCastleBlackLong)
	}

	key ^= p.polyglotEnPassantWord(p.epFile, p.sideToMove)

	if p.sideToMove == types.White {
		key ^= zobrist.PolyglotTurn()
	}

	return key
}

// polyglotEnPassantWord mirrors epHashWord's "only hashed when a
// capturing pawn actually exists" rule (§4.3), against the separate
// Polyglot key table rather than the engine key table.
func (p *Position) polyglotEnPassantWord(ef types.EnPassantFile, capturingColor types.Color) types.Key {
	if !ef.IsValid() {
		return 0
	}
	target := ef.TargetSquare(capturingColor)
	attackerSquares := types.GetPawnAttacks(capturingColor.Flip(), target)
	if attackerSquares&p.pieceBb[types.MakePiece(capturingColor, types.Pawn)] == 0 {
		return 0
	}
	return zobrist.PolyglotEnPassant(ef)
}
