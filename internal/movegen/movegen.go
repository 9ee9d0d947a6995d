//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package movegen generates legal moves from a position (§4.5): pawn
// pushes/captures/promotions/en passant, knight/bishop/rook/queen
// attacks via the magic-bitboard tables in internal/types, king moves,
// and castling, each staged the way the teacher's move generator stages
// them before a uniform do/undo legality filter removes anything that
// would leave the mover's own king in check.
package movegen

import (
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

// GenerateMoves returns every legal move available to the side to move
// in pos. Pseudo-legal candidates are generated piece type by piece
// type and then filtered by actually playing each one and checking
// whether the mover's own king ends up attacked - this uniformly
// handles pins, check evasion, and double check without needing
// separate staged logic for each (a move that fails to address a
// checker simply leaves the king attacked afterwards and is dropped).
func GenerateMoves(pos *position.Position) types.MoveList {
	pseudo := generatePseudoLegal(pos)
	legal := types.NewMoveList()
	mover := pos.SideToMove()
	kingSq := pos.KingSquare(mover)

	for _, m := range pseudo {
		pos.DoMove(m)
		effectiveKingSq := kingSq
		if m.Piece().TypeOf() == types.King {
			effectiveKingSq = m.To()
		}
		if !pos.IsAttacked(effectiveKingSq, pos.SideToMove()) {
			legal.PushBack(m)
		}
		pos.UndoMove()
	}
	return legal
}

// GenerateCaptures returns every legal capturing move (including
// promotions and en passant), the subset quiescence search walks.
func GenerateCaptures(pos *position.Position) types.MoveList {
	all := GenerateMoves(pos)
	captures := types.NewMoveList()
	for _, m := range all {
		if m.IsCapture() || m.Type().IsPromotion() {
			captures.PushBack(m)
		}
	}
	return captures
}

// GivesCheck reports whether m, if played, would check the opponent -
// a thin re-export of position.Position.GivesCheck kept here so
// callers that already import movegen for move generation don't also
// need to import position just for this one predicate.
func GivesCheck(pos *position.Position, m types.Move) bool {
	return pos.GivesCheck(m)
}

func generatePseudoLegal(pos *position.Position) types.MoveList {
	list := types.NewMoveList()
	mover := pos.SideToMove()
	enemy := mover.Flip()
	own := pos.Occupied(mover)
	theirs := pos.Occupied(enemy)
	occ := pos.AllOccupied()

	generatePawnMoves(pos, &list, mover, theirs, occ)
	generateKnightMoves(pos, &list, mover, own)
	generateSliderMoves(pos, &list, types.Bishop, mover, own, occ)
	generateSliderMoves(pos, &list, types.Rook, mover, own, occ)
	generateSliderMoves(pos, &list, types.Queen, mover, own, occ)
	generateKingMoves(pos, &list, mover, own)
	generateCastling(pos, &list, mover)

	return list
}

func generatePawnMoves(pos *position.Position, list *types.MoveList, mover types.Color, theirs types.Bitboard, occ types.Bitboard) {
	pawnPiece := types.MakePiece(mover, types.Pawn)
	pushDir := mover.PawnPushDirection()
	doublePushRank := mover.PawnDoublePushRankBb()
	promRank := mover.PromotionRankBb()

	bb := pos.PieceBb(pawnPiece)
	for bb != 0 {
		var from types.Square
		from, bb = bb.PopLsb()

		to := from.To(pushDir)
		if to.IsValid() && !occ.Has(to) {
			addPawnMoves(list, pawnPiece, from, to, types.PieceNone, promRank)
			to2 := to.To(pushDir)
			if to2.IsValid() && doublePushRank.Has(to2) && !occ.Has(to2) {
				list.PushBack(types.NewMove(from, to2, pawnPiece, types.PieceNone, types.Normal))
			}
		}

		attacks := types.GetPawnAttacks(mover, from) & theirs
		for attacks != 0 {
			var target types.Square
			target, attacks = attacks.PopLsb()
			captured := pos.PieceAt(target)
			addPawnMoves(list, pawnPiece, from, target, captured, promRank)
		}

		if ef := pos.EnPassantFile(); ef.IsValid() {
			epTarget := ef.TargetSquare(mover)
			if types.GetPawnAttacks(mover, from).Has(epTarget) {
				capSq := types.SquareOf(epTarget.FileOf(), from.RankOf())
				captured := pos.PieceAt(capSq)
				list.PushBack(types.NewMove(from, epTarget, pawnPiece, captured, types.EnPassant))
			}
		}
	}
}

func addPawnMoves(list *types.MoveList, piece types.Piece, from, to types.Square, captured types.Piece, promRank types.Bitboard) {
	if promRank.Has(to) {
		list.PushBack(types.NewMove(from, to, piece, captured, types.PromotionQueen))
		list.PushBack(types.NewMove(from, to, piece, captured, types.PromotionRook))
		list.PushBack(types.NewMove(from, to, piece, captured, types.PromotionBishop))
		list.PushBack(types.NewMove(from, to, piece, captured, types.PromotionKnight))
		return
	}
	list.PushBack(types.NewMove(from, to, piece, captured, types.Normal))
}

func generateKnightMoves(pos *position.Position, list *types.MoveList, mover types.Color, own types.Bitboard) {
	piece := types.MakePiece(mover, types.Knight)
	bb := pos.PieceBb(piece)
	for bb != 0 {
		var from types.Square
		from, bb = bb.PopLsb()
		attacks := types.GetKnightAttacks(from) &^ own
		for attacks != 0 {
			var to types.Square
			to, attacks = attacks.PopLsb()
			list.PushBack(types.NewMove(from, to, piece, pos.PieceAt(to), types.Normal))
		}
	}
}

func generateSliderMoves(pos *position.Position, list *types.MoveList, pt types.PieceType, mover types.Color, own, occ types.Bitboard) {
	piece := types.MakePiece(mover, pt)
	bb := pos.PieceBb(piece)
	for bb != 0 {
		var from types.Square
		from, bb = bb.PopLsb()
		attacks := types.GetAttacksBb(pt, from, occ) &^ own
		for attacks != 0 {
			var to types.Square
			to, attacks = attacks.PopLsb()
			list.PushBack(types.NewMove(from, to, piece, pos.PieceAt(to), types.Normal))
		}
	}
}

func generateKingMoves(pos *position.Position, list *types.MoveList, mover types.Color, own types.Bitboard) {
	piece := types.MakePiece(mover, types.King)
	from := pos.KingSquare(mover)
	attacks := types.GetKingAttacks(from) &^ own
	for attacks != 0 {
		var to types.Square
		to, attacks = attacks.PopLsb()
		list.PushBack(types.NewMove(from, to, piece, pos.PieceAt(to), types.Normal))
	}
}

type castlingSquares struct {
	kingFrom, kingTo, rookFrom types.Square
	betweenEmpty               types.Bitboard
	kingTransit                [2]types.Square
}

var (
	whiteShort = castlingSquares{types.SqE1, types.SqG1, types.SqH1, types.SqF1.Bb() | types.SqG1.Bb(), [2]types.Square{types.SqE1, types.SqF1}}
	whiteLong  = castlingSquares{types.SqE1, types.SqC1, types.SqA1, types.SqB1.Bb() | types.SqC1.Bb() | types.SqD1.Bb(), [2]types.Square{types.SqE1, types.SqD1}}
	blackShort = castlingSquares{types.SqE8, types.SqG8, types.SqH8, types.SqF8.Bb() | types.SqG8.Bb(), [2]types.Square{types.SqE8, types.SqF8}}
	blackLong  = castlingSquares{types.SqE8, types.SqC8, types.SqA8, types.SqB8.Bb() | types.SqC8.Bb() | types.SqD8.Bb(), [2]types.Square{types.SqE8, types.SqD8}}
)

func generateCastling(pos *position.Position, list *types.MoveList, mover types.Color) {
	if pos.HasCheck() {
		return
	}
	rights := pos.Castling(mover)
	occ := pos.AllOccupied()
	enemy := mover.Flip()

	tryOne := func(cs castlingSquares, mt types.MoveType) {
		if occ&cs.betweenEmpty != 0 {
			return
		}
		for _, sq := range cs.kingTransit {
			if pos.IsAttacked(sq, enemy) {
				return
			}
		}
		if pos.IsAttacked(cs.kingTo, enemy) {
			return
		}
		piece := types.MakePiece(mover, types.King)
		list.PushBack(types.NewMove(cs.kingFrom, cs.kingTo, piece, types.PieceNone, mt))
	}

	if mover == types.White {
		if rights.Has(types.CastlingShort) {
			tryOne(whiteShort, types.ShortCastling)
		}
		if rights.Has(types.CastlingLong) {
			tryOne(whiteLong, types.LongCastling)
		}
	} else {
		if rights.Has(types.CastlingShort) {
			tryOne(blackShort, types.ShortCastling)
		}
		if rights.Has(types.CastlingLong) {
			tryOne(blackLong, types.LongCastling)
		}
	}
}
