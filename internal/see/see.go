//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package see implements static exchange evaluation (§4.6): the swap-
// list algorithm that values a capture sequence on one square without
// needing to actually search it, re-adding x-ray attackers as each
// blocking piece is removed from the occupancy.
package see

import (
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

// Evaluate returns the static exchange value of playing m: the net
// material gained (or lost, if negative) once both sides trade every
// piece they can onto m.To() in least-valuable-attacker order.
func Evaluate(p *position.Position, m types.Move) types.Value {
	if m.Type() == types.EnPassant {
		// The capturing pawn is never the least valuable attacker of
		// its own destination square, so a full swap-list evaluation
		// would just confirm what's obvious: this is always at worst
		// an even trade. Treat it as a straightforward pawn capture.
		return types.Pawn.ValueOf()
	}

	var gain [32]types.Value
	ply := 0
	toSquare := m.To()
	fromSquare := m.From()
	movedPiece := m.Piece()
	nextPlayer := p.SideToMove().Flip()

	occupied := p.AllOccupied()
	remainingAttackers := AttacksTo(p, toSquare, occupied, types.White) | AttacksTo(p, toSquare, occupied, types.Black)

	gain[0] = m.Captured().ValueOf()

	for {
		ply++
		if m.Type().IsPromotion() {
			gain[ply] = m.Type().PromotionPieceType().ValueOf() - types.Pawn.ValueOf() - gain[ply-1]
		} else {
			gain[ply] = movedPiece.ValueOf() - gain[ply-1]
		}

		if max(-gain[ply-1], gain[ply]) < 0 {
			break
		}

		remainingAttackers = remainingAttackers.PopSquare(fromSquare)
		occupied = occupied.PopSquare(fromSquare)

		remainingAttackers |= revealedAttacks(p, toSquare, occupied, types.White) |
			revealedAttacks(p, toSquare, occupied, types.Black)

		fromSquare = leastValuableAttacker(p, remainingAttackers, nextPlayer)
		if fromSquare == types.SqNone {
			break
		}
		movedPiece = p.PieceAt(fromSquare)
		nextPlayer = nextPlayer.Flip()
	}

	ply--
	for ply > 0 {
		gain[ply-1] = -max(-gain[ply-1], gain[ply])
		ply--
	}

	return gain[0]
}

// AttacksTo returns every square occupied by a piece of color that
// attacks target, given occupied as the current board occupancy (so
// callers can evaluate against a temporarily-reduced board for x-ray
// purposes).
func AttacksTo(p *position.Position, target types.Square, occupied types.Bitboard, color types.Color) types.Bitboard {
	return (types.GetPawnAttacks(color.Flip(), target) & p.PieceBb(types.MakePiece(color, types.Pawn))) |
		(types.GetKnightAttacks(target) & p.PieceBb(types.MakePiece(color, types.Knight))) |
		(types.GetKingAttacks(target) & p.PieceBb(types.MakePiece(color, types.King))) |
		(types.GetAttacksBb(types.Rook, target, occupied) & (p.PieceBb(types.MakePiece(color, types.Rook)) | p.PieceBb(types.MakePiece(color, types.Queen)))) |
		(types.GetAttacksBb(types.Bishop, target, occupied) & (p.PieceBb(types.MakePiece(color, types.Bishop)) | p.PieceBb(types.MakePiece(color, types.Queen))))
}

// revealedAttacks returns only the slider attacks on target given the
// reduced occupancy - sliders are the only piece type whose attacks
// can be "revealed" by removing a blocker, so non-sliders are skipped.
func revealedAttacks(p *position.Position, target types.Square, occupied types.Bitboard, color types.Color) types.Bitboard {
	return (types.GetAttacksBb(types.Rook, target, occupied) & (p.PieceBb(types.MakePiece(color, types.Rook)) | p.PieceBb(types.MakePiece(color, types.Queen))) & occupied) |
		(types.GetAttacksBb(types.Bishop, target, occupied) & (p.PieceBb(types.MakePiece(color, types.Bishop)) | p.PieceBb(types.MakePiece(color, types.Queen))) & occupied)
}

// leastValuableAttacker returns the square of color's cheapest attacker
// within bb, breaking ties by least-significant-bit, or SqNone if color
// has no attacker in bb at all.
func leastValuableAttacker(p *position.Position, bb types.Bitboard, color types.Color) types.Square {
	for _, pt := range []types.PieceType{types.Pawn, types.Knight, types.Bishop, types.Rook, types.Queen, types.King} {
		if attackers := bb & p.PieceBb(types.MakePiece(color, pt)); attackers != 0 {
			return attackers.Lsb()
		}
	}
	return types.SqNone
}

func max(x, y types.Value) types.Value {
	if x > y {
		return x
	}
	return y
}
