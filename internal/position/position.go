//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package position implements the bitboard board representation: piece
// placement, incremental Zobrist hashing, make/unmake, check detection,
// and FEN round-tripping (§3, §4.3, §4.4).
package position

import (
	"strings"

	"github.com/frankkopp/chesscore/internal/types"
	"github.com/frankkopp/chesscore/internal/zobrist"
)

// stateRecord is the undo-stack entry pushed by DoMove and popped by
// UndoMove: everything make/unmake needs to restore bit-for-bit that
// isn't already recoverable from the move itself.
type stateRecord struct {
	move             types.Move
	captured         types.Piece
	whiteCastling    types.CastlingRights
	blackCastling    types.CastlingRights
	epFile           types.EnPassantFile
	fiftyMoveClock   int
	checkers         types.Bitboard
	key              types.Key
	pawnKey          types.Key
	prevRepetition   []types.Key
}

// Position is the full mutable board state a search worker owns. It is
// never shared across goroutines; each worker clones the root Position
// (via Copy) before searching its own subtree.
type Position struct {
	pieceBb  [types.PieceLength]types.Bitboard
	occupied [2]types.Bitboard
	allOcc   types.Bitboard
	board    [64]types.Piece

	sideToMove    types.Color
	castling      [2]types.CastlingRights
	epFile        types.EnPassantFile
	fiftyMove     int
	halfMoveIndex int

	key     types.Key
	pawnKey types.Key

	checkers types.Bitboard

	undo       []stateRecord
	repetition []types.Key
}

// New returns the standard chess starting position.
func New() *Position {
	p, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic("starting position FEN must always parse: " + err.Error())
	}
	return p
}

// Copy returns an independent deep copy of p, suitable for handing to a
// new search worker (§5: the Position is never shared across threads).
func (p *Position) Copy() *Position {
	c := *p
	c.undo = append([]stateRecord(nil), p.undo...)
	c.repetition = append([]types.Key(nil), p.repetition...)
	return &c
}

// ///////////////////////////////////////
// Accessors
// ///////////////////////////////////////

// PieceBb returns the bitboard of all squares occupied by piece.
func (p *Position) PieceBb(piece types.Piece) types.Bitboard { return p.pieceBb[piece] }

// Occupied returns the combined bitboard for all pieces of color c.
func (p *Position) Occupied(c types.Color) types.Bitboard { return p.occupied[c] }

// AllOccupied returns the bitboard of every occupied square.
func (p *Position) AllOccupied() types.Bitboard { return p.allOcc }

// PieceAt returns the piece on sq, PieceNone if empty.
func (p *Position) PieceAt(sq types.Square) types.Piece { return p.board[sq] }

// SideToMove returns the color on move.
func (p *Position) SideToMove() types.Color { return p.sideToMove }

// Castling returns the remaining castling rights for color c.
func (p *Position) Castling(c types.Color) types.CastlingRights { return p.castling[c] }

// EnPassantFile returns the currently available en-passant file, or
// types.EpNone.
func (p *Position) EnPassantFile() types.EnPassantFile { return p.epFile }

// FiftyMoveClock returns the half-moves played since the last pawn move
// or capture.
func (p *Position) FiftyMoveClock() int { return p.fiftyMove }

// HalfMoveIndex returns the ply count since the start of the game.
func (p *Position) HalfMoveIndex() int { return p.halfMoveIndex }

// Key returns the current engine Zobrist hash.
func (p *Position) Key() types.Key { return p.key }

// PawnKey returns the Zobrist hash restricted to pawns and kings.
func (p *Position) PawnKey() types.Key { return p.pawnKey }

// Checkers returns the bitboard of enemy pieces giving check to the
// side to move's king right now.
func (p *Position) Checkers() types.Bitboard { return p.checkers }

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c types.Color) types.Square {
	return p.pieceBb[types.MakePiece(c, types.King)].Lsb()
}

// ///////////////////////////////////////
// Board mutation primitives
// ///////////////////////////////////////

func (p *Position) putPiece(piece types.Piece, sq types.Square) {
	p.pieceBb[piece] = p.pieceBb[piece].PushSquare(sq)
	p.board[sq] = piece
	c := piece.ColorOf()
	p.occupied[c] = p.occupied[c].PushSquare(sq)
	p.allOcc = p.allOcc.PushSquare(sq)
	p.key ^= zobrist.Piece(piece, sq)
	if pt := piece.TypeOf(); pt == types.Pawn || pt == types.King {
		p.pawnKey ^= zobrist.Piece(piece, sq)
	}
}

func (p *Position) removePiece(piece types.Piece, sq types.Square) {
	p.pieceBb[piece] = p.pieceBb[piece].PopSquare(sq)
	p.board[sq] = types.PieceNone
	c := piece.ColorOf()
	p.occupied[c] = p.occupied[c].PopSquare(sq)
	p.allOcc = p.allOcc.PopSquare(sq)
	p.key ^= zobrist.Piece(piece, sq)
	if pt := piece.TypeOf(); pt == types.Pawn || pt == types.King {
		p.pawnKey ^= zobrist.Piece(piece, sq)
	}
}

func (p *Position) movePiece(piece types.Piece, from, to types.Square) {
	p.removePiece(piece, from)
	p.putPiece(piece, to)
}

// epHashWord returns the Zobrist word contributed by en-passant file ef
// when the given color would be the one capturing, or zero if ef is
// EpNone or no pawn of that color actually attacks the capture target
// (§4.3's "only hashed when a capturing pawn actually exists" rule).
func (p *Position) epHashWord(ef types.EnPassantFile, capturingColor types.Color) types.Key {
	if !ef.IsValid() {
		return 0
	}
	target := ef.TargetSquare(capturingColor)
	attackerSquares := types.GetPawnAttacks(capturingColor.Flip(), target)
	if attackerSquares&p.pieceBb[types.MakePiece(capturingColor, types.Pawn)] == 0 {
		return 0
	}
	return zobrist.EnPassant(ef)
}

// rook home squares, used by castling-rights maintenance and rook
// relocation during castling itself.
const (
	whiteRookShortSq = types.SqH1
	whiteRookLongSq  = types.SqA1
	blackRookShortSq = types.SqH8
	blackRookLongSq  = types.SqA8
)

// clearCastlingRightsTouching revokes whichever castling rights are
// lost because a king or home-corner rook just left (or was captured
// on) a given square - covers both the mover and the captured piece.
func (p *Position) clearCastlingRightsTouching(sq types.Square) {
	switch sq {
	case whiteRookShortSq:
		p.castling[types.White] = p.castling[types.White].Remove(types.CastlingShort)
	case whiteRookLongSq:
		p.castling[types.White] = p.castling[types.White].Remove(types.CastlingLong)
	case blackRookShortSq:
		p.castling[types.Black] = p.castling[types.Black].Remove(types.CastlingShort)
	case blackRookLongSq:
		p.castling[types.Black] = p.castling[types.Black].Remove(types.CastlingLong)
	}
}

// ///////////////////////////////////////
// Make / unmake (§4.4)
// ///////////////////////////////////////

// DoMove applies m to the position, pushing enough state onto the undo
// stack that UndoMove can restore the position bit-for-bit.
func (p *Position) DoMove(m types.Move) {
	rec := stateRecord{
		move:           m,
		captured:       m.Captured(),
		whiteCastling:  p.castling[types.White],
		blackCastling:  p.castling[types.Black],
		epFile:         p.epFile,
		fiftyMoveClock: p.fiftyMove,
		checkers:       p.checkers,
		key:            p.key,
		pawnKey:        p.pawnKey,
		prevRepetition: append([]types.Key(nil), p.repetition...),
	}
	p.undo = append(p.undo, rec)

	from, to := m.From(), m.To()
	movedPiece := m.Piece()
	captured := m.Captured()
	mover := p.sideToMove

	// XOR out the old en-passant contribution before anything else
	// changes the pawn structure it depends on.
	p.key ^= p.epHashWord(p.epFile, mover)

	irreversible := captured != types.PieceNone || movedPiece.TypeOf() == types.Pawn

	switch m.Type() {
	case types.EnPassant:
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		p.removePiece(captured, capSq)
		p.movePiece(movedPiece, from, to)
	case types.ShortCastling:
		p.movePiece(movedPiece, from, to)
		if mover == types.White {
			p.movePiece(types.WhiteRook, whiteRookShortSq, types.SqF1)
		} else {
			p.movePiece(types.BlackRook, blackRookShortSq, types.SqF8)
		}
	case types.LongCastling:
		p.movePiece(movedPiece, from, to)
		if mover == types.White {
			p.movePiece(types.WhiteRook, whiteRookLongSq, types.SqD1)
		} else {
			p.movePiece(types.BlackRook, blackRookLongSq, types.SqD8)
		}
	default:
		if captured != types.PieceNone {
			p.removePiece(captured, to)
		}
		p.movePiece(movedPiece, from, to)
		if t := m.Type(); t.IsPromotion() {
			p.removePiece(movedPiece, to)
			p.putPiece(types.MakePiece(mover, t.PromotionPieceType()), to)
		}
	}

	// Castling-rights maintenance: king moves clear both rights of the
	// mover; a rook moving from, or being captured on, a home corner
	// clears that one right; castling itself is covered because the
	// king move above always fires for ShortCastling/LongCastling too.
	oldCastlingKeyIdx := types.CombinedIndex(rec.whiteCastling, rec.blackCastling)
	if movedPiece.TypeOf() == types.King {
		p.castling[mover] = types.CastlingNone
	}
	p.clearCastlingRightsTouching(from)
	p.clearCastlingRightsTouching(to)
	newCastlingKeyIdx := types.CombinedIndex(p.castling[types.White], p.castling[types.Black])
	if newCastlingKeyIdx != oldCastlingKeyIdx {
		irreversible = true
		p.key ^= zobrist.Castling(oldCastlingKeyIdx)
		p.key ^= zobrist.Castling(newCastlingKeyIdx)
	}

	if movedPiece.TypeOf() == types.Pawn && types.SquareDistance(from, to) == 2 &&
		from.FileOf() == to.FileOf() {
		p.epFile = types.EnPassantFileOf(from.FileOf())
	} else {
		p.epFile = types.EpNone
	}
	p.key ^= p.epHashWord(p.epFile, mover.Flip())

	if irreversible {
		p.fiftyMove = 0
		p.repetition = p.repetition[:0]
	} else {
		p.fiftyMove++
	}

	p.sideToMove = mover.Flip()
	p.key ^= zobrist.NextPlayer()
	p.halfMoveIndex++

	p.checkers = p.computeCheckers()

	p.repetition = append(p.repetition, p.key)
}

// UndoMove reverses the most recently applied move, restoring the
// position bit-for-bit including Key and PawnKey.
func (p *Position) UndoMove() {
	n := len(p.undo)
	rec := p.undo[n-1]
	p.undo = p.undo[:n-1]

	m := rec.move
	from, to := m.From(), m.To()
	movedPiece := m.Piece()
	mover := p.sideToMove.Flip()

	switch m.Type() {
	case types.EnPassant:
		p.movePiece(movedPiece, to, from)
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		p.putPiece(rec.captured, capSq)
	case types.ShortCastling:
		if mover == types.White {
			p.movePiece(types.WhiteRook, types.SqF1, whiteRookShortSq)
		} else {
			p.movePiece(types.BlackRook, types.SqF8, blackRookShortSq)
		}
		p.movePiece(movedPiece, to, from)
	case types.LongCastling:
		if mover == types.White {
			p.movePiece(types.WhiteRook, types.SqD1, whiteRookLongSq)
		} else {
			p.movePiece(types.BlackRook, types.SqD8, blackRookLongSq)
		}
		p.movePiece(movedPiece, to, from)
	default:
		if t := m.Type(); t.IsPromotion() {
			p.removePiece(types.MakePiece(mover, t.PromotionPieceType()), to)
			p.putPiece(movedPiece, to)
		}
		p.movePiece(movedPiece, to, from)
		if rec.captured != types.PieceNone {
			p.putPiece(rec.captured, to)
		}
	}

	p.sideToMove = mover
	p.castling[types.White] = rec.whiteCastling
	p.castling[types.Black] = rec.blackCastling
	p.epFile = rec.epFile
	p.fiftyMove = rec.fiftyMoveClock
	p.checkers = rec.checkers
	p.key = rec.key
	p.pawnKey = rec.pawnKey
	p.repetition = rec.prevRepetition
	p.halfMoveIndex--
}

// DoNullMove makes the "pass" move used by null-move search pruning: it
// flips side to move and clears en passant, without touching any piece.
func (p *Position) DoNullMove() {
	rec := stateRecord{
		epFile:         p.epFile,
		fiftyMoveClock: p.fiftyMove,
		checkers:       p.checkers,
		key:            p.key,
		pawnKey:        p.pawnKey,
		prevRepetition: append([]types.Key(nil), p.repetition...),
	}
	p.undo = append(p.undo, rec)

	p.key ^= p.epHashWord(p.epFile, p.sideToMove)
	p.epFile = types.EpNone
	p.sideToMove = p.sideToMove.Flip()
	p.key ^= zobrist.NextPlayer()
	p.halfMoveIndex++
	p.checkers = p.computeCheckers()
	p.repetition = append(p.repetition, p.key)
}

// UndoNullMove reverses DoNullMove.
func (p *Position) UndoNullMove() {
	n := len(p.undo)
	rec := p.undo[n-1]
	p.undo = p.undo[:n-1]

	p.sideToMove = p.sideToMove.Flip()
	p.epFile = rec.epFile
	p.fiftyMove = rec.fiftyMoveClock
	p.checkers = rec.checkers
	p.key = rec.key
	p.pawnKey = rec.pawnKey
	p.repetition = rec.prevRepetition
	p.halfMoveIndex--
}

// ///////////////////////////////////////
// Attacks, check, draws (§4.4, §4.5, §8)
// ///////////////////////////////////////

// IsAttacked reports whether sq is attacked by any piece of color by.
func (p *Position) IsAttacked(sq types.Square, by types.Color) bool {
	occ := p.allOcc
	if types.GetPawnAttacks(by.Flip(), sq)&p.pieceBb[types.MakePiece(by, types.Pawn)] != 0 {
		return true
	}
	if types.GetKnightAttacks(sq)&p.pieceBb[types.MakePiece(by, types.Knight)] != 0 {
		return true
	}
	if types.GetKingAttacks(sq)&p.pieceBb[types.MakePiece(by, types.King)] != 0 {
		return true
	}
	bishopsQueens := p.pieceBb[types.MakePiece(by, types.Bishop)] | p.pieceBb[types.MakePiece(by, types.Queen)]
	if types.GetAttacksBb(types.Bishop, sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.pieceBb[types.MakePiece(by, types.Rook)] | p.pieceBb[types.MakePiece(by, types.Queen)]
	if types.GetAttacksBb(types.Rook, sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// isAttackedExcluding is IsAttacked but with excludeOcc removed from the
// occupancy before testing - used to compute where the enemy king may
// not legally step because it would still be attacked "through" the
// square it is fleeing from a slider along the check ray.
func (p *Position) isAttackedExcluding(sq types.Square, by types.Color, excludeOcc types.Bitboard) bool {
	occ := p.allOcc &^ excludeOcc
	if types.GetPawnAttacks(by.Flip(), sq)&p.pieceBb[types.MakePiece(by, types.Pawn)] != 0 {
		return true
	}
	if types.GetKnightAttacks(sq)&p.pieceBb[types.MakePiece(by, types.Knight)] != 0 {
		return true
	}
	if types.GetKingAttacks(sq)&p.pieceBb[types.MakePiece(by, types.King)] != 0 {
		return true
	}
	bishopsQueens := p.pieceBb[types.MakePiece(by, types.Bishop)] | p.pieceBb[types.MakePiece(by, types.Queen)]
	if types.GetAttacksBb(types.Bishop, sq, occ)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := p.pieceBb[types.MakePiece(by, types.Rook)] | p.pieceBb[types.MakePiece(by, types.Queen)]
	if types.GetAttacksBb(types.Rook, sq, occ)&rooksQueens != 0 {
		return true
	}
	return false
}

// AttacksExcludingKing computes enemy attacks on sq with the side to
// move's own king removed from the occupancy, as required for legal
// king-move generation (§4.5): otherwise a king fleeing straight back
// along a rook's checking ray would wrongly appear safe.
func (p *Position) AttacksExcludingKing(sq types.Square, by types.Color, ownKingSq types.Square) bool {
	return p.isAttackedExcluding(sq, by, ownKingSq.Bb())
}

func (p *Position) computeCheckers() types.Bitboard {
	kingSq := p.KingSquare(p.sideToMove)
	enemy := p.sideToMove.Flip()
	var checkers types.Bitboard

	checkers |= types.GetPawnAttacks(p.sideToMove.Flip(), kingSq) & p.pieceBb[types.MakePiece(enemy, types.Pawn)]
	checkers |= types.GetKnightAttacks(kingSq) & p.pieceBb[types.MakePiece(enemy, types.Knight)]
	bishopsQueens := p.pieceBb[types.MakePiece(enemy, types.Bishop)] | p.pieceBb[types.MakePiece(enemy, types.Queen)]
	checkers |= types.GetAttacksBb(types.Bishop, kingSq, p.allOcc) & bishopsQueens
	rooksQueens := p.pieceBb[types.MakePiece(enemy, types.Rook)] | p.pieceBb[types.MakePiece(enemy, types.Queen)]
	checkers |= types.GetAttacksBb(types.Rook, kingSq, p.allOcc) & rooksQueens

	return checkers
}

// HasCheck reports whether the side to move is currently in check.
func (p *Position) HasCheck() bool {
	return p.checkers != types.BbZero
}

// GivesCheck reports whether making m would check the enemy king. It
// answers by playing m with DoMove, reading HasCheck and restoring the
// position with UndoMove; there is no check test that works without
// making the move.
func (p *Position) GivesCheck(m types.Move) bool {
	p.DoMove(m)
	check := p.HasCheck()
	p.UndoMove()
	return check
}

// IsCapturingMove reports whether m captures a piece.
func (p *Position) IsCapturingMove(m types.Move) bool {
	return m.IsCapture()
}

// CheckRepetitions reports whether the current position's key has
// occurred at least n times in the repetition list accumulated since
// the last irreversible move (threefold repetition uses n=3).
func (p *Position) CheckRepetitions(n int) bool {
	count := 0
	for _, k := range p.repetition {
		if k == p.key {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}

// HasInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate (K vs K, K+N vs K, K+B vs K, or
// same-colored-bishops-only K+B vs K+B).
func (p *Position) HasInsufficientMaterial() bool {
	nonKingPieces := func(c types.Color) (knights, bishops, rooksQueensPawns int, bishopSquares []types.Square) {
		knights = p.pieceBb[types.MakePiece(c, types.Knight)].PopCount()
		bb := p.pieceBb[types.MakePiece(c, types.Bishop)]
		for bb != 0 {
			var sq types.Square
			sq, bb = bb.PopLsb()
			bishopSquares = append(bishopSquares, sq)
		}
		bishops = len(bishopSquares)
		rooksQueensPawns = p.pieceBb[types.MakePiece(c, types.Rook)].PopCount() +
			p.pieceBb[types.MakePiece(c, types.Queen)].PopCount() +
			p.pieceBb[types.MakePiece(c, types.Pawn)].PopCount()
		return
	}

	wN, wB, wHeavy, wBSq := nonKingPieces(types.White)
	bN, bB, bHeavy, bBSq := nonKingPieces(types.Black)

	if wHeavy > 0 || bHeavy > 0 {
		return false
	}
	wMinor := wN + wB
	bMinor := bN + bB
	if wMinor == 0 && bMinor == 0 {
		return true
	}
	if wMinor == 1 && bMinor == 0 || wMinor == 0 && bMinor == 1 {
		return true
	}
	if wMinor == 1 && bMinor == 1 && wN == 0 && bN == 0 {
		return squareColor(wBSq[0]) == squareColor(bBSq[0])
	}
	return false
}

func squareColor(sq types.Square) int {
	return (int(sq.FileOf()) + int(sq.RankOf())) & 1
}

// String renders the position as its canonical FEN string.
func (p *Position) String() string {
	return p.FEN()
}

// StringBoard renders an ASCII board diagram, rank 8 on top, useful for
// debug logging and test failure messages.
func (p *Position) StringBoard() string {
	var sb strings.Builder
	for r := types.Rank8; ; r-- {
		sb.WriteString(r.String())
		sb.WriteString(" ")
		for f := types.FileA; f <= types.FileH; f++ {
			sq := types.SquareOf(f, r)
			sb.WriteString(p.board[sq].Char())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
		if r == types.Rank1 {
			break
		}
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
