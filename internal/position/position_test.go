package position

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/types"
)

func TestStartPositionFEN(t *testing.T) {
	p := New()
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := p.FEN(); got != want {
		t.Fatalf("FEN() = %q, want %q", got, want)
	}
	if p.SideToMove() != types.White {
		t.Fatalf("side to move = %v, want White", p.SideToMove())
	}
	if p.Castling(types.White) != types.CastlingAll || p.Castling(types.Black) != types.CastlingAll {
		t.Fatalf("castling rights not full at start")
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		p, err := FromFEN(fen)
		if err != nil {
			t.Fatalf("FromFEN(%q): %v", fen, err)
		}
		if got := p.FEN(); got != fen {
			t.Errorf("round trip: FromFEN(%q).FEN() = %q", fen, got)
		}
	}
}

func TestDoUndoMoveIsIdentity(t *testing.T) {
	p := New()
	before := *p
	m := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	p.DoMove(m)
	if p.FEN() == before.FEN() {
		t.Fatalf("DoMove had no effect")
	}
	p.UndoMove()
	if p.FEN() != before.FEN() {
		t.Fatalf("UndoMove did not restore FEN: got %q want %q", p.FEN(), before.FEN())
	}
	if p.Key() != before.Key() {
		t.Fatalf("UndoMove did not restore Key")
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	// Black rook about to be captured on h8 by a white bishop; white
	// should lose nothing, but black's short-castling right should
	// disappear once the rook is gone.
	p, err := FromFEN("rnbqk2r/pppppp1p/5B2/8/8/8/PPPPPPPP/RNBQK1NR w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m := types.NewMove(types.SqF6, types.SqH8, types.WhiteBishop, types.BlackRook, types.Normal)
	p.DoMove(m)
	if p.Castling(types.Black).Has(types.CastlingShort) {
		t.Fatalf("black short castling should be lost after rook capture on h8")
	}
	p.UndoMove()
	if !p.Castling(types.Black).Has(types.CastlingShort) {
		t.Fatalf("undo should restore black short castling")
	}
}

func TestEnPassantCapture(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatal(err)
	}
	m := types.NewMove(types.SqE5, types.SqD6, types.WhitePawn, types.BlackPawn, types.EnPassant)
	p.DoMove(m)
	if p.PieceAt(types.SqD5) != types.PieceNone {
		t.Fatalf("captured pawn should be removed from d5")
	}
	if p.PieceAt(types.SqD6) != types.WhitePawn {
		t.Fatalf("capturing pawn should land on d6")
	}
	p.UndoMove()
	if p.PieceAt(types.SqD5) != types.BlackPawn || p.PieceAt(types.SqE5) != types.WhitePawn {
		t.Fatalf("undo should restore both pawns")
	}
}

func TestHasInsufficientMaterial(t *testing.T) {
	p, err := FromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !p.HasInsufficientMaterial() {
		t.Fatalf("K vs K should be insufficient material")
	}

	p, err = FromFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if p.HasInsufficientMaterial() {
		t.Fatalf("K+Q vs K should not be insufficient material")
	}
}
