package history

import (
	"testing"

	"github.com/frankkopp/chesscore/internal/types"
)

func TestStoreFirstKillerGoesToSlotOne(t *testing.T) {
	k := NewKillers()
	m := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(3, m)

	m1, m2 := k.Moves(3)
	if m1 != m {
		t.Fatalf("expected move1 == %v, got %v", m, m1)
	}
	if m2 != types.MoveNone {
		t.Fatalf("expected move2 empty, got %v", m2)
	}
}

func TestStoreSecondKillerShiftsFirstToSlotTwo(t *testing.T) {
	k := NewKillers()
	a := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	b := types.NewMove(types.SqD2, types.SqD4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(0, a)
	k.Store(0, b)

	m1, m2 := k.Moves(0)
	if m1 != b || m2 != a {
		t.Fatalf("expected move1=%v move2=%v, got move1=%v move2=%v", b, a, m1, m2)
	}
}

func TestStoreExistingMove1IsNoOp(t *testing.T) {
	k := NewKillers()
	a := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	b := types.NewMove(types.SqD2, types.SqD4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(0, a)
	k.Store(0, b)
	k.Store(0, b) // already move1, must not disturb move2

	m1, m2 := k.Moves(0)
	if m1 != b || m2 != a {
		t.Fatalf("repeated store of move1 should not change state, got move1=%v move2=%v", m1, m2)
	}
}

func TestStoreExistingMove2PromotesToMove1(t *testing.T) {
	k := NewKillers()
	a := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	b := types.NewMove(types.SqD2, types.SqD4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(0, a)
	k.Store(0, b)
	k.Store(0, a) // a is currently move2, should become move1

	m1, m2 := k.Moves(0)
	if m1 != a || m2 != b {
		t.Fatalf("expected move1=%v move2=%v, got move1=%v move2=%v", a, b, m1, m2)
	}
}

func TestPliesAreIndependent(t *testing.T) {
	k := NewKillers()
	a := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(1, a)
	if k.IsKiller(2, a) {
		t.Fatalf("a killer stored at one ply must not leak into another")
	}
	if !k.IsKiller(1, a) {
		t.Fatalf("expected a to be a killer at ply 1")
	}
}

func TestClearResetsAllPlies(t *testing.T) {
	k := NewKillers()
	a := types.NewMove(types.SqE2, types.SqE4, types.WhitePawn, types.PieceNone, types.Normal)
	k.Store(5, a)
	k.Clear()
	if k.IsKiller(5, a) {
		t.Fatalf("expected killer table to be empty after Clear")
	}
}
