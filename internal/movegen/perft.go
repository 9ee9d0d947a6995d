package movegen

import "github.com/frankkopp/chesscore/internal/position"

// Perft counts the number of leaf nodes reachable from pos in exactly
// depth plies, recursively applying GenerateMoves at every level - the
// standard move-generator correctness harness (§8).
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := GenerateMoves(pos)
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for _, m := range moves {
		pos.DoMove(m)
		nodes += Perft(pos, depth-1)
		pos.UndoMove()
	}
	return nodes
}

// Divide returns the perft(depth-1) count for every legal move at the
// root, keyed by that move's PACN string - the standard "perft divide"
// debugging aid for isolating a move generator bug to one root move.
func Divide(pos *position.Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth < 1 {
		return result
	}
	moves := GenerateMoves(pos)
	for _, m := range moves {
		pos.DoMove(m)
		result[m.String()] = Perft(pos, depth-1)
		pos.UndoMove()
	}
	return result
}
