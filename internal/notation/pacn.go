//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package notation converts between Moves and the two external move
// notations §6 requires: PACN (pure algebraic coordinate notation,
// e.g. "e2e4"/"e7e8q") and SAN (standard algebraic notation, e.g.
// "Rb5"/"Rxf4+"). Both parse directions work the same way the
// teacher's does: generate every legal move on the position and match
// the input string against it, rather than trying to reconstruct a
// move from the string alone.
package notation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frankkopp/chesscore/internal/movegen"
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

var regexPacnMove = regexp.MustCompile(`^([a-h][1-8][a-h][1-8])([nbrqNBRQ])?$`)

// FormatPACN renders m in pure algebraic coordinate notation.
func FormatPACN(m types.Move) string {
	return m.String()
}

// ParsePACN matches pacn against every legal move in pos and returns
// it, or an error if pacn is malformed or matches no legal move.
func ParsePACN(pos *position.Position, pacn string) (types.Move, error) {
	matches := regexPacnMove.FindStringSubmatch(pacn)
	if matches == nil {
		return types.MoveNone, fmt.Errorf("notation: %q is not valid PACN", pacn)
	}
	movePart := matches[1]
	promotionPart := strings.ToLower(matches[2])

	for _, m := range movegen.GenerateMoves(pos) {
		if m.String() == movePart+promotionPart {
			return m, nil
		}
	}
	return types.MoveNone, fmt.Errorf("notation: %q is not a legal move in this position", pacn)
}
