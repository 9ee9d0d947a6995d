package notation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frankkopp/chesscore/internal/movegen"
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

var regexSanMove = regexp.MustCompile(`^([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?$`)

// FormatSAN renders m, played from pos, in standard algebraic
// notation: piece letter (omitted for pawns), shortest-unambiguous
// origin disambiguation (file, then rank, then file+rank - §6), an
// "x" for captures, the destination square, a "=" promotion suffix,
// and a trailing "+"/"#" if the move checks or mates.
func FormatSAN(pos *position.Position, m types.Move) string {
	if m.Type() == types.ShortCastling {
		return appendCheckSuffix(pos, m, "O-O")
	}
	if m.Type() == types.LongCastling {
		return appendCheckSuffix(pos, m, "O-O-O")
	}

	pt := m.Piece().TypeOf()
	var sb strings.Builder
	if pt == types.Pawn {
		if m.IsCapture() {
			sb.WriteString(m.From().FileOf().String())
		}
	} else {
		sb.WriteString(pt.Char())
		sb.WriteString(disambiguate(pos, m))
	}
	if m.IsCapture() {
		sb.WriteString("x")
	}
	sb.WriteString(m.To().String())
	if m.Type().IsPromotion() {
		sb.WriteString("=")
		sb.WriteString(m.Type().PromotionPieceType().Char())
	}
	return appendCheckSuffix(pos, m, sb.String())
}

// disambiguate returns the minimal origin-square prefix needed to
// distinguish m from every other legal move of the same piece type
// landing on the same destination square.
func disambiguate(pos *position.Position, m types.Move) string {
	pt := m.Piece().TypeOf()
	from, to := m.From(), m.To()
	ambiguous, sameFile, sameRank := false, false, false

	for _, other := range movegen.GenerateMoves(pos) {
		if other == m || other.Piece().TypeOf() != pt || other.To() != to {
			continue
		}
		ambiguous = true
		if other.From().FileOf() == from.FileOf() {
			sameFile = true
		}
		if other.From().RankOf() == from.RankOf() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return from.FileOf().String()
	case !sameRank:
		return from.RankOf().String()
	default:
		return from.String()
	}
}

func appendCheckSuffix(pos *position.Position, m types.Move, s string) string {
	pos.DoMove(m)
	defer pos.UndoMove()
	if !pos.HasCheck() {
		return s
	}
	if movegen.GenerateMoves(pos).Len() == 0 {
		return s + "#"
	}
	return s + "+"
}

// ParseSAN matches san against every legal move in pos and returns it,
// or an error if san is malformed, matches no legal move, or is
// ambiguous between several.
func ParseSAN(pos *position.Position, san string) (types.Move, error) {
	matches := regexSanMove.FindStringSubmatch(san)
	if matches == nil {
		return types.MoveNone, fmt.Errorf("notation: %q is not valid SAN", san)
	}
	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toField := matches[4]
	promotion := matches[6]

	var found types.Move
	count := 0

	for _, gm := range movegen.GenerateMoves(pos) {
		if gm.Type() == types.ShortCastling || gm.Type() == types.LongCastling {
			var castlingString string
			switch gm.To() {
			case types.SqG1, types.SqG8:
				castlingString = "O-O"
			case types.SqC1, types.SqC8:
				castlingString = "O-O-O"
			}
			if castlingString == toField {
				found, count = gm, count+1
			}
			continue
		}

		if gm.To().String() != toField {
			continue
		}
		legalPt := gm.Piece().TypeOf()
		if pieceType != "" {
			if legalPt.Char() != pieceType {
				continue
			}
		} else if legalPt != types.Pawn {
			continue
		}
		if disambFile != "" && gm.From().FileOf().String() != disambFile {
			continue
		}
		if disambRank != "" && gm.From().RankOf().String() != disambRank {
			continue
		}
		if promotion != "" {
			if !gm.Type().IsPromotion() || gm.Type().PromotionPieceType().Char() != promotion {
				continue
			}
		} else if gm.Type().IsPromotion() {
			continue
		}
		found, count = gm, count+1
	}

	if count == 0 {
		return types.MoveNone, fmt.Errorf("notation: SAN %q matches no legal move", san)
	}
	if count > 1 {
		return types.MoveNone, fmt.Errorf("notation: SAN %q is ambiguous (%d matches)", san, count)
	}
	return found, nil
}
