package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frankkopp/chesscore/internal/types"
	"github.com/frankkopp/chesscore/internal/zobrist"
)

// FromFEN parses a FEN record (§6's grammar: piece placement, side to
// move, castling availability, en-passant target, half-move clock,
// full-move number) into a freshly built Position.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) < 4 {
		return nil, fmt.Errorf("fen: expected at least 4 fields, got %d in %q", len(fields), fen)
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}
	if fields[4] == "" {
		fields[4] = "0"
	}
	if fields[5] == "" {
		fields[5] = "1"
	}

	p := &Position{}

	if err := p.setPlacement(fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "w":
		p.sideToMove = types.White
	case "b":
		p.sideToMove = types.Black
	default:
		return nil, fmt.Errorf("fen: bad side-to-move field %q", fields[1])
	}
	if err := p.setCastling(fields[2]); err != nil {
		return nil, err
	}
	if err := p.setEnPassant(fields[3]); err != nil {
		return nil, err
	}
	fm, err := strconv.Atoi(fields[4])
	if err != nil || fm < 0 {
		return nil, fmt.Errorf("fen: bad half-move clock %q", fields[4])
	}
	p.fiftyMove = fm
	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return nil, fmt.Errorf("fen: bad full-move number %q", fields[5])
	}
	p.halfMoveIndex = (fullMove-1)*2 + int(p.sideToMove)

	p.key = p.computeKeyFromScratch()
	p.pawnKey = p.computePawnKeyFromScratch()
	p.checkers = p.computeCheckers()
	p.undo = nil
	p.repetition = []types.Key{p.key}

	return p, nil
}

func (p *Position) setPlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("fen: expected 8 ranks, got %d in %q", len(ranks), field)
	}
	for i, rankStr := range ranks {
		r := types.Rank(7 - i)
		f := types.FileA
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				f += types.File(ch - '0')
				continue
			}
			if f > types.FileH {
				return fmt.Errorf("fen: rank %q overflows the board", rankStr)
			}
			piece := types.PieceFromChar(string(ch))
			if piece == types.PieceNone {
				return fmt.Errorf("fen: unknown piece char %q", ch)
			}
			sq := types.SquareOf(f, r)
			p.putPieceRaw(piece, sq)
			f++
		}
		if f != types.File(8) {
			return fmt.Errorf("fen: rank %q does not cover 8 files", rankStr)
		}
	}
	return nil
}

// putPieceRaw places a piece during FEN parsing, before the Zobrist key
// exists to maintain incrementally.
func (p *Position) putPieceRaw(piece types.Piece, sq types.Square) {
	p.pieceBb[piece] = p.pieceBb[piece].PushSquare(sq)
	p.board[sq] = piece
	c := piece.ColorOf()
	p.occupied[c] = p.occupied[c].PushSquare(sq)
	p.allOcc = p.allOcc.PushSquare(sq)
}

func (p *Position) setCastling(field string) error {
	if field == "-" {
		return nil
	}
	for _, ch := range field {
		switch ch {
		case 'K':
			p.castling[types.White] |= types.CastlingShort
		case 'Q':
			p.castling[types.White] |= types.CastlingLong
		case 'k':
			p.castling[types.Black] |= types.CastlingShort
		case 'q':
			p.castling[types.Black] |= types.CastlingLong
		default:
			return fmt.Errorf("fen: unknown castling flag %q", ch)
		}
	}
	return nil
}

func (p *Position) setEnPassant(field string) error {
	if field == "-" {
		p.epFile = types.EpNone
		return nil
	}
	if len(field) != 2 {
		return fmt.Errorf("fen: bad en-passant field %q", field)
	}
	sq := types.MakeSquare(field)
	if !sq.IsValid() {
		return fmt.Errorf("fen: bad en-passant square %q", field)
	}
	p.epFile = types.EnPassantFileOf(sq.FileOf())
	return nil
}

func (p *Position) computeKeyFromScratch() types.Key {
	var key types.Key
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		if piece := p.board[sq]; piece != types.PieceNone {
			key ^= zobrist.Piece(piece, sq)
		}
	}
	key ^= zobrist.Castling(types.CombinedIndex(p.castling[types.White], p.castling[types.Black]))
	key ^= p.epHashWord(p.epFile, p.sideToMove)
	if p.sideToMove == types.Black {
		key ^= zobrist.NextPlayer()
	}
	return key
}

func (p *Position) computePawnKeyFromScratch() types.Key {
	var key types.Key
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		piece := p.board[sq]
		if piece == types.PieceNone {
			continue
		}
		if pt := piece.TypeOf(); pt == types.Pawn || pt == types.King {
			key ^= zobrist.Piece(piece, sq)
		}
	}
	return key
}

// FEN renders the position as its canonical FEN string.
func (p *Position) FEN() string {
	var sb strings.Builder

	for r := types.Rank8; ; r-- {
		empty := 0
		for f := types.FileA; f <= types.FileH; f++ {
			sq := types.SquareOf(f, r)
			piece := p.board[sq]
			if piece == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != types.Rank1 {
			sb.WriteString("/")
		}
		if r == types.Rank1 {
			break
		}
	}

	sb.WriteString(" ")
	sb.WriteString(p.sideToMove.String())

	sb.WriteString(" ")
	sb.WriteString(types.CastlingFEN(p.castling[types.White], p.castling[types.Black]))

	sb.WriteString(" ")
	if p.epFile.IsValid() {
		target := p.epFile.TargetSquare(p.sideToMove)
		sb.WriteString(target.String())
	} else {
		sb.WriteString("-")
	}

	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.fiftyMove))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.halfMoveIndex/2 + 1))

	return sb.String()
}
