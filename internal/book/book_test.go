package book

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/types"
)

// encodeRaw packs (from, to, promo) into a Polyglot move word, the
// inverse of decodeRaw, used here to build synthetic test books
// without needing a real third-party .bin file on disk.
func encodeRaw(from, to types.Square, promo types.PieceType) uint16 {
	var promoIdx uint16
	switch promo {
	case types.Knight:
		promoIdx = 1
	case types.Bishop:
		promoIdx = 2
	case types.Rook:
		promoIdx = 3
	case types.Queen:
		promoIdx = 4
	}
	return uint16(to.FileOf()) |
		uint16(to.RankOf())<<3 |
		uint16(from.FileOf())<<6 |
		uint16(from.RankOf())<<9 |
		promoIdx<<12
}

func appendEntry(buf *bytes.Buffer, key uint64, move uint16, weight uint16) {
	var raw [entrySize]byte
	binary.BigEndian.PutUint64(raw[0:8], key)
	binary.BigEndian.PutUint16(raw[8:10], move)
	binary.BigEndian.PutUint16(raw[10:12], weight)
	buf.Write(raw[:])
}

// Note: the module's own Polyglot Random64 table is independently
// derived rather than the published one (see internal/zobrist), so
// these tests build self-consistent synthetic books keyed off
// pos.PolyglotKey() rather than a real third-party .bin file's
// hard-coded key constants.

func TestProbePicksMaxWeightDeterministically(t *testing.T) {
	pos := position.New()
	key := uint64(pos.PolyglotKey())

	var buf bytes.Buffer
	appendEntry(&buf, key, encodeRaw(types.SqE2, types.SqE4, types.PtNone), 10)
	appendEntry(&buf, key, encodeRaw(types.SqD2, types.SqD4, types.PtNone), 20)
	appendEntry(&buf, key, encodeRaw(types.SqG1, types.SqF3, types.PtNone), 5)

	b, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", b.Len())
	}

	m, ok := b.Probe(pos)
	if !ok {
		t.Fatalf("expected a book hit on the starting position")
	}
	if m.From() != types.SqD2 || m.To() != types.SqD4 {
		t.Fatalf("expected the max-weighted move d2d4, got %s", m.String())
	}
}

func TestProbeMissOnUnknownPosition(t *testing.T) {
	pos := position.New()

	var buf bytes.Buffer
	appendEntry(&buf, uint64(pos.PolyglotKey())+1, encodeRaw(types.SqE2, types.SqE4, types.PtNone), 10)

	b, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := b.Probe(pos); ok {
		t.Fatalf("expected no hit for a key absent from the book")
	}
}

func TestProbeSkipsEntriesThatDoNotResolveToALegalMove(t *testing.T) {
	pos := position.New()
	key := uint64(pos.PolyglotKey())

	var buf bytes.Buffer
	// e2e5 is not a legal pawn move from the starting position.
	appendEntry(&buf, key, encodeRaw(types.SqE2, types.SqE5, types.PtNone), 50)
	appendEntry(&buf, key, encodeRaw(types.SqE2, types.SqE4, types.PtNone), 1)

	b, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	m, ok := b.Probe(pos)
	if !ok {
		t.Fatalf("expected the legal fallback entry to still resolve")
	}
	if m.From() != types.SqE2 || m.To() != types.SqE4 {
		t.Fatalf("expected e2e4, got %s", m.String())
	}
}

func TestCastlingEncodingTranslation(t *testing.T) {
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	pos, err := position.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	key := uint64(pos.PolyglotKey())

	var buf bytes.Buffer
	// Polyglot encodes white kingside castling as the king capturing
	// its own rook on h1, per §6.
	appendEntry(&buf, key, encodeRaw(types.SqE1, types.SqH1, types.PtNone), 1)

	b, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, ok := b.Probe(pos)
	if !ok {
		t.Fatalf("expected the castling entry to resolve to a legal move")
	}
	if m.From() != types.SqE1 || m.To() != types.SqG1 {
		t.Fatalf("expected e1h1 to translate to e1g1, got %s", m.String())
	}
}
