//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package magicio persists and restores the per-square magic-bitboard
// parameters (§4.2/§6): a flat key=value file, keyed "R0".."R63" for
// rooks and "B0".."B63" for bishops, each value a "magic-shift" pair.
// internal/types always has a working random-trial-derived table from
// its own package init; loading a file here simply overrides it with
// previously-discovered (and therefore instant-to-install) numbers.
package magicio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/frankkopp/chesscore/internal/types"
	"github.com/frankkopp/chesscore/internal/util"
)

// Load reads path and installs every "R<n>"/"B<n>" entry it finds as
// that square's magic via types.LoadMagic. Returns an I/O error if the
// file cannot be resolved or a line is malformed; a missing file is not
// fatal to callers that are content to keep the random-trial magics
// types already computed at init.
func Load(path string) error {
	resolved, err := util.ResolveFile(path)
	if err != nil {
		return fmt.Errorf("magics file not found: %w", err)
	}
	f, err := os.Open(resolved)
	if err != nil {
		return fmt.Errorf("magics file could not be opened: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := loadLine(line); err != nil {
			return fmt.Errorf("magics file line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func loadLine(line string) error {
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("expected key=value, got %q", line)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])

	pt, sq, err := parseKey(key)
	if err != nil {
		return err
	}
	magic, shift, err := parseValue(value)
	if err != nil {
		return err
	}
	mask := maskFor(pt, sq)
	types.LoadMagic(pt, sq, mask, magic, shift)
	return nil
}

func parseKey(key string) (types.PieceType, types.Square, error) {
	if len(key) < 2 {
		return 0, 0, fmt.Errorf("malformed key %q", key)
	}
	var pt types.PieceType
	switch key[0] {
	case 'R', 'r':
		pt = types.Rook
	case 'B', 'b':
		pt = types.Bishop
	default:
		return 0, 0, fmt.Errorf("unknown slider prefix in key %q", key)
	}
	n, err := strconv.Atoi(key[1:])
	if err != nil || n < 0 || n > 63 {
		return 0, 0, fmt.Errorf("malformed square index in key %q", key)
	}
	return pt, types.Square(n), nil
}

func parseValue(value string) (magic types.Bitboard, shift uint, err error) {
	idx := strings.LastIndex(value, "-")
	if idx <= 0 || idx == len(value)-1 {
		return 0, 0, fmt.Errorf("expected magic-shift, got %q", value)
	}
	m, err := strconv.ParseInt(value[:idx], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed magic number in %q: %w", value, err)
	}
	s, err := strconv.ParseUint(value[idx+1:], 10, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed shift in %q: %w", value, err)
	}
	return types.Bitboard(m), uint(s), nil
}

// maskFor recomputes the occupancy mask for a square/slider pair the
// same way types' own init does, so a loaded file only needs to supply
// the magic number and shift, not the (derivable) mask.
func maskFor(pt types.PieceType, sq types.Square) types.Bitboard {
	switch pt {
	case types.Bishop:
		return types.BishopMagicAt(sq).Mask()
	case types.Rook:
		return types.RookMagicAt(sq).Mask()
	default:
		return 0
	}
}

// Save writes the currently installed magics (as discovered by
// types' random-trial search, or previously loaded) to path in the
// key=value format Load understands.
func Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("magics file could not be created: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for sq := types.SqA1; sq < types.SqNone; sq++ {
		r := types.RookMagicAt(sq)
		if _, err := fmt.Fprintf(w, "R%d=%d-%d\n", sq, int64(r.MagicNumber()), r.Shift()); err != nil {
			return err
		}
		b := types.BishopMagicAt(sq)
		if _, err := fmt.Fprintf(w, "B%d=%d-%d\n", sq, int64(b.MagicNumber()), b.Shift()); err != nil {
			return err
		}
	}
	return w.Flush()
}
