//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package transpositiontable

import "github.com/frankkopp/chesscore/internal/types"

// TTEntry is the decoded, easy-to-use view of a transposition table
// slot: move, score, depth, bound type, and the search generation it
// was written under (§4.7).
type TTEntry struct {
	Move       types.Move
	Value      types.Value
	Depth      int8
	Type       types.ValueType
	Generation uint8
}

// packed bit layout of the 64-bit data word (the part of a slot that,
// XORed with the logical key, produces the stored key word):
//
//	bits  0-31  Move        (32 bits, the full packed Move)
//	bits 32-47  Value       (16 bits, as uint16)
//	bits 48-55  Depth       (8 bits)
//	bits 56-57  ValueType   (2 bits)
//	bits 58-63  Generation  (6 bits)
const (
	dataMoveShift  = 0
	dataValueShift = 32
	dataDepthShift = 48
	dataTypeShift  = 56
	dataGenShift   = 58

	dataGenMask = 0x3F
)

func packData(e TTEntry) uint64 {
	return uint64(uint32(e.Move))<<dataMoveShift |
		uint64(uint16(e.Value))<<dataValueShift |
		uint64(uint8(e.Depth))<<dataDepthShift |
		uint64(e.Type&0x3)<<dataTypeShift |
		uint64(e.Generation&dataGenMask)<<dataGenShift
}

func unpackData(data uint64) TTEntry {
	return TTEntry{
		Move:       types.Move(uint32(data >> dataMoveShift)),
		Value:      types.Value(uint16(data >> dataValueShift)),
		Depth:      int8(uint8(data >> dataDepthShift)),
		Type:       types.ValueType(uint8(data>>dataTypeShift) & 0x3),
		Generation: uint8(data>>dataGenShift) & dataGenMask,
	}
}
