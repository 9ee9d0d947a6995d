//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// +build debug

package assert

import "fmt"

// DEBUG is true in a binary built with -tags debug.
const DEBUG = true

// Assert panics with msg (formatted against a) when test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
