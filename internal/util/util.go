//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package util is the engine's grab-bag of small, dependency-free helpers
// shared across packages: branchless integer math, timing, and memory
// reporting.
package util

import (
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.German)

// Abs returns the absolute value of v.
func Abs(v int) int {
	mask := v >> 63
	return (v ^ mask) - mask
}

// Abs16 is Abs for int16.
func Abs16(v int16) int16 {
	mask := v >> 15
	return (v ^ mask) - mask
}

// Abs64 is Abs for int64.
func Abs64(v int64) int64 {
	mask := v >> 63
	return (v ^ mask) - mask
}

// Min returns the smaller of a and b.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Min64 is Min for int64.
func Min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Max64 is Max for int64.
func Max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// TimeTrack prints the elapsed time since start under the given label.
// Typical use: defer util.TimeTrack(time.Now(), "perft")
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	_, _ = printer.Printf("%s took %d ns\n", name, elapsed.Nanoseconds())
}

// Nps computes nodes per second for a node count observed over d.
func Nps(nodes uint64, d time.Duration) uint64 {
	seconds := d.Seconds()
	if seconds <= 0 {
		return 0
	}
	return uint64(float64(nodes) / seconds)
}

// MemStat logs a snapshot of the Go runtime's memory statistics, useful
// when sizing the transposition and evaluation tables against available
// RAM.
func MemStat() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	_, _ = printer.Printf("Alloc = %d MiB, TotalAlloc = %d MiB, Sys = %d MiB, NumGC = %d\n",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.NumGC)
}

// GcWithStats forces a garbage collection and logs the memory stats
// before and after, for diagnosing table-resize memory pressure.
func GcWithStats() {
	MemStat()
	runtime.GC()
	MemStat()
}
