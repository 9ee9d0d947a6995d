//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Command perft exercises the core end to end: it loads configuration
// and magics the way the full engine would, then runs perft (move
// generator leaf-node counting, §8) in parallel across a bounded
// worker pool that shares one lock-less transposition table, the
// concurrency story §5 describes made concrete without a real search
// on top of it.
package main

import (
	"context"
	"flag"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/chesscore/internal/config"
	"github.com/frankkopp/chesscore/internal/logging"
	"github.com/frankkopp/chesscore/internal/magicio"
	"github.com/frankkopp/chesscore/internal/movegen"
	"github.com/frankkopp/chesscore/internal/position"
	"github.com/frankkopp/chesscore/internal/transpositiontable"
	"github.com/frankkopp/chesscore/internal/types"
)

var out = message.NewPrinter(language.German)

func main() {
	fen := flag.String("fen", "", "FEN to run perft on (defaults to the starting position)")
	depth := flag.Int("depth", 5, "perft depth")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent perft workers")
	ttSizeMb := flag.Int("ttsize", 64, "shared transposition table size in MB")
	cpuProfile := flag.Bool("cpuprofile", false, "capture a CPU profile for this run")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.Setup()
	log := logging.GetLog()

	if err := magicio.Load(config.Settings.Core.MagicsFile); err != nil {
		log.Noticef("magics file not loaded, using runtime-generated magics: %v", err)
	}

	var pos *position.Position
	if *fen == "" {
		pos = position.New()
	} else {
		var err error
		pos, err = position.FromFEN(*fen)
		if err != nil {
			log.Errorf("invalid FEN %q: %v", *fen, err)
			return
		}
	}

	tt := transpositiontable.New(*ttSizeMb)

	start := time.Now()
	nodes := parallelPerft(pos, *depth, *workers, tt)
	elapsed := time.Since(start)

	out.Printf("perft(%d) from %q\n", *depth, pos.FEN())
	out.Printf("nodes    : %d\n", nodes)
	out.Printf("time     : %s\n", elapsed)
	out.Printf("nps      : %d\n", npsOf(nodes, elapsed))
	out.Printf("tt hashfull: %d/1000 (%d entries)\n", tt.Hashfull(), tt.Len())
}

func npsOf(nodes uint64, d time.Duration) uint64 {
	seconds := d.Seconds()
	if seconds <= 0 {
		return 0
	}
	return uint64(float64(nodes) / seconds)
}

// parallelPerft splits the root's legal moves across a pool of at most
// workers goroutines, each counting its own subtree on its own cloned
// Position (never shared - §5's "each worker owns a private mutable
// Position") while every worker probes and stores into the one shared
// tt using the Hyatt-XOR protocol, the exact "many writers, one slot"
// hazard §8's concrete scenario exercises.
func parallelPerft(root *position.Position, depth, workers int, tt *transpositiontable.Table) uint64 {
	if depth == 0 {
		return 1
	}
	moves := movegen.GenerateMoves(root)
	if depth == 1 {
		return uint64(moves.Len())
	}

	sem := semaphore.NewWeighted(int64(workers))
	var total uint64
	var wg sync.WaitGroup
	ctx := context.Background()

	for _, m := range moves {
		if err := sem.Acquire(ctx, 1); err != nil {
			continue
		}
		wg.Add(1)
		clone := root.Copy()
		clone.DoMove(m)
		go func(clone *position.Position) {
			defer wg.Done()
			defer sem.Release(1)
			n := perftWithTT(clone, depth-1, tt)
			atomic.AddUint64(&total, n)
		}(clone)
	}
	wg.Wait()
	return total
}

// perftWithTT is movegen.Perft with every internal node additionally
// probed and stored in tt. The stored entry carries no usable node
// count (TTEntry's payload is shaped for search results, not perft
// counters per §1's Non-goal on the search algorithm) - its only
// purpose here is to put real concurrent Probe/Store traffic from
// many goroutines through the shared table.
func perftWithTT(pos *position.Position, depth int, tt *transpositiontable.Table) uint64 {
	if depth == 0 {
		return 1
	}

	key := pos.Key()
	if _, ok := tt.Probe(key); !ok {
		tt.Store(key, transpositiontable.TTEntry{
			Move:  types.MoveNone,
			Value: 0,
			Depth: int8(depth),
			Type:  types.Exact,
		})
	}

	moves := movegen.GenerateMoves(pos)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves {
		pos.DoMove(m)
		nodes += perftWithTT(pos, depth-1, tt)
		pos.UndoMove()
	}
	return nodes
}
