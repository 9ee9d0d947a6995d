//
// chesscore - bitboard chess engine core in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package config loads process-wide settings from a TOML file, falling
// back to sensible defaults when the file is absent - the same
// Setup()-then-read-package-vars pattern used throughout the rest of the
// engine.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frankkopp/chesscore/internal/util"
)

type logConfiguration struct {
	LogLvl     string
	TestLogLvl string
}

type coreConfiguration struct {
	// MagicsFile is the key=value magics persistence file (§6); when it
	// cannot be resolved the magic numbers are regenerated at startup.
	MagicsFile string
	// TtSizeMb is the transposition table size in megabytes.
	TtSizeMb int
	// EtSizeMb is the (whole-position) evaluation cache size in
	// megabytes.
	EtSizeMb int
	// PawnEtSizeMb is the pawn-structure subcache size in megabytes.
	PawnEtSizeMb int
	// HistoryDecay is the toggle for the optional periodic halving of
	// the relative-history counters (§4.10). Nothing in this repository
	// reads it; history.Table.Halve is only ever called explicitly.
	HistoryDecay bool
}

type conf struct {
	Log  logConfiguration
	Core coreConfiguration
}

var (
	// ConfFile is the path Setup loads, relative to the executable,
	// working directory, or user home - see util.ResolveFile.
	ConfFile = "config/chesscore.toml"

	// LogLevel and TestLogLevel are read by internal/logging.
	LogLevel     = 4 // INFO
	TestLogLevel = 4

	// Settings is the parsed/defaulted configuration, valid after Setup.
	Settings = conf{
		Log: logConfiguration{LogLvl: "info", TestLogLvl: "info"},
		Core: coreConfiguration{
			MagicsFile:   "config/magics.txt",
			TtSizeMb:     64,
			EtSizeMb:     16,
			PawnEtSizeMb: 4,
			HistoryDecay: false,
		},
	}

	initialized bool
)

// LogLevels maps the TOML log-level strings to go-logging levels.
var LogLevels = map[string]int{
	"off": -1, "critical": 0, "error": 1, "warning": 2,
	"notice": 3, "info": 4, "debug": 5,
}

// Setup loads ConfFile if it can be resolved and overlays it on the
// defaults; a missing or unparsable file is not an error - the engine
// runs on defaults instead, and the fallback is not logged (package
// init order prevents logging from depending on this package's
// LogLevel before Setup has run).
func Setup() {
	if initialized {
		return
	}
	initialized = true

	path, err := util.ResolveFile(ConfFile)
	if err == nil {
		_, _ = toml.DecodeFile(path, &Settings)
	}

	setupLogLevel()
}

func setupLogLevel() {
	if lvl, ok := LogLevels[strings.ToLower(Settings.Log.LogLvl)]; ok {
		LogLevel = lvl
	}
	if lvl, ok := LogLevels[strings.ToLower(Settings.Log.TestLogLvl)]; ok {
		TestLogLevel = lvl
	}
}

// String renders every configured field, one per line, mirroring the
// reflection-based dump the rest of the engine uses for its "show
// current settings" diagnostics.
func (c *conf) String() string {
	var sb strings.Builder
	dumpStruct(&sb, "", reflect.ValueOf(c).Elem())
	return sb.String()
}

func dumpStruct(sb *strings.Builder, prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		name := prefix + f.Name
		if fv.Kind() == reflect.Struct {
			dumpStruct(sb, name+".", fv)
			continue
		}
		sb.WriteString(name)
		sb.WriteString(" = ")
		sb.WriteString(fmt.Sprintf("%v", fv.Interface()))
		sb.WriteString("\n")
	}
}
