// Copyright (c) 2025 FaithTalk Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the process-wide structured logger backed by
// zerolog.
//
// The TUI owns stdout, so the default sink is a log file next to the config
// (~/.faithtalk/client.log). CLI commands running with --verbose add a
// console writer on stderr.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Dir is the directory the log file is created in. When empty the
	// logger writes to io.Discard (used by tests).
	Dir string
	// Console mirrors log output to stderr in human-readable form.
	Console bool
}

var (
	instance zerolog.Logger
	nop      = zerolog.Nop()
	mu       sync.Mutex
	ready    bool
)

// Init initialises the singleton logger. Later calls replace the previous
// configuration, which the CLI uses to upgrade verbosity after flag parsing.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if opts.Dir != "" {
		if f, err := openLogFile(opts.Dir); err == nil {
			writers = append(writers, f)
		}
	}
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 1:
		out = writers[0]
	case 2:
		out = zerolog.MultiLevelWriter(writers...)
	}

	instance = zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
	ready = true
	return instance
}

// L returns the singleton logger. Event constructors like Error hang off
// *zerolog.Logger, so L returns a pointer and call sites can chain directly.
// Before Init it returns a disabled logger so that early code paths never
// panic.
func L() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		return &nop
	}
	return &instance
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "client.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
