// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for CLI command
// operations writing to w. Format "text" and "json" select a handler
// explicitly. Format "auto" (or empty) uses slog.TextHandler when w is
// a terminal, for human-readable output, and slog.JSONHandler when w
// is piped or redirected, for machine-parseable output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "commit", "pattern", pattern.String())
func NewCommandLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	if level != "" {
		if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	options := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, options)
	case "json":
		handler = slog.NewJSONHandler(w, options)
	case "", "auto":
		if IsTerminal(w) {
			handler = slog.NewTextHandler(w, options)
		} else {
			handler = slog.NewJSONHandler(w, options)
		}
	default:
		return nil, fmt.Errorf("invalid log format %q (want auto, text, or json)", format)
	}
	return slog.New(handler), nil
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// LogFlags binds --log-level and --log-format. Empty values defer to
// the configuration file.
type LogFlags struct {
	Level  string
	Format string
}

// AddFlags implements [FlagBinder].
func (f *LogFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.Level, "log-level", "", "log level: debug, info, warn, or error (default from config, warn)")
	flagSet.StringVar(&f.Format, "log-format", "", "log format: auto, text, or json (default from config, auto)")
}

// Logger builds the command logger, preferring flag values over the
// given defaults.
func (f *LogFlags) Logger(w io.Writer, defaultLevel, defaultFormat string) (*slog.Logger, error) {
	level, format := f.Level, f.Format
	if level == "" {
		level = defaultLevel
	}
	if format == "" {
		format = defaultFormat
	}
	return NewCommandLogger(w, level, format)
}
