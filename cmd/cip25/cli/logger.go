// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger on stderr for CLI command
// operations. format is "text", "json", or "auto". Auto uses
// slog.TextHandler when stderr is a terminal and slog.JSONHandler when
// it is piped or redirected (CI, scripts).
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(slog.LevelInfo, "auto").With(
//	    "command", "fingerprint",
//	    "input_bytes", len(data),
//	)
func NewCommandLogger(level slog.Level, format string) *slog.Logger {
	return newLogger(os.Stderr, IsTerminal(os.Stderr), level, format)
}

func newLogger(w io.Writer, terminal bool, level slog.Level, format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	useText := format == "text" || (format != "json" && terminal)
	if useText {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}

// IsTerminal reports whether file is connected to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
