// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the cip25 tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a tagged parameter struct or
// [pflag.FlagSet] factory, and a Run function. Commands are assembled
// into a tree in cmd/cip25/commands and dispatched via
// [Command.Execute], which handles flag parsing, subcommand routing, and
// structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Errors returned by commands are either a [ToolError], which carries a
// category and maps to an exit code, or an [ExitError] for outcomes the
// command has already reported on stdout.
package cli
