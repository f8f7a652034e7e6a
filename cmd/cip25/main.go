// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/cmd/cip25/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (verify, refs) return an
		// ExitError. Don't print a redundant "error:" line for those.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var toolErr *cli.ToolError
		if errors.As(err, &toolErr) {
			os.Exit(toolErr.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	return commands.Root().Execute(os.Args[1:])
}
