// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete cip25 CLI command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/cmd/cip25/metadata"
	"github.com/bureau-foundation/cip25/lib/version"
)

// Root builds and returns the complete cip25 CLI command tree.
func Root() *cli.Command {
	subcommands := append(metadata.Commands(), versionCommand())
	return &cli.Command{
		Name: "cip25",
		Description: `cip25: encode, decode and verify CIP-25 version 2 NFT metadata.

Documents are the CBOR transaction metadata stored under label 721. A
decoded document remembers how it was framed, so re-encoding reproduces
the input byte for byte unless canonical output is requested.

Commands read a file argument or stdin. Pass --hex to read hex-encoded
CBOR and --hex-output to write it. Defaults come from the YAML file
named by --config or $CIP25_CONFIG.`,
		Examples: []cli.Example{
			{
				Description: "Show a document as JSON",
				Command:     "cip25 decode metadata.cbor",
			},
			{
				Description: "Build canonical CBOR from JSON",
				Command:     "cip25 encode --hex-output metadata.json",
			},
			{
				Description: "Check a hex dump before submitting it",
				Command:     "cip25 verify --hex --require-canonical dump.hex",
			},
		},
		Subcommands: subcommands,
	}
}

type versionParams struct {
	Full bool `json:"full" flag:"full" desc:"include commit, build details and library versions"`
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:        "version",
		Summary:     "Print version information",
		Usage:       "cip25 version [--full]",
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Full {
				fmt.Fprintf(os.Stdout, "cip25 %s\n", version.Full())
				return nil
			}
			fmt.Fprintf(os.Stdout, "cip25 %s\n", version.Info())
			return nil
		},
	}
}
