// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/codec"
)

type diagParams struct {
	commonParams
	cborInput
}

func diagCommand() *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Print CBOR diagnostic notation",
		Description: `Write RFC 8949 Extended Diagnostic Notation (EDN) for the input.

Unlike the JSON view, diagnostic notation shows the CBOR framing that
the encoder replays: indefinite-length containers are marked with "_",
chunked strings appear as (_ "a", "b"), and integer keys stay integers.

  {721: {"data": {h'ab': {h'cd': {"name": "Ducks", ...}}}, "version": 2}}

The input need not be a valid metadata document; any well-formed CBOR
is accepted. Concatenated items (a CBOR sequence) print one per line.`,
		Usage: "cip25 diag [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Inspect the framing of a document",
				Command:     "cip25 diag metadata.cbor",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			env, err := params.open("diag")
			if err != nil {
				return err
			}
			data, err := readInput("diag", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			return diagnose(data, os.Stdout)
		},
	}
}

// diagnose writes diagnostic notation for each item in data.
func diagnose(data []byte, w io.Writer) error {
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := codec.DiagnoseFirst(remaining)
		if err != nil {
			offset := len(data) - len(remaining)
			return cli.Validation("diagnose CBOR at byte %d: %w", offset, err)
		}
		if _, err := fmt.Fprintln(w, notation); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}
