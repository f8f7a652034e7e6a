// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
)

type canonicalizeParams struct {
	commonParams
	cborInput
	cborOutput
}

func canonicalizeCommand() *cli.Command {
	var params canonicalizeParams

	return &cli.Command{
		Name:    "canonicalize",
		Summary: "Rewrite metadata CBOR in canonical form",
		Description: `Decode a metadata document and write its canonical encoding.

Canonical form uses definite lengths with the smallest width that fits,
never chunks strings, emits record fields in length-first key order,
and sorts policy and asset maps by encoded key (shorter first, then
bytewise). Canonicalizing a canonical document returns it unchanged.`,
		Usage: "cip25 canonicalize [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Write the canonical form to a new file",
				Command:     "cip25 canonicalize metadata.cbor > metadata.canonical.cbor",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.Transform(),
		Run: func(args []string) error {
			env, err := params.open("canonicalize")
			if err != nil {
				return err
			}
			hexOutput := env.hexOutput(params.cborOutput)
			if err := checkBinaryStdout(hexOutput); err != nil {
				return err
			}
			data, err := readInput("canonicalize", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			var output bytes.Buffer
			if err := reencode(data, &output, true, false, env.logger); err != nil {
				return err
			}
			env.logger.Debug("canonical form computed", "changed", !bytes.Equal(output.Bytes(), data))
			return writeCBOR(os.Stdout, output.Bytes(), hexOutput)
		},
	}
}
