// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25"
	"github.com/bureau-foundation/cip25/lib/cip25json"
)

type encodeParams struct {
	commonParams
	cborOutput
}

func encodeCommand() *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Build canonical metadata CBOR from JSON",
		Description: `Read the JSON view of a metadata document and write canonical CBOR.

The input has the shape "cip25 decode" prints. Comments and trailing
commas are accepted (JSONC), so documents can be authored by hand:

  {
    // policy id and asset name are hex
    "721": {
      "data": {"ab": {"cd": {"name": "Ducks", "image": "ipfs://..."}}},
      "version": 2,
    },
  }

Strings are limited to 64 bytes; longer URIs must be split into a
list. The schema is closed: unknown keys are errors. Errors carry the
JSON path of the offending value.

Object entry order in the input is kept in the policy and asset maps,
but the output is canonical, which sorts them.`,
		Usage: "cip25 encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Encode a hand-written document",
				Command:     "cip25 encode ducks.jsonc > ducks.cbor",
			},
			{
				Description: "Round-trip through JSON",
				Command:     "cip25 decode metadata.cbor | cip25 encode --hex-output",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.Transform(),
		Run: func(args []string) error {
			env, err := params.open("encode")
			if err != nil {
				return err
			}
			hexOutput := env.hexOutput(params.cborOutput)
			if err := checkBinaryStdout(hexOutput); err != nil {
				return err
			}
			data, err := readInput("encode", args, os.Stdin, false)
			if err != nil {
				return err
			}
			return encodeFromJSON(data, os.Stdout, hexOutput, env.logger)
		},
	}
}

// encodeFromJSON parses the JSON view and writes canonical CBOR to w.
func encodeFromJSON(data []byte, w io.Writer, hexOutput bool, logger *slog.Logger) error {
	metadata, err := cip25json.Parse(data)
	if err != nil {
		return cli.Validation("%w", err)
	}
	encoded, err := cip25.Encode(metadata, true)
	if err != nil {
		return cli.Internal("encode CBOR: %w", err)
	}
	logger.Debug("encoded metadata",
		"input_bytes", len(data),
		"output_bytes", len(encoded),
	)
	return writeCBOR(w, encoded, hexOutput)
}
