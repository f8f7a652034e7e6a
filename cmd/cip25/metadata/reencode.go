// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25"
)

type reencodeParams struct {
	commonParams
	cborInput
	cborOutput
	Canonical bool `json:"canonical" flag:"canonical" desc:"ignore the input's framing and emit canonical CBOR"`
}

func reencodeCommand() *cli.Command {
	var params reencodeParams

	return &cli.Command{
		Name:    "reencode",
		Summary: "Decode and re-encode, keeping the input's framing",
		Description: `Decode a metadata document and encode it again.

By default the encoder replays how the input was framed: integer and
length widths, indefinite-length containers, chunked strings and the
order of map entries. For any input that decodes, the output is
byte-identical to the input.

With --canonical (or output.canonical in the configuration file) the
captured framing is ignored and the output is canonical CBOR, the same
as "cip25 canonicalize".`,
		Usage: "cip25 reencode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Normalize a document read from hex",
				Command:     "cip25 reencode --hex --canonical --hex-output dump.hex",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.Transform(),
		Run: func(args []string) error {
			env, err := params.open("reencode")
			if err != nil {
				return err
			}
			hexOutput := env.hexOutput(params.cborOutput)
			if err := checkBinaryStdout(hexOutput); err != nil {
				return err
			}
			data, err := readInput("reencode", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			canonical := params.Canonical || env.config.Output.Canonical
			return reencode(data, os.Stdout, canonical, hexOutput, env.logger)
		},
	}
}

// reencode decodes data and writes it back, canonical or with the
// captured framing.
func reencode(data []byte, w io.Writer, canonical, hexOutput bool, logger *slog.Logger) error {
	metadata, err := decodeDocument(data)
	if err != nil {
		return err
	}
	encoded, err := cip25.Encode(metadata, canonical)
	if err != nil {
		return cli.Internal("encode CBOR: %w", err)
	}
	logger.Debug("re-encoded metadata",
		"canonical", canonical,
		"input_bytes", len(data),
		"output_bytes", len(encoded),
	)
	return writeCBOR(w, encoded, hexOutput)
}
