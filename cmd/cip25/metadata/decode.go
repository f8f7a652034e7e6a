// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25json"
)

type decodeParams struct {
	commonParams
	cborInput
	Compact bool `json:"compact" flag:"compact,c" desc:"compact output (no indentation)"`
}

func decodeCommand() *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Render metadata CBOR as JSON",
		Description: `Decode a CIP-25 metadata document and write its JSON view to stdout.

Policy ids and asset names are byte strings on the wire; they appear as
lowercase hex object keys. Every object keeps the document's entry
order. Values split into lists of 64-byte chunks stay lists.

The JSON view does not show CBOR framing (integer widths, indefinite
lengths, chunked strings). Use "cip25 diag" for that.

Decoding fails with the path of the offending field, for example:

  cip25: decode Metadata.721.LabelMetadata.data[h'ab'][h'cd'].AssetDetails.name.String64: value 65 outside range [0, 64]`,
		Usage: "cip25 decode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Decode a metadata file",
				Command:     "cip25 decode metadata.cbor",
			},
			{
				Description: "Decode hex from a transaction dump",
				Command:     "echo 'a1 1902d1 ...' | cip25 decode --hex",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			env, err := params.open("decode")
			if err != nil {
				return err
			}
			data, err := readInput("decode", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			indent := env.config.Output.Indent
			if params.Compact {
				indent = ""
			}
			return decodeToJSON(data, os.Stdout, indent, env.logger)
		},
	}
}

// decodeToJSON decodes metadata CBOR and writes the JSON view to w.
func decodeToJSON(data []byte, w io.Writer, indent string, logger *slog.Logger) error {
	metadata, err := decodeDocument(data)
	if err != nil {
		return err
	}
	logger.Debug("decoded metadata",
		"input_bytes", len(data),
		"policies", metadata.Label721.Data.Len(),
	)

	rendered, err := cip25json.Render(metadata, indent)
	if err != nil {
		return cli.Internal("render JSON: %w", err)
	}
	_, err = w.Write(rendered)
	return err
}
