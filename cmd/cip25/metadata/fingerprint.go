// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/contentid"
)

type fingerprintParams struct {
	commonParams
	cborInput
	cli.JSONOutput
}

// fingerprintResult is the identity of a document's canonical form.
type fingerprintResult struct {
	Fingerprint    string `json:"fingerprint"`
	CID            string `json:"cid"`
	CanonicalBytes int    `json:"canonical_bytes"`
	InputCanonical bool   `json:"input_canonical"`
}

func fingerprintCommand() *cli.Command {
	var params fingerprintParams

	return &cli.Command{
		Name:    "fingerprint",
		Summary: "Print the fingerprint and CID of a document",
		Description: `Compute identifiers for the canonical encoding of a document.

The document is decoded and canonicalized first, so every framing of the
same metadata yields the same identifiers:

  fingerprint  BLAKE3 keyed with the "cip25.metadata" domain, hex
  cid          CIDv1, raw codec, sha2-256 multihash, base32

The CID is what "ipfs add --raw-leaves --cid-version 1" reports for the
canonical bytes stored as a single block.`,
		Usage: "cip25 fingerprint [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Identify a document",
				Command:     "cip25 fingerprint metadata.cbor",
			},
		},
		Params:      func() any { return &params },
		Annotations: cli.ReadOnly(),
		Run: func(args []string) error {
			env, err := params.open("fingerprint")
			if err != nil {
				return err
			}
			data, err := readInput("fingerprint", args, os.Stdin, env.hexInput(params.cborInput))
			if err != nil {
				return err
			}
			result, err := fingerprintDocument(data, env.logger)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(os.Stdout, result); done {
				return err
			}
			return writeFingerprint(os.Stdout, result)
		},
	}
}

func fingerprintDocument(data []byte, logger *slog.Logger) (fingerprintResult, error) {
	metadata, err := decodeDocument(data)
	if err != nil {
		return fingerprintResult{}, err
	}
	identity, err := contentid.Identify(metadata)
	if err != nil {
		return fingerprintResult{}, cli.Internal("identify: %w", err)
	}
	result := fingerprintResult{
		Fingerprint:    identity.Fingerprint.String(),
		CID:            identity.CID.String(),
		CanonicalBytes: len(identity.Canonical),
		InputCanonical: bytes.Equal(identity.Canonical, data),
	}
	logger.Debug("identified metadata",
		"fingerprint", result.Fingerprint,
		"cid", result.CID,
		"input_canonical", result.InputCanonical,
	)
	return result, nil
}

func writeFingerprint(w io.Writer, result fingerprintResult) error {
	_, err := fmt.Fprintf(w, "fingerprint  %s\ncid          %s\n", result.Fingerprint, result.CID)
	return err
}
