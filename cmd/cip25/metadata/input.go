// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"unicode"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25"
	"github.com/bureau-foundation/cip25/lib/codec"
)

// readInput returns the document named by args, or stdin when args is
// empty or "-". At most one positional argument is accepted.
//
// When hexMode is true, the bytes are treated as hex-encoded CBOR:
// whitespace is stripped and the hex is decoded to binary.
func readInput(command string, args []string, stdin io.Reader, hexMode bool) ([]byte, error) {
	if len(args) > 1 {
		return nil, cli.Validation("%s takes at most one file argument, got %d", command, len(args))
	}

	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("read %s: %w", args[0], err)
		}
		if err != nil {
			return nil, cli.Internal("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
	}

	if hexMode {
		return decodeHexInput(data)
	}
	if len(data) == 0 {
		return nil, cli.Validation("empty input: expected a metadata document")
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary. Whitespace between digit pairs is allowed
// ("a1 19 02d1" or "a11902d1").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, cli.Validation("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, cli.Validation("decode hex: %w", err).WithHint("Drop --hex for binary input.")
	}
	return decoded[:count], nil
}

// decodeDocument decodes metadata CBOR, separating malformed CBOR from
// well-formed CBOR that does not match the schema.
func decodeDocument(data []byte) (*cip25.Metadata, error) {
	metadata, err := cip25.Decode(data)
	if err == nil {
		return metadata, nil
	}
	if wellformedErr := codec.Wellformed(data); wellformedErr != nil {
		return nil, cli.Validation("malformed CBOR: %w", wellformedErr).
			WithHint("Run 'cip25 diag' to inspect the bytes, or pass --hex for hex input.")
	}
	return nil, cli.Validation("%w", err).
		WithHint("The input is well-formed CBOR but not a CIP-25 version 2 document.")
}
