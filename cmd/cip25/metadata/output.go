// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
)

// writeCBOR writes data raw, or as one line of hex when hexOutput is
// set.
func writeCBOR(w io.Writer, data []byte, hexOutput bool) error {
	if hexOutput {
		_, err := io.WriteString(w, hex.EncodeToString(data)+"\n")
		return err
	}
	_, err := w.Write(data)
	return err
}

// checkBinaryStdout refuses raw CBOR output to a terminal.
func checkBinaryStdout(hexOutput bool) error {
	if !hexOutput && cli.IsTerminal(os.Stdout) {
		return cli.Validation("refusing to write binary CBOR to a terminal").
			WithHint("Pass --hex-output or redirect stdout to a file.")
	}
	return nil
}

// firstDifference returns the offset of the first differing byte of a
// and b, or the shorter length when one is a prefix of the other.
func firstDifference(a, b []byte) int {
	limit := min(len(a), len(b))
	for offset := range limit {
		if a[offset] != b[offset] {
			return offset
		}
	}
	return limit
}
