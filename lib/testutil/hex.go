// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"encoding/hex"
	"strings"
	"unicode"
)

// Hex decodes a hex fixture. Whitespace is ignored, and "#" starts a
// comment that runs to the end of the line.
func Hex(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, text string) []byte {
	t.Helper()
	var digits strings.Builder
	for line := range strings.Lines(text) {
		if comment := strings.IndexByte(line, '#'); comment >= 0 {
			line = line[:comment]
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				digits.WriteRune(r)
			}
		}
	}
	data, err := hex.DecodeString(digits.String())
	if err != nil {
		t.Fatalf("invalid hex fixture: %v", err)
	}
	return data
}

// RequireBytes fails the test unless got equals want, reporting the
// first differing offset under label.
//
//	testutil.RequireBytes(t, encoded, original, "round trip")
func RequireBytes(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []byte, label string) {
	t.Helper()
	if bytes.Equal(got, want) {
		return
	}
	offset := 0
	for offset < len(got) && offset < len(want) && got[offset] == want[offset] {
		offset++
	}
	t.Fatalf("%s: bytes differ at offset %d\n got: %x\nwant: %x",
		label, offset, got, want)
}
