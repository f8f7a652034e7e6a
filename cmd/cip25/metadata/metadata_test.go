// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/cip25/cmd/cip25/cli"
	"github.com/bureau-foundation/cip25/lib/cip25"
	"github.com/bureau-foundation/cip25/lib/cip25json"
	"github.com/bureau-foundation/cip25/lib/contentid"
	"github.com/bureau-foundation/cip25/lib/testutil"
)

const ducksCanonical = `
a1 1902d1
  a2
    64 64617461
    a1 41ab
      a1 41cd
        a2
          64 6e616d65     65 4475636b73
          65 696d616765   6a 697066733a2f2f616263
    67 76657273696f6e 02
`

// ducksFramed is ducks plus a mediaType, with oversized widths,
// indefinite containers, chunked strings and reordered fields.
const ducksFramed = `
b90001 1a000002d1
  bf
    67 76657273696f6e 1802
    7804 64617461
    a1
      5801 ab
      bf
        5f 41cd 40 ff
        a3
          65 696d616765          9f 65697066733a 652f2f616263 ff
          64 6e616d65            7f 63447563 626b73 ff
          69 6d6564696154797065  69 696d6167652f706e67
      ff
  ff
`

const ducksFramedCanonical = `
a1 1902d1
  a2
    64 64617461
    a1 41ab
      a1 41cd
        a3
          64 6e616d65             65 4475636b73
          65 696d616765           82 65697066733a 652f2f616263
          69 6d6564696154797065   69 696d6167652f706e67
    67 76657273696f6e 02
`

var discard = slog.New(slog.DiscardHandler)

func requireCategory(t *testing.T, err error, category cli.ErrorCategory) *cli.ToolError {
	t.Helper()
	var toolErr *cli.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("got %v, want a *cli.ToolError", err)
	}
	if toolErr.Category != category {
		t.Fatalf("category = %s, want %s (error: %v)", toolErr.Category, category, err)
	}
	return toolErr
}

func TestDecodeToJSON(t *testing.T) {
	var output bytes.Buffer
	if err := decodeToJSON(testutil.Hex(t, ducksCanonical), &output, "", discard); err != nil {
		t.Fatalf("decodeToJSON: %v", err)
	}
	want := `{"721":{"data":{"ab":{"cd":{"name":"Ducks","image":"ipfs://abc"}}},"version":2}}` + "\n"
	if output.String() != want {
		t.Errorf("output = %s, want %s", output.String(), want)
	}

	output.Reset()
	if err := decodeToJSON(testutil.Hex(t, ducksFramed), &output, "  ", discard); err != nil {
		t.Fatalf("decodeToJSON framed: %v", err)
	}
	var view map[string]any
	if err := json.Unmarshal(output.Bytes(), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output.String())
	}
	if !strings.Contains(output.String(), `"image": [`) {
		t.Errorf("list image not rendered as an array:\n%s", output.String())
	}
}

func TestDecodeDocumentClassifiesFailures(t *testing.T) {
	// Truncated CBOR is malformed.
	_, err := decodeDocument(testutil.Hex(t, "a1 1902"))
	toolErr := requireCategory(t, err, cli.CategoryValidation)
	if !strings.Contains(toolErr.Error(), "malformed CBOR") {
		t.Errorf("error = %q, want malformed CBOR", toolErr.Error())
	}

	// An empty map is well-formed but violates the schema.
	_, err = decodeDocument(testutil.Hex(t, "a0"))
	requireCategory(t, err, cli.CategoryValidation)
	var decodeErr *cip25.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("got %v, want a wrapped *cip25.DecodeError", err)
	}
	if !strings.Contains(err.Error(), "not a CIP-25 version 2 document") {
		t.Errorf("error = %q, want the schema hint", err.Error())
	}
}

func TestEncodeFromJSON(t *testing.T) {
	source := []byte(`{
  // comments are allowed
  "721": {"version": 2, "data": {"ab": {"cd": {"image": "ipfs://abc", "name": "Ducks"}}}},
}`)
	var output bytes.Buffer
	if err := encodeFromJSON(source, &output, true, discard); err != nil {
		t.Fatalf("encodeFromJSON: %v", err)
	}
	encoded, err := hex.DecodeString(strings.TrimSpace(output.String()))
	if err != nil {
		t.Fatalf("output is not hex: %v", err)
	}
	testutil.RequireBytes(t, encoded, testutil.Hex(t, ducksCanonical), "encoded document")

	err = encodeFromJSON([]byte(`{"721":{"data":{},"version":3}}`), &output, true, discard)
	requireCategory(t, err, cli.CategoryValidation)
	var parseErr *cip25json.ParseError
	if !errors.As(err, &parseErr) || parseErr.Path != "$.721.version" {
		t.Errorf("got %v, want a ParseError at $.721.version", err)
	}
}

func TestReencode(t *testing.T) {
	framed := testutil.Hex(t, ducksFramed)

	var preserved bytes.Buffer
	if err := reencode(framed, &preserved, false, false, discard); err != nil {
		t.Fatalf("reencode: %v", err)
	}
	testutil.RequireBytes(t, preserved.Bytes(), framed, "framing-preserving re-encode")

	var canonical bytes.Buffer
	if err := reencode(framed, &canonical, true, false, discard); err != nil {
		t.Fatalf("reencode canonical: %v", err)
	}
	testutil.RequireBytes(t, canonical.Bytes(), testutil.Hex(t, ducksFramedCanonical), "canonical re-encode")
}

func TestVerifyDocument(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		canonical     bool
		canonicalDiff int
	}{
		{name: "canonical", input: ducksCanonical, canonical: true, canonicalDiff: -1},
		// The first byte differs: b9 (map, 2-byte length) against a1.
		{name: "framed", input: ducksFramed, canonical: false, canonicalDiff: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := testutil.Hex(t, test.input)
			report, err := verifyDocument(data, discard)
			if err != nil {
				t.Fatalf("verifyDocument: %v", err)
			}
			if !report.RoundTrip || report.RoundTripDifference != -1 {
				t.Errorf("round trip failed: %+v", report)
			}
			if !report.CrossCheck || !report.Stable {
				t.Errorf("cross-check or stability failed: %+v", report)
			}
			if report.Canonical != test.canonical || report.CanonicalDifference != test.canonicalDiff {
				t.Errorf("canonical = %v at %d, want %v at %d",
					report.Canonical, report.CanonicalDifference, test.canonical, test.canonicalDiff)
			}
			if !report.ok(false) {
				t.Error("report not ok without --require-canonical")
			}
			if report.ok(true) != test.canonical {
				t.Errorf("ok(requireCanonical) = %v, want %v", report.ok(true), test.canonical)
			}
		})
	}
}

func TestWriteVerifyReport(t *testing.T) {
	report, err := verifyDocument(testutil.Hex(t, ducksFramed), discard)
	if err != nil {
		t.Fatalf("verifyDocument: %v", err)
	}
	var output bytes.Buffer
	if err := writeVerifyReport(&output, report); err != nil {
		t.Fatalf("writeVerifyReport: %v", err)
	}
	for _, want := range []string{
		"round-trip:  ok",
		"canonical:   no: first difference at byte 0",
		"cross-check: ok",
		"stable:      ok",
	} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("report missing %q:\n%s", want, output.String())
		}
	}
}

func TestDiagnose(t *testing.T) {
	var output bytes.Buffer
	if err := diagnose(testutil.Hex(t, ducksFramed), &output); err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	notation := output.String()
	for _, want := range []string{"721", `"version"`, "_", `h'ab'`} {
		if !strings.Contains(notation, want) {
			t.Errorf("notation missing %q: %s", want, notation)
		}
	}

	err := diagnose(testutil.Hex(t, "a1 1902"), &output)
	requireCategory(t, err, cli.CategoryValidation)
}

func TestFingerprintDocument(t *testing.T) {
	canonical, err := fingerprintDocument(testutil.Hex(t, ducksFramedCanonical), discard)
	if err != nil {
		t.Fatalf("fingerprintDocument canonical: %v", err)
	}
	framed, err := fingerprintDocument(testutil.Hex(t, ducksFramed), discard)
	if err != nil {
		t.Fatalf("fingerprintDocument framed: %v", err)
	}
	if canonical.Fingerprint != framed.Fingerprint || canonical.CID != framed.CID {
		t.Errorf("framing changed identity: %+v vs %+v", canonical, framed)
	}
	if !canonical.InputCanonical || framed.InputCanonical {
		t.Errorf("InputCanonical = %v/%v, want true/false", canonical.InputCanonical, framed.InputCanonical)
	}
	want, err := contentid.CID(testutil.Hex(t, ducksFramedCanonical))
	if err != nil {
		t.Fatalf("CID: %v", err)
	}
	if canonical.CID != want.String() {
		t.Errorf("CID = %s, want %s", canonical.CID, want)
	}

	var output bytes.Buffer
	if err := writeFingerprint(&output, canonical); err != nil {
		t.Fatalf("writeFingerprint: %v", err)
	}
	if !strings.Contains(output.String(), "cid          "+want.String()) {
		t.Errorf("output = %q", output.String())
	}
}

func TestCollectRefs(t *testing.T) {
	imageCID, err := contentid.CID([]byte("image"))
	if err != nil {
		t.Fatalf("CID: %v", err)
	}
	uri := "ipfs://" + imageCID.String() + "/duck.png"
	// Over 64 bytes, so the image is split into a list.
	source := `{"721":{"data":{"ab":{"cd":{
		"name": "Ducks",
		"image": ["` + uri[:40] + `", "` + uri[40:] + `"],
		"files": [
			{"name": "page", "mediaType": "text/html", "src": "https://example.com"},
			{"name": "bad", "mediaType": "image/png", "src": "ipfs://not-a-cid"}
		]
	}}},"version":2}}`
	var encoded bytes.Buffer
	if err := encodeFromJSON([]byte(source), &encoded, false, discard); err != nil {
		t.Fatalf("encodeFromJSON: %v", err)
	}

	entries, err := collectRefs(encoded.Bytes(), "https://gateway.example/", discard)
	if err != nil {
		t.Fatalf("collectRefs: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2", entries)
	}
	image := entries[0]
	if image.Location != "data[h'ab'][h'cd'].image" || image.CID != imageCID.String() || image.Path != "/duck.png" {
		t.Errorf("image entry = %+v", image)
	}
	if image.GatewayURL != "https://gateway.example/ipfs/"+imageCID.String()+"/duck.png" {
		t.Errorf("GatewayURL = %q", image.GatewayURL)
	}
	if entries[1].Error == "" || entries[1].Location != "data[h'ab'][h'cd'].files[1].src" {
		t.Errorf("bad entry = %+v, want a parse error at files[1].src", entries[1])
	}

	var output bytes.Buffer
	if err := writeRefs(&output, entries); err != nil {
		t.Fatalf("writeRefs: %v", err)
	}
	if !strings.HasPrefix(output.String(), "LOCATION") || !strings.Contains(output.String(), "error:") {
		t.Errorf("table output:\n%s", output.String())
	}
}

func TestFirstDifference(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"abc", "abc", 3},
		{"abc", "abd", 2},
		{"ab", "abc", 2},
		{"", "a", 0},
	}
	for _, test := range tests {
		if got := firstDifference([]byte(test.a), []byte(test.b)); got != test.want {
			t.Errorf("firstDifference(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
