// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/cip25/lib/cborwire"
	"github.com/bureau-foundation/cip25/lib/testutil"
)

func TestDecodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		decode func(WireReader) error
		input  string
		kind   FailureKind
		key    string
		path   string
	}{
		{
			name:   "file unknown key",
			decode: fileDecoder,
			input:  `a4 63737263 68697066733a2f2f78 646e616d65 65612e706e67 63666f6f 01`,
			kind:   FailureUnknownKey,
			key:    `"foo"`,
			path:   "FileDetails",
		},
		{
			name:   "file integer key",
			decode: fileDecoder,
			input:  `a3 07 01`,
			kind:   FailureUnknownKey,
			key:    "7",
			path:   "FileDetails",
		},
		{
			name:   "file duplicate key",
			decode: fileDecoder,
			input:  `a3 646e616d65 65612e706e67 646e616d65 65612e706e67 63737263 68697066733a2f2f78`,
			kind:   FailureDuplicateKey,
			key:    `"name"`,
			path:   "FileDetails",
		},
		{
			name:   "file missing mediaType",
			decode: fileDecoder,
			input:  `bf 646e616d65 65612e706e67 63737263 68697066733a2f2f78 ff`,
			kind:   FailureMandatoryFieldMissing,
			key:    `"mediaType"`,
			path:   "FileDetails",
		},
		{
			name:   "file declares too few fields",
			decode: fileDecoder,
			input:  `a2 646e616d65 65612e706e67 63737263 68697066733a2f2f78`,
			kind:   FailureDefiniteLenMismatch,
			path:   "FileDetails",
		},
		{
			name:   "file byte-string key",
			decode: fileDecoder,
			input:  `a3 4100 01`,
			kind:   FailureUnexpectedKeyType,
			path:   "FileDetails",
		},
		{
			name:   "asset missing image",
			decode: assetDecoder,
			input:  `bf 646e616d65 654475636b73 ff`,
			kind:   FailureMandatoryFieldMissing,
			key:    `"image"`,
			path:   "AssetDetails",
		},
		{
			name:   "asset optional field beyond declared length",
			decode: assetDecoder,
			input:  `a2 646e616d65 654475636b73 696d6564696154797065 69696d6167652f706e67`,
			kind:   FailureDefiniteLenMismatch,
			path:   "AssetDetails.mediaType",
		},
		{
			name:   "asset duplicate optional field",
			decode: assetDecoder,
			input:  `bf 696d6564696154797065 6161 696d6564696154797065 6161 ff`,
			kind:   FailureDuplicateKey,
			key:    `"mediaType"`,
			path:   "AssetDetails",
		},
		{
			name:   "asset name too long",
			decode: assetDecoder,
			input:  "a2 646e616d65 7841" + strings.Repeat("61", 65),
			kind:   FailureRangeCheck,
			path:   "AssetDetails.name.String64",
		},
		{
			name:   "asset image is a number",
			decode: assetDecoder,
			input:  `a2 646e616d65 6161 65696d616765 01`,
			kind:   FailureNoVariantMatched,
			path:   "AssetDetails.image.StringOrList",
		},
		{
			name:   "asset files hold a break in a definite array",
			decode: assetDecoder,
			input:  `a3 646e616d65 6161 65696d616765 6161 6566696c6573 81 ff`,
			kind:   FailureBreakInDefiniteLen,
			path:   "AssetDetails.files",
		},
		{
			name:   "label version 3",
			decode: labelDecoder,
			input:  `a2 6464617461 a0 6776657273696f6e 03`,
			kind:   FailureFixedValueMismatch,
			path:   "LabelMetadata.version",
		},
		{
			name:   "label version missing",
			decode: labelDecoder,
			input:  `bf 6464617461 a0 ff`,
			kind:   FailureMandatoryFieldMissing,
			key:    `"version"`,
			path:   "LabelMetadata",
		},
		{
			name:   "label data missing",
			decode: labelDecoder,
			input:  `bf 6776657273696f6e 02 ff`,
			kind:   FailureMandatoryFieldMissing,
			key:    `"data"`,
			path:   "LabelMetadata",
		},
		{
			name:   "label duplicate policy id",
			decode: labelDecoder,
			input:  `a2 6464617461 a2 41ab a0 41ab a0 6776657273696f6e 02`,
			kind:   FailureDuplicateKey,
			key:    "h'ab'",
			path:   "LabelMetadata.data",
		},
		{
			name:   "label duplicate asset name",
			decode: labelDecoder,
			input:  `a2 6464617461 a1 41ab bf 41cd a2 646e616d65 6161 65696d616765 6161 41cd`,
			kind:   FailureDuplicateKey,
			key:    "h'cd'",
			path:   "LabelMetadata.data[h'ab']",
		},
		{
			name:   "label break inside definite data map",
			decode: labelDecoder,
			input:  `a2 6464617461 a1 ff`,
			kind:   FailureBreakInDefiniteLen,
			path:   "LabelMetadata.data",
		},
		{
			name:   "label text policy id",
			decode: labelDecoder,
			input:  `a2 6464617461 a1 6161 a0`,
			kind:   FailureUnexpectedKeyType,
			path:   "LabelMetadata.data",
		},
		{
			name:   "label indefinite map ended by null",
			decode: labelDecoder,
			input:  `bf 6464617461 a0 6776657273696f6e 02 f6`,
			kind:   FailureEndingBreakMissing,
			path:   "LabelMetadata",
		},
		{
			name:   "metadata text key",
			decode: metadataDecoder,
			input:  `a1 6464617461 a0`,
			kind:   FailureUnknownKey,
			key:    `"data"`,
			path:   "Metadata",
		},
		{
			name:   "metadata other label",
			decode: metadataDecoder,
			input:  `a1 1902d2 a0`,
			kind:   FailureUnknownKey,
			key:    "722",
			path:   "Metadata",
		},
		{
			name:   "metadata empty definite map",
			decode: metadataDecoder,
			input:  `a0`,
			kind:   FailureDefiniteLenMismatch,
			path:   "Metadata",
		},
		{
			name:   "metadata missing label",
			decode: metadataDecoder,
			input:  `bf ff`,
			kind:   FailureMandatoryFieldMissing,
			key:    "721",
			path:   "Metadata",
		},
		{
			name:   "metadata duplicate label",
			decode: metadataDecoder,
			input:  `bf 1902d1 a2 6464617461 a0 6776657273696f6e 02 1902d1`,
			kind:   FailureDuplicateKey,
			key:    "721",
			path:   "Metadata",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.decode(cborwire.NewReader(testutil.Hex(t, test.input)))
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("got %v, want *DecodeError", err)
			}
			if decodeErr.Failure.Kind != test.kind {
				t.Fatalf("kind = %s (%v), want %s", decodeErr.Failure.Kind, err, test.kind)
			}
			if !IsKind(err, test.kind) {
				t.Errorf("IsKind(%s) = false", test.kind)
			}
			if test.key != "" && decodeErr.Failure.Key.String() != test.key {
				t.Errorf("key = %s, want %s", decodeErr.Failure.Key, test.key)
			}
			if got := decodeErr.Path(); got != test.path {
				t.Errorf("path = %q, want %q", got, test.path)
			}
		})
	}
}

func fileDecoder(reader WireReader) error {
	_, err := decodeFileDetails(reader)
	return err
}

func assetDecoder(reader WireReader) error {
	_, err := decodeAssetDetails(reader)
	return err
}

func labelDecoder(reader WireReader) error {
	_, err := decodeLabelMetadata(reader)
	return err
}

func metadataDecoder(reader WireReader) error {
	_, err := decodeMetadata(reader)
	return err
}

func TestDecodeFileDetails(t *testing.T) {
	details, err := decodeFileDetails(cborwire.NewReader(testutil.Hex(t, fileDetailsHex)))
	if err != nil {
		t.Fatalf("decodeFileDetails: %v", err)
	}
	want := NewFileDetails(MustString64("a.png"), MustString64("image/png"), SingleString(MustString64("ipfs://x")))
	if !details.Equal(want) {
		t.Errorf("decoded %+v, want %+v", details, want)
	}
	wantOrder := []int{fileFieldSrc, fileFieldName, fileFieldMediaType}
	if len(details.encoding.order) != len(wantOrder) {
		t.Fatalf("order = %v, want %v", details.encoding.order, wantOrder)
	}
	for index := range wantOrder {
		if details.encoding.order[index] != wantOrder[index] {
			t.Fatalf("order = %v, want %v", details.encoding.order, wantOrder)
		}
	}
}

func TestString64Bounds(t *testing.T) {
	if _, err := NewString64(strings.Repeat("a", 64)); err != nil {
		t.Errorf("NewString64(64 bytes): %v", err)
	}
	_, err := NewString64(strings.Repeat("a", 65))
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Failure.Kind != FailureRangeCheck {
		t.Fatalf("NewString64(65 bytes): got %v, want range check", err)
	}
	if decodeErr.Failure.Found != 65 || decodeErr.Failure.Max != 64 {
		t.Errorf("failure = %+v, want found 65 max 64", decodeErr.Failure)
	}

	// The bound is on bytes, not runes: 22 three-byte runes exceed it.
	if _, err := NewString64(strings.Repeat("€", 22)); !IsKind(err, FailureRangeCheck) {
		t.Errorf("NewString64(66 bytes of runes): got %v, want range check", err)
	}

	for _, length := range []int{64, 65} {
		var buffer bytes.Buffer
		text := strings.Repeat("b", length)
		if err := cborwire.NewWriter(&buffer).WriteText(text, cborwire.DefiniteString(cborwire.CanonicalSz(uint64(length)))); err != nil {
			t.Fatalf("WriteText: %v", err)
		}
		decoded, err := decodeString64(cborwire.NewReader(buffer.Bytes()))
		switch length {
		case 64:
			if err != nil || decoded.String() != text {
				t.Errorf("decodeString64(64 bytes) = %q, %v", decoded, err)
			}
		case 65:
			if !IsKind(err, FailureRangeCheck) {
				t.Errorf("decodeString64(65 bytes): got %v, want range check", err)
			}
		}
	}
}

func TestDecodeStringOrList(t *testing.T) {
	single, err := decodeStringOrList(cborwire.NewReader(testutil.Hex(t, "65 4475636b73")))
	if err != nil {
		t.Fatalf("single: %v", err)
	}
	if single.IsList() || single.Joined() != "Ducks" {
		t.Errorf("single = %+v, want single \"Ducks\"", single)
	}

	list, err := decodeStringOrList(cborwire.NewReader(testutil.Hex(t, "82 65697066733a 652f2f616263")))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	items, ok := list.List()
	if !ok || len(items) != 2 || list.Joined() != "ipfs://abc" {
		t.Errorf("list = %+v, want [\"ipfs:\", \"//abc\"]", list)
	}

	reader := cborwire.NewReader(testutil.Hex(t, "01"))
	_, err = decodeStringOrList(reader)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) || decodeErr.Failure.Kind != FailureNoVariantMatched {
		t.Fatalf("number: got %v, want no variant matched", err)
	}
	if len(decodeErr.Failure.Variants) != 2 {
		t.Errorf("variants = %d, want 2", len(decodeErr.Failure.Variants))
	}
	if reader.Position() != 0 {
		t.Errorf("reader left at %d after failed union, want 0", reader.Position())
	}

	// A list holding an over-long item matches neither variant.
	overlong := "81 7841" + strings.Repeat("61", 65)
	if _, err := decodeStringOrList(cborwire.NewReader(testutil.Hex(t, overlong))); !IsKind(err, FailureNoVariantMatched) {
		t.Errorf("over-long list item: got %v, want no variant matched", err)
	}
}
