// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/cip25/lib/testutil"
)

func TestDecodeDucks(t *testing.T) {
	data := testutil.Hex(t, ducksCanonical)
	metadata, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	details, ok := metadata.Label721.Asset([]byte{0xab}, []byte{0xcd})
	if !ok {
		t.Fatal("asset h'ab'/h'cd' not found")
	}
	if details.Name.String() != "Ducks" {
		t.Errorf("name = %q, want %q", details.Name, "Ducks")
	}
	image, ok := details.Image.Single()
	if !ok || image.String() != "ipfs://abc" {
		t.Errorf("image = %+v, want single \"ipfs://abc\"", details.Image)
	}
	if details.MediaType != nil || details.Description != nil || details.Files != nil {
		t.Errorf("optional fields present: %+v", details)
	}
	if metadata.Label721.Version() != 2 {
		t.Errorf("version = %d, want 2", metadata.Label721.Version())
	}

	canonical, err := Encode(metadata, true)
	if err != nil {
		t.Fatalf("Encode canonical: %v", err)
	}
	testutil.RequireBytes(t, canonical, data, "canonical re-encode")
}

func TestRoundTripPreservesFraming(t *testing.T) {
	for _, fixture := range []struct {
		name string
		hex  string
	}{
		{"canonical", ducksCanonical},
		{"non-canonical", ducksNonCanonical},
		{"normalized", ducksNonCanonicalNormalized},
		{"files and description", filesFramed},
	} {
		t.Run(fixture.name, func(t *testing.T) {
			data := testutil.Hex(t, fixture.hex)
			metadata, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			encoded, err := Encode(metadata, false)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			testutil.RequireBytes(t, encoded, data, "round trip")
		})
	}
}

func TestCanonicalEncoding(t *testing.T) {
	metadata, err := Decode(testutil.Hex(t, ducksNonCanonical))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	canonical, err := Encode(metadata, true)
	if err != nil {
		t.Fatalf("Encode canonical: %v", err)
	}
	testutil.RequireBytes(t, canonical, testutil.Hex(t, ducksNonCanonicalNormalized), "canonical form")

	redecoded, err := Decode(canonical)
	if err != nil {
		t.Fatalf("Decode canonical: %v", err)
	}
	again, err := Encode(redecoded, true)
	if err != nil {
		t.Fatalf("Encode canonical again: %v", err)
	}
	testutil.RequireBytes(t, again, canonical, "canonical idempotence")

	if !metadata.Equal(redecoded) {
		t.Error("canonicalization changed the document's values")
	}
}

func TestCanonicalMapOrdering(t *testing.T) {
	details := NewAssetDetails(MustString64("x"), SingleString(MustString64("ipfs://x")))
	policies := [][]byte{{0x01, 0x02}, {0xff}, {0x00}}

	build := func(order []int) *Metadata {
		label := NewLabelMetadata(nil)
		for _, index := range order {
			label.SetAsset(policies[index], []byte("asset"), details)
		}
		return NewMetadata(label)
	}
	first := build([]int{0, 1, 2})
	second := build([]int{2, 0, 1})

	firstCanonical, err := Encode(first, true)
	if err != nil {
		t.Fatalf("Encode first: %v", err)
	}
	secondCanonical, err := Encode(second, true)
	if err != nil {
		t.Fatalf("Encode second: %v", err)
	}
	testutil.RequireBytes(t, firstCanonical, secondCanonical, "insertion order leaked into canonical form")

	sorted, err := Decode(firstCanonical)
	if err != nil {
		t.Fatalf("Decode canonical: %v", err)
	}
	// Shorter encodings sort first, so h'ff' precedes h'0102'.
	wantOrder := [][]byte{{0x00}, {0xff}, {0x01, 0x02}}
	assertKeys(t, sorted.Label721.Data.Keys(), wantOrder)

	for _, metadata := range []*Metadata{first, second} {
		preserved, err := Encode(metadata, false)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		decoded, err := Decode(preserved)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		assertKeys(t, decoded.Label721.Data.Keys(), metadata.Label721.Data.Keys())
	}

	if !first.Label721.EquivalentTo(second.Label721) {
		t.Error("EquivalentTo = false for the same entries in different order")
	}
	if first.Label721.Equal(second.Label721) {
		t.Error("Equal = true for different insertion order")
	}
}

func assertKeys(t *testing.T, got, want [][]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("keys = %x, want %x", got, want)
	}
	for index := range want {
		if !bytes.Equal(got[index], want[index]) {
			t.Fatalf("keys = %x, want %x", got, want)
		}
	}
}

func TestConstructedDocumentEncodesCanonically(t *testing.T) {
	label := NewLabelMetadata(nil)
	label.SetAsset([]byte{0xab}, []byte{0xcd},
		NewAssetDetails(MustString64("Ducks"), SingleString(MustString64("ipfs://abc"))))
	metadata := NewMetadata(label)

	for _, forceCanonical := range []bool{false, true} {
		encoded, err := Encode(metadata, forceCanonical)
		if err != nil {
			t.Fatalf("Encode(%v): %v", forceCanonical, err)
		}
		testutil.RequireBytes(t, encoded, testutil.Hex(t, ducksCanonical), "constructed document")
	}
}

func TestEditedDocumentDropsStaleOrder(t *testing.T) {
	metadata, err := Decode(testutil.Hex(t, ducksNonCanonical))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	details, _ := metadata.Label721.Asset([]byte{0xab}, []byte{0xcd})
	details.MediaType = nil
	metadata.Label721.SetAsset([]byte{0xab}, []byte{0xcd}, details)

	encoded, err := Encode(metadata, false)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode edited: %v", err)
	}
	edited, _ := decoded.Label721.Asset([]byte{0xab}, []byte{0xcd})
	if edited.MediaType != nil {
		t.Error("mediaType survived removal")
	}
	// The captured order named three fields; with two present the
	// default order applies.
	if got := edited.encoding.order; len(got) != 2 || got[0] != assetFieldName || got[1] != assetFieldImage {
		t.Errorf("order = %v, want [name image]", got)
	}
}

func TestDecodeTrailingData(t *testing.T) {
	data := append(testutil.Hex(t, ducksCanonical), 0x00)
	if _, err := Decode(data); !errors.Is(err, ErrTrailingData) {
		t.Fatalf("Decode: got %v, want ErrTrailingData", err)
	}
}

func TestDecodeErrorPath(t *testing.T) {
	data := testutil.Hex(t, `
a1 1902d1
  a2
    64 64617461
    a1 41ab
      a1 41cd
        a3
          64 6e616d65     65 4475636b73
          65 696d616765   6a 697066733a2f2f616263
          65 66696c6573   81
            a3 64 6e616d65 01
`)
	_, err := Decode(data)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Decode: got %v, want *DecodeError", err)
	}
	want := "Metadata.721.LabelMetadata.data[h'ab'][h'cd'].AssetDetails.files[0].FileDetails.name.String64"
	if got := decodeErr.Path(); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
	if decodeErr.Failure.Kind != FailureWire {
		t.Errorf("Kind = %s, want %s", decodeErr.Failure.Kind, FailureWire)
	}
	if !strings.Contains(err.Error(), want) {
		t.Errorf("Error() = %q does not mention the path", err.Error())
	}
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write([]byte) (int, error) {
	return 0, w.err
}

func TestEncodePropagatesWriterErrors(t *testing.T) {
	metadata, err := Decode(testutil.Hex(t, ducksCanonical))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	diskFull := errors.New("disk full")
	if err := EncodeTo(failingWriter{err: diskFull}, metadata, false); !errors.Is(err, diskFull) {
		t.Fatalf("EncodeTo: got %v, want %v", err, diskFull)
	}
	if err := EncodeTo(&bytes.Buffer{}, nil, false); !errors.Is(err, ErrNilMetadata) {
		t.Fatalf("EncodeTo(nil): got %v, want ErrNilMetadata", err)
	}
}

func TestMarshalCBOR(t *testing.T) {
	data := testutil.Hex(t, ducksNonCanonical)
	var metadata Metadata
	if err := metadata.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	encoded, err := metadata.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	testutil.RequireBytes(t, encoded, data, "MarshalCBOR")
}

func TestConcurrentDecodeEncode(t *testing.T) {
	data := testutil.Hex(t, ducksNonCanonical)
	const workers = 8
	results := make(chan error, workers)
	for range workers {
		go func() {
			metadata, err := Decode(data)
			if err != nil {
				results <- err
				return
			}
			encoded, err := Encode(metadata, false)
			if err == nil && !bytes.Equal(encoded, data) {
				err = errors.New("round trip mismatch")
			}
			results <- err
		}()
	}
	for _, err := range testutil.DrainErrors(t, results, workers, 5*time.Second) {
		t.Error(err)
	}
}

func TestDecodeFilesFramed(t *testing.T) {
	metadata, err := Decode(testutil.Hex(t, filesFramed))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	details, ok := metadata.Label721.Asset([]byte{0xab}, []byte{0xcd})
	if !ok {
		t.Fatal("asset h'ab' h'cd' missing")
	}
	if len(details.Files) != 2 {
		t.Fatalf("Files = %d entries, want 2", len(details.Files))
	}
	first := details.Files[0]
	if first.Name.String() != "a" || first.MediaType.String() != "image/png" {
		t.Errorf("Files[0] = %q %q", first.Name, first.MediaType)
	}
	sources, isList := first.Src.List()
	if !isList || len(sources) != 2 || sources[0].String() != "" || sources[1].String() != "ipfs://x" {
		t.Errorf("Files[0].Src = %v, want [\"\", \"ipfs://x\"]", sources)
	}
	if details.Description == nil || details.Description.Joined() != "one1two" {
		t.Errorf("Description = %v, want list joining to one1two", details.Description)
	}
	if details.MediaType == nil || details.MediaType.String() != "image/png" {
		t.Errorf("MediaType = %v", details.MediaType)
	}
}

// Key framing belongs to the map entry: replacing a value keeps it,
// deleting the key drops it.
func TestDeletedKeyDropsFraming(t *testing.T) {
	original := testutil.Hex(t, ducksNonCanonical)

	replaced, err := Decode(original)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assets, _ := replaced.Label721.Data.Get([]byte{0xab})
	details, _ := assets.Get([]byte{0xcd})
	assets.Set([]byte{0xcd}, details)
	encoded, err := Encode(replaced, false)
	if err != nil {
		t.Fatalf("Encode replaced: %v", err)
	}
	testutil.RequireBytes(t, encoded, original, "replaced value")

	readded, err := Decode(original)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	assets, _ = readded.Label721.Data.Get([]byte{0xab})
	details, _ = assets.Get([]byte{0xcd})
	assets.Delete([]byte{0xcd})
	assets.Set([]byte{0xcd}, details)
	encoded, err = Encode(readded, false)
	if err != nil {
		t.Fatalf("Encode re-added: %v", err)
	}
	// The chunked asset name (_ h'cd', h'') becomes h'cd'.
	want := testutil.Hex(t, strings.Replace(ducksNonCanonical, "5f 41cd 40 ff", "41 cd", 1))
	testutil.RequireBytes(t, encoded, want, "re-added key")

	policies := readded.Label721.Data
	policyAssets, _ := policies.Get([]byte{0xab})
	policies.Delete([]byte{0xab})
	policies.Set([]byte{0xab}, policyAssets)
	encoded, err = Encode(readded, false)
	if err != nil {
		t.Fatalf("Encode re-added policy: %v", err)
	}
	// The policy id 5801ab (1-byte length) becomes 41ab.
	want = testutil.Hex(t, strings.Replace(
		strings.Replace(ducksNonCanonical, "5f 41cd 40 ff", "41 cd", 1),
		"5801 ab", "41 ab", 1))
	testutil.RequireBytes(t, encoded, want, "re-added policy")
}
