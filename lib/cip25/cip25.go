// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

// Label is the transaction metadata label this schema lives under.
const Label = 721

// Version is the only accepted value of the version field.
const Version = 2

// MaxStringLength is the largest String64 payload, in bytes.
const MaxStringLength = 64

// ErrTrailingData is returned by [Decode] when bytes remain after the
// metadata document.
var ErrTrailingData = errors.New("cip25: trailing data after metadata document")

// ErrNilMetadata is returned when encoding a nil *Metadata.
var ErrNilMetadata = errors.New("cip25: encode nil metadata")

// WireReader is the byte-level capability the decoder consumes.
// *cborwire.Reader satisfies it. Position and Seek must restore the
// cursor exactly; union decoding depends on it.
type WireReader interface {
	Type() (cborwire.Type, error)
	Uint() (uint64, cborwire.Sz, error)
	Bytes() ([]byte, cborwire.StringLen, error)
	Text() (string, cborwire.StringLen, error)
	MapHeader() (cborwire.Len, error)
	ArrayHeader() (cborwire.Len, error)
	Special() (cborwire.Special, error)
	Position() int
	Seek(position int)
}

// WireWriter is the byte-level capability the encoder consumes.
// *cborwire.Writer satisfies it.
type WireWriter interface {
	WriteUint(value uint64, sz cborwire.Sz) error
	WriteBytes(payload []byte, framing cborwire.StringLen) error
	WriteText(text string, framing cborwire.StringLen) error
	WriteMapHeader(length cborwire.Len) error
	WriteArrayHeader(length cborwire.Len) error
	WriteBreak() error
	WriteRaw(encoded []byte) error
}

// Decode parses a complete metadata document. The returned value
// remembers every framing choice so that Encode(m, false) reproduces
// data byte for byte.
func Decode(data []byte) (*Metadata, error) {
	reader := cborwire.NewReader(data)
	metadata, err := DecodeFrom(reader)
	if err != nil {
		return nil, err
	}
	if remaining := reader.Remaining(); remaining > 0 {
		return nil, fmt.Errorf("%w: %d bytes at offset %d", ErrTrailingData, remaining, reader.Position())
	}
	return metadata, nil
}

// DecodeFrom parses one metadata document from reader, leaving the
// reader positioned after it.
func DecodeFrom(reader WireReader) (*Metadata, error) {
	return decodeMetadata(reader)
}

// Encode serializes metadata. With forceCanonical false the captured
// field order and widths are replayed; with forceCanonical true the
// output is the minimal-width form with canonically sorted data maps.
func Encode(metadata *Metadata, forceCanonical bool) ([]byte, error) {
	var buffer bytes.Buffer
	if err := EncodeTo(&buffer, metadata, forceCanonical); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeTo writes the encoding of metadata to w. Errors from w are
// returned unchanged.
func EncodeTo(w io.Writer, metadata *Metadata, forceCanonical bool) error {
	if metadata == nil {
		return ErrNilMetadata
	}
	return metadata.encode(cborwire.NewWriter(w), forceCanonical)
}

// MarshalCBOR returns the encoding-preserving form of m, so a Metadata
// embedded in values handled by a general CBOR library keeps its
// original bytes.
func (m *Metadata) MarshalCBOR() ([]byte, error) {
	return Encode(m, false)
}

// UnmarshalCBOR replaces m with the document decoded from data.
func (m *Metadata) UnmarshalCBOR(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
