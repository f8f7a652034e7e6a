// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// canonicalEncMode encodes with RFC 7049 §3.9 canonical ordering: map
// keys sorted by encoded length first, then bytewise. Smallest integer
// and length encoding, no indefinite-length items.
var canonicalEncMode cbor.EncMode

// decMode accepts any well-formed CBOR, including indefinite-length
// items, and rejects duplicate map keys. Interface targets decode maps
// as map[any]any so that byte-string keys (decoded as cbor.ByteString)
// and integer keys survive.
var decMode cbor.DecMode

func init() {
	var err error

	canonicalEncMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		IndefLength:      cbor.IndefLengthAllowed,
		MapKeyByteString: cbor.MapKeyByteStringAllowed,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Wellformed checks that data is exactly one well-formed CBOR data
// item with no trailing bytes.
func Wellformed(data []byte) error {
	return decMode.Wellformed(data)
}

// Canonicalize decodes data into generic Go values and re-encodes it in
// canonical form. The result is independent of any schema knowledge,
// which makes it a cross-check for schema-aware canonical encoders.
func Canonicalize(data []byte) ([]byte, error) {
	var value any
	if err := decMode.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return canonicalEncMode.Marshal(value)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// RawMessage is a raw encoded CBOR value. Type alias so consumers
// import only lib/codec, not fxamacker/cbor directly.
type RawMessage = cbor.RawMessage

// ByteString is the decoded form of a CBOR byte string used as a map
// key.
type ByteString = cbor.ByteString

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data. Indefinite-length items are marked with "_".
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
