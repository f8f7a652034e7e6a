// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/bureau-foundation/cip25/lib/cip25"
)

// ErrNotCanonical is returned by [CanonicalCID] for bytes that decode
// but are not in canonical form.
var ErrNotCanonical = errors.New("contentid: metadata is not canonically encoded")

// Identity is the canonical encoding of a document together with the
// identifiers derived from it.
type Identity struct {
	Canonical   []byte
	Fingerprint Fingerprint
	CID         cid.Cid
}

// Identify canonicalizes metadata and derives its identifiers.
func Identify(metadata *cip25.Metadata) (Identity, error) {
	canonical, err := cip25.Encode(metadata, true)
	if err != nil {
		return Identity{}, fmt.Errorf("canonical encoding: %w", err)
	}
	identifier, err := CID(canonical)
	if err != nil {
		return Identity{}, err
	}
	return Identity{
		Canonical:   canonical,
		Fingerprint: FingerprintOf(canonical),
		CID:         identifier,
	}, nil
}

// CID returns the CIDv1 (raw codec, sha2-256) of data. It does not
// check that data is canonical; see [CanonicalCID].
func CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, fmt.Errorf("sha2-256 multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// CanonicalCID decodes data as a metadata document and returns its CID,
// failing with [ErrNotCanonical] unless data is already the canonical
// encoding. Two encodings of the same document therefore cannot be
// published under different CIDs by mistake.
func CanonicalCID(data []byte) (cid.Cid, error) {
	metadata, err := cip25.Decode(data)
	if err != nil {
		return cid.Undef, err
	}
	canonical, err := cip25.Encode(metadata, true)
	if err != nil {
		return cid.Undef, fmt.Errorf("canonical encoding: %w", err)
	}
	if !bytes.Equal(canonical, data) {
		return cid.Undef, ErrNotCanonical
	}
	return CID(canonical)
}
