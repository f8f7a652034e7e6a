// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package contentid derives stable identities for CIP-25 metadata
// documents and extracts the IPFS references they carry.
//
// Identities are always computed over the canonical encoding, so two
// documents holding the same values in different framing (oversized
// widths, indefinite lengths, reordered fields) share one identity:
//
//   - [Fingerprint] is a BLAKE3 keyed hash in the "cip25.metadata"
//     domain, suitable for deduplication and cache keys.
//   - [CID] is an IPFS-compatible CIDv1 (raw codec, sha2-256
//     multihash), the address the canonical bytes would have if pinned.
//
// [Identify] canonicalizes a decoded document and computes both.
// [CanonicalCID] accepts encoded bytes and refuses anything that is not
// already canonical.
//
// [Refs] walks every asset image and file src and parses the ipfs://
// URIs among them with [ParseIPFSRef]. List-valued URIs are joined
// first, since CIP-25 splits long URIs into 64-byte chunks.
package contentid
