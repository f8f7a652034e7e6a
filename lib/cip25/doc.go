// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cip25 decodes and encodes CIP-25 version 2 NFT metadata (the
// document stored under Cardano transaction metadata label 721) while
// preserving the exact bytes it was decoded from.
//
// A decoded [Metadata] remembers every framing choice the producer
// made: the width of each length prefix, indefinite-length maps, arrays
// and chunked strings, the order fields appeared in, and per-entry key
// framing inside the policy and asset maps. Encoding with
// forceCanonical false replays all of it:
//
//	metadata, err := cip25.Decode(raw)
//	again, err := cip25.Encode(metadata, false) // bytes.Equal(raw, again)
//
// Encoding with forceCanonical true discards the captured framing and
// emits the minimal-width form. Data map entries are sorted by the
// length of their encoded key, then bytewise, so two documents holding
// the same entries in different insertion order canonicalize to the
// same bytes.
//
// # Schema
//
//	Metadata      = { 721: LabelMetadata }
//	LabelMetadata = { "data": { policy_id => { asset_name => AssetDetails } }, "version": 2 }
//	AssetDetails  = { "name": String64, "image": StringOrList,
//	                  ? "mediaType": String64, ? "description": StringOrList,
//	                  ? "files": [* FileDetails] }
//	FileDetails   = { "name": String64, "mediaType": String64, "src": StringOrList }
//	String64      = text .size (0..64)
//	StringOrList  = String64 / [* String64]
//
// The schema is closed. Decoding rejects unknown keys, duplicate keys,
// missing mandatory fields, a version other than 2, and strings longer
// than 64 bytes. Every failure is a [*DecodeError] whose Location gives
// the path to the offending field, for example
// Metadata.721.LabelMetadata.data[h'ab'][h'cd'].AssetDetails.files[2].FileDetails.name.
//
// Construction goes through validating constructors ([NewString64],
// [NewAssetDetails], [LabelMetadata.SetAsset]); freshly constructed
// values carry no captured framing and encode canonically.
//
// Values are not safe for concurrent mutation. Independent Decode and
// Encode calls share no state.
package cip25
