// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cip25json converts CIP-25 metadata documents to and from a
// JSON view for humans.
//
// [Render] produces JSON from a decoded document. Policy ids and asset
// names are byte strings on the wire and appear as lowercase hex object
// keys; every object keeps the document's entry order:
//
//	{"721": {"data": {"ab": {"cd": {"name": "Ducks", "image": "ipfs://abc"}}}, "version": 2}}
//
// [Parse] accepts the same shape as JSONC (comments and trailing commas
// allowed, via tidwall/jsonc) and builds a fresh [cip25.Metadata]
// through the validating constructors. The result has no captured
// framing, so encoding it yields canonical CBOR. Errors carry a JSON
// path such as $.721.data["ab"]["cd"].files[0].name.
//
// The JSON view cannot express CBOR framing. Round trips through JSON
// preserve content and entry order, never widths or chunking.
package cip25json
