// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec wraps fxamacker/cbor for the generic, schema-unaware
// CBOR operations the tooling needs alongside lib/cip25:
//
//   - [Wellformed] validates framing before any schema decoding, so
//     callers can tell malformed CBOR from valid CBOR that does not
//     match the CIP-25 schema.
//   - [Canonicalize] produces RFC 7049 canonical bytes from generic Go
//     values. lib/cip25's canonical encoder must agree with it byte for
//     byte; the verify command and the cip25 tests check that.
//   - [Diagnose] and [DiagnoseFirst] render diagnostic notation for
//     humans.
//
// lib/cip25 does not use this package for its own encoding. A generic
// decoder discards the framing widths and field order that cip25 has
// to replay.
//
//	if err := codec.Wellformed(data); err != nil { ... }
//	canonical, err := codec.Canonicalize(data)
package codec
