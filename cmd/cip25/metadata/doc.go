// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package metadata implements the cip25 subcommands that read, write
// and inspect CIP-25 (label 721, version 2) metadata documents.
//
// Subcommands:
//
//   - decode: render metadata CBOR as JSON.
//   - encode: build canonical metadata CBOR from JSON or JSONC.
//   - reencode: decode and re-encode, replaying the input's framing.
//   - canonicalize: decode and re-encode in canonical form.
//   - verify: check round-trip fidelity and canonical form.
//   - diag: print RFC 8949 diagnostic notation.
//   - fingerprint: print the BLAKE3 fingerprint and CID of the
//     canonical encoding.
//   - refs: list the ipfs:// references in a document.
//
// Every subcommand reads one document from a file argument or stdin.
// CBOR input may be hex-encoded (--hex). Binary CBOR output is refused
// when stdout is a terminal; use --hex-output or redirect.
//
// Flag defaults come from the configuration file (lib/config). A
// boolean option is on when either the flag or the file enables it.
package metadata
