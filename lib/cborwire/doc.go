// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cborwire reads and writes individual CBOR data items while
// exposing the framing choices that general-purpose CBOR libraries
// hide: the width of every integer and length argument, whether a
// container or string was definite or indefinite, and the chunk layout
// of indefinite-length strings.
//
// The package knows nothing about any schema. It is the byte-level
// capability consumed by lib/cip25, which needs to replay non-canonical
// framing exactly on re-encode.
//
// [Reader] operates on an in-memory byte slice and supports exact
// position save/restore via [Reader.Position] and [Reader.Seek]:
//
//	reader := cborwire.NewReader(data)
//	mark := reader.Position()
//	if _, _, err := reader.Text(); err != nil {
//	    reader.Seek(mark)
//	}
//
// [Writer] emits items to an io.Writer at caller-chosen widths:
//
//	writer := cborwire.NewWriter(&buffer)
//	writer.WriteMapHeader(cborwire.Definite(1, cborwire.SzTwo))
//	writer.WriteUint(721, cborwire.SzTwo)
//
// Widths that cannot hold the value are never emitted; the writer falls
// back to the canonical width instead.
package cborwire
