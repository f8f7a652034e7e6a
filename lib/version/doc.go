// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports what build of cip25 is running and which
// codec libraries it was linked against.
//
// Release builds stamp [Version], [GitCommit], [GitDirty] and
// [BuildTime] through the linker:
//
//	go build -ldflags "-X github.com/bureau-foundation/cip25/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/cip25
//
// Unstamped builds (go run, go test) report "0.1.0-dev (unknown, unknown)".
//
// "cip25 version" prints [Info]. "cip25 version --full" prints [Full],
// which adds the Go toolchain, the platform and [Dependencies]: the
// module versions of fxamacker/cbor, go-cid, go-multihash and BLAKE3
// recorded in the binary. Two binaries that disagree on a canonical
// encoding or a CID can be compared by those lines first.
package version
