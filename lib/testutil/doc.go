// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [Hex] turns a hex literal into bytes. Whitespace and "#" comments are
// ignored so that CBOR fixtures can be laid out one data item per line:
//
//	data := testutil.Hex(t, `
//	    a1          # map(1)
//	      1902d1    # unsigned(721), 2-byte argument
//	`)
//
// [RequireBytes] compares two byte slices and on mismatch reports the
// first differing offset alongside both hex dumps.
//
// [TempFile] writes a fixture to a temporary directory that is removed
// when the test completes.
//
// [DrainErrors] collects results from concurrent workers with a single
// deadline, so a hung worker fails the test instead of blocking it.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on the rest of the module.
package testutil
