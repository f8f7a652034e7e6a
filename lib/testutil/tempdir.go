// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempFile writes data to name inside a fresh temporary directory and
// returns the file's absolute path. The directory is removed when the
// test completes.
//
//	path := testutil.TempFile(t, "metadata.cbor", data)
func TempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
