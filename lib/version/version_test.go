// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() { GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime })

	GitCommit, GitDirty, BuildTime = "abc1234", "true", "2026-10-01T00:00:00Z"
	if got, want := Info(), Version+" (abc1234-dirty, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}

	GitDirty = "false"
	if strings.Contains(Info(), "-dirty") {
		t.Errorf("Info() = %q, clean build marked dirty", Info())
	}
	if Commit() != "abc1234" || Short() != Version {
		t.Errorf("Commit() = %q, Short() = %q", Commit(), Short())
	}
}

func TestFull(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Info()) {
		t.Errorf("Full() does not start with Info(): %q", full)
	}
	if !strings.Contains(full, runtime.Version()) {
		t.Errorf("Full() missing Go version: %q", full)
	}
	for _, dependency := range Dependencies() {
		if !strings.Contains(full, dependency.Path) {
			t.Errorf("Full() missing dependency %s", dependency.Path)
		}
	}
}
