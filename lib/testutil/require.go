// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"time"
)

// DrainErrors receives exactly count values from errs and returns the
// non-nil ones in arrival order. The test fails if errs closes early or
// the values do not all arrive within timeout.
//
//	for _, err := range testutil.DrainErrors(t, results, workers, 5*time.Second) {
//		t.Error(err)
//	}
func DrainErrors(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, errs <-chan error, count int, timeout time.Duration) []error {
	t.Helper()
	deadline := time.NewTimer(timeout) //nolint:realclock test hang prevention
	defer deadline.Stop()

	var failures []error
	for received := 0; received < count; received++ {
		select {
		case err, ok := <-errs:
			if !ok {
				t.Fatalf("error channel closed after %d of %d values", received, count)
			}
			if err != nil {
				failures = append(failures, err)
			}
		case <-deadline.C:
			t.Fatalf("timed out after %v with %d of %d values received", timeout, received, count)
		}
	}
	return failures
}
