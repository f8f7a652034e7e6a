// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import "github.com/bureau-foundation/cip25/lib/cborwire"

// readLen counts fields consumed against a map's declared length.
// Under indefinite length it never fails; the break byte ends the map.
type readLen struct {
	declared cborwire.Len
	read     uint64
}

func newReadLen(declared cborwire.Len) *readLen {
	return &readLen{declared: declared}
}

// readElems records count more fields and fails once the total exceeds
// a definite length.
func (r *readLen) readElems(count uint64) error {
	if r.declared.Indefinite {
		return nil
	}
	r.read += count
	if r.read > r.declared.N {
		return newFailure(Failure{Kind: FailureDefiniteLenMismatch, Declared: r.declared.N})
	}
	return nil
}

// finish fails unless a definite length was met exactly.
func (r *readLen) finish() error {
	if r.declared.Indefinite || r.read == r.declared.N {
		return nil
	}
	return newFailure(Failure{
		Kind:      FailureDefiniteLenMismatch,
		Declared:  r.declared.N,
		Read:      r.read,
		ReadKnown: true,
	})
}
