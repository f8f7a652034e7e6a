// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package contentid

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 keyed digest of a canonical metadata
// encoding.
type Fingerprint [32]byte

// metadataDomainKey is the BLAKE3 key for metadata fingerprints: the
// ASCII domain name zero-padded to 32 bytes. Changing it invalidates
// every stored fingerprint.
var metadataDomainKey = [32]byte{
	'c', 'i', 'p', '2', '5', '.', 'm', 'e', 't', 'a', 'd', 'a', 't', 'a', 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// FingerprintOf hashes canonical bytes in the metadata domain. The
// caller is responsible for canonicalizing first; [Identify] does so.
func FingerprintOf(canonical []byte) Fingerprint {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(metadataDomainKey[:])
	if err != nil {
		panic("contentid: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(canonical)
	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint
}

// String returns the hex encoding, the format used in CLI output and
// logs.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// ParseFingerprint parses a 64-character hex string.
func ParseFingerprint(hexString string) (Fingerprint, error) {
	var fingerprint Fingerprint
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return fingerprint, fmt.Errorf("parsing fingerprint: %w", err)
	}
	if len(decoded) != len(fingerprint) {
		return fingerprint, fmt.Errorf("fingerprint is %d bytes, want %d", len(decoded), len(fingerprint))
	}
	copy(fingerprint[:], decoded)
	return fingerprint, nil
}
