// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

// FailureKind classifies why decoding failed. Schema-level kinds
// (RangeCheck through NoVariantMatched) mean the bytes were well-formed
// CBOR that does not fit the schema; FailureWire means the framing
// itself was malformed or truncated.
type FailureKind uint8

const (
	// FailureRangeCheck: a value is outside its allowed bounds.
	FailureRangeCheck FailureKind = iota + 1

	// FailureUnknownKey: a map key is not part of the closed schema.
	FailureUnknownKey

	// FailureDuplicateKey: a map key appeared twice.
	FailureDuplicateKey

	// FailureMandatoryFieldMissing: a required field never appeared.
	FailureMandatoryFieldMissing

	// FailureFixedValueMismatch: a fixed-value field (version) holds
	// something else.
	FailureFixedValueMismatch

	// FailureUnexpectedKeyType: a map key is neither text nor an
	// unsigned integer.
	FailureUnexpectedKeyType

	// FailureBreakInDefiniteLen: a break byte inside a container that
	// declared its length.
	FailureBreakInDefiniteLen

	// FailureEndingBreakMissing: an indefinite container ended with a
	// simple value other than break.
	FailureEndingBreakMissing

	// FailureDefiniteLenMismatch: the declared element count does not
	// match the number of fields present.
	FailureDefiniteLenMismatch

	// FailureNoVariantMatched: no alternative of a union decoded.
	FailureNoVariantMatched

	// FailureWire: the underlying reader rejected the bytes.
	FailureWire
)

func (k FailureKind) String() string {
	switch k {
	case FailureRangeCheck:
		return "range check"
	case FailureUnknownKey:
		return "unknown key"
	case FailureDuplicateKey:
		return "duplicate key"
	case FailureMandatoryFieldMissing:
		return "mandatory field missing"
	case FailureFixedValueMismatch:
		return "fixed value mismatch"
	case FailureUnexpectedKeyType:
		return "unexpected key type"
	case FailureBreakInDefiniteLen:
		return "break in definite length"
	case FailureEndingBreakMissing:
		return "ending break missing"
	case FailureDefiniteLenMismatch:
		return "definite length mismatch"
	case FailureNoVariantMatched:
		return "no variant matched"
	case FailureWire:
		return "malformed CBOR"
	default:
		return fmt.Sprintf("FailureKind(%d)", uint8(k))
	}
}

// Key is a map key as it appeared on the wire: text or unsigned
// integer.
type Key struct {
	Text    string
	Uint    uint64
	IsUint  bool
	IsBytes bool
}

func textKey(text string) Key { return Key{Text: text} }

func uintKey(value uint64) Key { return Key{Uint: value, IsUint: true} }

func bytesKey(value []byte) Key { return Key{Text: string(value), IsBytes: true} }

func (k Key) String() string {
	switch {
	case k.IsUint:
		return fmt.Sprintf("%d", k.Uint)
	case k.IsBytes:
		return fmt.Sprintf("h'%x'", k.Text)
	default:
		return fmt.Sprintf("%q", k.Text)
	}
}

// Failure describes the root cause of a decode error. Only the fields
// relevant to Kind are set.
type Failure struct {
	Kind FailureKind

	// Key is set for UnknownKey, DuplicateKey, MandatoryFieldMissing.
	Key Key

	// Found, Min, Max are set for RangeCheck.
	Found, Min, Max uint64

	// Value and Expected are set for FixedValueMismatch.
	Value, Expected uint64

	// Declared and Read are set for DefiniteLenMismatch. ReadKnown is
	// false when the mismatch was detected before the count was final.
	Declared, Read uint64
	ReadKnown      bool

	// KeyType is set for UnexpectedKeyType.
	KeyType cborwire.Type

	// Variants holds the per-alternative errors for NoVariantMatched.
	Variants []error

	// Err is the reader error for FailureWire.
	Err error
}

func (f Failure) String() string {
	switch f.Kind {
	case FailureRangeCheck:
		return fmt.Sprintf("value %d outside range [%d, %d]", f.Found, f.Min, f.Max)
	case FailureUnknownKey:
		return fmt.Sprintf("unknown key %s", f.Key)
	case FailureDuplicateKey:
		return fmt.Sprintf("duplicate key %s", f.Key)
	case FailureMandatoryFieldMissing:
		return fmt.Sprintf("mandatory field %s missing", f.Key)
	case FailureFixedValueMismatch:
		return fmt.Sprintf("fixed value mismatch: found %d, expected %d", f.Value, f.Expected)
	case FailureUnexpectedKeyType:
		return fmt.Sprintf("unexpected key type %s", f.KeyType)
	case FailureBreakInDefiniteLen:
		return "break encountered in definite-length container"
	case FailureEndingBreakMissing:
		return "indefinite-length container not terminated by break"
	case FailureDefiniteLenMismatch:
		if f.ReadKnown {
			return fmt.Sprintf("definite length %d declared, %d fields found", f.Declared, f.Read)
		}
		return fmt.Sprintf("definite length %d declared, more fields present", f.Declared)
	case FailureNoVariantMatched:
		if len(f.Variants) == 0 {
			return "no variant matched"
		}
		parts := make([]string, len(f.Variants))
		for index, variantErr := range f.Variants {
			parts[index] = variantErr.Error()
		}
		return "no variant matched (" + strings.Join(parts, "; ") + ")"
	case FailureWire:
		return f.Err.Error()
	default:
		return f.Kind.String()
	}
}

// DecodeError is returned by every decode failure. Location is the
// breadcrumb from the outermost entity to the failing field, for
// example ["Metadata", "721", "LabelMetadata", "data", "[h'ab']", ...].
//
// Callers discriminate with errors.As or [IsKind]:
//
//	var decodeErr *cip25.DecodeError
//	if errors.As(err, &decodeErr) && decodeErr.Failure.Kind == cip25.FailureDuplicateKey { ... }
type DecodeError struct {
	Location []string
	Failure  Failure
}

func (e *DecodeError) Error() string {
	path := e.Path()
	if path == "" {
		return "cip25: decode: " + e.Failure.String()
	}
	return "cip25: decode " + path + ": " + e.Failure.String()
}

// Unwrap exposes the reader error for FailureWire.
func (e *DecodeError) Unwrap() error {
	return e.Failure.Err
}

// Path renders Location with dots, attaching bracketed segments
// (indexes, byte-string keys) directly to the preceding segment.
func (e *DecodeError) Path() string {
	var builder strings.Builder
	for index, segment := range e.Location {
		if index > 0 && !strings.HasPrefix(segment, "[") {
			builder.WriteByte('.')
		}
		builder.WriteString(segment)
	}
	return builder.String()
}

// IsKind reports whether err is a *DecodeError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr) && decodeErr.Failure.Kind == kind
}

func newFailure(failure Failure) *DecodeError {
	return &DecodeError{Failure: failure}
}

func rangeCheck(found, low, high uint64) *DecodeError {
	return newFailure(Failure{Kind: FailureRangeCheck, Found: found, Min: low, Max: high})
}

func keyFailure(kind FailureKind, key Key) *DecodeError {
	return newFailure(Failure{Kind: kind, Key: key})
}

// annotate prefixes the location of err. Errors that are not yet a
// *DecodeError (reader failures) are wrapped as FailureWire first.
func annotate(err error, segment string) error {
	if err == nil {
		return nil
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		decodeErr = newFailure(Failure{Kind: FailureWire, Err: err})
	}
	decodeErr.Location = append([]string{segment}, decodeErr.Location...)
	return decodeErr
}

