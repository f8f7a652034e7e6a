// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cborwire

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by [Error]. Match with errors.Is.
var (
	ErrUnexpectedEOF  = errors.New("unexpected end of input")
	ErrReservedInfo   = errors.New("reserved additional information value")
	ErrTypeMismatch   = errors.New("unexpected data item type")
	ErrInvalidUTF8    = errors.New("text string is not valid UTF-8")
	ErrMalformedChunk = errors.New("malformed indefinite-length string chunk")
	ErrTooLarge       = errors.New("length exceeds remaining input")
)

// Error reports a framing problem at a byte offset of the input.
type Error struct {
	// Offset is the position of the item that failed to parse.
	Offset int

	// Err is one of the sentinel causes above.
	Err error

	// Detail is optional extra context.
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("cbor: offset %d: %v: %s", e.Offset, e.Err, e.Detail)
	}
	return fmt.Sprintf("cbor: offset %d: %v", e.Offset, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wireError(offset int, cause error, format string, args ...any) *Error {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	return &Error{Offset: offset, Err: cause, Detail: detail}
}
