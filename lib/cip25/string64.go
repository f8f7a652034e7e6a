// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import "slices"

// String64 is a text value of at most 64 bytes. Construct with
// [NewString64]; the zero value is the empty string.
type String64 struct {
	value    string
	encoding StringEncoding
}

// NewString64 validates the length of value. Longer values fail with a
// FailureRangeCheck *DecodeError located at "String64".
func NewString64(value string) (String64, error) {
	if len(value) > MaxStringLength {
		return String64{}, annotate(rangeCheck(uint64(len(value)), 0, MaxStringLength), "String64")
	}
	return String64{value: value}, nil
}

// MustString64 is NewString64 for literals known to be short enough.
// It panics on a range error.
func MustString64(value string) String64 {
	s, err := NewString64(value)
	if err != nil {
		panic(err)
	}
	return s
}

// String returns the text.
func (s String64) String() string {
	return s.value
}

// Equal compares text only, ignoring framing.
func (s String64) Equal(other String64) bool {
	return s.value == other.value
}

// StringOrList is either a single String64 or a list of them. Long
// URIs are commonly split into a list of 64-byte segments.
type StringOrList struct {
	single       String64
	list         []String64
	isList       bool
	listEncoding LenEncoding
}

// SingleString wraps one String64.
func SingleString(s String64) StringOrList {
	return StringOrList{single: s}
}

// StringList wraps a list of String64. The slice is copied.
func StringList(items []String64) StringOrList {
	return StringOrList{list: slices.Clone(items), isList: true}
}

// IsList reports whether the list variant is held.
func (u StringOrList) IsList() bool {
	return u.isList
}

// Single returns the single-string variant.
func (u StringOrList) Single() (String64, bool) {
	return u.single, !u.isList
}

// List returns the list variant. The returned slice is a copy.
func (u StringOrList) List() ([]String64, bool) {
	if !u.isList {
		return nil, false
	}
	return slices.Clone(u.list), true
}

// Joined returns the single string, or the list concatenated in order.
func (u StringOrList) Joined() string {
	if !u.isList {
		return u.single.value
	}
	var total int
	for _, item := range u.list {
		total += len(item.value)
	}
	joined := make([]byte, 0, total)
	for _, item := range u.list {
		joined = append(joined, item.value...)
	}
	return string(joined)
}

// Equal compares variant and text, ignoring framing.
func (u StringOrList) Equal(other StringOrList) bool {
	if u.isList != other.isList {
		return false
	}
	if !u.isList {
		return u.single.Equal(other.single)
	}
	return slices.EqualFunc(u.list, other.list, String64.Equal)
}
