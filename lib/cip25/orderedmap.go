// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"bytes"
	"iter"
	"slices"
)

// OrderedMap maps raw byte-string keys to values and iterates in
// insertion order. Keys are unique: setting an existing key replaces
// its value in place without moving it. The zero value is an empty map
// ready for use.
//
// A decoded map also carries the framing of its header and of each
// key. The framing belongs to the entry: Delete drops it, and a key
// inserted later is encoded canonically.
type OrderedMap[V any] struct {
	keys   [][]byte
	values []V
	index  map[string]int

	// keyFraming is parallel to keys.
	keyFraming []StringEncoding
	container  LenEncoding
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Set stores value under key and reports whether key already existed.
// The key is copied. Replacing a value keeps the key's framing.
func (m *OrderedMap[V]) Set(key []byte, value V) bool {
	return m.setFramed(key, value, StringEncoding{})
}

// setFramed is Set for a key read from the wire. framing is recorded
// only when key is new.
func (m *OrderedMap[V]) setFramed(key []byte, value V, framing StringEncoding) bool {
	if position, ok := m.index[string(key)]; ok {
		m.values[position] = value
		return true
	}
	if m.index == nil {
		m.index = make(map[string]int)
	}
	m.index[string(key)] = len(m.keys)
	m.keys = append(m.keys, bytes.Clone(key))
	m.values = append(m.values, value)
	m.keyFraming = append(m.keyFraming, framing)
	return false
}

// framingOf returns the recorded framing of key, or the canonical zero
// value for keys that were never decoded.
func (m *OrderedMap[V]) framingOf(key []byte) StringEncoding {
	if m == nil {
		return StringEncoding{}
	}
	if position, ok := m.index[string(key)]; ok {
		return m.keyFraming[position]
	}
	return StringEncoding{}
}

// containerEncoding returns the framing of the map header.
func (m *OrderedMap[V]) containerEncoding() LenEncoding {
	if m == nil {
		return LenEncoding{}
	}
	return m.container
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key []byte) (V, bool) {
	if m != nil {
		if position, ok := m.index[string(key)]; ok {
			return m.values[position], true
		}
	}
	var zero V
	return zero, false
}

// Delete removes key, preserving the order of the remaining entries.
func (m *OrderedMap[V]) Delete(key []byte) bool {
	position, ok := m.index[string(key)]
	if !ok {
		return false
	}
	m.keys = slices.Delete(m.keys, position, position+1)
	m.values = slices.Delete(m.values, position, position+1)
	m.keyFraming = slices.Delete(m.keyFraming, position, position+1)
	delete(m.index, string(key))
	for index := position; index < len(m.keys); index++ {
		m.index[string(m.keys[index])] = index
	}
	return true
}

// Keys returns the keys in insertion order. The slices must not be
// modified.
func (m *OrderedMap[V]) Keys() [][]byte {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[[]byte, V] {
	return func(yield func([]byte, V) bool) {
		if m == nil {
			return
		}
		for index, key := range m.keys {
			if !yield(key, m.values[index]) {
				return
			}
		}
	}
}
