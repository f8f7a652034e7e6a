// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cborwire

import (
	"fmt"
	"math"
)

// Major types (RFC 8949 §3.1).
const (
	majorUnsigned byte = 0
	majorNegative byte = 1
	majorBytes    byte = 2
	majorText     byte = 3
	majorArray    byte = 4
	majorMap      byte = 5
	majorTag      byte = 6
	majorSimple   byte = 7
)

// Additional information values.
const (
	infoMaxInline  byte = 23
	infoOne        byte = 24
	infoTwo        byte = 25
	infoFour       byte = 26
	infoEight      byte = 27
	infoIndefinite byte = 31
)

// breakByte terminates an indefinite-length container or string.
const breakByte byte = 0xff

// Type is the kind of the next data item, derived from its major type.
type Type uint8

const (
	TypeUnsignedInteger Type = iota
	TypeNegativeInteger
	TypeBytes
	TypeText
	TypeArray
	TypeMap
	TypeTag
	TypeSpecial
)

func (t Type) String() string {
	switch t {
	case TypeUnsignedInteger:
		return "unsigned integer"
	case TypeNegativeInteger:
		return "negative integer"
	case TypeBytes:
		return "byte string"
	case TypeText:
		return "text string"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	case TypeTag:
		return "tag"
	case TypeSpecial:
		return "special"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Sz is the width of an integer or length argument in a CBOR header.
// SzInline means the value lives in the 5-bit additional information
// field of the initial byte.
type Sz uint8

const (
	SzInline Sz = iota
	SzOne
	SzTwo
	SzFour
	SzEight
)

func (s Sz) String() string {
	switch s {
	case SzInline:
		return "inline"
	case SzOne:
		return "1"
	case SzTwo:
		return "2"
	case SzFour:
		return "4"
	case SzEight:
		return "8"
	default:
		return fmt.Sprintf("Sz(%d)", uint8(s))
	}
}

// Max returns the largest argument value representable at width s.
func (s Sz) Max() uint64 {
	switch s {
	case SzInline:
		return uint64(infoMaxInline)
	case SzOne:
		return math.MaxUint8
	case SzTwo:
		return math.MaxUint16
	case SzFour:
		return math.MaxUint32
	default:
		return math.MaxUint64
	}
}

// CanonicalSz returns the smallest width that can hold value.
func CanonicalSz(value uint64) Sz {
	switch {
	case value <= uint64(infoMaxInline):
		return SzInline
	case value <= math.MaxUint8:
		return SzOne
	case value <= math.MaxUint16:
		return SzTwo
	case value <= math.MaxUint32:
		return SzFour
	default:
		return SzEight
	}
}

// FitSz returns sz when value fits in it, and the canonical width for
// value otherwise.
func FitSz(value uint64, sz Sz) Sz {
	if value <= sz.Max() {
		return sz
	}
	return CanonicalSz(value)
}

// Len describes the header of a map or array: either a definite element
// count encoded at a particular width, or indefinite length.
type Len struct {
	// N is the declared element count. Zero when Indefinite.
	N uint64

	// Sz is the width the count was (or will be) encoded at.
	Sz Sz

	// Indefinite is true for containers terminated by a break byte.
	Indefinite bool
}

// Definite returns a definite-length header of n elements at width sz.
func Definite(n uint64, sz Sz) Len {
	return Len{N: n, Sz: sz}
}

// CanonicalLen returns a definite-length header at the minimal width.
func CanonicalLen(n uint64) Len {
	return Len{N: n, Sz: CanonicalSz(n)}
}

// IndefiniteLen returns an indefinite-length header.
func IndefiniteLen() Len {
	return Len{Indefinite: true}
}

func (l Len) String() string {
	if l.Indefinite {
		return "indefinite"
	}
	return fmt.Sprintf("%d (width %s)", l.N, l.Sz)
}

// Chunk is one segment of an indefinite-length string: its byte length
// and the width its length was encoded at.
type Chunk struct {
	Len uint64
	Sz  Sz
}

// StringLen describes the framing of a byte or text string: a single
// definite segment whose length uses width Sz, or an indefinite string
// made of Chunks.
type StringLen struct {
	Sz         Sz
	Indefinite bool
	Chunks     []Chunk
}

// DefiniteString returns definite framing at width sz.
func DefiniteString(sz Sz) StringLen {
	return StringLen{Sz: sz}
}

// IndefiniteString returns indefinite framing with the given chunks.
func IndefiniteString(chunks []Chunk) StringLen {
	return StringLen{Indefinite: true, Chunks: chunks}
}

// chunkTotal returns the sum of chunk lengths and false on overflow.
func chunkTotal(chunks []Chunk) (uint64, bool) {
	var total uint64
	for _, chunk := range chunks {
		next := total + chunk.Len
		if next < total {
			return 0, false
		}
		total = next
	}
	return total, true
}

// Special is a major type 7 item other than a float payload.
type Special uint8

const (
	SpecialBreak Special = iota
	SpecialFalse
	SpecialTrue
	SpecialNull
	SpecialUndefined
	SpecialFloat
	SpecialSimple
)

func (s Special) String() string {
	switch s {
	case SpecialBreak:
		return "break"
	case SpecialFalse:
		return "false"
	case SpecialTrue:
		return "true"
	case SpecialNull:
		return "null"
	case SpecialUndefined:
		return "undefined"
	case SpecialFloat:
		return "float"
	case SpecialSimple:
		return "simple value"
	default:
		return fmt.Sprintf("Special(%d)", uint8(s))
	}
}
