// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cip25

import (
	"slices"

	"github.com/bureau-foundation/cip25/lib/cborwire"
)

// EncodingKind says how a length prefix or string was framed.
type EncodingKind uint8

const (
	// Canonical: the minimal width for the length.
	Canonical EncodingKind = iota

	// Definite: an explicit width, possibly wider than necessary.
	Definite

	// Indefinite: no declared length, terminated by a break byte.
	Indefinite
)

func (k EncodingKind) String() string {
	switch k {
	case Canonical:
		return "canonical"
	case Definite:
		return "definite"
	case Indefinite:
		return "indefinite"
	default:
		return "unknown"
	}
}

// LenEncoding records how a map or array header was framed. The zero
// value is Canonical.
type LenEncoding struct {
	Kind  EncodingKind
	Width cborwire.Sz
}

// lenEncodingFrom classifies a header that was just read.
func lenEncodingFrom(length cborwire.Len) LenEncoding {
	if length.Indefinite {
		return LenEncoding{Kind: Indefinite}
	}
	if cborwire.CanonicalSz(length.N) == length.Sz {
		return LenEncoding{Kind: Canonical}
	}
	return LenEncoding{Kind: Definite, Width: length.Sz}
}

// toLen produces the header to write for a container of n elements.
func (e LenEncoding) toLen(n uint64, forceCanonical bool) cborwire.Len {
	if forceCanonical {
		return cborwire.CanonicalLen(n)
	}
	switch e.Kind {
	case Definite:
		return cborwire.Definite(n, cborwire.FitSz(n, e.Width))
	case Indefinite:
		return cborwire.IndefiniteLen()
	default:
		return cborwire.CanonicalLen(n)
	}
}

// end closes a container opened with toLen.
func (e LenEncoding) end(writer WireWriter, forceCanonical bool) error {
	if !forceCanonical && e.Kind == Indefinite {
		return writer.WriteBreak()
	}
	return nil
}

// StringEncoding records how a byte or text string was framed. The zero
// value is Canonical.
type StringEncoding struct {
	Kind  EncodingKind
	Width cborwire.Sz

	// Chunks is the segment layout of an Indefinite string.
	Chunks []cborwire.Chunk
}

// stringEncodingFrom classifies the framing of a string of length n
// that was just read.
func stringEncodingFrom(framing cborwire.StringLen, n uint64) StringEncoding {
	if framing.Indefinite {
		return StringEncoding{Kind: Indefinite, Chunks: slices.Clone(framing.Chunks)}
	}
	if cborwire.CanonicalSz(n) == framing.Sz {
		return StringEncoding{Kind: Canonical}
	}
	return StringEncoding{Kind: Definite, Width: framing.Sz}
}

// toStringLen produces the framing to write for a string of n bytes.
func (e StringEncoding) toStringLen(n uint64, forceCanonical bool) cborwire.StringLen {
	if forceCanonical {
		return cborwire.DefiniteString(cborwire.CanonicalSz(n))
	}
	switch e.Kind {
	case Definite:
		return cborwire.DefiniteString(cborwire.FitSz(n, e.Width))
	case Indefinite:
		return cborwire.IndefiniteString(e.Chunks)
	default:
		return cborwire.DefiniteString(cborwire.CanonicalSz(n))
	}
}

// fitSz picks the width for a fixed integer: the recorded width when it
// still holds value, else canonical.
func fitSz(value uint64, width *cborwire.Sz, forceCanonical bool) cborwire.Sz {
	if width == nil || forceCanonical {
		return cborwire.CanonicalSz(value)
	}
	return cborwire.FitSz(value, *width)
}
