// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cborwire

import (
	"encoding/binary"
	"io"
)

// Writer emits CBOR items to an io.Writer. Errors from the underlying
// writer are returned unchanged.
type Writer struct {
	w       io.Writer
	scratch [9]byte
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteUint writes an unsigned integer at width sz, or at the canonical
// width if value does not fit in sz.
func (w *Writer) WriteUint(value uint64, sz Sz) error {
	return w.writeHeader(majorUnsigned, value, sz)
}

// WriteBytes writes a byte string with the given framing.
func (w *Writer) WriteBytes(payload []byte, framing StringLen) error {
	return w.writeString(majorBytes, payload, framing)
}

// WriteText writes a text string with the given framing. Indefinite
// framing replays the recorded chunk boundaries.
func (w *Writer) WriteText(text string, framing StringLen) error {
	return w.writeString(majorText, []byte(text), framing)
}

// WriteMapHeader writes a map header. For definite headers, N is the
// number of key/value pairs that will follow.
func (w *Writer) WriteMapHeader(length Len) error {
	return w.writeContainer(majorMap, length)
}

// WriteArrayHeader writes an array header.
func (w *Writer) WriteArrayHeader(length Len) error {
	return w.writeContainer(majorArray, length)
}

// WriteBreak writes the break byte that ends an indefinite container.
func (w *Writer) WriteBreak() error {
	return w.WriteRaw([]byte{breakByte})
}

// WriteRaw writes pre-encoded bytes verbatim.
func (w *Writer) WriteRaw(encoded []byte) error {
	_, err := w.w.Write(encoded)
	return err
}

func (w *Writer) writeContainer(major byte, length Len) error {
	if length.Indefinite {
		return w.WriteRaw([]byte{major<<5 | infoIndefinite})
	}
	return w.writeHeader(major, length.N, length.Sz)
}

func (w *Writer) writeString(major byte, payload []byte, framing StringLen) error {
	length := uint64(len(payload))
	if framing.Indefinite {
		if total, ok := chunkTotal(framing.Chunks); ok && total == length {
			return w.writeChunked(major, payload, framing.Chunks)
		}
		// Recorded chunks no longer describe this payload.
		framing = DefiniteString(CanonicalSz(length))
	}
	if err := w.writeHeader(major, length, framing.Sz); err != nil {
		return err
	}
	return w.WriteRaw(payload)
}

func (w *Writer) writeChunked(major byte, payload []byte, chunks []Chunk) error {
	if err := w.WriteRaw([]byte{major<<5 | infoIndefinite}); err != nil {
		return err
	}
	offset := uint64(0)
	for _, chunk := range chunks {
		if err := w.writeHeader(major, chunk.Len, chunk.Sz); err != nil {
			return err
		}
		if err := w.WriteRaw(payload[offset : offset+chunk.Len]); err != nil {
			return err
		}
		offset += chunk.Len
	}
	return w.WriteBreak()
}

func (w *Writer) writeHeader(major byte, argument uint64, sz Sz) error {
	sz = FitSz(argument, sz)
	buffer := w.scratch[:]
	switch sz {
	case SzInline:
		buffer[0] = major<<5 | byte(argument)
		buffer = buffer[:1]
	case SzOne:
		buffer[0] = major<<5 | infoOne
		buffer[1] = byte(argument)
		buffer = buffer[:2]
	case SzTwo:
		buffer[0] = major<<5 | infoTwo
		binary.BigEndian.PutUint16(buffer[1:], uint16(argument))
		buffer = buffer[:3]
	case SzFour:
		buffer[0] = major<<5 | infoFour
		binary.BigEndian.PutUint32(buffer[1:], uint32(argument))
		buffer = buffer[:5]
	default:
		buffer[0] = major<<5 | infoEight
		binary.BigEndian.PutUint64(buffer[1:], argument)
		buffer = buffer[:9]
	}
	return w.WriteRaw(buffer)
}
