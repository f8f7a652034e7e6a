// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cborwire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Reader decodes CBOR items from an in-memory buffer, one header at a
// time. The zero value is not usable; construct with [NewReader].
//
// A Reader is not safe for concurrent use. Independent Readers over the
// same (unmodified) buffer may be used concurrently.
type Reader struct {
	data   []byte
	offset int
}

// NewReader returns a Reader positioned at the start of data. The
// Reader does not copy data; byte strings it returns are copies.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the absolute offset of the next unread byte.
func (r *Reader) Position() int {
	return r.offset
}

// Seek moves the read position to an offset previously returned by
// [Reader.Position]. Offsets outside the buffer are clamped.
func (r *Reader) Seek(position int) {
	switch {
	case position < 0:
		r.offset = 0
	case position > len(r.data):
		r.offset = len(r.data)
	default:
		r.offset = position
	}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

// Type peeks at the next item and reports its kind without consuming
// anything.
func (r *Reader) Type() (Type, error) {
	if r.offset >= len(r.data) {
		return 0, wireError(r.offset, ErrUnexpectedEOF, "")
	}
	return Type(r.data[r.offset] >> 5), nil
}

// Uint reads an unsigned integer and the width it was encoded at.
func (r *Reader) Uint() (uint64, Sz, error) {
	start := r.offset
	major, argument, sz, indefinite, err := r.header()
	if err != nil {
		return 0, 0, err
	}
	if major != majorUnsigned {
		r.offset = start
		return 0, 0, wireError(start, ErrTypeMismatch, "want unsigned integer, got %s", Type(major))
	}
	if indefinite {
		r.offset = start
		return 0, 0, wireError(start, ErrReservedInfo, "indefinite length on an integer")
	}
	return argument, sz, nil
}

// Bytes reads a byte string, definite or indefinite, and its framing.
func (r *Reader) Bytes() ([]byte, StringLen, error) {
	return r.stringItem(majorBytes)
}

// Text reads a text string, definite or indefinite, and its framing.
// Every segment must be valid UTF-8 on its own.
func (r *Reader) Text() (string, StringLen, error) {
	payload, framing, err := r.stringItem(majorText)
	if err != nil {
		return "", StringLen{}, err
	}
	return string(payload), framing, nil
}

// MapHeader reads a map header. For definite maps, N is the number of
// key/value pairs.
func (r *Reader) MapHeader() (Len, error) {
	return r.containerHeader(majorMap)
}

// ArrayHeader reads an array header.
func (r *Reader) ArrayHeader() (Len, error) {
	return r.containerHeader(majorArray)
}

// Special reads a major type 7 item. Float payloads are consumed and
// reported as SpecialFloat.
func (r *Reader) Special() (Special, error) {
	start := r.offset
	if start >= len(r.data) {
		return 0, wireError(start, ErrUnexpectedEOF, "")
	}
	initial := r.data[start]
	if initial>>5 != majorSimple {
		return 0, wireError(start, ErrTypeMismatch, "want special, got %s", Type(initial>>5))
	}
	info := initial & 0x1f
	switch {
	case info == infoIndefinite:
		r.offset++
		return SpecialBreak, nil
	case info == 20:
		r.offset++
		return SpecialFalse, nil
	case info == 21:
		r.offset++
		return SpecialTrue, nil
	case info == 22:
		r.offset++
		return SpecialNull, nil
	case info == 23:
		r.offset++
		return SpecialUndefined, nil
	case info < 20:
		r.offset++
		return SpecialSimple, nil
	case info == infoOne:
		if err := r.need(start, 2); err != nil {
			return 0, err
		}
		r.offset += 2
		return SpecialSimple, nil
	case info >= infoTwo && info <= infoEight:
		width := 1 << (info - infoOne)
		if err := r.need(start, 1+width); err != nil {
			return 0, err
		}
		r.offset += 1 + width
		return SpecialFloat, nil
	default:
		return 0, wireError(start, ErrReservedInfo, "additional information %d", info)
	}
}

func (r *Reader) containerHeader(want byte) (Len, error) {
	start := r.offset
	major, argument, sz, indefinite, err := r.header()
	if err != nil {
		return Len{}, err
	}
	if major != want {
		r.offset = start
		return Len{}, wireError(start, ErrTypeMismatch, "want %s, got %s", Type(want), Type(major))
	}
	if indefinite {
		return IndefiniteLen(), nil
	}
	return Definite(argument, sz), nil
}

// stringItem reads a byte or text string of the given major type.
func (r *Reader) stringItem(want byte) ([]byte, StringLen, error) {
	start := r.offset
	major, argument, sz, indefinite, err := r.header()
	if err != nil {
		return nil, StringLen{}, err
	}
	if major != want {
		r.offset = start
		return nil, StringLen{}, wireError(start, ErrTypeMismatch, "want %s, got %s", Type(want), Type(major))
	}

	if !indefinite {
		payload, err := r.segment(start, argument, want)
		if err != nil {
			return nil, StringLen{}, err
		}
		return payload, DefiniteString(sz), nil
	}

	payload := []byte{}
	var chunks []Chunk
	for {
		if r.offset >= len(r.data) {
			return nil, StringLen{}, wireError(r.offset, ErrUnexpectedEOF, "unterminated indefinite-length %s", Type(want))
		}
		if r.data[r.offset] == breakByte {
			r.offset++
			break
		}
		chunkStart := r.offset
		chunkMajor, chunkLength, chunkSz, chunkIndefinite, err := r.header()
		if err != nil {
			return nil, StringLen{}, err
		}
		if chunkMajor != want || chunkIndefinite {
			return nil, StringLen{}, wireError(chunkStart, ErrMalformedChunk, "chunk of %s inside indefinite %s", Type(chunkMajor), Type(want))
		}
		segment, err := r.segment(chunkStart, chunkLength, want)
		if err != nil {
			return nil, StringLen{}, err
		}
		payload = append(payload, segment...)
		chunks = append(chunks, Chunk{Len: chunkLength, Sz: chunkSz})
	}
	return payload, IndefiniteString(chunks), nil
}

// segment consumes length payload bytes following a string header.
func (r *Reader) segment(start int, length uint64, major byte) ([]byte, error) {
	if length > uint64(r.Remaining()) {
		return nil, wireError(start, ErrTooLarge, "%d bytes declared, %d available", length, r.Remaining())
	}
	end := r.offset + int(length)
	payload := make([]byte, length)
	copy(payload, r.data[r.offset:end])
	if major == majorText && !utf8.Valid(payload) {
		return nil, wireError(start, ErrInvalidUTF8, "")
	}
	r.offset = end
	return payload, nil
}

// header consumes an initial byte and its argument. Reserved additional
// information values (28-30) are rejected. Major type 7 with an
// argument is not expected here; callers use Special for those.
func (r *Reader) header() (major byte, argument uint64, sz Sz, indefinite bool, err error) {
	start := r.offset
	if start >= len(r.data) {
		return 0, 0, 0, false, wireError(start, ErrUnexpectedEOF, "")
	}
	initial := r.data[start]
	major = initial >> 5
	info := initial & 0x1f

	switch {
	case info <= infoMaxInline:
		r.offset++
		return major, uint64(info), SzInline, false, nil

	case info >= infoOne && info <= infoEight:
		width := 1 << (info - infoOne)
		if err := r.need(start, 1+width); err != nil {
			return 0, 0, 0, false, err
		}
		body := r.data[start+1 : start+1+width]
		switch info {
		case infoOne:
			argument, sz = uint64(body[0]), SzOne
		case infoTwo:
			argument, sz = uint64(binary.BigEndian.Uint16(body)), SzTwo
		case infoFour:
			argument, sz = uint64(binary.BigEndian.Uint32(body)), SzFour
		default:
			argument, sz = binary.BigEndian.Uint64(body), SzEight
		}
		r.offset += 1 + width
		return major, argument, sz, false, nil

	case info == infoIndefinite:
		switch major {
		case majorBytes, majorText, majorArray, majorMap:
			r.offset++
			return major, 0, 0, true, nil
		}
		return 0, 0, 0, false, wireError(start, ErrReservedInfo, "indefinite length on %s", Type(major))

	default:
		return 0, 0, 0, false, wireError(start, ErrReservedInfo, "additional information %d", info)
	}
}

func (r *Reader) need(start, count int) error {
	if len(r.data)-start < count {
		return wireError(start, ErrUnexpectedEOF, "need %d bytes, have %d", count, len(r.data)-start)
	}
	return nil
}
