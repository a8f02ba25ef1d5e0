package serde

import (
	"encoding/binary"
	"errors"
	"fmt"
	"slices"
)

// Encoding is Big Endian as per the protocol
var Encoding = binary.BigEndian

var (
	// ErrInvalidVarint signals a varint that overflows 64 bits or a buffer
	// that ends before the terminating byte.
	ErrInvalidVarint = errors.New("invalid varint")
	// ErrInvalidBuffer signals a fixed-width decode whose input slice does
	// not exactly match the integer width.
	ErrInvalidBuffer = errors.New("invalid buffer")
)

// DecodeUvarint reads an unsigned base-128 varint from the head of buf:
// 7 data bits per byte, least-significant group first, high bit set means
// more bytes follow. It returns the value and the number of bytes consumed
// and never reads past the terminating byte.
func DecodeUvarint(buf []byte) (uint64, int, error) {
	var value uint64
	var shift uint
	for i, b := range buf {
		value |= uint64(b&0x7F) << shift
		shift += 7
		if b&0x80 == 0 {
			return value, i + 1, nil
		}
		if shift >= 64 {
			return 0, 0, fmt.Errorf("%w: value overflows 64 bits", ErrInvalidVarint)
		}
	}
	return 0, 0, fmt.Errorf("%w: buffer exhausted before terminating byte", ErrInvalidVarint)
}

// AppendUvarint appends the varint encoding of v to dst.
func AppendUvarint(dst []byte, v uint64) []byte {
	return binary.AppendUvarint(dst, v)
}

// DecodeInt16 decodes a big-endian int16 from a slice that must be exactly
// 2 bytes. The strict length check makes framing bugs fail loudly instead
// of corrupting the fields that follow.
func DecodeInt16(buf []byte) (int16, error) {
	if len(buf) != 2 {
		return 0, fmt.Errorf("%w: need exactly 2 bytes for int16, got %d", ErrInvalidBuffer, len(buf))
	}
	return int16(Encoding.Uint16(buf)), nil
}

// DecodeInt32 decodes a big-endian int32 from a slice that must be exactly 4 bytes.
func DecodeInt32(buf []byte) (int32, error) {
	if len(buf) != 4 {
		return 0, fmt.Errorf("%w: need exactly 4 bytes for int32, got %d", ErrInvalidBuffer, len(buf))
	}
	return int32(Encoding.Uint32(buf)), nil
}

// DecodeInt64 decodes a big-endian int64 from a slice that must be exactly 8 bytes.
func DecodeInt64(buf []byte) (int64, error) {
	if len(buf) != 8 {
		return 0, fmt.Errorf("%w: need exactly 8 bytes for int64, got %d", ErrInvalidBuffer, len(buf))
	}
	return int64(Encoding.Uint64(buf)), nil
}

// Encoder is a byte slice with an offset
type Encoder struct {
	b      []byte
	offset int
}

// BufferIncrement is the size of the increment when the buffer limit is reached
const BufferIncrement = 4096

// NewEncoder creates a new Encoder with an initial buffer
func NewEncoder() Encoder {
	return Encoder{b: make([]byte, BufferIncrement)}
}

func (e *Encoder) ensureBufferSpace(n int) {
	if e.offset+n > len(e.b) {
		newBuffer := make([]byte, len(e.b)+BufferIncrement+n)
		copy(newBuffer, e.b)
		e.b = newBuffer
	}
}

// PutInt8 encodes a uint8 value into the buffer
func (e *Encoder) PutInt8(i uint8) {
	e.ensureBufferSpace(1)
	e.b[e.offset] = byte(i)
	e.offset++
}

// PutInt16 encodes a uint16 value into the buffer
func (e *Encoder) PutInt16(i uint16) {
	e.ensureBufferSpace(2)
	Encoding.PutUint16(e.b[e.offset:], i)
	e.offset += 2
}

// PutInt32 encodes a uint32 value into the buffer
func (e *Encoder) PutInt32(i uint32) {
	e.ensureBufferSpace(4)
	Encoding.PutUint32(e.b[e.offset:], i)
	e.offset += 4
}

// PutInt64 encodes a uint64 value into the buffer
func (e *Encoder) PutInt64(i uint64) {
	e.ensureBufferSpace(8)
	Encoding.PutUint64(e.b[e.offset:], i)
	e.offset += 8
}

// PutBool encodes a boolean as a single byte
func (e *Encoder) PutBool(b bool) {
	e.ensureBufferSpace(1)
	e.b[e.offset] = 0
	if b {
		e.b[e.offset] = 1
	}
	e.offset++
}

// PutUvarint encodes v as an unsigned varint
func (e *Encoder) PutUvarint(v uint64) {
	e.ensureBufferSpace(binary.MaxVarintLen64)
	e.offset += binary.PutUvarint(e.b[e.offset:], v)
}

// PutBytes copies raw bytes into the buffer
func (e *Encoder) PutBytes(b []byte) {
	e.ensureBufferSpace(len(b))
	copy(e.b[e.offset:], b)
	e.offset += len(b)
}

// PutCompactString encodes a string as a varint length prefix followed by
// the raw UTF-8 bytes. The prefix is the exact byte length: this codebase's
// compact strings do not carry the length-plus-one convention.
func (e *Encoder) PutCompactString(s string) {
	e.PutUvarint(uint64(len(s)))
	e.ensureBufferSpace(len(s))
	copy(e.b[e.offset:], s)
	e.offset += len(s)
}

// PutCompactArrayLen encodes the length of a compact array using the wire's
// count-plus-one convention; an empty array is the single byte 1.
func (e *Encoder) PutCompactArrayLen(l int) {
	e.PutUvarint(uint64(l + 1))
}

// EndStruct writes an empty tagged-field buffer (KIP-482)
func (e *Encoder) EndStruct() {
	e.ensureBufferSpace(1)
	e.b[e.offset] = 0
	e.offset++
}

// PutLen prepends the total length of the buffer as a big-endian uint32
func (e *Encoder) PutLen() {
	lengthBytes := Encoding.AppendUint32([]byte{}, uint32(e.offset))
	e.b = slices.Insert(e.b, 0, lengthBytes...)
	e.offset += len(lengthBytes)
}

// Bytes returns the encoded data as a byte slice
func (e *Encoder) Bytes() []byte {
	return e.b[:e.offset]
}
