package protocol

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tinkafka/tinkafka/serde"
)

// NullableString is the legacy string encoding: a signed 16-bit length
// prefix, with -1 as the sole null representation, then raw UTF-8 bytes.
type NullableString struct {
	Text           string
	DeclaredLength int16
}

// DecodeNullableString reads a legacy string of the given declared length
// starting at offset idx in buf. A declared length of -1 yields the empty
// string with reported length 0, never an error.
func DecodeNullableString(buf []byte, idx int, length int16) (NullableString, error) {
	if length == -1 {
		return NullableString{}, nil
	}
	if length < 0 {
		return NullableString{}, fmt.Errorf("%w: negative length %d", ErrIndexOutOfBounds, length)
	}
	end := idx + int(length)
	if end > len(buf) {
		return NullableString{}, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrIndexOutOfBounds, length, idx, len(buf)-idx)
	}
	if !utf8.Valid(buf[idx:end]) {
		return NullableString{}, ErrInvalidUTF8
	}
	return NullableString{Text: string(buf[idx:end]), DeclaredLength: length}, nil
}

// CompactString is the compact string encoding: a varint length prefix
// holding the exact payload byte length, then raw UTF-8 bytes.
type CompactString struct {
	Text       string
	ByteLength int
	// PrefixByteCount is the exact number of bytes the decoder advanced
	// past: varint prefix plus payload. Containers rely on it to locate
	// the next element.
	PrefixByteCount uint64
}

// DecodeCompactString reads a compact string from the head of buf.
func DecodeCompactString(buf []byte) (CompactString, error) {
	length, prefixLen, err := serde.DecodeUvarint(buf)
	if err != nil {
		return CompactString{}, err
	}
	if length > uint64(len(buf)-prefixLen) {
		return CompactString{}, fmt.Errorf("%w: declared %d, remaining %d", ErrInvalidLengthPrefix, length, len(buf)-prefixLen)
	}
	payload := buf[prefixLen : prefixLen+int(length)]
	if !utf8.Valid(payload) {
		return CompactString{}, ErrInvalidUTF8
	}
	return CompactString{
		Text:            string(payload),
		ByteLength:      int(length),
		PrefixByteCount: uint64(prefixLen) + length,
	}, nil
}

// DecodeFrom implements Element for CompactString.
func (CompactString) DecodeFrom(buf []byte) (CompactString, error) {
	return DecodeCompactString(buf)
}

// ConsumedBytes implements Element for CompactString.
func (c CompactString) ConsumedBytes() uint64 {
	return c.PrefixByteCount
}

// TopicName is a compact string whose wire payload carries a trailing NUL
// terminator. The NUL is stripped and the reported size and prefix byte
// count are adjusted down by one; the consumed-byte count includes the
// byte the adjustment gave back.
type TopicName struct {
	CompactString
}

// DecodeTopicName reads a NUL-terminated topic name from the head of buf.
func DecodeTopicName(buf []byte) (TopicName, error) {
	cs, err := DecodeCompactString(buf)
	if err != nil {
		return TopicName{}, err
	}
	if cs.ByteLength == 0 {
		return TopicName{}, fmt.Errorf("%w: topic name payload is empty", ErrInvalidLengthPrefix)
	}
	cs.Text = strings.TrimSuffix(cs.Text, "\x00")
	cs.ByteLength--
	cs.PrefixByteCount--
	return TopicName{CompactString: cs}, nil
}

// DecodeFrom implements Element for TopicName.
func (TopicName) DecodeFrom(buf []byte) (TopicName, error) {
	return DecodeTopicName(buf)
}

// ConsumedBytes implements Element for TopicName.
func (t TopicName) ConsumedBytes() uint64 {
	return t.PrefixByteCount + 1
}

// Element is the self-decoding capability CompactArray is parameterized
// over: a type that decodes one value of itself from the head of a buffer
// and reports exactly how many bytes it consumed.
type Element[T any] interface {
	DecodeFrom(buf []byte) (T, error)
	ConsumedBytes() uint64
}

// CompactArray is an ordered sequence of self-decoding elements.
type CompactArray[T Element[T]] struct {
	Elements []T
	// BytesConsumed is the total advance past the varint count prefix and
	// every element.
	BytesConsumed uint64
}

// DecodeCompactArray reads a compact array from the head of buf. The varint
// prefix uses the wire's count-plus-one convention: 0 is a null array and
// n+1 declares n elements. The result is either a fully populated array
// matching the declared count or an error, never a truncated array.
func DecodeCompactArray[T Element[T]](buf []byte) (CompactArray[T], error) {
	declared, prefixLen, err := serde.DecodeUvarint(buf)
	if err != nil {
		return CompactArray[T]{}, err
	}
	if declared == 0 {
		return CompactArray[T]{BytesConsumed: uint64(prefixLen)}, nil
	}

	count := int(declared - 1)
	elements := make([]T, 0, count)
	ptr := uint64(prefixLen)
	var zero T
	for i := 0; i < count; i++ {
		if ptr >= uint64(len(buf)) {
			return CompactArray[T]{}, fmt.Errorf("%w: buffer exhausted after %d of %d elements", serde.ErrInvalidVarint, i, count)
		}
		elem, err := zero.DecodeFrom(buf[ptr:])
		if err != nil {
			return CompactArray[T]{}, fmt.Errorf("decoding element %d: %w", i, err)
		}
		ptr += elem.ConsumedBytes()
		if ptr > uint64(len(buf)) {
			return CompactArray[T]{}, fmt.Errorf("%w: element %d overruns buffer", serde.ErrInvalidVarint, i)
		}
		elements = append(elements, elem)
	}
	return CompactArray[T]{Elements: elements, BytesConsumed: ptr}, nil
}
