package serde_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinkafka/tinkafka/serde"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1 << 32, math.MaxUint64}
	for _, v := range values {
		encoded := serde.AppendUvarint(nil, v)
		got, n, err := serde.DecodeUvarint(encoded)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(encoded), n)
	}
}

func TestDecodeUvarintNeverReadsPastTerminator(t *testing.T) {
	// 300 encodes as [0xAC, 0x02]; trailing junk must be ignored.
	buf := []byte{0xAC, 0x02, 0xFF, 0xFF}
	got, n, err := serde.DecodeUvarint(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(300), got)
	require.Equal(t, 2, n)
}

func TestDecodeUvarintTruncated(t *testing.T) {
	_, _, err := serde.DecodeUvarint([]byte{0x80})
	require.ErrorIs(t, err, serde.ErrInvalidVarint)

	_, _, err = serde.DecodeUvarint(nil)
	require.ErrorIs(t, err, serde.ErrInvalidVarint)
}

func TestDecodeUvarintOverflow(t *testing.T) {
	_, _, err := serde.DecodeUvarint(bytes.Repeat([]byte{0xFF}, 10))
	require.ErrorIs(t, err, serde.ErrInvalidVarint)
}

func TestDecodeFixedWidthStrictLength(t *testing.T) {
	v16, err := serde.DecodeInt16([]byte{0xFF, 0xFF})
	require.NoError(t, err)
	require.Equal(t, int16(-1), v16)

	v32, err := serde.DecodeInt32([]byte{0x00, 0x00, 0x00, 0x0A})
	require.NoError(t, err)
	require.Equal(t, int32(10), v32)

	v64, err := serde.DecodeInt64([]byte{0, 0, 0, 0, 0, 0, 0x01, 0x00})
	require.NoError(t, err)
	require.Equal(t, int64(256), v64)

	_, err = serde.DecodeInt16([]byte{0x01})
	require.ErrorIs(t, err, serde.ErrInvalidBuffer)

	_, err = serde.DecodeInt32([]byte{0, 0, 0, 0, 0})
	require.ErrorIs(t, err, serde.ErrInvalidBuffer)

	_, err = serde.DecodeInt64([]byte{0, 0, 0, 0})
	require.ErrorIs(t, err, serde.ErrInvalidBuffer)
}

func TestEncoderPutLen(t *testing.T) {
	encoder := serde.NewEncoder()
	encoder.PutInt32(5)
	encoder.PutLen()
	require.Equal(t, []byte{0, 0, 0, 4, 0, 0, 0, 5}, encoder.Bytes())
}

func TestEncoderCompactString(t *testing.T) {
	encoder := serde.NewEncoder()
	encoder.PutCompactString("hello")
	require.Equal(t, []byte{5, 'h', 'e', 'l', 'l', 'o'}, encoder.Bytes())
}

func TestEncoderCompactArrayLen(t *testing.T) {
	encoder := serde.NewEncoder()
	encoder.PutCompactArrayLen(0)
	require.Equal(t, []byte{1}, encoder.Bytes())

	encoder = serde.NewEncoder()
	encoder.PutCompactArrayLen(2)
	require.Equal(t, []byte{3}, encoder.Bytes())
}

func TestEncoderGrowsPastInitialBuffer(t *testing.T) {
	encoder := serde.NewEncoder()
	payload := bytes.Repeat([]byte{'x'}, serde.BufferIncrement+100)
	encoder.PutBytes(payload)
	encoder.PutInt8(7)
	got := encoder.Bytes()
	require.Len(t, got, len(payload)+1)
	require.Equal(t, byte(7), got[len(got)-1])
}
