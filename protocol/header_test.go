package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinkafka/tinkafka/protocol"
)

func TestParseHeader(t *testing.T) {
	buf := []byte{
		0, 0, 0, 10, // frame size
		0, 18, // api key
		0, 1, // api version
		0, 0, 0, 5, // correlation id
		0, 5, // client id length
		'H', 'e', 'l', 'l', 'o',
	}
	req, err := protocol.ParseHeader(buf, "client:1234")
	require.NoError(t, err)
	require.Equal(t, int32(10), req.FrameSize)
	require.Equal(t, int16(18), req.RequestAPIKey)
	require.Equal(t, int16(1), req.RequestAPIVersion)
	require.Equal(t, int32(5), req.CorrelationID)
	require.Equal(t, "Hello", req.ClientID)
	require.Equal(t, 19, req.HeaderEnd)
	require.Empty(t, req.Body)
	require.Equal(t, "client:1234", req.ConnectionAddress)
}

func TestParseHeaderNullClientID(t *testing.T) {
	buf := []byte{
		0, 0, 0, 10,
		0, 18,
		0, 1,
		0, 0, 0, 5,
		0xFF, 0xFF, // client id length -1
	}
	req, err := protocol.ParseHeader(buf, "")
	require.NoError(t, err)
	require.Equal(t, "", req.ClientID)
	require.Equal(t, 14, req.HeaderEnd)
}

func TestParseHeaderBodySlice(t *testing.T) {
	buf := []byte{
		0, 0, 0, 12,
		0, 18,
		0, 4,
		0, 0, 0, 1,
		0xFF, 0xFF,
		4, 't', 'e', 's', 't',
		1, '1',
	}
	req, err := protocol.ParseHeader(buf, "")
	require.NoError(t, err)
	require.Equal(t, buf[14:], req.Body)
}

func TestParseHeaderTooShort(t *testing.T) {
	_, err := protocol.ParseHeader([]byte{0, 0, 0, 10, 0, 1}, "")
	require.ErrorIs(t, err, protocol.ErrFrameTooShort)
}

func TestParseHeaderClientIDExceedsBuffer(t *testing.T) {
	buf := []byte{
		0, 0, 0, 10,
		0, 18,
		0, 1,
		0, 0, 0, 5,
		0, 100, // declared client id longer than the buffer
		0, 0,
	}
	_, err := protocol.ParseHeader(buf, "")
	require.ErrorIs(t, err, protocol.ErrIndexOutOfBounds)
}
