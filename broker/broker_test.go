package broker_test

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tinkafka/tinkafka/broker"
	"github.com/tinkafka/tinkafka/serde"
	"github.com/tinkafka/tinkafka/types"
)

type staticVersions []types.SupportedVersionRange

func (s staticVersions) Ranges() ([]types.SupportedVersionRange, error) {
	return s, nil
}

func startBroker(t *testing.T) *broker.Broker {
	t.Helper()
	b := broker.NewBroker(
		types.Configuration{BrokerHost: "127.0.0.1", BrokerPort: 0},
		staticVersions{{APIKey: 18, MinVersion: 0, MaxVersion: 4}},
	)
	require.NoError(t, b.Startup())
	t.Cleanup(b.Shutdown)
	return b
}

func dial(t *testing.T, b *broker.Broker) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", b.Addr().String(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	return conn
}

// apiVersionsFrame builds a complete request frame, length prefix included.
func apiVersionsFrame(apiKey int16, correlationID int32) []byte {
	body := []byte{
		0xFF, 0xFF, // null client id
		4, 't', 'e', 's', 't', // client software name
		1, '1', // client software version
	}
	frame := make([]byte, 0, 16+len(body))
	frame = serde.Encoding.AppendUint32(frame, uint32(8+len(body)))
	frame = serde.Encoding.AppendUint16(frame, uint16(apiKey))
	frame = serde.Encoding.AppendUint16(frame, 1) // api version
	frame = serde.Encoding.AppendUint32(frame, uint32(correlationID))
	return append(frame, body...)
}

func readResponse(t *testing.T, conn net.Conn) []byte {
	t.Helper()
	lengthBuffer := make([]byte, 4)
	_, err := io.ReadFull(conn, lengthBuffer)
	require.NoError(t, err)
	response := make([]byte, serde.Encoding.Uint32(lengthBuffer))
	_, err = io.ReadFull(conn, response)
	require.NoError(t, err)
	return response
}

func TestBrokerApiVersionsRequest(t *testing.T) {
	b := startBroker(t)
	conn := dial(t, b)

	_, err := conn.Write(apiVersionsFrame(18, 42))
	require.NoError(t, err)

	response := readResponse(t, conn)
	require.Equal(t, []byte{0, 0, 0, 42}, response[0:4])
	require.Equal(t, []byte{0, 0}, response[4:6]) // no error
}

func TestBrokerDropsUnknownAPIKey(t *testing.T) {
	b := startBroker(t)
	conn := dial(t, b)

	// The unsupported frame produces no response; the connection stays
	// usable and the next frame is answered normally.
	_, err := conn.Write(apiVersionsFrame(99, 1))
	require.NoError(t, err)
	_, err = conn.Write(apiVersionsFrame(18, 2))
	require.NoError(t, err)

	response := readResponse(t, conn)
	require.Equal(t, []byte{0, 0, 0, 2}, response[0:4])
}

func TestBrokerSurvivesMalformedBody(t *testing.T) {
	b := startBroker(t)
	conn := dial(t, b)

	// An ApiVersions frame whose body is a lone varint continuation byte.
	frame := []byte{
		0, 0, 0, 11,
		0, 18,
		0, 1,
		0, 0, 0, 1,
		0xFF, 0xFF,
		0x80,
	}
	_, err := conn.Write(frame)
	require.NoError(t, err)
	_, err = conn.Write(apiVersionsFrame(18, 2))
	require.NoError(t, err)

	response := readResponse(t, conn)
	require.Equal(t, []byte{0, 0, 0, 2}, response[0:4])
}

func TestBrokerHandlesConcurrentConnections(t *testing.T) {
	b := startBroker(t)
	first := dial(t, b)
	second := dial(t, b)

	_, err := second.Write(apiVersionsFrame(18, 20))
	require.NoError(t, err)
	_, err = first.Write(apiVersionsFrame(18, 10))
	require.NoError(t, err)

	require.Equal(t, []byte{0, 0, 0, 10}, readResponse(t, first)[0:4])
	require.Equal(t, []byte{0, 0, 0, 20}, readResponse(t, second)[0:4])
}
