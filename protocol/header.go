package protocol

import (
	"fmt"

	"github.com/tinkafka/tinkafka/serde"
	"github.com/tinkafka/tinkafka/types"
)

// headerMinSize is the fixed part of every request header: frame size (4),
// api key (2), api version (2), correlation id (4), client id length (2).
const headerMinSize = 14

// ParseHeader decodes the common leading fields of a request frame and
// returns a Request whose Body slice starts where the request-specific
// bytes begin.
func ParseHeader(buffer []byte, connAddr string) (types.Request, error) {
	if len(buffer) < headerMinSize {
		return types.Request{}, fmt.Errorf("%w: got %d bytes, need %d", ErrFrameTooShort, len(buffer), headerMinSize)
	}
	frameSize, err := serde.DecodeInt32(buffer[0:4])
	if err != nil {
		return types.Request{}, err
	}
	apiKey, err := serde.DecodeInt16(buffer[4:6])
	if err != nil {
		return types.Request{}, err
	}
	apiVersion, err := serde.DecodeInt16(buffer[6:8])
	if err != nil {
		return types.Request{}, err
	}
	correlationID, err := serde.DecodeInt32(buffer[8:12])
	if err != nil {
		return types.Request{}, err
	}
	clientIDLen, err := serde.DecodeInt16(buffer[12:14])
	if err != nil {
		return types.Request{}, err
	}

	clientID, err := DecodeNullableString(buffer, headerMinSize, clientIDLen)
	if err != nil {
		return types.Request{}, fmt.Errorf("decoding client id: %w", err)
	}
	headerEnd := headerMinSize + int(clientID.DeclaredLength)

	return types.Request{
		FrameSize:         frameSize,
		RequestAPIKey:     apiKey,
		RequestAPIVersion: apiVersion,
		CorrelationID:     correlationID,
		ClientID:          clientID.Text,
		HeaderEnd:         headerEnd,
		Body:              buffer[headerEnd:],
		ConnectionAddress: connAddr,
	}, nil
}
