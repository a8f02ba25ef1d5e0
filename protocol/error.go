package protocol

import "errors"

// Decode errors. Every one of these aborts only the request cycle it
// occurred in; the connection stays open for the next frame.
var (
	// ErrFrameTooShort signals a frame below the 14-byte minimum header size.
	ErrFrameTooShort = errors.New("frame shorter than minimum header size")
	// ErrInvalidUTF8 signals string payload bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string payload is not valid UTF-8")
	// ErrInvalidLengthPrefix signals a compact length prefix that declares
	// more bytes than the buffer holds.
	ErrInvalidLengthPrefix = errors.New("declared length exceeds remaining buffer")
	// ErrIndexOutOfBounds signals a legacy string span past the end of the buffer.
	ErrIndexOutOfBounds = errors.New("string span exceeds buffer")
	// ErrConfigUnavailable signals that the supported-version table could
	// not be loaded or parsed.
	ErrConfigUnavailable = errors.New("supported-version table unavailable")
)

// Error is a wire-level Kafka error code.
// https://kafka.apache.org/protocol#protocol_error_codes
type Error struct {
	Code    int16
	Message string
}

var (
	ErrNone                    = Error{Code: 0}
	ErrUnknownTopicOrPartition = Error{Code: 3, Message: "This server does not host this topic-partition."}
	ErrUnsupportedVersion      = Error{Code: 35, Message: "The version of API is not supported."}
)
