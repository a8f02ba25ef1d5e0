package types

// Request is a single decoded request header plus the raw body bytes that
// follow it. It is built once per inbound frame and never mutated.
type Request struct {
	FrameSize         int32
	RequestAPIKey     int16
	RequestAPIVersion int16
	CorrelationID     int32
	ClientID          string
	// HeaderEnd is the offset into the frame where the request-specific
	// body starts: 14 plus the client id's encoded byte length.
	HeaderEnd         int
	Body              []byte
	ConnectionAddress string
}
