package protocol

import "github.com/tinkafka/tinkafka/types"

// https://kafka.apache.org/protocol#protocol_api_keys
var apiVersionsKey = int16(18)
var describeTopicPartitionsKey = int16(75)

// Dispatcher routes a decoded API key to its request codec. One request
// cycle moves through three states: awaiting the header, routed to a codec,
// responded. A failed decode aborts the cycle for that frame only.
type Dispatcher struct {
	Versions VersionSource
}

// NewDispatcher creates a Dispatcher backed by the given version table source.
func NewDispatcher(versions VersionSource) *Dispatcher {
	return &Dispatcher{Versions: versions}
}

// APIKeyHandler represents an api key with its handler. A zero-value
// handler (nil Handler) means the key is unsupported and the request is
// silently dropped.
type APIKeyHandler struct {
	Name    string
	Handler func(req types.Request) ([]byte, error)
}

// APIDispatcher maps the request key to its handler
func (d *Dispatcher) APIDispatcher(requestAPIKey int16) APIKeyHandler {
	switch requestAPIKey {
	case apiVersionsKey:
		return APIKeyHandler{Name: "ApiVersions", Handler: d.getApiVersionsResponse}
	case describeTopicPartitionsKey:
		return APIKeyHandler{Name: "DescribeTopicPartitions", Handler: d.getDescribeTopicPartitionsResponse}
	default:
		return APIKeyHandler{}
	}
}
