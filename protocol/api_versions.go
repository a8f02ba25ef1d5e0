package protocol

import (
	"fmt"

	"github.com/tinkafka/tinkafka/serde"
	"github.com/tinkafka/tinkafka/types"
)

// VersionSource supplies the supported-version table consulted by the
// ApiVersions handler. It is read-only for the lifetime of a request.
type VersionSource interface {
	Ranges() ([]types.SupportedVersionRange, error)
}

// ApiVersionsRequest is the decoded body of an ApiVersions request.
type ApiVersionsRequest struct {
	ClientSoftwareName    CompactString
	ClientSoftwareVersion CompactString
}

// DecodeApiVersionsRequest decodes the two compact strings of the request body.
func DecodeApiVersionsRequest(body []byte) (ApiVersionsRequest, error) {
	name, err := DecodeCompactString(body)
	if err != nil {
		return ApiVersionsRequest{}, fmt.Errorf("decoding client software name: %w", err)
	}
	version, err := DecodeCompactString(body[name.PrefixByteCount:])
	if err != nil {
		return ApiVersionsRequest{}, fmt.Errorf("decoding client software version: %w", err)
	}
	return ApiVersionsRequest{ClientSoftwareName: name, ClientSoftwareVersion: version}, nil
}

// versionSupported reports whether (key, version) falls within some table
// entry's inclusive range.
func versionSupported(ranges []types.SupportedVersionRange, key, version int16) bool {
	for _, r := range ranges {
		if r.APIKey == key && version >= r.MinVersion && version <= r.MaxVersion {
			return true
		}
	}
	return false
}

// ApiVersions (Api key = 18)
func (d *Dispatcher) getApiVersionsResponse(req types.Request) ([]byte, error) {
	if _, err := DecodeApiVersionsRequest(req.Body); err != nil {
		return nil, err
	}

	ranges, err := d.Versions.Ranges()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	errorCode := ErrNone.Code
	if !versionSupported(ranges, req.RequestAPIKey, req.RequestAPIVersion) {
		errorCode = ErrUnsupportedVersion.Code
	}

	encoder := serde.NewEncoder()
	encoder.PutInt32(uint32(req.CorrelationID))
	encoder.PutInt16(uint16(errorCode))
	encoder.PutInt8(uint8(len(ranges) + 1))
	for _, r := range ranges {
		encoder.PutInt16(uint16(r.APIKey))
		encoder.PutInt16(uint16(r.MinVersion))
		encoder.PutInt16(uint16(r.MaxVersion))
		encoder.EndStruct()
	}
	encoder.PutInt32(0) // throttle_time_ms
	encoder.EndStruct()
	encoder.PutLen()
	return encoder.Bytes(), nil
}
