package types

// SupportedVersionRange is one entry of the supported-version table: the
// inclusive range of protocol versions the broker accepts for an API key.
type SupportedVersionRange struct {
	APIKey     int16 `json:"key"`
	MinVersion int16 `json:"min"`
	MaxVersion int16 `json:"max"`
}
