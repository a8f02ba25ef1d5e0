// Package config loads the broker configuration and the supported-version
// table consumed by the ApiVersions handler.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinkafka/tinkafka/protocol"
	"github.com/tinkafka/tinkafka/types"
)

// Default returns the broker configuration defaults.
func Default() types.Configuration {
	return types.Configuration{
		BrokerHost:      "localhost",
		BrokerPort:      9092,
		LogLevel:        "info",
		VersionFilePath: "supported_versions.json",
	}
}

// Load reads a YAML configuration file over the given base configuration.
// A missing file leaves the base untouched; a malformed one is an error.
func Load(path string, base types.Configuration) (types.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return base, nil
}

// VersionFile loads the supported-version table from a JSON file holding an
// array of {key, min, max} entries. It implements protocol.VersionSource and
// re-reads the file on every call, so edits take effect without a restart.
type VersionFile struct {
	Path string
}

var _ protocol.VersionSource = VersionFile{}

// Ranges reads and parses the version table.
func (f VersionFile) Ranges() ([]types.SupportedVersionRange, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("reading version table %s: %w", f.Path, err)
	}
	var ranges []types.SupportedVersionRange
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, fmt.Errorf("parsing version table %s: %w", f.Path, err)
	}
	return ranges, nil
}
