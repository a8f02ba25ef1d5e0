package types

// Configuration holds the broker's runtime settings. Loaded from flags
// and an optional YAML file by the config package.
type Configuration struct {
	BrokerHost      string `yaml:"broker_host"`
	BrokerPort      uint32 `yaml:"broker_port"`
	MetricsAddress  string `yaml:"metrics_address"`
	LogLevel        string `yaml:"log_level"`
	VersionFilePath string `yaml:"version_file"`
}
