package shell

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the user-facing configuration of the shell, read from a YAML
// file at startup.
type Config struct {
	// TruncationFactor bounds the length of the path segments displayed in
	// the prompt; 0 disables truncation.
	TruncationFactor int `yaml:"truncation-factor"`
	// MultiLinePrompt puts the prompt glyph on its own line.
	MultiLinePrompt bool `yaml:"multi-line-prompt"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{}
}

// LoadConfig reads the configuration from the named YAML file. A missing
// file is not an error and yields the defaults; a malformed file is.
func LoadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", fname, err)
	}
	return cfg, nil
}
