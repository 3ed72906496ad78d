// Package config loads vtcat's optional YAML configuration file, grounded
// on the same "absent file is not an error" idiom the rest of the pack uses
// for user config loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults vtcat applies before command-line flags
// override them.
type Config struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	MaxHistory int `yaml:"max_history"`
}

const (
	defaultRows       = 24
	defaultCols       = 80
	defaultMaxHistory = 10000
)

// Load reads a vtcat.yaml config from path. An empty path returns the
// built-in defaults with no error. A missing file also returns the
// defaults; any other read or parse error is returned to the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{Rows: defaultRows, Cols: defaultCols, MaxHistory: defaultMaxHistory}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
