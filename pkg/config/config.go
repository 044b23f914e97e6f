// Package config loads simulation configuration from YAML files.
//
// Durations are written as Go duration strings ("10s", "1500ms"). Fields
// missing from the file keep their DefaultConfig value.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anggasct/traffix/pkg/core"
)

// Load reads and parses a YAML configuration file
func Load(path string) (core.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays YAML data on the default configuration and validates the result
func Parse(data []byte) (core.Config, error) {
	cfg := core.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return core.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML
func Marshal(cfg core.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
