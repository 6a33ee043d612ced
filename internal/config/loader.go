package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Unset fields take their [Defaults] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r over the defaults and
// validates the result. Unknown fields are rejected. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadTargets reads the YAML list of target phrases at path. Empty entries
// are rejected.
func LoadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open targets %q: %w", path, err)
	}
	defer f.Close()

	targets, err := LoadTargetsFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse targets %q: %w", path, err)
	}
	return targets, nil
}

// LoadTargetsFromReader decodes a YAML list of target phrases from r.
func LoadTargetsFromReader(r io.Reader) ([]string, error) {
	var targets []string
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&targets); err != nil {
		return nil, fmt.Errorf("config: decode targets yaml: %w", err)
	}
	for i, t := range targets {
		if t == "" {
			return nil, fmt.Errorf("config: targets[%d] is empty", i)
		}
	}
	return targets, nil
}
