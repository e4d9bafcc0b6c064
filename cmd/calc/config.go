package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// config is the contents of a calc configuration file.
type config struct {
	// Format is the result formatting verb, like the -fmt flag.
	Format string `yaml:"format"`
	// MaxDepth is the nesting limit, like the -depth flag.
	MaxDepth int `yaml:"max_depth"`
	// Consts are constants defined before any input.
	Consts map[string]float64 `yaml:"consts"`
	// Defs are statements evaluated in order before any input, typically
	// function definitions.
	Defs []string `yaml:"defs"`
}

// readConfig loads the configuration file at path.
func readConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// loadConfig decodes a configuration. Unknown fields are errors. An empty
// document gives the zero config.
func loadConfig(r io.Reader) (*config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, err
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	}
	return &cfg, nil
}
