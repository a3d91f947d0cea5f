package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/diskreport"
	"github.com/fwojciec/diskreport/batch"
	"github.com/fwojciec/diskreport/excelize"
	"gopkg.in/yaml.v3"
)

// Config holds settings read from the optional YAML config file.
type Config struct {
	OutputDir      string `yaml:"output_dir"`
	Concurrency    int    `yaml:"concurrency"`
	MaxColumnWidth int    `yaml:"max_column_width"`
	LogLevel       string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		OutputDir:      "results",
		Concurrency:    batch.DefaultConcurrency,
		MaxColumnWidth: excelize.DefaultMaxColumnWidth,
		LogLevel:       "info",
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, diskreport.Errorf(diskreport.EINVALID, "invalid config file %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate returns an error if the config contains invalid values.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return diskreport.Errorf(diskreport.EINVALID, "concurrency must not be negative")
	}
	if c.MaxColumnWidth < 0 {
		return diskreport.Errorf(diskreport.EINVALID, "max_column_width must not be negative")
	}
	return nil
}
