// Package config loads the framework settings from an optional YAML file.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultPrefix = "!!ut"

type Config struct {
	// Command prefix the dispatcher is registered under.
	Prefix string `yaml:"prefix"`

	// Run every suite verbosely, as if `-v` was always given.
	Verbose bool `yaml:"verbose"`

	LogLevel logrus.Level `yaml:"logLevel"`

	// Register the run counters on the default prometheus registry.
	Metrics bool `yaml:"metrics"`
}

func Default() Config {
	return Config{
		Prefix:   DefaultPrefix,
		LogLevel: logrus.InfoLevel,
		Metrics:  true,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config '%s'", path)
	}

	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config")
	}

	if cfg.Prefix == "" {
		return cfg, errors.New("prefix must not be empty")
	}
	return cfg, nil
}
