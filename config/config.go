package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the tool configuration, normally loaded from a yaml file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration: normal console logging, no
// file sink.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none"},
		},
	}
}

// Dump serializes configuration back to yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize configuration: %w", err)
	}
	return data, nil
}

// Load reads configuration from path, applied on top of Default. An empty
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration %s: %w", path, err)
	}
	return cfg, nil
}
