package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const envConfigFile = "HFINSPECT_CONFIG"

// Config represents the hfinspect configuration file
// (~/.config/hfinspect/config.yaml). Empty fields leave flag defaults alone.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// OutputFormat is the default of `trailer --format`.
	OutputFormat string `yaml:"output_format"`

	ServeRoot     string `yaml:"serve_root"`
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hfinspect", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file is
// missing or unreadable.
func LoadConfig(path string) Config {
	c, err := loadConfigFrom(path)
	if err != nil {
		return Config{}
	}
	return c
}

func loadConfigFrom(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("no config path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// applyLoggingConfig applies config file defaults to the logging flags
// when the corresponding CLI flag was not explicitly set.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// pick returns the flag value unless it was left unset and the config names
// a value.
func pick(c *cli.Command, flag, flagValue, configValue string) string {
	if configValue != "" && !c.IsSet(flag) {
		return configValue
	}
	return flagValue
}
