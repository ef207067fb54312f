// Package config loads CLI settings from optable.yml and OPTABLE_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the working directory
const FileName = "optable.yml"

// Config holds the settings the CLI applies to catalog loading
type Config struct {
	DefaultExtension string
	SearchPaths      []string
	LogLevel         string
}

// Default returns the settings used when no config file is present
func Default() *Config {
	return &Config{
		DefaultExtension: ".yml",
		LogLevel:         "info",
	}
}

// Load reads settings from path, or from optable.yml when path is empty.
// A missing optable.yml is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("default_extension", def.DefaultExtension)
	v.SetDefault("search_paths", []string{})
	v.SetDefault("log_level", def.LogLevel)

	// Enable environment variable overrides
	v.SetEnvPrefix("OPTABLE")
	v.AutomaticEnv()

	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s not found: %w", path, err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg := &Config{
		DefaultExtension: v.GetString("default_extension"),
		SearchPaths:      v.GetStringSlice("search_paths"),
		LogLevel:         v.GetString("log_level"),
	}

	if cfg.DefaultExtension == "" {
		return nil, fmt.Errorf("default_extension must not be empty")
	}

	return cfg, nil
}
