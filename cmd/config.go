package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/achilleasa/objloader/asset"
	"github.com/achilleasa/objloader/log"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the settings that can be supplied via a TOML file.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Loader  LoaderConfig  `toml:"loader"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type LoaderConfig struct {
	// Location for resolving material libraries. If empty, the directory
	// of the obj file is used.
	BasePath string `toml:"base_path"`

	// Allow material libraries to be fetched over http/https.
	AllowRemote bool `toml:"allow_remote"`
}

// Returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "notice"},
	}
}

// Load configuration from a TOML file. If the file does not exist the
// default configuration is returned.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("config file %s not found; using defaults", path)
			return cfg, nil
		}
		return nil, err
	}

	if err = toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: could not parse %s: %w", path, err)
	}

	if _, err = cfg.LogLevel(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Logging.Level == "" {
		return log.Notice, nil
	}
	return log.ParseLevel(c.Logging.Level)
}

// Returns the base path for resolving material libraries referenced by objFile.
func (c *Config) BasePathFor(objFile string) string {
	if c.Loader.BasePath != "" {
		return c.Loader.BasePath
	}
	return asset.Dir(objFile)
}
