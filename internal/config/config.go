package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// DBPath overrides the default XDG database location.
	DBPath string `koanf:"db_path"`

	// Volume is the startup volume level (0.0-1.0, default 1.0).
	Volume *float64 `koanf:"volume"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error (default: info)
	Format string `koanf:"format"` // "text" or "json" (default: text)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DBPath != "" {
		cfg.DBPath = expandPath(cfg.DBPath)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/chime/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chime", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetVolume returns the configured startup volume with the default and
// clamping applied.
func (c *Config) GetVolume() float64 {
	if c.Volume == nil {
		return 1.0
	}
	v := *c.Volume
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GetLog returns the log configuration with defaults applied.
func (c *Config) GetLog() LogConfig {
	log := c.Log
	if log.Level == "" {
		log.Level = "info"
	}
	if log.Format == "" {
		log.Format = "text"
	}
	return log
}
