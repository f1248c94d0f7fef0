// Package config handles configuration loading and validation for commentdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fragmede/commentdeck/internal/api"
)

// Config holds the application configuration.
type Config struct {
	Endpoint       string        `yaml:"endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	UserAgent      string        `yaml:"user_agent"`
	BodyWidth      int           `yaml:"body_width"`
	Images         ImagesConfig  `yaml:"images"`

	DataDir string `yaml:"-"` // set by caller, not from config file
	LogPath string `yaml:"-"`
}

// ImagesConfig controls the local image picker.
type ImagesConfig struct {
	// StartDir is where the picker opens. Empty means the home directory.
	StartDir string `yaml:"start_dir"`
	// Patterns are doublestar globs a picked file must match.
	Patterns []string `yaml:"patterns"`
}

// Default returns a Config with sensible defaults rooted at dataDir.
// An empty dataDir resolves to the user config directory.
func Default(dataDir string) Config {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return Config{
		Endpoint:  api.DefaultEndpoint,
		UserAgent: api.DefaultUserAgent,
		BodyWidth: 100,
		Images: ImagesConfig{
			Patterns: []string{"**/*.{png,jpg,jpeg,gif,webp,bmp}"},
		},
		DataDir: dataDir,
		LogPath: filepath.Join(dataDir, "commentdeck.log"),
	}
}

// Load reads configuration from the given path on top of Default(dataDir).
// A missing file is not an error.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := Default(dataDir)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DefaultDataDir returns the directory used for logs when none is given.
func DefaultDataDir() string {
	return filepath.Join(userConfigDir(), "commentdeck")
}

// DefaultConfigPath returns the config file location used when none is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
