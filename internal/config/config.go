// Package config resolves where accounts live and how output is rendered.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user directory under the home directory
	DirName = ".totp"
	// StoreFile is the account file inside the directory
	StoreFile = "secrets.json"
	// ConfigFile is the optional settings file inside the directory
	ConfigFile = "config.yaml"
)

// ColorMode controls colored output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ValidateColor checks if the given string is a valid ColorMode.
// An empty string defaults to auto.
func ValidateColor(mode string) (ColorMode, error) {
	switch ColorMode(mode) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unsupported color mode %q: must be 'auto', 'always' or 'never'", mode)
	}
}

// Config holds the resolved settings
type Config struct {
	Dir    string
	Color  ColorMode
	NoCopy bool
}

type fileConfig struct {
	Color  string `yaml:"color"`
	NoCopy *bool  `yaml:"no_copy"`
}

// StorePath returns the account file location
func (c *Config) StorePath() string {
	return filepath.Join(c.Dir, StoreFile)
}

// Load resolves settings from, in increasing precedence, defaults,
// <dir>/config.yaml and the TOTP_* environment variables.
func Load() (*Config, error) {
	dir := os.Getenv("TOTP_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}

	cfg := &Config{Dir: dir, Color: ColorAuto}

	fc, err := readFileConfig(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}
	color := getEnv("TOTP_COLOR", fc.Color)
	if cfg.Color, err = ValidateColor(color); err != nil {
		return nil, err
	}
	if fc.NoCopy != nil {
		cfg.NoCopy = *fc.NoCopy
	}
	if v, ok := os.LookupEnv("TOTP_NO_COPY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("TOTP_NO_COPY must be a boolean, got %q", v)
		}
		cfg.NoCopy = b
	}

	return cfg, nil
}

func readFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
