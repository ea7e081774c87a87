package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Sources names the layers read by [LoadLayered].
type Sources struct {
	// BasePath is the base configuration file. Required.
	BasePath string

	// Environment selects the overlay file (see [OverlayPath]).
	// Empty skips the overlay.
	Environment string

	// DotEnvPath is a .env file loaded into the process environment before
	// environment overrides are read. Empty or missing is skipped. Variables
	// already set in the process are never replaced.
	DotEnvPath string
}

// OverlayPath returns the overlay file name for an environment.
//
// The environment is inserted before the extension:
// "appsettings.json" + "Development" → "appsettings.Development.json".
func OverlayPath(basePath, environment string) string {
	ext := filepath.Ext(basePath)
	stem := strings.TrimSuffix(basePath, ext)
	return stem + "." + environment + ext
}

// Load reads and parses a single configuration file.
//
// It is equivalent to [LoadLayered] with only BasePath set.
func Load(path string) (*Config, error) {
	return LoadLayered(Sources{BasePath: path})
}

// LoadLayered resolves configuration from every layer in src.
//
// The base file must exist. The overlay and .env file are optional. Keys in
// a later layer replace the same keys in an earlier one, environment
// variables last. Validation runs once on the merged result.
func LoadLayered(src Sources) (*Config, error) {
	data, err := os.ReadFile(src.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", src.BasePath, err)
	}

	if src.Environment != "" {
		overlay := OverlayPath(src.BasePath, src.Environment)
		data, err := readOptional(overlay)
		if err != nil {
			return nil, fmt.Errorf("failed to read overlay file: %w", err)
		}
		if data != nil {
			if err := decode(data, &cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", overlay, err)
			}
		}
	}

	if src.DotEnvPath != "" {
		if err := loadDotEnv(src.DotEnvPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readOptional reads path, returning nil data when the file does not exist.
func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// loadDotEnv loads a .env file if present.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
