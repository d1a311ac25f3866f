package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configFileMode = 0o600
	configDirMode  = 0o700
	tempPattern    = ".config-*.toml.tmp"
)

type fileSchema struct {
	Solidtime solidtimeSection `toml:"solidtime"`
	Wakapi    wakapiSection    `toml:"wakapi"`
	Export    exportSection    `toml:"export"`
}

type solidtimeSection struct {
	URL          string `toml:"url"`
	APIKey       string `toml:"api_key"`
	Organization string `toml:"organization"`
}

type wakapiSection struct {
	Database string `toml:"database"`
}

type exportSection struct {
	GapSeconds         int `toml:"gap_seconds"`
	MinDurationSeconds int `toml:"min_duration_seconds"`
}

// Path returns the location of the config file, whether or not it exists.
func Path() (string, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, configName+"."+configType), nil
}

// WriteStarter writes a starter config file with current values filled in and
// defaults elsewhere. Refuses to overwrite an existing file. The write is
// atomic: temp file then rename.
func WriteStarter(cfg Config) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), configDirMode); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	schema := fileSchema{
		Solidtime: solidtimeSection{
			URL:          cfg.SolidtimeURL,
			APIKey:       cfg.APIKey,
			Organization: cfg.OrganizationID,
		},
		Wakapi: wakapiSection{Database: cfg.DatabasePath},
		Export: exportSection{
			GapSeconds:         defaultGapSeconds,
			MinDurationSeconds: defaultMinDurationSec,
		},
	}
	if cfg.Gap > 0 {
		schema.Export.GapSeconds = int(cfg.Gap.Seconds())
	}
	if cfg.MinDuration > 0 {
		schema.Export.MinDurationSeconds = int(cfg.MinDuration.Seconds())
	}

	encoded, err := toml.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempPattern)
	if err != nil {
		return "", fmt.Errorf("create temp config file: %w", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(encoded); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Chmod(tempPath, configFileMode); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("set config file mode: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("move config file into place: %w", err)
	}

	return path, nil
}
