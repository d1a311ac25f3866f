// Package config resolves wakasync settings from an optional TOML config
// file, environment variables, and flag overrides, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = "wakasync"
	envPrefix  = "WAKASYNC"

	keySolidtimeURL       = "solidtime.url"
	keySolidtimeAPIKey    = "solidtime.api_key"
	keySolidtimeOrg       = "solidtime.organization"
	keyWakapiDatabase     = "wakapi.database"
	keyExportGapSeconds   = "export.gap_seconds"
	keyExportMinDuration  = "export.min_duration_seconds"
	defaultGapSeconds     = 900
	defaultMinDurationSec = 0
)

type Config struct {
	SolidtimeURL   string
	APIKey         string
	OrganizationID string
	DatabasePath   string
	Gap            time.Duration
	MinDuration    time.Duration
}

// Load reads the config file (if any) and environment. Flag values are
// applied on top by the caller.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if dir, err := defaultConfigDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyExportGapSeconds, defaultGapSeconds)
	v.SetDefault(keyExportMinDuration, defaultMinDurationSec)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	return Config{
		SolidtimeURL:   v.GetString(keySolidtimeURL),
		APIKey:         v.GetString(keySolidtimeAPIKey),
		OrganizationID: v.GetString(keySolidtimeOrg),
		DatabasePath:   v.GetString(keyWakapiDatabase),
		Gap:            time.Duration(v.GetInt(keyExportGapSeconds)) * time.Second,
		MinDuration:    time.Duration(v.GetInt(keyExportMinDuration)) * time.Second,
	}, nil
}

// ValidateRemote reports every missing remote connection parameter at once,
// before any I/O is attempted.
func (c Config) ValidateRemote() error {
	var missing []string
	if c.SolidtimeURL == "" {
		missing = append(missing, "solidtime.url")
	}
	if c.APIKey == "" {
		missing = append(missing, "solidtime.api_key")
	}
	if c.OrganizationID == "" {
		missing = append(missing, "solidtime.organization")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingConfig, strings.Join(missing, ", "))
	}

	return nil
}

// ValidateSource checks the heartbeat source parameters.
func (c Config) ValidateSource() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: wakapi.database", domain.ErrMissingConfig)
	}

	return nil
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}

	return filepath.Join(base, configDir), nil
}
