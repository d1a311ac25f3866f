package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfigHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	return home
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	setConfigHome(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Gap)
	assert.Equal(t, time.Duration(0), cfg.MinDuration)
	assert.Empty(t, cfg.SolidtimeURL)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := setConfigHome(t)

	dir := filepath.Join(home, "wakasync")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[solidtime]
url = "https://time.example.com"
api_key = "secret"
organization = "org-1"

[wakapi]
database = "/var/lib/wakapi/wakapi.db"

[export]
gap_seconds = 600
min_duration_seconds = 30
`), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://time.example.com", cfg.SolidtimeURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "org-1", cfg.OrganizationID)
	assert.Equal(t, "/var/lib/wakapi/wakapi.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Minute, cfg.Gap)
	assert.Equal(t, 30*time.Second, cfg.MinDuration)
}

func TestLoadEnvOverrides(t *testing.T) {
	setConfigHome(t)
	t.Setenv("WAKASYNC_SOLIDTIME_URL", "https://env.example.com")
	t.Setenv("WAKASYNC_SOLIDTIME_API_KEY", "env-key")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.SolidtimeURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestValidateRemoteListsAllMissingKeys(t *testing.T) {
	err := Config{}.ValidateRemote()
	require.ErrorIs(t, err, domain.ErrMissingConfig)
	assert.Contains(t, err.Error(), "solidtime.url")
	assert.Contains(t, err.Error(), "solidtime.api_key")
	assert.Contains(t, err.Error(), "solidtime.organization")
}

func TestValidateRemoteComplete(t *testing.T) {
	cfg := Config{SolidtimeURL: "https://t.example.com", APIKey: "k", OrganizationID: "o"}
	require.NoError(t, cfg.ValidateRemote())
}

func TestValidateSource(t *testing.T) {
	require.ErrorIs(t, Config{}.ValidateSource(), domain.ErrMissingConfig)
	require.NoError(t, Config{DatabasePath: "/tmp/wakapi.db"}.ValidateSource())
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	setConfigHome(t)

	path, err := WriteStarter(Config{})
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = WriteStarter(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestWriteStarterRoundTrips(t *testing.T) {
	setConfigHome(t)

	_, err := WriteStarter(Config{
		SolidtimeURL:   "https://time.example.com",
		APIKey:         "secret",
		OrganizationID: "org-1",
		DatabasePath:   "/var/lib/wakapi/wakapi.db",
		Gap:            10 * time.Minute,
	})
	require.NoError(t, err)

	cfg, err := Load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "https://time.example.com", cfg.SolidtimeURL)
	assert.Equal(t, 10*time.Minute, cfg.Gap)
}
