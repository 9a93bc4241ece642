package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-notes/internal/storeinfra"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_ReadsYAMLAndFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
logger:
  level: debug
  development: true
store:
  driver: sqlite
  dsn: ":memory:"
cli:
  timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.Development)
	assert.Equal(t, storeinfra.DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.DSN)
	assert.Equal(t, 1, cfg.Store.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Store.PingTimeout)
	assert.Equal(t, 3*time.Second, cfg.CLI.Timeout)
	assert.Equal(t, "2006-01-02 15:04", cfg.CLI.DateLayout)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("NOTES_TEST_DSN", "file:from-env.db")
	path := writeConfig(t, `
store:
  driver: ${NOTES_TEST_DRIVER:-sqlite3}
  dsn: ${NOTES_TEST_DSN}
  max_open_conns: ${NOTES_TEST_CONNS:-4}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, storeinfra.DriverSQLite3, cfg.Store.Driver)
	assert.Equal(t, "file:from-env.db", cfg.Store.DSN)
	assert.Equal(t, 4, cfg.Store.MaxOpenConns)
}

func TestLoad_InvalidStore(t *testing.T) {
	path := writeConfig(t, `
store:
  driver: oracle
  dsn: x
`)

	_, err := Load(path)
	var cfgErr *storeinfra.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Driver", cfgErr.Field)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestExpandEnvWithDefaults(t *testing.T) {
	t.Setenv("NOTES_SET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${NOTES_SET}", "value"},
		{"${NOTES_SET:-other}", "value"},
		{"${NOTES_UNSET:-fallback}", "fallback"},
		{"${NOTES_UNSET}", ""},
		{"prefix-${NOTES_SET}-suffix", "prefix-value-suffix"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, expandEnvWithDefaults(tt.in), tt.in)
	}
}
