package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasc/site/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "America/Bogota", cfg.Clock.Timezone)
	assert.Equal(t, "573152588346", cfg.Site.Phone)
	assert.Empty(t, cfg.Rates.DBPath)
	assert.Equal(t, time.Hour, cfg.Rates.RefreshInterval)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 5s
log:
  format: json
rates:
  file: ./rates.json
  refresh_interval: 30m
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "./rates.json", cfg.Rates.File)
	assert.Equal(t, 30*time.Minute, cfg.Rates.RefreshInterval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("CLASC_SERVER_PORT", "7070")
	t.Setenv("CLASC_RATES_DB_PATH", "/tmp/rates.db")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/rates.db", cfg.Rates.DBPath)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit file must exist")

	_, err = config.Load(writeConfig(t, "log:\n  format: xml\n"))
	assert.ErrorContains(t, err, "log.format")

	_, err = config.Load(writeConfig(t, "server:\n  port: 70000\n"))
	assert.ErrorContains(t, err, "server.port")

	// A zero burst would refuse every request.
	_, err = config.Load(writeConfig(t, "ratelimit:\n  rps: 5\n  burst: 0\n"))
	assert.ErrorContains(t, err, "ratelimit.burst")

	_, err = config.Load(writeConfig(t, "ratelimit:\n  rps: 0\n  burst: 0\n"))
	assert.NoError(t, err, "rps 0 disables the limiter")
}

func TestLocation(t *testing.T) {
	cfg := &config.Config{Clock: config.ClockConfig{Timezone: "UTC"}}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Clock.Timezone = "Not/AZone"
	loc, err = cfg.Location()
	assert.Error(t, err)
	assert.Equal(t, time.UTC, loc)
}
