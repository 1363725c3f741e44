package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 30*time.Second, cfg.Watch.Interval)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
db_path: /tmp/ritual-test.db
timezone: Europe/Paris
log_level: debug
watch:
  interval: 5s
metrics:
  addr: 127.0.0.1:9464
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ritual-test.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Watch.Interval)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log_level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultConfig().DBPath, cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.Watch.Interval)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvDB, "/var/lib/ritual.db")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvTimezone, "UTC")
	t.Setenv(EnvMetricsAddr, ":2112")

	cfg, err := Load(writeConfig(t, "db_path: /ignored.db\nlog_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/ritual.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "watch: [", "parse config"},
		{"zero interval", "watch:\n  interval: 0s\n", "watch.interval must be positive"},
		{"unknown timezone", "timezone: Mars/Olympus\n", "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
