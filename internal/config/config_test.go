package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Fetch.CacheTTLSeconds)
	assert.Equal(t, USGSHourURL, cfg.Feeds.QuakeHourURL)
	assert.Equal(t, 5.0, cfg.Analysis.StrongMagnitude)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Sessions.IdleTTLMinutes)
}

func TestLoad_PartialFileMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9999"
fetch:
  cache_ttl_seconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Fetch.CacheTTLSeconds)
	// untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "dashboard.db", cfg.Storage.SQLitePath)
	assert.Equal(t, USGSDayURL, cfg.Feeds.QuakeDayURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
