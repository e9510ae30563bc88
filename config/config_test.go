package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "usa", cfg.DefaultCountry)
	assert.False(t, cfg.CacheEnabled())
	assert.False(t, cfg.DatabaseExportEnabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JOBSPY_API_URL", "http://jobs.internal:9000/api/")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("EXPORT_DATABASE_URL", "postgres://u:p@localhost/jobs?sslmode=disable")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://jobs.internal:9000/api", cfg.APIBaseURL, "trailing slash is trimmed")
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.CacheEnabled())
	assert.True(t, cfg.DatabaseExportEnabled())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OUTPUT_DIR: ./exports\nMAX_RETRIES: 5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./exports", cfg.OutputDir)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("METADATA_CONCURRENCY", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "METADATA_CONCURRENCY")
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
