package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orca.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without sources", func(t *testing.T) {
		s, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, Default(), s)
	})

	t.Run("Should apply the settings file", func(t *testing.T) {
		path := writeSettings(t, `
log:
  level: debug
output:
  format: yaml
request:
  limit_concurrent: false
  max_concurrent_executions: 3
build_service:
  url: http://igor.local
  timeout: 5s
`)
		s, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", s.Log.Level)
		assert.Equal(t, "yaml", s.Output.Format)
		assert.False(t, s.Request.LimitConcurrent)
		assert.Equal(t, 3, s.Request.MaxConcurrentExecutions)
		assert.Equal(t, "http://igor.local", s.BuildService.URL)
		assert.Equal(t, 5*time.Second, s.BuildService.Timeout)
		assert.Equal(t, uint64(5), s.BuildService.MaxRetries)
	})

	t.Run("Should let environment variables win over the file", func(t *testing.T) {
		path := writeSettings(t, "output:\n  format: yaml\n")
		t.Setenv("ORCA_OUTPUT_FORMAT", "json")
		t.Setenv("ORCA_REQUEST_KEEP_WAITING_PIPELINES", "true")
		t.Setenv("ORCA_BUILD_SERVICE_BACKOFF", "250ms")

		s, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "json", s.Output.Format)
		assert.True(t, s.Request.KeepWaitingPipelines)
		assert.Equal(t, 250*time.Millisecond, s.BuildService.Backoff)
	})

	t.Run("Should reject invalid settings", func(t *testing.T) {
		path := writeSettings(t, "output:\n  format: xml\n")

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("Should fail on a missing settings file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}
