package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moss.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, DefaultPreviewPort, cfg.Preview.Port)
	assert.True(t, cfg.Preview.MetricsEnabled())
	assert.True(t, cfg.Build.ReportEnabled())
}

func TestLoad_FileValuesAndExpansion(t *testing.T) {
	t.Setenv("MOSS_TEST_PORT", "8088")
	path := writeConfig(t, `
log:
  level: DEBUG
  format: json
preview:
  port: ${MOSS_TEST_PORT}
  metrics: false
build:
  report: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, 8088, cfg.Preview.Port)
	assert.False(t, cfg.Preview.MetricsEnabled())
	assert.False(t, cfg.Build.ReportEnabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\npreview:\n  port: 9000\n")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvPreviewPort, "9100")
	t.Setenv(EnvReport, "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, cfg.Log.Level)
	assert.Equal(t, 9100, cfg.Preview.Port)
	assert.False(t, cfg.Build.ReportEnabled())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log: [unclosed"))
		require.Error(t, err)
	})
	t.Run("bad env port", func(t *testing.T) {
		t.Setenv(EnvPreviewPort, "eighty")
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.Error(t, err)
	})
	t.Run("port out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "preview:\n  port: 70000\n"))
		require.Error(t, err)
	})
	t.Run("bad env bool", func(t *testing.T) {
		t.Setenv(EnvMetrics, "maybe")
		_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.Error(t, err)
	})
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MOSS_LOG_FORMAT=json\nMOSS_LOG_LEVEL=debug\n"), 0o600))
	t.Chdir(dir)
	t.Setenv(EnvLogLevel, "error")
	// godotenv sets variables for the whole process; restore afterwards.
	t.Setenv(EnvLogFormat, "")
	require.NoError(t, os.Unsetenv(EnvLogFormat))

	cfg, err := Load(DefaultPath)
	require.NoError(t, err)
	assert.Equal(t, LogLevelError, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, slog.LevelDebug, LogLevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevel("").SlogLevel())
}
