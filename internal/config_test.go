package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "novalite", cfg.AppName)
	assert.Equal(t, "novalite> ", cfg.Shell.Prompt)
	assert.Equal(t, 2000, cfg.Shell.HistoryMax)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "novalite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: reader
log:
  level: debug
shell:
  prompt: "db> "
  history_file: /tmp/hist
  history_max: 10
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "reader", cfg.AppName)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, "db> ", cfg.Shell.Prompt)
	assert.Equal(t, "/tmp/hist", cfg.Shell.HistoryFile)
	assert.Equal(t, 10, cfg.Shell.HistoryMax)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("NOVALITE_LOG_LEVEL", "error")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.LogLevel())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLogLevel_Fallback(t *testing.T) {
	cfg := &NovaLiteConfig{}
	cfg.Log.Level = "loud"
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}
