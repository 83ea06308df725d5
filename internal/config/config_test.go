package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.appointy.com/guild/internal/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Playground)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "mem://{collection}/id", cfg.Store.URL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeFile(t, "guild.yaml", `
addr: ":9000"
playground: false
shutdown_timeout: 3s
log:
  level: debug
  format: json
`)
	t.Setenv("GUILD_ADDR", ":9100")
	t.Setenv("GUILD_STORE_URL", "mem://{collection}-test/id")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr, "environment overrides file")
	assert.False(t, cfg.Playground)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "mem://{collection}-test/id", cfg.Store.URL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvFile(t *testing.T) {
	t.Chdir(t.TempDir())

	env := writeFile(t, "test.env", "GUILD_LOG_LEVEL=warn\n")
	t.Cleanup(func() { os.Unsetenv("GUILD_LOG_LEVEL") })

	cfg, err := config.Load("", env)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = config.Load("", filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	for name, env := range map[string][2]string{
		"store url":  {"GUILD_STORE_URL", "mem://projects/id"},
		"log level":  {"GUILD_LOG_LEVEL", "loud"},
		"log format": {"GUILD_LOG_FORMAT", "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := config.Load("")
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "value", line["key"])
}
