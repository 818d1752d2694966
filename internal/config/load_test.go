package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600)
	require.NoError(t, err, "failed to write config.yaml")
}

// TestLoadDefaults verifies defaults apply when there is no config file and
// no environment override.
func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr)
	assert.Equal(t, "@default", cfg.Google.TaskList)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, `
backend: google
log_level: DEBUG
server:
  addr: 127.0.0.1:9090
google:
  task_list: abc123
`)

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, BackendGoogle, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel, "log level should be normalised to lower case")
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "abc123", cfg.Google.TaskList)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "server:\n  addr: 127.0.0.1:9090\n")
	t.Setenv("TASKTRACK_SERVER_ADDR", "0.0.0.0:7070")
	t.Setenv("TASKTRACK_LOG_LEVEL", "error")

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:7070", cfg.Server.Addr)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		envVars map[string]string
	}{
		{
			name: "unknown backend",
			file: "backend: postgres\n",
		},
		{
			name:    "invalid log level",
			envVars: map[string]string{"TASKTRACK_LOG_LEVEL": "chatty"},
		},
		{
			name: "address without port",
			file: "server:\n  addr: localhost\n",
		},
		{
			name: "empty task list",
			file: "google:\n  task_list: \"\"\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.file != "" {
				writeConfigFile(t, dir, tc.file)
			}
			for k, v := range tc.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load(dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "backend: [unterminated\n")

	cfg, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.Nil(t, cfg)
}

func TestDefaultConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := New(dir)

	assert.Equal(t, filepath.Join(dir, "oauth_client.json"), cfg.OAuthClientPath())
	assert.Equal(t, filepath.Join(dir, "token.json"), cfg.TokenPath())
	assert.False(t, cfg.HasOAuthClient())
	assert.False(t, cfg.HasToken())

	require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600))
	assert.True(t, cfg.HasToken())
	require.NoError(t, cfg.RemoveToken())
	assert.False(t, cfg.HasToken())
}
