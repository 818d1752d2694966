// Package config handles the configuration directory, the config file and
// environment overrides.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// ConfigFileName is the config file base name (config.yaml).
	ConfigFileName = "config"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Backend names accepted in the backend setting.
const (
	BackendMemory = "memory"
	BackendGoogle = "google"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	// Backend selects the task store.
	Backend string `mapstructure:"backend" validate:"required,oneof=memory google"`

	// LogLevel is the slog level name.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	Server ServerConfig `mapstructure:"server"`
	Google GoogleConfig `mapstructure:"google"`
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required,hostname_port"`
}

// GoogleConfig contains Google Tasks backend settings.
type GoogleConfig struct {
	// TaskList is the Google Tasks list id that holds the tasks.
	TaskList string `mapstructure:"task_list" validate:"required"`
}

// New creates a Config with defaults and the default or specified config
// directory. It does not read the config file; see Load.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
func New(configDir string) *Config {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Backend:  defaultBackend,
		LogLevel: defaultLogLevel,
		Server:   ServerConfig{Addr: defaultServerAddr},
		Google:   GoogleConfig{TaskList: defaultTaskList},
	}
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory with mode 0700 if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
