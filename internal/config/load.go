package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TASKTRACK_SERVER_ADDR.
const EnvPrefix = "TASKTRACK"

const (
	defaultBackend    = BackendMemory
	defaultLogLevel   = "warn"
	defaultServerAddr = "localhost:8080"
	defaultTaskList   = "@default"
)

// Load reads configuration for the given directory (empty means the default
// directory). Precedence, lowest first: defaults, config.yaml in the
// directory, TASKTRACK_* environment variables.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	cfg := New(configDir)

	v := viper.New()
	v.SetDefault("backend", defaultBackend)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("server.addr", defaultServerAddr)
	v.SetDefault("google.task_list", defaultTaskList)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
