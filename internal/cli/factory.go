package cli

import (
	"context"
	"fmt"
	"log/slog"

	"tasktrack/internal/backend/googletasks"
	"tasktrack/internal/config"
	"tasktrack/internal/service"
)

// CredentialsError reports missing Google credential files.
type CredentialsError struct {
	Reason string
}

func (e *CredentialsError) Error() string { return e.Reason }

// DefaultFactory builds the service for cfg.Backend.
//
// The memory backend uses the process-wide service.Default, so tasks live
// only as long as the process (useful with serve). The google backend needs
// oauth_client.json and token.json in the config directory.
func DefaultFactory(ctx context.Context, cfg *config.Config) (service.Service, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return service.Default(), nil

	case config.BackendGoogle:
		if !cfg.HasOAuthClient() {
			return nil, &CredentialsError{Reason: fmt.Sprintf("oauth_client.json not found in %s", cfg.Dir)}
		}
		if !cfg.HasToken() {
			return nil, &CredentialsError{Reason: "not logged in (run: tasktrack login)"}
		}
		st, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return service.New(st, slog.Default()), nil

	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
