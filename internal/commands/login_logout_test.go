package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktrack/internal/commands"
	"tasktrack/internal/config"
	"tasktrack/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
// and explains how to get one.
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, code := runCommandWithConfig(t, &commands.LoginCmd{}, &config.Config{Dir: dir}, nil)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in "+dir) {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if !strings.Contains(stderr, "tasktrack login") {
		t.Error("expected instructions to mention 'tasktrack login'")
	}
}

// TestLoginCommand_UnusableToken verifies login does not short-circuit when
// the stored token cannot be used.
func TestLoginCommand_UnusableToken(t *testing.T) {
	testCases := []struct {
		name  string
		token string
	}{
		{name: "corrupt", token: `{not json`},
		{name: "no refresh token", token: `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfigFile(t, dir, config.OAuthClientFile, testOAuthClient)
			writeConfigFile(t, dir, config.TokenFile, tc.token)

			// Cancelled up front so the command never waits for a callback.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			var outBuf, errBuf bytes.Buffer
			code := (&commands.LoginCmd{}).Run(ctx, &config.Config{Dir: dir}, nil, nil, &outBuf, &errBuf)

			if outBuf.String() == "already logged in\n" {
				t.Error("should not say 'already logged in' with an unusable token")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
		})
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout only removes token.json
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := t.TempDir()
	oauthPath := writeConfigFile(t, dir, config.OAuthClientFile, testOAuthClient)
	tokenPath := writeConfigFile(t, dir, config.TokenFile, `{"access_token":"test","refresh_token":"test"}`)
	configPath := writeConfigFile(t, dir, "config.yaml", "backend: google\n")

	stdout, stderr, code := runCommandWithConfig(t, &commands.LogoutCmd{}, &config.Config{Dir: dir}, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	for _, kept := range []string{oauthPath, configPath} {
		if _, err := os.Stat(kept); err != nil {
			t.Errorf("%s should NOT have been deleted", filepath.Base(kept))
		}
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	testCases := []struct {
		name     string
		quiet    bool
		expected string
	}{
		{name: "normal", quiet: false, expected: "not logged in\n"},
		{name: "quiet", quiet: true, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Dir: t.TempDir(), Quiet: tc.quiet}
			stdout, stderr, code := runCommandWithConfig(t, &commands.LogoutCmd{}, cfg, nil)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if stdout != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, stdout)
			}
		})
	}
}
