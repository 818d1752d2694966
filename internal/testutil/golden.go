package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateGoldenEnv names the environment variable that rewrites golden files
// instead of comparing against them.
const UpdateGoldenEnv = "UPDATE_GOLDEN"

// Golden compares got with testdata/<name>.golden in the calling package.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")

	if os.Getenv(UpdateGoldenEnv) != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "failed to create testdata dir")
		require.NoError(t, os.WriteFile(path, got, 0644), "failed to update golden file")
		return
	}

	want, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read golden file %s (set %s=1 to create it)", path, UpdateGoldenEnv)

	// Strings give a readable diff on mismatch.
	assert.Equal(t, string(want), string(got), "output mismatch for %s", name)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}
