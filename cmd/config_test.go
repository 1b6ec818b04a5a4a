package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_ListDefaults(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("config")
	env.contains(out, "limits.max_buttons = 500")
	env.contains(out, "theme = ")
}

func TestConfig_SetAndGet(t *testing.T) {
	env := newTestEnv(t)

	env.run("config", "theme", "dark")

	out := env.run("config", "theme")
	env.equals(out, "dark")

	// Persisted to config.yaml in the data directory.
	data, err := os.ReadFile(filepath.Join(env.dir, "config.yaml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "theme: dark")
}

func TestConfig_UnknownKey(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("config", "no.such.key")
	require.Error(t, err)
	env.contains(out, "unknown config key")
}

func TestConfig_RejectsInvalidValue(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("config", "limits.max_buttons", "0")
	require.Error(t, err)
	env.contains(out, "must be between")

	out, err = env.runErr("config", "theme", "neon")
	require.Error(t, err)
	env.contains(out, "theme must be one of")
}
