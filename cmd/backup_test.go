package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rename", "1", "Exported state")
	path := filepath.Join(env.dir, "backup.json")
	env.run("export", "-f", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Exported state")

	env.run("page", "rename", "1", "Diverged")
	env.run("import", "--force", path)

	out := env.run("ls")
	env.contains(out, "Exported state")
}

func TestExport_DefaultFileName(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("export")
	name := strings.TrimSpace(out)
	require.True(t, strings.HasPrefix(name, "linkapp-backup-"))
	require.True(t, strings.HasSuffix(name, ".json"))

	// Written relative to the working directory.
	_, err := os.Stat(filepath.Join(env.dir, name))
	require.NoError(t, err)
}

func TestImport_NeedsForce(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "backup.json")
	env.run("export", "-f", path)

	out, err := env.runErr("import", path)
	require.Error(t, err)
	env.contains(out, "--force")
}

func TestImport_RejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sections":{}}`), 0o644))

	env.run("page", "rename", "1", "Untouched")
	out, err := env.runErr("import", "--force", path)
	require.Error(t, err)
	env.contains(out, "import")

	out = env.run("ls")
	env.contains(out, "Untouched")
}

func TestImport_MissingFile(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("import", "--force", filepath.Join(env.dir, "nope.json"))
	require.Error(t, err)
	env.contains(out, "reading backup")
}

func TestReset_NeedsForce(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rename", "1", "Custom")

	out, err := env.runErr("reset")
	require.Error(t, err)
	env.contains(out, "--force")

	env.run("reset", "--force")
	out = env.run("ls")
	env.contains(out, "* Page 1: Page 1")
	require.NotContains(t, out, "Custom")
}
