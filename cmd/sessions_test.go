package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sessionID extracts the sess- id line from command output.
func sessionID(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "sess-") {
			return line
		}
	}
	t.Fatalf("no session id in output:\n%s", out)
	return ""
}

func TestSessions_SaveAndList(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("sessions", "save", "before-cleanup")
	id := sessionID(t, out)

	out = env.run("sessions", "ls")
	env.contains(out, id)
	env.contains(out, "workspace")
	env.contains(out, "before-cleanup")
}

func TestSessions_SaveSnapshot(t *testing.T) {
	env := newTestEnv(t)

	env.run("sessions", "save", "checkpoint", "--snapshot")

	out := env.run("sessions", "ls", "--kind", "snapshot")
	env.contains(out, "checkpoint")

	// Snapshots are not listed with workspaces.
	out = env.run("sessions", "ls")
	require.NotContains(t, out, "checkpoint")
}

func TestSessions_LsDefaultShowsWorkspaces(t *testing.T) {
	env := newTestEnv(t)

	env.run("sessions", "save", "my workspace")
	env.run("sessions", "save", "my snapshot", "--snapshot")

	// Bare ls lists workspaces.
	out := env.run("sessions", "ls")
	env.contains(out, "my workspace")
	require.NotContains(t, out, "my snapshot")

	out = env.run("sessions", "ls", "--kind", "snapshot")
	env.contains(out, "my snapshot")
	require.NotContains(t, out, "my workspace")
}

func TestSessions_SaveDefaultName(t *testing.T) {
	env := newTestEnv(t)

	env.run("sessions", "save", "--snapshot")

	out := env.run("sessions", "ls", "--kind", "snapshot")
	env.contains(out, "Snapshot ")
}

func TestSessions_Rename(t *testing.T) {
	env := newTestEnv(t)

	id := sessionID(t, env.run("sessions", "save", "draft"))
	env.run("sessions", "rename", id, "final")

	out := env.run("sessions", "ls")
	env.contains(out, "final")
	require.NotContains(t, out, "draft")
}

func TestSessions_RenameUnknown(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("sessions", "rename", "sess-0", "anything")
	require.Error(t, err)
	env.contains(out, "not found")
}

func TestSessions_RmSoftDeletes(t *testing.T) {
	env := newTestEnv(t)

	id := sessionID(t, env.run("sessions", "save", "doomed"))
	env.run("sessions", "rm", id)

	out := env.run("sessions", "ls")
	require.NotContains(t, out, "doomed")

	// Still present with --all.
	out = env.run("sessions", "ls", "--all")
	env.contains(out, "doomed")
}

func TestSessions_LoadReplacesData(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rename", "1", "Saved state")
	id := sessionID(t, env.run("sessions", "save", "golden"))

	env.run("page", "rename", "1", "Changed since")
	env.run("sessions", "load", "--force", id)

	out := env.run("ls")
	env.contains(out, "Saved state")
	require.NotContains(t, out, "Changed since")
}

func TestSessions_LoadNeedsForce(t *testing.T) {
	env := newTestEnv(t)

	id := sessionID(t, env.run("sessions", "save", "golden"))

	out, err := env.runErr("sessions", "load", id)
	require.Error(t, err)
	env.contains(out, "--force")
}

func TestSessions_RestoreSnapshotToWorkspace(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rename", "1", "Snapshot state")
	id := sessionID(t, env.run("sessions", "save", "checkpoint", "--snapshot"))

	env.run("page", "rename", "1", "Diverged")
	env.run("sessions", "restore", id, "--name", "checkpoint back")

	out := env.run("ls")
	env.contains(out, "Snapshot state")

	out = env.run("sessions", "ls")
	env.contains(out, "checkpoint back")
}

func TestSessions_Diff(t *testing.T) {
	env := newTestEnv(t)

	a := sessionID(t, env.run("sessions", "save", "before"))
	env.run("page", "rename", "1", "Renamed page")
	b := sessionID(t, env.run("sessions", "save", "after"))

	out := env.run("sessions", "diff", a, b)
	env.contains(out, "--- before")
	env.contains(out, "+++ after")
	env.contains(out, "+")
	env.contains(out, "Renamed page")
}

func TestSessions_DiffUnknownID(t *testing.T) {
	env := newTestEnv(t)

	a := sessionID(t, env.run("sessions", "save", "only"))

	out, err := env.runErr("sessions", "diff", a, "sess-0")
	require.Error(t, err)
	env.contains(out, "not found")
}
