package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSection_Add(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("section", "add")
	env.contains(out, "section-")

	out = env.run("ls")
	require.Equal(t, 2, strings.Count(out, "New Section"))
}

func TestSection_Rename(t *testing.T) {
	env := newTestEnv(t)

	env.run("section", "rename", "section-1", "Tools")
	out := env.run("ls")
	env.contains(out, "[section-1] Tools")
}

func TestSection_RenameBlankRefused(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("section", "rename", "section-1", "   ")
	require.Error(t, err)
	env.contains(out, "Section name cannot be empty!")
}

func TestSection_RenameUnknown(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("section", "rename", "section-nope", "Tools")
	require.Error(t, err)
	env.contains(out, "Section not found on current page!")
}

func TestSection_Move(t *testing.T) {
	env := newTestEnv(t)

	env.run("section", "add")
	env.run("section", "rename", "section-1", "Second now")

	env.run("section", "move", "section-1", "2")

	out := env.run("ls")
	first := strings.Index(out, "New Section")
	second := strings.Index(out, "Second now")
	require.Greater(t, second, first)
}

func TestSection_CollapseToggles(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("section", "collapse", "section-1")
	env.contains(out, "collapsed")

	out = env.run("ls")
	env.contains(out, "(collapsed)")

	out = env.run("section", "collapse", "section-1")
	env.contains(out, "expanded")
}

func TestSection_RmGoesToTrash(t *testing.T) {
	env := newTestEnv(t)

	env.run("section", "rm", "section-1")

	out := env.run("ls")
	require.NotContains(t, out, "section-1")

	out = env.run("trash", "ls")
	env.contains(out, `section "New Section"`)
}
