package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPage_AddSwitchesToNewPage(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("page", "add")
	env.contains(out, "Page 4")

	out = env.run("ls")
	env.contains(out, "* Page 4: Page 4")
}

func TestPage_Use(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "use", "2")
	out := env.run("ls")
	env.contains(out, "* Page 2: Page 2")
}

func TestPage_UseOutOfRange(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("page", "use", "9")
	require.Error(t, err)
	env.contains(out, "Page not found!")
}

func TestPage_Rename(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rename", "1", "Work")
	out := env.run("ls")
	env.contains(out, "* Page 1: Work")
}

func TestPage_Rm(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rm", "3")
	out := env.run("ls", "--all")
	env.contains(out, "Page 1")
	env.contains(out, "Page 2")
	require.NotContains(t, out, "Page 3")
}

func TestPage_RmLastPageRefused(t *testing.T) {
	env := newTestEnv(t)

	env.run("page", "rm", "3")
	env.run("page", "rm", "2")

	out, err := env.runErr("page", "rm", "1")
	require.Error(t, err)
	env.contains(out, "Cannot delete the last page!")
}
