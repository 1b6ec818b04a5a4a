package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestButton_AddWithTextAndHref(t *testing.T) {
	env := newTestEnv(t)

	id := env.addButton("section-1", "Mail", "https://mail.example.com")

	out := env.run("ls")
	env.contains(out, id+"  Mail -> https://mail.example.com")
}

func TestButton_AddDefaults(t *testing.T) {
	env := newTestEnv(t)

	env.run("button", "add", "section-1")

	out := env.run("ls")
	require.Equal(t, 2, strings.Count(out, "New button"))
}

func TestButton_AddUnknownSection(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("button", "add", "section-nope")
	require.Error(t, err)
	env.contains(out, "Section not found on current page!")
}

func TestButton_Edit(t *testing.T) {
	env := newTestEnv(t)

	env.run("button", "edit", "section-1", "button-1", "--text", "Docs", "--href", "https://docs.example.com")

	out := env.run("ls")
	env.contains(out, "button-1  Docs -> https://docs.example.com")
}

func TestButton_EditBlankTextRefused(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("button", "edit", "section-1", "button-1", "--text", "  ")
	require.Error(t, err)
	env.contains(out, "Button name cannot be empty!")
}

func TestButton_EditUnknownButton(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.runErr("button", "edit", "section-1", "button-nope", "--text", "Docs")
	require.Error(t, err)
	env.contains(out, "Button not found!")
}

func TestButton_MoveAcrossSections(t *testing.T) {
	env := newTestEnv(t)

	out := env.run("section", "add")
	var target string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "section-") {
			target = line
		}
	}
	require.NotEmpty(t, target)

	env.run("button", "move", "section-1", "button-1", target, "1")

	out = env.run("ls")
	// button-1 now renders under the new section, after its header line.
	sectionPos := strings.Index(out, "["+target+"]")
	buttonPos := strings.Index(out, "button-1")
	require.Greater(t, buttonPos, sectionPos)
}

func TestButton_RmGoesToTrash(t *testing.T) {
	env := newTestEnv(t)

	env.run("button", "rm", "section-1", "button-1")

	out := env.run("ls")
	require.NotContains(t, out, "button-1")

	out = env.run("trash", "ls")
	env.contains(out, `button "New button"`)
}

func TestButton_CapFromConfig(t *testing.T) {
	env := newTestEnv(t)

	env.run("config", "limits.max_buttons", "1")

	out, err := env.runErr("button", "add", "section-1")
	require.Error(t, err)
	env.contains(out, "Maximum 1 buttons per section!")
}
