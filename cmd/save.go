// save.go, open.go semantics: named saves are workspaces addressed by name,
// with one active name remembered between runs.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save current data under a name (or re-save the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ok := false
			if len(args) == 1 {
				ok = theApp.saves.Upsert(c.Context(), args[0])
			} else {
				ok = theApp.saves.SaveActive(c.Context())
			}
			if !ok {
				return PrintJSONError(fmt.Errorf("nothing saved: give a name or open a save first"))
			}
			return PrintJSON(map[string]bool{"saved": true})
		},
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a named save, replacing current data",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !theApp.saves.OpenByName(c.Context(), args[0]) {
				return PrintJSONError(fmt.Errorf("no save named %q", args[0]))
			}
			return PrintJSON(map[string]bool{"opened": true})
		},
	}
}

func newSavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List named saves",
		RunE: func(c *cobra.Command, _ []string) error {
			sessions := theApp.saves.List(c.Context())
			if !JSON() {
				active := theApp.saves.ActiveName(c.Context())
				if active != "" {
					fmt.Fprintf(Out(), "Active: %s\n", active)
				}
			}
			return printSessions(sessions)
		},
	}
}
