// section.go implements the "linkapp section" command group. Sections are
// addressed by id on the current page; deletion goes through the trash.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage sections on the current page",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Add a new section",
			RunE: func(c *cobra.Command, _ []string) error {
				id, err := theApp.editor.AddSection(c.Context())
				if err != nil {
					return PrintJSONError(err)
				}
				if JSON() {
					return PrintJSON(map[string]string{"id": id})
				}
				fmt.Fprintln(Out(), id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <section-id> <title>",
			Short: "Rename a section",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				if err := theApp.editor.RenameSection(c.Context(), args[0], args[1]); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]string{"renamed": args[1]})
			},
		},
		&cobra.Command{
			Use:   "move <section-id> <position>",
			Short: "Move a section to a 1-based position in the page order",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				pos, err := strconv.Atoi(args[1])
				if err != nil {
					return PrintJSONError(fmt.Errorf("invalid position %q", args[1]))
				}
				if err := theApp.editor.MoveSection(c.Context(), args[0], pos-1); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]bool{"moved": true})
			},
		},
		&cobra.Command{
			Use:   "collapse <section-id>",
			Short: "Toggle a section's collapsed state",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				collapsed, err := theApp.editor.ToggleCollapsed(c.Context(), args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if JSON() {
					return PrintJSON(map[string]bool{"collapsed": collapsed})
				}
				if collapsed {
					fmt.Fprintln(Out(), "collapsed")
				} else {
					fmt.Fprintln(Out(), "expanded")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <section-id>",
			Short: "Delete a section (recoverable via trash)",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				if err := theApp.trash.DeleteSection(c.Context(), args[0]); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]bool{"deleted": true})
			},
		},
	)
	return cmd
}
