// button.go implements the "linkapp button" command group. Buttons are the
// links themselves; they live in sections and are addressed by id.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newButtonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "button",
		Short: "Manage link buttons",
	}

	var text, href string

	add := &cobra.Command{
		Use:   "add <section-id>",
		Short: "Add a button to a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			b, err := theApp.editor.AddButton(c.Context(), args[0])
			if err != nil {
				return PrintJSONError(err)
			}
			if text != "" || href != "" {
				if err := theApp.editor.EditButton(c.Context(), args[0], b.ID, text, href); err != nil {
					return PrintJSONError(err)
				}
			}
			if JSON() {
				return PrintJSON(map[string]string{"id": b.ID})
			}
			fmt.Fprintln(Out(), b.ID)
			return nil
		},
	}
	add.Flags().StringVar(&text, "text", "", "button label")
	add.Flags().StringVar(&href, "href", "", "button link target")

	var editText, editHref string
	edit := &cobra.Command{
		Use:   "edit <section-id> <button-id>",
		Short: "Edit a button's label or link",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if err := theApp.editor.EditButton(c.Context(), args[0], args[1], editText, editHref); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"saved": true})
		},
	}
	edit.Flags().StringVar(&editText, "text", "", "new button label")
	edit.Flags().StringVar(&editHref, "href", "", "new button link target")

	move := &cobra.Command{
		Use:   "move <section-id> <button-id> <to-section-id> <position>",
		Short: "Move a button to a 1-based position in another section",
		Args:  cobra.ExactArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[3])
			if err != nil {
				return PrintJSONError(fmt.Errorf("invalid position %q", args[3]))
			}
			if err := theApp.editor.MoveButton(c.Context(), args[0], args[1], args[2], pos-1); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"moved": true})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <section-id> <button-id>",
		Short: "Delete a button (recoverable via trash)",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if err := theApp.trash.DeleteButton(c.Context(), args[0], args[1]); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"deleted": true})
		},
	}

	cmd.AddCommand(add, edit, move, rm)
	return cmd
}
