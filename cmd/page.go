// page.go implements the "linkapp page" command group. Pages are addressed
// by their 1-based position as shown by ls.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// pageArg parses a 1-based page number into a 0-based index.
func pageArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", arg)
	}
	return n - 1, nil
}

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Add a new page and switch to it",
			RunE: func(c *cobra.Command, _ []string) error {
				page, err := theApp.editor.AddPage(c.Context())
				if err != nil {
					return PrintJSONError(err)
				}
				if JSON() {
					doc := theApp.docs.Get()
					return PrintJSON(pageToJSON(doc, doc.CurrentPageIndex))
				}
				fmt.Fprintf(Out(), "%s (%s)\n", page.Name, page.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <number>",
			Short: "Switch the current page",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				idx, err := pageArg(args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if err := theApp.editor.SetCurrentPage(c.Context(), idx); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]int{"current": idx + 1})
			},
		},
		&cobra.Command{
			Use:   "rename <number> <name>",
			Short: "Rename a page",
			Args:  cobra.ExactArgs(2),
			RunE: func(c *cobra.Command, args []string) error {
				idx, err := pageArg(args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if err := theApp.editor.RenamePage(c.Context(), idx, args[1]); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]string{"renamed": args[1]})
			},
		},
		&cobra.Command{
			Use:   "rm <number>",
			Short: "Delete a page (the last page cannot be deleted)",
			Args:  cobra.ExactArgs(1),
			RunE: func(c *cobra.Command, args []string) error {
				idx, err := pageArg(args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if err := theApp.editor.DeletePage(c.Context(), idx); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]bool{"deleted": true})
			},
		},
	)
	return cmd
}
