// trash.go implements the "linkapp trash" command group. Entries are listed
// newest first and addressed by their 1-based position in that listing.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/history"
	"github.com/angeleecka/linkapp/internal/model"
)

// trashArg converts a newest-first 1-based entry number into the raw
// history index.
func trashArg(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid entry number %q", raw)
	}
	entries := theApp.trash.Entries()
	if n < 1 || n > len(entries) {
		return 0, fmt.Errorf("no trash entry %d", n)
	}
	return len(entries) - n, nil
}

func newTrashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "List and restore deleted buttons and sections",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List deleted items, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			entries := theApp.trash.Entries()
			if JSON() {
				type entryJSON struct {
					Number    int    `json:"number"`
					Type      string `json:"type"`
					Name      string `json:"name"`
					Page      string `json:"page"`
					Section   string `json:"section"`
					DeletedAt string `json:"deletedAt"`
				}
				out := make([]entryJSON, 0, len(entries))
				for i := len(entries) - 1; i >= 0; i-- {
					e := entries[i]
					name := e.Name
					if e.Type == model.EntrySection {
						name = e.SectionName
					}
					out = append(out, entryJSON{
						Number:    len(entries) - i,
						Type:      e.Type,
						Name:      name,
						Page:      e.PageName,
						Section:   e.SectionName,
						DeletedAt: e.DeletedAt,
					})
				}
				return PrintJSON(out)
			}
			if len(entries) == 0 {
				fmt.Fprintln(Out(), "Trash is empty.")
				return nil
			}
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				switch e.Type {
				case model.EntrySection:
					fmt.Fprintf(Out(), "%3d  section %q (%d buttons) from %s, deleted %s\n",
						len(entries)-i, e.SectionName, len(e.Buttons), e.PageName, e.DeletedAt)
				default:
					fmt.Fprintf(Out(), "%3d  button %q -> %s from %s / %s, deleted %s\n",
						len(entries)-i, e.Name, e.Link, e.PageName, e.SectionName, e.DeletedAt)
				}
			}
			return nil
		},
	}

	var recreate, fallback bool
	restore := &cobra.Command{
		Use:   "restore <number>",
		Short: "Restore a deleted item",
		Long: `Restore a deleted item by its number from "trash ls".

When the item's original page or section no longer exists, --fallback
(the default) places it on a catch-all "Restored" page, while --recreate
rebuilds the original page and section first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			idx, err := trashArg(args[0])
			if err != nil {
				return PrintJSONError(err)
			}
			policy := history.PolicyFallback
			if recreate {
				policy = history.PolicyRecreate
			}
			if _, err := theApp.trash.Restore(c.Context(), idx, policy); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"restored": true})
		},
	}
	restore.Flags().BoolVar(&recreate, "recreate", false, "rebuild the original page and section if missing")
	restore.Flags().BoolVar(&fallback, "fallback", false, "place the item on a catch-all Restored page if its home is missing (default)")
	restore.MarkFlagsMutuallyExclusive("recreate", "fallback")

	rm := &cobra.Command{
		Use:   "rm <number>",
		Short: "Remove a single trash entry permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			idx, err := trashArg(args[0])
			if err != nil {
				return PrintJSONError(err)
			}
			if err := theApp.trash.Remove(c.Context(), idx); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"removed": true})
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the trash permanently",
		RunE: func(c *cobra.Command, _ []string) error {
			if !Force() {
				return PrintJSONError(fmt.Errorf("refusing to clear trash without --force"))
			}
			if err := theApp.trash.Clear(c.Context()); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"cleared": true})
		},
	}

	cmd.AddCommand(ls, restore, rm, clear)
	return cmd
}
