// sessions.go implements the "linkapp sessions" command group: the full
// session registry with snapshots, workspaces, soft delete and diffing.

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/angeleecka/linkapp/internal/diff"
	"github.com/angeleecka/linkapp/internal/model"
)

type sessionJSON struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Deleted   bool   `json:"deleted,omitempty"`
}

func sessionToJSON(s *model.Session) sessionJSON {
	return sessionJSON{
		ID:        s.ID,
		Kind:      s.Kind,
		Name:      s.Name,
		CreatedAt: millisStamp(s.CreatedAt),
		UpdatedAt: millisStamp(s.UpdatedAt),
		Deleted:   s.Deleted(),
	}
}

func millisStamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

func printSessions(sessions []*model.Session) error {
	if JSON() {
		out := make([]sessionJSON, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, sessionToJSON(s))
		}
		return PrintJSON(out)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(Out(), "No sessions.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(Out(), "%s  %-9s  %s  (updated %s)\n", s.ID, s.Kind, s.Name, millisStamp(s.UpdatedAt))
	}
	return nil
}

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved sessions and snapshots",
	}

	var snapshot bool
	save := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current data as a workspace or snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			kind := model.KindWorkspace
			if snapshot {
				kind = model.KindSnapshot
			}
			id := theApp.reg.Save(c.Context(), name, kind)
			if JSON() {
				return PrintJSON(map[string]string{"id": id})
			}
			fmt.Fprintln(Out(), id)
			return nil
		},
	}
	save.Flags().BoolVar(&snapshot, "snapshot", false, "save as a snapshot instead of a workspace")

	var kind string
	var all bool
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List sessions, most recent first",
		RunE: func(c *cobra.Command, _ []string) error {
			if all {
				return printSessions(theApp.reg.List(c.Context()))
			}
			if kind == "" {
				kind = model.KindWorkspace
			}
			return printSessions(theApp.reg.ListByKind(c.Context(), kind))
		},
	}
	ls.Flags().StringVar(&kind, "kind", "", "filter by kind: workspace or snapshot (default workspace)")
	ls.Flags().BoolVar(&all, "all", false, "include soft-deleted sessions of every kind")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if !theApp.reg.Rename(c.Context(), args[0], args[1]) {
				return PrintJSONError(fmt.Errorf("session %q not found", args[0]))
			}
			return PrintJSON(map[string]bool{"renamed": true})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Move a session to the trash (soft delete)",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !theApp.reg.Delete(c.Context(), args[0]) {
				return PrintJSONError(fmt.Errorf("session %q not found", args[0]))
			}
			return PrintJSON(map[string]bool{"deleted": true})
		},
	}

	load := &cobra.Command{
		Use:   "load <id>",
		Short: "Replace current data with a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !Force() {
				return PrintJSONError(fmt.Errorf("loading replaces all current data; pass --force to continue"))
			}
			if !theApp.reg.Load(c.Context(), args[0]) {
				return PrintJSONError(fmt.Errorf("session %q not found", args[0]))
			}
			return PrintJSON(map[string]bool{"loaded": true})
		},
	}

	var restoreName string
	restore := &cobra.Command{
		Use:   "restore <id>",
		Short: "Copy a snapshot into a new workspace and load it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			id := theApp.reg.RestoreToWorkspace(c.Context(), args[0], restoreName)
			if id == "" {
				return PrintJSONError(fmt.Errorf("session %q not found", args[0]))
			}
			if JSON() {
				return PrintJSON(map[string]string{"id": id})
			}
			fmt.Fprintln(Out(), id)
			return nil
		},
	}
	restore.Flags().StringVar(&restoreName, "name", "", "name for the restored workspace")

	diffCmd := &cobra.Command{
		Use:   "diff <id> <id>",
		Short: "Show a unified diff between two sessions",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			old := theApp.reg.Get(c.Context(), args[0])
			if old == nil {
				return PrintJSONError(fmt.Errorf("session %q not found", args[0]))
			}
			cur := theApp.reg.Get(c.Context(), args[1])
			if cur == nil {
				return PrintJSONError(fmt.Errorf("session %q not found", args[1]))
			}
			res, err := diff.Sessions(old, cur)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]string{"diff": res.Format(false)})
			}
			colour := term.IsTerminal(int(os.Stdout.Fd()))
			fmt.Fprint(Out(), res.Format(colour))
			return nil
		},
	}

	cmd.AddCommand(save, ls, rename, rm, load, restore, diffCmd)
	return cmd
}
