package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/backup"
)

func newExportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to a JSON backup file",
		RunE: func(c *cobra.Command, _ []string) error {
			written, err := backup.Export(c.Context(), theApp.docs, path)
			if err != nil {
				return PrintJSONError(err)
			}
			if JSON() {
				return PrintJSON(map[string]string{"path": written})
			}
			fmt.Fprintln(Out(), written)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "output path (default linkapp-backup-<date>.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a JSON backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if !Force() {
				return PrintJSONError(fmt.Errorf("import replaces all current data; pass --force to continue"))
			}
			if err := backup.Import(c.Context(), theApp.docs, args[0]); err != nil {
				return PrintJSONError(err)
			}
			return PrintJSON(map[string]bool{"imported": true})
		},
	}
}
