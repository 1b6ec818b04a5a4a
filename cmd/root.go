// root.go defines the root command and CLI execution entry point.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// noStoreCommands run without opening the data directory.
var noStoreCommands = map[string]bool{
	"guide":      true,
	"help":       true,
	"completion": true,
}

var rootCmd = &cobra.Command{
	Use:   "linkapp",
	Short: "Personal links organiser",
	Long:  `A links workspace: pages of sections of buttons, with named saves, snapshots, a deletion trash, search, and JSON backup.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if !noStoreCommands[topLevelCmdName(cmd)] {
			if _, err := openApp(cmd.Context()); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					cmd.SilenceErrors = true
					cmd.SilenceUsage = true
				}
				return err
			}
		}
		return nil
	},
}

// topLevelCmdName returns the name of the top-level command (direct child
// of root). For "linkapp trash restore 1", returns "trash".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle. Exit code 1
// indicates error.
func Execute() {
	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(
		newLsCmd(),
		newPageCmd(),
		newSectionCmd(),
		newButtonCmd(),
		newFindCmd(),
		newTrashCmd(),
		newExportCmd(),
		newImportCmd(),
		newSessionsCmd(),
		newSaveCmd(),
		newOpenCmd(),
		newSavesCmd(),
		newResetCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newServeCmd(),
	)
}
