package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset all pages and history to the defaults",
		RunE: func(c *cobra.Command, _ []string) error {
			if !Force() {
				return PrintJSONError(fmt.Errorf("reset discards all current data; pass --force to continue"))
			}
			theApp.docs.Reset(c.Context())
			return PrintJSON(map[string]bool{"reset": true})
		},
	}
}
