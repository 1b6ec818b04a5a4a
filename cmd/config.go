package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Show or change configuration",
		Long: `Show or change configuration stored in config.yaml in the data directory.

With no arguments, lists all keys and their values.
With a key, prints that key's value.
With a key and value, sets the key and saves the file.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			cfg := theApp.cfg
			switch len(args) {
			case 0:
				if JSON() {
					out := map[string]string{}
					for _, key := range config.Keys() {
						v, err := cfg.Get(key)
						if err != nil {
							return PrintJSONError(err)
						}
						out[key] = v
					}
					return PrintJSON(out)
				}
				for _, key := range config.Keys() {
					v, _ := cfg.Get(key)
					fmt.Fprintf(Out(), "%s = %s\n", key, v)
				}
				return nil
			case 1:
				v, err := cfg.Get(args[0])
				if err != nil {
					return PrintJSONError(err)
				}
				if JSON() {
					return PrintJSON(map[string]string{args[0]: v})
				}
				fmt.Fprintln(Out(), v)
				return nil
			default:
				if err := cfg.Set(args[0], args[1]); err != nil {
					return PrintJSONError(err)
				}
				if err := cfg.Save(); err != nil {
					return PrintJSONError(err)
				}
				return PrintJSON(map[string]bool{"saved": true})
			}
		},
	}
}
