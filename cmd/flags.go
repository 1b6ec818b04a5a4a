// flags.go defines global CLI flags and accessors for shared state.
//
// Design: Flags are package-level variables bound to the root command.
// Commands read them through accessors rather than touching the variables,
// and the output writer is swappable so tests can capture output.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var validOutputFormats = []string{"json"}

var (
	output string
	force  bool
	dir    string
)

// out is the output writer for commands. Defaults to os.Stdout.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Force returns the force flag value.
func Force() bool { return force }

// Dir returns the explicit data directory if set.
// Priority: --dir flag > LINKAPP_DIR env var (resolved in config) > ~/.linkapp.
func Dir() string { return dir }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if !JSON() {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints an error in JSON format if output is JSON.
// Returns nil if the error was printed (suppressing cobra's duplicate), or
// the original error if not.
func PrintJSONError(err error) error {
	if !JSON() || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().BoolVar(&force, "force", false, "Skip confirmations")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Data directory (default: LINKAPP_DIR or ~/.linkapp)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
