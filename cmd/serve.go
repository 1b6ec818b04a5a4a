package cmd

import (
	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server over stdio, exposing pages,
search, sessions and export as tools for LLM clients.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(mcp.Deps{
				Docs:     theApp.docs,
				Registry: theApp.reg,
				Saves:    theApp.saves,
				Editor:   theApp.editor,
			})
		},
	}
}
