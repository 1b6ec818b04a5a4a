// Package mcp implements the Model Context Protocol server, exposing the
// links workspace to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angeleecka/linkapp/internal/edit"
	"github.com/angeleecka/linkapp/internal/session"
	"github.com/angeleecka/linkapp/internal/storage"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Deps are the core services the MCP tools operate on.
type Deps struct {
	Docs     *storage.Service
	Registry *session.Registry
	Saves    *session.Saves
	Editor   *edit.Editor
}

// Serve starts the MCP server over stdio. Tool failures are returned as
// tool-level error results, never as transport errors, so a bad call can
// not take the server down.
func Serve(deps Deps) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{deps: deps}

	s := server.NewMCPServer(
		"linkapp",
		Version,
		server.WithToolCapabilities(true),
	)
	registerTools(s, h)

	slog.Info("linkapp MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the core services.
type handlers struct {
	deps Deps
}

// registerTools exposes the workspace operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("linkapp_pages",
			mcp.WithDescription("List all pages with their sections and buttons"),
		),
		h.listPages,
	)

	s.AddTool(
		mcp.NewTool("linkapp_find",
			mcp.WithDescription("Find buttons by text or link, case-insensitive, across all pages"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Substring to search for")),
		),
		h.findButtons,
	)

	s.AddTool(
		mcp.NewTool("linkapp_add_button",
			mcp.WithDescription("Add a button to a section on the current page"),
			mcp.WithString("section_id", mcp.Required(), mcp.Description("Section id on the current page")),
			mcp.WithString("text", mcp.Description("Button label (default: New button)")),
			mcp.WithString("href", mcp.Description("Button link")),
		),
		h.addButton,
	)

	s.AddTool(
		mcp.NewTool("linkapp_sessions",
			mcp.WithDescription("List saved sessions (workspaces and snapshots)"),
			mcp.WithString("kind", mcp.Description("Filter: 'workspace' or 'snapshot' (default: all live sessions)")),
		),
		h.listSessions,
	)

	s.AddTool(
		mcp.NewTool("linkapp_save",
			mcp.WithDescription("Save the current workspace under a name (creates or overwrites)"),
			mcp.WithString("name", mcp.Description("Save name; empty re-saves under the active name")),
		),
		h.saveWorkspace,
	)

	s.AddTool(
		mcp.NewTool("linkapp_export",
			mcp.WithDescription("Export the whole workspace as pretty-printed JSON"),
		),
		h.exportData,
	)
}
