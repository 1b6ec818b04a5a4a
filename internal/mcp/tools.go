// tools.go implements the MCP tool handlers. Results are pretty-printed
// JSON because LLMs parse formatted output more reliably than compact.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/search"
)

// getString extracts an optional string parameter, returning def when the
// parameter is missing or not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// jsonResult serialises v as pretty JSON wrapped in an MCP text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// pageJSON is the tool-facing shape of a page.
type pageJSON struct {
	Index    int           `json:"index"`
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Current  bool          `json:"current"`
	Sections []sectionJSON `json:"sections"`
}

type sectionJSON struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Buttons []*model.Button `json:"buttons"`
}

// listPages handles linkapp_pages tool calls.
func (h *handlers) listPages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := h.deps.Docs.Get()

	pages := make([]pageJSON, 0, len(doc.Pages))
	for i, p := range doc.Pages {
		pj := pageJSON{
			Index:    i,
			ID:       p.ID,
			Name:     p.Name,
			Current:  i == doc.CurrentPageIndex,
			Sections: make([]sectionJSON, 0, len(p.SectionsOrder)),
		}
		for _, sid := range p.SectionsOrder {
			if s := p.Sections[sid]; s != nil {
				pj.Sections = append(pj.Sections, sectionJSON{ID: sid, Title: s.Text, Buttons: s.Buttons})
			}
		}
		pages = append(pages, pj)
	}

	log.Event("mcp:pages", "list").Detail("count", len(pages)).Write(nil)
	return jsonResult(pages)
}

// findButtons handles linkapp_find tool calls.
func (h *handlers) findButtons(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}

	matches := search.Find(h.deps.Docs.Get(), query)
	log.Event("mcp:find", "search").Detail("query", query).Detail("count", len(matches)).Write(nil)

	type matchJSON struct {
		Page    string        `json:"page"`
		Section string        `json:"section"`
		Button  *model.Button `json:"button"`
	}
	out := make([]matchJSON, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchJSON{Page: m.PageName, Section: m.SectionName, Button: m.Button})
	}
	return jsonResult(out)
}

// addButton handles linkapp_add_button tool calls.
func (h *handlers) addButton(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sectionID, err := req.RequireString("section_id")
	if err != nil {
		return mcp.NewToolResultError("section_id is required"), nil //nolint:nilerr
	}

	btn, err := h.deps.Editor.AddButton(ctx, sectionID)
	log.Event("mcp:add-button", "add").Name(sectionID).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if text := getString(req, "text", ""); text != "" {
		if err := h.deps.Editor.EditButton(ctx, sectionID, btn.ID, text, getString(req, "href", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return jsonResult(h.deps.Docs.Get().CurrentPage().Sections[sectionID].Buttons)
}

// listSessions handles linkapp_sessions tool calls.
func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sessions []*model.Session
	switch kind := getString(req, "kind", ""); kind {
	case model.KindWorkspace, model.KindSnapshot:
		sessions = h.deps.Registry.ListByKind(ctx, kind)
	case "":
		sessions = h.deps.Saves.List(ctx)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}

	type sessionJSON struct {
		ID        string `json:"id"`
		Kind      string `json:"kind"`
		Name      string `json:"name"`
		CreatedAt int64  `json:"createdAt"`
		UpdatedAt int64  `json:"updatedAt"`
	}
	out := make([]sessionJSON, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionJSON{ID: s.ID, Kind: s.Kind, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt})
	}
	return jsonResult(out)
}

// saveWorkspace handles linkapp_save tool calls.
func (h *handlers) saveWorkspace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := getString(req, "name", "")

	var ok bool
	if name == "" {
		ok = h.deps.Saves.SaveActive(ctx)
		if !ok {
			return mcp.NewToolResultError("no active save name - provide a name"), nil
		}
		name = h.deps.Saves.ActiveName(ctx)
	} else {
		ok = h.deps.Saves.Upsert(ctx, name)
		if !ok {
			return mcp.NewToolResultError("save name cannot be blank"), nil
		}
	}

	log.Event("mcp:save", "save").Name(name).Write(nil)
	return mcp.NewToolResultText(fmt.Sprintf("saved to %q", name)), nil
}

// exportData handles linkapp_export tool calls.
func (h *handlers) exportData(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := h.deps.Docs.ExportJSON()
	log.Event("mcp:export", "export").Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}
