// Package model defines the document graph persisted by linkapp: pages of
// sections of link buttons, plus the trash history and saved sessions.
//
// The JSON field names are frozen to the historical wire format so that
// exports produced by earlier builds of the app import cleanly. Do not
// rename tags.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Session kinds.
const (
	KindWorkspace = "workspace"
	KindSnapshot  = "snapshot"
)

// History entry kinds.
const (
	EntryButton  = "button"
	EntrySection = "section"
)

// Button is a labelled link entry. Href may be empty, meaning "unset".
type Button struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Href string `json:"href"`
}

// Section is a named, ordered group of buttons within a page. Collapsed is
// UI display state that persists with the document.
type Section struct {
	Text      string    `json:"text"`
	Buttons   []*Button `json:"buttons"`
	Collapsed bool      `json:"collapsed,omitempty"`
}

// Page is a named container of sections. SectionsOrder defines display
// order and must list every key of Sections exactly once; Migrate repairs
// divergence.
type Page struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Sections      map[string]*Section `json:"sections"`
	SectionsOrder []string            `json:"sectionsOrder"`
}

// HistoryEntry is a tombstone record of a deleted button or section. The
// page/section fields are context captured at deletion time, not live
// references - the ancestors may be gone by the time a restore runs.
type HistoryEntry struct {
	Type         string `json:"type"`
	PageID       string `json:"pageId"`
	PageName     string `json:"pageName"`
	SectionID    string `json:"sectionId"`
	SectionName  string `json:"sectionName"`
	PageIndex    int    `json:"pageIndex"`
	SectionIndex int    `json:"sectionIndex"`

	// Button variant.
	Name        string `json:"name,omitempty"`
	Link        string `json:"link,omitempty"`
	ButtonIndex *int   `json:"buttonIndex,omitempty"`

	// Section variant: full snapshot of the section's buttons.
	Buttons []*Button `json:"buttons,omitempty"`

	DeletedAt string `json:"deletedAt"`
}

// Document is the single mutable root of the application state.
type Document struct {
	CurrentPageIndex int             `json:"currentPageIndex"`
	Pages            []*Page         `json:"pages"`
	History          []*HistoryEntry `json:"deletedItemsHistory"`

	// legacySections captures a top-level "sections" field from the old
	// flat schema. Migrate moves it onto the first page.
	legacySections map[string]*Section
}

// Session is a persisted named copy of an entire Document, tagged as a
// workspace (routinely overwritten save slot) or a snapshot (point-in-time
// backup). Data is always a deep copy; sessions never alias the live
// document. A non-zero DeletedAt marks the session as trashed.
type Session struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
	Data      *Document `json:"data"`
	DeletedAt int64     `json:"deletedAt,omitempty"`
}

// Deleted reports whether the session is soft-deleted.
func (s *Session) Deleted() bool { return s.DeletedAt != 0 }

// UnmarshalJSON decodes a document leniently: fields with the wrong JSON
// type are dropped rather than failing the whole decode, leaving their zero
// value for Migrate to repair. This mirrors how the browser build treated
// arbitrary stored JSON - junk fields degrade to defaults, they do not make
// the document unloadable.
func (d *Document) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*d = Document{}
	if v, ok := raw["currentPageIndex"]; ok {
		_ = json.Unmarshal(v, &d.CurrentPageIndex)
	}
	if v, ok := raw["pages"]; ok {
		_ = json.Unmarshal(v, &d.Pages)
	}
	if v, ok := raw["deletedItemsHistory"]; ok {
		_ = json.Unmarshal(v, &d.History)
	}
	if v, ok := raw["sections"]; ok {
		_ = json.Unmarshal(v, &d.legacySections)
	}
	return nil
}

// UnmarshalJSON decodes a page with the same lenient semantics as Document.
func (p *Page) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*p = Page{}
	if v, ok := raw["id"]; ok {
		_ = json.Unmarshal(v, &p.ID)
	}
	if v, ok := raw["name"]; ok {
		_ = json.Unmarshal(v, &p.Name)
	}
	if v, ok := raw["sections"]; ok {
		_ = json.Unmarshal(v, &p.Sections)
	}
	if v, ok := raw["sectionsOrder"]; ok {
		_ = json.Unmarshal(v, &p.SectionsOrder)
	}
	return nil
}

// LegacySections returns the captured top-level sections of the old flat
// schema, or nil. Consumed once by Migrate.
func (d *Document) LegacySections() map[string]*Section { return d.legacySections }

// ClearLegacySections drops the captured flat-schema sections.
func (d *Document) ClearLegacySections() { d.legacySections = nil }

// Clone returns a deep copy of the document via a JSON round-trip, matching
// the value-copy semantics sessions and history snapshots rely on.
func (d *Document) Clone() *Document {
	b, err := json.Marshal(d)
	if err != nil {
		// The document graph contains only JSON-representable values;
		// a marshal failure means memory corruption, not bad input.
		panic("model: clone marshal: " + err.Error())
	}
	var out Document
	if err := json.Unmarshal(b, &out); err != nil {
		panic("model: clone unmarshal: " + err.Error())
	}
	return &out
}

// Equal reports structural equality of two documents by comparing their
// canonical JSON serialisations.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	a, err := json.Marshal(d)
	if err != nil {
		return false
	}
	b, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// CurrentPage returns the page at CurrentPageIndex, or nil when the index
// is out of range (possible only on an unmigrated document).
func (d *Document) CurrentPage() *Page {
	if d.CurrentPageIndex < 0 || d.CurrentPageIndex >= len(d.Pages) {
		return nil
	}
	return d.Pages[d.CurrentPageIndex]
}

// PageIndexByID returns the index of the page with the given id, or -1.
func (d *Document) PageIndexByID(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range d.Pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// DefaultDocument returns the seed document: three pages, each holding one
// section with a single unlabelled button.
func DefaultDocument() *Document {
	pages := make([]*Page, 0, 3)
	for i := 1; i <= 3; i++ {
		sectionID := fmt.Sprintf("section-%d", i)
		pages = append(pages, &Page{
			ID:   fmt.Sprintf("page-%d", i),
			Name: fmt.Sprintf("Page %d", i),
			Sections: map[string]*Section{
				sectionID: {
					Text:    "New Section",
					Buttons: []*Button{{ID: fmt.Sprintf("button-%d", i), Text: "New button", Href: ""}},
				},
			},
			SectionsOrder: []string{sectionID},
		})
	}
	return &Document{CurrentPageIndex: 0, Pages: pages, History: []*HistoryEntry{}}
}

// NowMillis returns the current time in Unix milliseconds, the timestamp
// unit the session records use.
func NowMillis() int64 { return time.Now().UnixMilli() }

// TimestampID builds a timestamp-derived identifier like "button-1700000000000".
func TimestampID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, NowMillis())
}

// NowStamp returns the current time as the RFC3339 string stored in history
// entries.
func NowStamp() string { return time.Now().UTC().Format(time.RFC3339) }
