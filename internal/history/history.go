// Package history implements the deletion trash: deleted buttons and
// sections go to a history list on the document instead of vanishing, and
// can be restored, purged one at a time, or cleared.
//
// Restore is index-addressed into the history list, newest entry last. When
// the original page and section still exist the item slides back into its
// recorded position silently; when they are gone the caller picks a policy,
// either recreating the missing ancestors from the entry's recorded context
// or dumping the item into a catch-all "Restored" page. Every restore
// returns an undo token; undoing a restore is just a deletion replay, the
// reinserted item is removed and the original entry goes back on the list.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/storage"
)

// Policy selects what Restore does when the item's original page or
// section no longer exists.
type Policy string

const (
	// PolicyRecreate rebuilds the missing page/section using the ids and
	// names recorded in the history entry.
	PolicyRecreate Policy = "recreate"
	// PolicyFallback routes the item to a catch-all "Restored" page,
	// creating it on demand.
	PolicyFallback Policy = "fallback"
)

// ErrNotFound is returned for an out-of-range history index.
var ErrNotFound = fmt.Errorf("item not found in history")

// UndoToken identifies the item a Restore reinserted, so Undo can take it
// back out and requeue the original entry.
type UndoToken struct {
	Type      string
	PageIndex int
	SectionID string
	ButtonID  string
	Entry     *model.HistoryEntry
}

// Trash operates on the document's deletion history.
type Trash struct {
	docs *storage.Service
	bus  *event.Bus
}

// New creates a trash over the given document store.
func New(docs *storage.Service, bus *event.Bus) *Trash {
	return &Trash{docs: docs, bus: bus}
}

// Entries returns the history list, oldest first. Present it reversed for
// newest-first display.
func (t *Trash) Entries() []*model.HistoryEntry {
	return t.docs.Get().History
}

// DeleteButton removes a button from a section on the current page and
// records it in the history with enough context to restore it in place.
func (t *Trash) DeleteButton(ctx context.Context, sectionID, buttonID string) error {
	err := t.docs.Update(ctx, func(d *model.Document) error {
		page := d.CurrentPage()
		if page == nil {
			return fmt.Errorf("no current page")
		}
		section := page.Sections[sectionID]
		if section == nil {
			return fmt.Errorf("section %q not found", sectionID)
		}
		idx := slices.IndexFunc(section.Buttons, func(b *model.Button) bool { return b.ID == buttonID })
		if idx == -1 {
			return fmt.Errorf("button %q not found in section %q", buttonID, sectionID)
		}

		btn := section.Buttons[idx]
		section.Buttons = slices.Delete(section.Buttons, idx, idx+1)

		at := idx
		d.History = append(d.History, &model.HistoryEntry{
			Type:         model.EntryButton,
			PageID:       page.ID,
			PageName:     page.Name,
			SectionID:    sectionID,
			SectionName:  section.Text,
			PageIndex:    d.CurrentPageIndex,
			SectionIndex: slices.Index(page.SectionsOrder, sectionID),
			ButtonIndex:  &at,
			Name:         btn.Text,
			Link:         btn.Href,
			DeletedAt:    model.NowStamp(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	log.Event("trash", "delete-button").Name(buttonID).Write(nil)
	t.bus.Info("Button deleted. Check History to restore.")
	return nil
}

// DeleteSection removes a whole section from the current page, snapshotting
// its buttons into the history entry.
func (t *Trash) DeleteSection(ctx context.Context, sectionID string) error {
	err := t.docs.Update(ctx, func(d *model.Document) error {
		page := d.CurrentPage()
		if page == nil {
			return fmt.Errorf("no current page")
		}
		section := page.Sections[sectionID]
		if section == nil {
			return fmt.Errorf("section %q not found", sectionID)
		}

		d.History = append(d.History, &model.HistoryEntry{
			Type:         model.EntrySection,
			PageID:       page.ID,
			PageName:     page.Name,
			SectionID:    sectionID,
			SectionName:  section.Text,
			PageIndex:    d.CurrentPageIndex,
			SectionIndex: slices.Index(page.SectionsOrder, sectionID),
			Buttons:      section.Buttons,
			DeletedAt:    model.NowStamp(),
		})

		delete(page.Sections, sectionID)
		if i := slices.Index(page.SectionsOrder, sectionID); i >= 0 {
			page.SectionsOrder = slices.Delete(page.SectionsOrder, i, i+1)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Event("trash", "delete-section").Name(sectionID).Write(nil)
	t.bus.Info("Section deleted. Check History to restore.")
	return nil
}

// Restore reinserts the history entry at index into the document and
// removes it from the list. The policy only matters when the recorded
// ancestors are gone. Returns an undo token for the reinserted item.
func (t *Trash) Restore(ctx context.Context, index int, policy Policy) (*UndoToken, error) {
	doc := t.docs.Get()
	if index < 0 || index >= len(doc.History) {
		t.bus.Error("Item not found in history!")
		return nil, ErrNotFound
	}
	item := doc.History[index]

	var token *UndoToken
	var err error
	switch item.Type {
	case model.EntryButton:
		token, err = t.restoreButton(ctx, index, item, policy)
	case model.EntrySection:
		token, err = t.restoreSection(ctx, index, item, policy)
	default:
		err = fmt.Errorf("unknown history entry type %q", item.Type)
	}
	if err != nil {
		return nil, err
	}

	log.Event("trash", "restore").Kind(item.Type).Name(item.Name).Write(nil)
	return token, nil
}

func (t *Trash) restoreButton(ctx context.Context, index int, item *model.HistoryEntry, policy Policy) (*UndoToken, error) {
	token := &UndoToken{Type: model.EntryButton, Entry: cloneEntry(item)}

	err := t.docs.Update(ctx, func(d *model.Document) error {
		pageIdx := d.PageIndexByID(item.PageID)
		sectionID := item.SectionID
		hasParents := pageIdx != -1 && d.Pages[pageIdx].Sections[sectionID] != nil

		if !hasParents {
			switch policy {
			case PolicyRecreate:
				pageIdx = ensurePage(d, item.PageID, item.PageName)
				sectionID = ensureSection(d.Pages[pageIdx], item.SectionID, firstNonEmpty(item.SectionName, item.Name, "Restored"))
			case PolicyFallback:
				pageIdx = ensureRestoredPage(d)
				sectionID = ensureRestoredSection(d.Pages[pageIdx])
			default:
				return fmt.Errorf("unknown restore policy %q", policy)
			}
		}

		section := d.Pages[pageIdx].Sections[sectionID]
		btn := &model.Button{
			ID:   model.TimestampID("button"),
			Text: firstNonEmpty(item.Name, "Restored button"),
			Href: item.Link,
		}
		at := len(section.Buttons)
		if hasParents && item.ButtonIndex != nil {
			at = clamp(*item.ButtonIndex, 0, len(section.Buttons))
		}
		section.Buttons = slices.Insert(section.Buttons, at, btn)
		d.History = slices.Delete(d.History, index, index+1)

		token.PageIndex = pageIdx
		token.SectionID = sectionID
		token.ButtonID = btn.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.bus.Success(fmt.Sprintf("Button %q restored to %s / %s",
		item.Name, firstNonEmpty(item.PageName, "Page"), firstNonEmpty(item.SectionName, "Section")))
	return token, nil
}

func (t *Trash) restoreSection(ctx context.Context, index int, item *model.HistoryEntry, policy Policy) (*UndoToken, error) {
	token := &UndoToken{Type: model.EntrySection, Entry: cloneEntry(item)}

	err := t.docs.Update(ctx, func(d *model.Document) error {
		pageIdx := d.PageIndexByID(item.PageID)
		if pageIdx == -1 {
			switch policy {
			case PolicyRecreate:
				pageIdx = ensurePage(d, item.PageID, firstNonEmpty(item.PageName, item.Name, "Restored"))
			case PolicyFallback:
				pageIdx = ensureRestoredPage(d)
			default:
				return fmt.Errorf("unknown restore policy %q", policy)
			}
		}
		page := d.Pages[pageIdx]

		newID := item.SectionID
		if newID == "" || page.Sections[newID] != nil {
			newID = model.TimestampID("section")
		}
		for i := 0; page.Sections[newID] != nil; i++ {
			newID = fmt.Sprintf("%s-%d", newID, i)
		}

		buttons := make([]*model.Button, 0, len(item.Buttons))
		for _, b := range item.Buttons {
			id := b.ID
			if id == "" {
				id = model.TimestampID("button")
			}
			buttons = append(buttons, &model.Button{
				ID:   id,
				Text: firstNonEmpty(b.Text, "Restored button"),
				Href: b.Href,
			})
		}

		page.Sections[newID] = &model.Section{
			Text:    firstNonEmpty(item.SectionName, item.Name, "Restored section"),
			Buttons: buttons,
		}
		page.SectionsOrder = append(page.SectionsOrder, newID)
		d.History = slices.Delete(d.History, index, index+1)

		token.PageIndex = pageIdx
		token.SectionID = newID
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.bus.Success(fmt.Sprintf("Section %q restored to page: %s",
		firstNonEmpty(item.SectionName, item.Name), firstNonEmpty(item.PageName, "Page")))
	return token, nil
}

// Undo reverses a restore: the reinserted item is deleted again and the
// original history entry is re-appended.
func (t *Trash) Undo(ctx context.Context, token *UndoToken) error {
	err := t.docs.Update(ctx, func(d *model.Document) error {
		if token.PageIndex < 0 || token.PageIndex >= len(d.Pages) {
			return fmt.Errorf("page %d no longer exists", token.PageIndex)
		}
		page := d.Pages[token.PageIndex]

		switch token.Type {
		case model.EntryButton:
			section := page.Sections[token.SectionID]
			if section == nil {
				return fmt.Errorf("section %q no longer exists", token.SectionID)
			}
			if i := slices.IndexFunc(section.Buttons, func(b *model.Button) bool { return b.ID == token.ButtonID }); i != -1 {
				section.Buttons = slices.Delete(section.Buttons, i, i+1)
			}
		case model.EntrySection:
			delete(page.Sections, token.SectionID)
			if i := slices.Index(page.SectionsOrder, token.SectionID); i >= 0 {
				page.SectionsOrder = slices.Delete(page.SectionsOrder, i, i+1)
			}
		default:
			return fmt.Errorf("unknown undo token type %q", token.Type)
		}

		d.History = append(d.History, token.Entry)
		return nil
	})
	if err != nil {
		return err
	}

	t.bus.Info("Undone")
	return nil
}

// Remove permanently deletes one history entry.
func (t *Trash) Remove(ctx context.Context, index int) error {
	if h := t.docs.Get().History; index < 0 || index >= len(h) {
		return ErrNotFound
	}
	return t.docs.Update(ctx, func(d *model.Document) error {
		if index >= len(d.History) {
			return ErrNotFound
		}
		d.History = slices.Delete(d.History, index, index+1)
		return nil
	})
}

// Clear empties the whole history.
func (t *Trash) Clear(ctx context.Context) error {
	err := t.docs.Update(ctx, func(d *model.Document) error {
		d.History = []*model.HistoryEntry{}
		return nil
	})
	if err != nil {
		return err
	}
	t.bus.Info("History cleared")
	return nil
}

// ensurePage returns the index of the page with the given id, creating it
// at the end when missing.
func ensurePage(d *model.Document, id, name string) int {
	if idx := d.PageIndexByID(id); idx != -1 {
		return idx
	}
	if id == "" {
		id = model.TimestampID("page")
	}
	d.Pages = append(d.Pages, &model.Page{
		ID:            id,
		Name:          firstNonEmpty(name, "Restored"),
		Sections:      map[string]*model.Section{},
		SectionsOrder: []string{},
	})
	return len(d.Pages) - 1
}

// ensureRestoredPage returns the index of the catch-all page named
// "Restored" (case-insensitive), creating it when missing.
func ensureRestoredPage(d *model.Document) int {
	for i, p := range d.Pages {
		if strings.EqualFold(p.Name, "Restored") {
			return i
		}
	}
	d.Pages = append(d.Pages, &model.Page{
		ID:            model.TimestampID("page-restored"),
		Name:          "Restored",
		Sections:      map[string]*model.Section{},
		SectionsOrder: []string{},
	})
	return len(d.Pages) - 1
}

// ensureSection returns a free section id on page, preferring wantID, and
// creates the section when missing.
func ensureSection(page *model.Page, wantID, title string) string {
	id := wantID
	if id == "" {
		id = model.TimestampID("section")
	}
	for i := 0; page.Sections[id] != nil; i++ {
		id = fmt.Sprintf("%s-restored-%d", wantID, i)
	}
	page.Sections[id] = &model.Section{Text: title, Buttons: []*model.Button{}}
	page.SectionsOrder = append(page.SectionsOrder, id)
	return id
}

// ensureRestoredSection returns the id of the first section on page whose
// title starts with "Restored" (case-insensitive), creating one when none
// exists.
func ensureRestoredSection(page *model.Page) string {
	for _, id := range page.SectionsOrder {
		if s := page.Sections[id]; s != nil && strings.HasPrefix(strings.ToLower(s.Text), "restored") {
			return id
		}
	}
	return ensureSection(page, model.TimestampID("section-restored"), "Restored")
}

func cloneEntry(e *model.HistoryEntry) *model.HistoryEntry {
	out := *e
	if e.ButtonIndex != nil {
		i := *e.ButtonIndex
		out.ButtonIndex = &i
	}
	out.Buttons = slices.Clone(e.Buttons)
	return &out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
