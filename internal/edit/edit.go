// Package edit implements the document mutations: buttons, sections and
// pages on the current page. Every operation validates against the live
// document first, then applies through the document store so persistence
// and change notification happen in one place.
package edit

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/storage"
)

// Sentinel errors for callers that want to branch on the failure.
var (
	ErrPageNotFound    = errors.New("page not found")
	ErrSectionNotFound = errors.New("section not found on current page")
	ErrButtonNotFound  = errors.New("button not found")
	ErrEmptyName       = errors.New("name cannot be empty")
	ErrSectionFull     = errors.New("section button limit reached")
	ErrLastPage        = errors.New("cannot delete the last page")
)

// Editor mutates the document. MaxButtons caps buttons per section at add
// and move time; existing oversized sections are left alone.
type Editor struct {
	docs       *storage.Service
	bus        *event.Bus
	maxButtons int
}

// New creates an editor over the document store.
func New(docs *storage.Service, bus *event.Bus, maxButtons int) *Editor {
	return &Editor{docs: docs, bus: bus, maxButtons: maxButtons}
}

// AddButton appends a fresh default button to a section on the current
// page.
func (e *Editor) AddButton(ctx context.Context, sectionID string) (*model.Button, error) {
	page := e.docs.Get().CurrentPage()
	if page == nil || page.Sections[sectionID] == nil {
		e.bus.Error("Section not found on current page!")
		return nil, ErrSectionNotFound
	}
	if len(page.Sections[sectionID].Buttons) >= e.maxButtons {
		e.bus.Warning(fmt.Sprintf("Maximum %d buttons per section!", e.maxButtons))
		return nil, ErrSectionFull
	}

	btn := &model.Button{ID: model.TimestampID("button"), Text: "New button", Href: ""}
	err := e.docs.Update(ctx, func(d *model.Document) error {
		s := d.CurrentPage().Sections[sectionID]
		s.Buttons = append(s.Buttons, btn)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Event("edit", "add-button").Name(btn.ID).Write(nil)
	e.bus.Success("Button added!")
	return btn, nil
}

// EditButton updates a button's text and link. The text must be non-blank.
func (e *Editor) EditButton(ctx context.Context, sectionID, buttonID, text, href string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		e.bus.Warning("Button name cannot be empty!")
		return ErrEmptyName
	}
	if findButton(e.docs.Get(), sectionID, buttonID) == nil {
		e.bus.Error("Button not found!")
		return ErrButtonNotFound
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		btn := findButton(d, sectionID, buttonID)
		if btn == nil {
			return ErrButtonNotFound
		}
		btn.Text = text
		btn.Href = strings.TrimSpace(href)
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Success("Button saved!")
	return nil
}

// MoveButton moves a button to toIndex of another (or the same) section on
// the current page. toIndex is clamped to the target's length.
func (e *Editor) MoveButton(ctx context.Context, fromSectionID, buttonID, toSectionID string, toIndex int) error {
	page := e.docs.Get().CurrentPage()
	if page == nil || page.Sections[fromSectionID] == nil || page.Sections[toSectionID] == nil {
		e.bus.Error("Section not found on current page!")
		return ErrSectionNotFound
	}
	if findButton(e.docs.Get(), fromSectionID, buttonID) == nil {
		e.bus.Error("Button not found!")
		return ErrButtonNotFound
	}
	if fromSectionID != toSectionID && len(page.Sections[toSectionID].Buttons) >= e.maxButtons {
		e.bus.Warning(fmt.Sprintf("Maximum %d buttons per section!", e.maxButtons))
		return ErrSectionFull
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		p := d.CurrentPage()
		from := p.Sections[fromSectionID]
		to := p.Sections[toSectionID]

		i := slices.IndexFunc(from.Buttons, func(b *model.Button) bool { return b.ID == buttonID })
		if i == -1 {
			return ErrButtonNotFound
		}
		btn := from.Buttons[i]
		from.Buttons = slices.Delete(from.Buttons, i, i+1)

		at := min(max(toIndex, 0), len(to.Buttons))
		to.Buttons = slices.Insert(to.Buttons, at, btn)
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Info("Button moved")
	return nil
}

// AddSection appends a new empty section to the current page and returns
// its id.
func (e *Editor) AddSection(ctx context.Context) (string, error) {
	if e.docs.Get().CurrentPage() == nil {
		e.bus.Error("Page not found!")
		return "", ErrPageNotFound
	}

	id := model.TimestampID("section")
	err := e.docs.Update(ctx, func(d *model.Document) error {
		p := d.CurrentPage()
		for p.Sections[id] != nil {
			id += "-1"
		}
		p.Sections[id] = &model.Section{Text: "New Section", Buttons: []*model.Button{}}
		p.SectionsOrder = append(p.SectionsOrder, id)
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Event("edit", "add-section").Name(id).Write(nil)
	e.bus.Success("Section added!")
	return id, nil
}

// RenameSection sets a section's title. The title must be non-blank.
func (e *Editor) RenameSection(ctx context.Context, sectionID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		e.bus.Warning("Section name cannot be empty!")
		return ErrEmptyName
	}
	page := e.docs.Get().CurrentPage()
	if page == nil || page.Sections[sectionID] == nil {
		e.bus.Error("Section not found on current page!")
		return ErrSectionNotFound
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		d.CurrentPage().Sections[sectionID].Text = text
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Success("Section renamed")
	return nil
}

// MoveSection moves a section to newIndex in the current page's order.
// newIndex is clamped.
func (e *Editor) MoveSection(ctx context.Context, sectionID string, newIndex int) error {
	page := e.docs.Get().CurrentPage()
	if page == nil || page.Sections[sectionID] == nil {
		e.bus.Error("Section not found on current page!")
		return ErrSectionNotFound
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		p := d.CurrentPage()
		i := slices.Index(p.SectionsOrder, sectionID)
		if i == -1 {
			return ErrSectionNotFound
		}
		p.SectionsOrder = slices.Delete(p.SectionsOrder, i, i+1)
		at := min(max(newIndex, 0), len(p.SectionsOrder))
		p.SectionsOrder = slices.Insert(p.SectionsOrder, at, sectionID)
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Info("Section reordered")
	return nil
}

// ToggleCollapsed flips a section's collapsed flag and returns the new
// state.
func (e *Editor) ToggleCollapsed(ctx context.Context, sectionID string) (bool, error) {
	page := e.docs.Get().CurrentPage()
	if page == nil || page.Sections[sectionID] == nil {
		e.bus.Error("Section not found on current page!")
		return false, ErrSectionNotFound
	}

	var collapsed bool
	err := e.docs.Update(ctx, func(d *model.Document) error {
		s := d.CurrentPage().Sections[sectionID]
		s.Collapsed = !s.Collapsed
		collapsed = s.Collapsed
		return nil
	})
	return collapsed, err
}

// AddPage appends a new page with one default section and button, switches
// to it, and returns it.
func (e *Editor) AddPage(ctx context.Context) (*model.Page, error) {
	ts := model.NowMillis()
	sectionID := fmt.Sprintf("section-%d", ts)
	page := &model.Page{
		ID:   fmt.Sprintf("page-%d", ts),
		Name: fmt.Sprintf("Page %d", len(e.docs.Get().Pages)+1),
		Sections: map[string]*model.Section{
			sectionID: {
				Text:    "New Section",
				Buttons: []*model.Button{{ID: fmt.Sprintf("button-%d", ts), Text: "New button", Href: ""}},
			},
		},
		SectionsOrder: []string{sectionID},
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		d.Pages = append(d.Pages, page)
		d.CurrentPageIndex = len(d.Pages) - 1
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Event("edit", "add-page").Name(page.Name).Write(nil)
	e.bus.Success(fmt.Sprintf("%s created!", page.Name))
	return page, nil
}

// RenamePage sets the name of the page at index. The name must be
// non-blank.
func (e *Editor) RenamePage(ctx context.Context, index int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		e.bus.Warning("Page name cannot be empty!")
		return ErrEmptyName
	}
	if index < 0 || index >= len(e.docs.Get().Pages) {
		e.bus.Error("Page not found!")
		return ErrPageNotFound
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[index].Name = name
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Success("Page renamed")
	return nil
}

// DeletePage removes the page at index. The last remaining page cannot be
// deleted. The current page index is clamped afterwards.
func (e *Editor) DeletePage(ctx context.Context, index int) error {
	doc := e.docs.Get()
	if len(doc.Pages) <= 1 {
		e.bus.Warning("Cannot delete the last page!")
		return ErrLastPage
	}
	if index < 0 || index >= len(doc.Pages) {
		e.bus.Error("Page not found!")
		return ErrPageNotFound
	}

	err := e.docs.Update(ctx, func(d *model.Document) error {
		d.Pages = slices.Delete(d.Pages, index, index+1)
		if d.CurrentPageIndex >= len(d.Pages) {
			d.CurrentPageIndex = len(d.Pages) - 1
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.bus.Info("Page deleted")
	return nil
}

// SetCurrentPage switches the current page.
func (e *Editor) SetCurrentPage(ctx context.Context, index int) error {
	if index < 0 || index >= len(e.docs.Get().Pages) {
		e.bus.Error("Page not found!")
		return ErrPageNotFound
	}
	return e.docs.Update(ctx, func(d *model.Document) error {
		d.CurrentPageIndex = index
		return nil
	})
}

// findButton locates a button inside a section on the current page.
func findButton(d *model.Document, sectionID, buttonID string) *model.Button {
	page := d.CurrentPage()
	if page == nil {
		return nil
	}
	section := page.Sections[sectionID]
	if section == nil {
		return nil
	}
	for _, b := range section.Buttons {
		if b.ID == buttonID {
			return b
		}
	}
	return nil
}
