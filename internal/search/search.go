// Package search filters buttons across the whole document.
package search

import (
	"strings"

	"github.com/angeleecka/linkapp/internal/model"
)

// Match is one button hit with its location.
type Match struct {
	PageIndex   int
	PageName    string
	SectionID   string
	SectionName string
	Button      *model.Button
}

// Find returns every button whose text or link contains query,
// case-insensitive, across all pages. A blank query matches nothing.
// Results follow page order, then the page's section order, then button
// order.
func Find(d *model.Document, query string) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []Match
	for pi, page := range d.Pages {
		for _, sid := range page.SectionsOrder {
			section := page.Sections[sid]
			if section == nil {
				continue
			}
			for _, btn := range section.Buttons {
				if strings.Contains(strings.ToLower(btn.Text), query) ||
					strings.Contains(strings.ToLower(btn.Href), query) {
					out = append(out, Match{
						PageIndex:   pi,
						PageName:    page.Name,
						SectionID:   sid,
						SectionName: section.Text,
						Button:      btn,
					})
				}
			}
		}
	}
	return out
}
