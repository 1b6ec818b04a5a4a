// migrate.go normalises an arbitrary decoded document into the current
// schema. It runs after every raw load (local blob, platform override,
// import, session load), and is idempotent: running it on already-migrated
// data changes nothing.
package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angeleecka/linkapp/internal/model"
)

// Migrate normalises d in place:
//
//   - missing or empty pages are seeded from the default document
//   - currentPageIndex is clamped into [0, len(pages))
//   - the trash history is always a sequence
//   - every page gets a sections map, a sectionsOrder consistent with it,
//     and a non-blank name ("Page N" when missing)
//   - a top-level "sections" field from the old flat schema is moved onto
//     the first page (one-time upgrade path)
func Migrate(d *model.Document) {
	if d.Pages == nil {
		d.Pages = model.DefaultDocument().Pages
	}
	if len(d.Pages) == 0 {
		d.Pages = append(d.Pages, model.DefaultDocument().Pages[0])
	}

	if d.CurrentPageIndex < 0 || d.CurrentPageIndex >= len(d.Pages) {
		d.CurrentPageIndex = 0
	}

	if d.History == nil {
		d.History = []*model.HistoryEntry{}
	}

	// Old flat schema: sections lived at the document root. Lift them onto
	// the first page before per-page normalisation.
	if legacy := d.LegacySections(); legacy != nil && len(d.Pages[0].Sections) == 0 {
		d.Pages[0].Sections = legacy
		d.Pages[0].SectionsOrder = nil
		d.ClearLegacySections()
	}
	d.ClearLegacySections()

	for idx, p := range d.Pages {
		if p.Sections == nil {
			p.Sections = map[string]*model.Section{}
		}
		p.SectionsOrder = repairOrder(p.SectionsOrder, p.Sections)

		if strings.TrimSpace(p.Name) == "" {
			p.Name = fmt.Sprintf("Page %d", idx+1)
		}

		for _, sec := range p.Sections {
			if sec.Buttons == nil {
				sec.Buttons = []*model.Button{}
			}
		}
	}
}

// repairOrder makes order list every key of sections exactly once. Known
// entries keep their position; stale entries are dropped; missing keys are
// appended in sorted order so repeated runs produce the same result.
func repairOrder(order []string, sections map[string]*model.Section) []string {
	repaired := make([]string, 0, len(sections))
	seen := make(map[string]bool, len(sections))
	for _, id := range order {
		if _, ok := sections[id]; ok && !seen[id] {
			repaired = append(repaired, id)
			seen[id] = true
		}
	}

	var missing []string
	for id := range sections {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return append(repaired, missing...)
}
