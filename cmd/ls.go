// ls.go implements the "linkapp ls" command: show the current page, or the
// whole workspace with --all.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/model"
)

// pageJSON is the JSON-output shape shared by ls and the page commands.
type pageJSON struct {
	Index    int           `json:"index"`
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Current  bool          `json:"current"`
	Sections []sectionJSON `json:"sections"`
}

type sectionJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Collapsed bool            `json:"collapsed,omitempty"`
	Buttons   []*model.Button `json:"buttons"`
}

func pageToJSON(d *model.Document, i int) pageJSON {
	p := d.Pages[i]
	pj := pageJSON{
		Index:    i + 1,
		ID:       p.ID,
		Name:     p.Name,
		Current:  i == d.CurrentPageIndex,
		Sections: make([]sectionJSON, 0, len(p.SectionsOrder)),
	}
	for _, sid := range p.SectionsOrder {
		if s := p.Sections[sid]; s != nil {
			pj.Sections = append(pj.Sections, sectionJSON{ID: sid, Title: s.Text, Collapsed: s.Collapsed, Buttons: s.Buttons})
		}
	}
	return pj
}

// printPage renders one page in the human format.
func printPage(d *model.Document, i int) {
	p := d.Pages[i]
	marker := " "
	if i == d.CurrentPageIndex {
		marker = "*"
	}
	fmt.Fprintf(Out(), "%s Page %d: %s (%s)\n", marker, i+1, p.Name, p.ID)
	for _, sid := range p.SectionsOrder {
		s := p.Sections[sid]
		if s == nil {
			continue
		}
		collapsed := ""
		if s.Collapsed {
			collapsed = " (collapsed)"
		}
		fmt.Fprintf(Out(), "  [%s] %s%s\n", sid, s.Text, collapsed)
		for _, b := range s.Buttons {
			if b.Href != "" {
				fmt.Fprintf(Out(), "    %s  %s -> %s\n", b.ID, b.Text, b.Href)
			} else {
				fmt.Fprintf(Out(), "    %s  %s\n", b.ID, b.Text)
			}
		}
	}
}

func newLsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Show the current page",
		RunE: func(_ *cobra.Command, _ []string) error {
			doc := theApp.docs.Get()

			if JSON() {
				pages := []pageJSON{}
				if all {
					for i := range doc.Pages {
						pages = append(pages, pageToJSON(doc, i))
					}
				} else {
					pages = append(pages, pageToJSON(doc, doc.CurrentPageIndex))
				}
				return PrintJSON(pages)
			}

			if all {
				for i := range doc.Pages {
					printPage(doc, i)
				}
				return nil
			}
			printPage(doc, doc.CurrentPageIndex)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show every page")
	return cmd
}
