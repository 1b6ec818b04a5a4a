package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angeleecka/linkapp/internal/search"
)

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Search buttons by label or link across all pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			matches := search.Find(theApp.docs.Get(), args[0])
			if JSON() {
				type matchJSON struct {
					Page        int    `json:"page"`
					PageName    string `json:"pageName"`
					SectionID   string `json:"sectionId"`
					SectionName string `json:"sectionName"`
					ButtonID    string `json:"buttonId"`
					Text        string `json:"text"`
					Href        string `json:"href"`
				}
				out := make([]matchJSON, 0, len(matches))
				for _, m := range matches {
					out = append(out, matchJSON{
						Page:        m.PageIndex + 1,
						PageName:    m.PageName,
						SectionID:   m.SectionID,
						SectionName: m.SectionName,
						ButtonID:    m.Button.ID,
						Text:        m.Button.Text,
						Href:        m.Button.Href,
					})
				}
				return PrintJSON(out)
			}
			if len(matches) == 0 {
				fmt.Fprintln(Out(), "No matches.")
				return nil
			}
			for _, m := range matches {
				fmt.Fprintf(Out(), "Page %d / %s / %s: %s -> %s (%s)\n",
					m.PageIndex+1, m.PageName, m.SectionName, m.Button.Text, m.Button.Href, m.Button.ID)
			}
			return nil
		},
	}
}
