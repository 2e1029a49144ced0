// Package render formats result sets as terminal tables.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/starford/bindrune/internal/linkservice"
	"github.com/starford/bindrune/internal/store"
)

const dateFormat = "2006-01-02"

// LinkList renders links one per row, newest first as given.
func LinkList(links []store.Link) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("URL", "Title", "Created")
	for _, l := range links {
		t.Row(l.URL, l.Title, l.CreatedAt.Format(dateFormat))
	}
	return t.Render()
}

// LinkDetail renders one link with its tags, related links, and note.
func LinkDetail(d *linkservice.Detail) string {
	t := table.New().Border(lipgloss.RoundedBorder())
	t.Row("Title", d.Link.Title)
	t.Row("URL", d.Link.URL)
	t.Row("Description", d.Link.Description)
	t.Row("Added", d.Link.CreatedAt.Format(dateFormat))
	if len(d.Tags) > 0 {
		names := make([]string, len(d.Tags))
		for i, tag := range d.Tags {
			names[i] = tag.Name
		}
		t.Row("Tags", strings.Join(names, ", "))
	}
	if len(d.Related) > 0 {
		lines := make([]string, len(d.Related))
		for i, rl := range d.Related {
			if rl.Relationship != "" {
				lines[i] = fmt.Sprintf("%s (%s)", rl.URL, rl.Relationship)
			} else {
				lines[i] = rl.URL
			}
		}
		t.Row("See Also", strings.Join(lines, "\n"))
	}
	if d.Note != nil {
		t.Row("Note", strings.TrimSpace(d.Note.Content))
	}
	return t.Render()
}
