package render

import (
	"fmt"
	"strings"

	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/search"
)

// Badge renders the saved-count badge.
func Badge(n int) string {
	if n < 0 {
		n = 0
	}
	return BadgeStyle.Render(fmt.Sprintf("♥ %d", n))
}

// SavedRow renders one row of the saved drawer with its remove control.
func SavedRow(it saved.Item, selected bool, width int) string {
	title := Text(it.Title)
	if title == "" {
		title = Placeholder
	}
	row := fmt.Sprintf("%s  %s", truncate(title, width-12), SavedURL.Render(truncate(Text(it.URL), width/2)))
	remove := RemoveControl.Render("✕")
	if selected {
		return CardTitleSelected.Render(row) + " " + remove
	}
	return CardTitle.Render(row) + " " + remove
}

// SavedList renders the saved drawer body.
func SavedList(items []saved.Item, cursor, width int) string {
	if len(items) == 0 {
		return EmptyState.Render("You have no saved recipes yet.")
	}
	rows := make([]string, len(items))
	for i, it := range items {
		rows[i] = SavedRow(it, i == cursor, width)
	}
	return strings.Join(rows, "\n")
}

// Checkbox renders a facet checkbox.
func Checkbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	line := box + " " + Text(label)
	if focused {
		return CardTitleSelected.Render(line)
	}
	return CardTitle.Render(line)
}

// FacetEntry is one checkbox of the filters drawer, in display order.
type FacetEntry struct {
	Facet search.Facet
	Label string
}

// FacetEntries lists categories then tags, each already sorted.
func FacetEntries(f search.Facets) []FacetEntry {
	out := make([]FacetEntry, 0, len(f.Categories)+len(f.Tags))
	for _, l := range f.Categories {
		out = append(out, FacetEntry{Facet: search.FacetCategory, Label: l})
	}
	for _, l := range f.Tags {
		out = append(out, FacetEntry{Facet: search.FacetTag, Label: l})
	}
	return out
}

// Facets renders the filters drawer body grouped by facet.
func Facets(entries []FacetEntry, sel search.Selection, cursor int) string {
	if len(entries) == 0 {
		return EmptyState.Render("No filters available.")
	}
	var b strings.Builder
	var group search.Facet
	for i, e := range entries {
		if e.Facet != group {
			group = e.Facet
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(DrawerHeading.Render(facetTitle(group)))
			b.WriteString("\n")
		}
		b.WriteString(Checkbox(e.Label, sel.Selected(e.Facet, e.Label), i == cursor))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func facetTitle(f search.Facet) string {
	switch f {
	case search.FacetCategory:
		return "Categories"
	case search.FacetTag:
		return "Tags"
	}
	return string(f)
}
