// Package render projects catalog records and saved-list state onto terminal
// text. It is the only place record fields meet the screen, and every field
// passes through Text on the way.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

// Placeholder replaces a missing title.
const Placeholder = "Recipe"

// metaSep joins metadata segments.
const metaSep = " · "

const (
	heartOn  = "♥"
	heartOff = "♡"
)

// CardState is the per-card presentation input.
type CardState struct {
	Saved    bool
	Selected bool
	Width    int
}

// Title returns the display title of r.
func Title(r catalog.Recipe) string {
	if t := Text(r.Title); t != "" {
		return t
	}
	return Placeholder
}

// Meta renders the minutes and level segment. Missing parts are omitted
// together with their separator; with neither present it returns "".
func Meta(r catalog.Recipe) string {
	var parts []string
	if r.Minutes != nil && *r.Minutes > 0 && !math.IsInf(*r.Minutes, 0) {
		parts = append(parts, fmt.Sprintf("%s min", formatMinutes(*r.Minutes)))
	}
	if lvl := Text(r.Level); lvl != "" {
		parts = append(parts, lvl)
	}
	return strings.Join(parts, metaSep)
}

func formatMinutes(m float64) string {
	if m == math.Trunc(m) {
		return fmt.Sprintf("%d", int(m))
	}
	return fmt.Sprintf("%.1f", m)
}

// Heart returns the save toggle glyph for the pressed state.
func Heart(saved bool) string {
	if saved {
		return SavedHeart.Render(heartOn)
	}
	return UnsavedHeart.Render(heartOff)
}

// Card renders one result card: title line with the save toggle, then the
// optional meta line, then the facet labels.
func Card(r catalog.Recipe, st CardState) string {
	width := st.Width
	if width < 20 {
		width = 20
	}

	titleStyle := CardTitle
	if st.Selected {
		titleStyle = CardTitleSelected
	}
	title := truncate(Title(r), width-4)
	lines := []string{Heart(st.Saved) + " " + titleStyle.Render(title)}

	if meta := Meta(r); meta != "" {
		lines = append(lines, "  "+CardMeta.Render(meta))
	}

	var labels []string
	for _, c := range r.Categories {
		if c = Text(c); c != "" {
			labels = append(labels, c)
		}
	}
	for _, t := range r.Tags {
		if t = Text(t); t != "" {
			labels = append(labels, "#"+t)
		}
	}
	if len(labels) > 0 {
		lines = append(lines, "  "+CardLabels.Render(truncate(strings.Join(labels, " "), width-4)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// truncate cuts s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

type cardKey struct {
	url   string
	title string
	state CardState
}

// Cache memoizes rendered cards. The catalog is immutable for a page view,
// so url, title and state identify a card's output.
type Cache struct {
	lru *lru.Cache[cardKey, string]
}

// NewCache returns a cache holding up to size cards.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 512
	}
	c, err := lru.New[cardKey, string](size)
	if err != nil {
		// only fails on size <= 0
		panic(err)
	}
	return &Cache{lru: c}
}

// Card renders r through the cache.
func (c *Cache) Card(r catalog.Recipe, st CardState) string {
	if c == nil {
		return Card(r, st)
	}
	key := cardKey{url: r.URL, title: r.Title, state: st}
	if s, ok := c.lru.Get(key); ok {
		return s
	}
	s := Card(r, st)
	c.lru.Add(key, s)
	return s
}

// Len returns the number of cached cards.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}

// Purge drops every cached card. Called when a new catalog arrives.
func (c *Cache) Purge() {
	if c != nil {
		c.lru.Purge()
	}
}

// Listing is the rendered result area. Exactly one of Grid and Empty is
// non-empty.
type Listing struct {
	Grid  string
	Empty string
}

// ListingInput describes what the result area shows.
type ListingInput struct {
	Results []catalog.Recipe
	Saved   func(url string) bool
	Cursor  int
	Width   int
	Height  int
}

// Results renders the result grid or, when there are no results, the empty
// state.
func Results(c *Cache, in ListingInput) Listing {
	if len(in.Results) == 0 {
		return Listing{Empty: EmptyState.Render("No recipes match your search.")}
	}

	var b strings.Builder
	used := 0
	for i := scrollStart(in.Cursor, in.Height, 3); i < len(in.Results); i++ {
		r := in.Results[i]
		saved := in.Saved != nil && in.Saved(r.URL)
		card := c.Card(r, CardState{Saved: saved, Selected: i == in.Cursor, Width: in.Width})
		h := lipgloss.Height(card)
		if in.Height > 0 && used+h > in.Height && used > 0 {
			break
		}
		b.WriteString(card)
		b.WriteString("\n")
		used += h
	}
	return Listing{Grid: b.String()}
}

// scrollStart keeps the cursor visible given an approximate card height.
func scrollStart(cursor, height, cardHeight int) int {
	if height <= 0 || cursor <= 0 {
		return 0
	}
	visible := height / cardHeight
	if visible < 1 {
		visible = 1
	}
	if cursor >= visible {
		return cursor - visible + 1
	}
	return 0
}

// Heading is the results heading. It distinguishes a query from the full
// listing and marks results as live once the catalog has loaded.
func Heading(query string, live bool) string {
	q := Text(query)
	var h string
	if q == "" {
		h = "All recipes"
	} else {
		h = fmt.Sprintf("Results for %q", q)
	}
	if live {
		h += metaSep + "live"
	}
	return h
}
