package render

import (
	"strings"
	"testing"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

func minutes(v float64) *float64 { return &v }

func TestTitleFallback(t *testing.T) {
	if got := Title(catalog.Recipe{}); got != Placeholder {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := Title(catalog.Recipe{Title: "<b></b>  "}); got != Placeholder {
		t.Errorf("markup-only title should fall back, got %q", got)
	}
	if got := Title(catalog.Recipe{Title: "Boller"}); got != "Boller" {
		t.Errorf("unexpected title %q", got)
	}
}

func TestMeta(t *testing.T) {
	tests := []struct {
		name string
		r    catalog.Recipe
		want string
	}{
		{"both", catalog.Recipe{Minutes: minutes(25), Level: "Let"}, "25 min · Let"},
		{"minutes only", catalog.Recipe{Minutes: minutes(40)}, "40 min"},
		{"level only", catalog.Recipe{Level: "Svær"}, "Svær"},
		{"neither", catalog.Recipe{}, ""},
		{"zero minutes omitted", catalog.Recipe{Minutes: minutes(0), Level: "Let"}, "Let"},
		{"fractional", catalog.Recipe{Minutes: minutes(7.5)}, "7.5 min"},
		{"blank level omitted", catalog.Recipe{Minutes: minutes(10), Level: "   "}, "10 min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Meta(tt.r); got != tt.want {
				t.Errorf("Meta() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCardOmitsMissingMeta(t *testing.T) {
	card := Card(catalog.Recipe{Title: "Kale Chips", Tags: []string{"snack"}}, CardState{Width: 60})

	if strings.Contains(card, "min") || strings.Contains(card, metaSep) {
		t.Errorf("card without meta should not render a meta segment:\n%s", card)
	}
	if !strings.Contains(card, "Kale Chips") || !strings.Contains(card, "#snack") {
		t.Errorf("card missing content:\n%s", card)
	}
}

func TestCardHeartReflectsSaved(t *testing.T) {
	r := catalog.Recipe{Title: "Oat Bites", URL: "/o"}

	if !strings.Contains(Card(r, CardState{Saved: true, Width: 40}), heartOn) {
		t.Error("saved card should show the filled heart")
	}
	if !strings.Contains(Card(r, CardState{Width: 40}), heartOff) {
		t.Error("unsaved card should show the empty heart")
	}
}

func TestCardEscapesFields(t *testing.T) {
	r := catalog.Recipe{
		Title:      "<img src=x onerror=alert(1)>Soup",
		Level:      "\x1b[2JLet",
		Categories: []string{"<b>dinner</b>"},
	}
	card := Card(r, CardState{Width: 60})

	for _, bad := range []string{"<img", "\x1b[2J", "<b>"} {
		if strings.Contains(card, bad) {
			t.Errorf("card contains unescaped %q:\n%s", bad, card)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Rugbrød", 10); got != "Rugbrød" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncate("Rugbrød", 4); got != "Rug…" {
		t.Errorf("expected rune-safe truncation, got %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("zero width should be empty, got %q", got)
	}
}

func TestCacheMemoizes(t *testing.T) {
	c := NewCache(8)
	r := catalog.Recipe{Title: "Boller", URL: "/b"}

	first := c.Card(r, CardState{Width: 40})
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached card, got %d", c.Len())
	}
	if again := c.Card(r, CardState{Width: 40}); again != first {
		t.Error("cached card differs from first render")
	}
	if c.Len() != 1 {
		t.Errorf("same key should not add an entry, got %d", c.Len())
	}

	// A state change is a different card.
	c.Card(r, CardState{Width: 40, Saved: true})
	if c.Len() != 2 {
		t.Errorf("expected 2 cached cards, got %d", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Purge, got %d", c.Len())
	}
}

func TestCacheEvicts(t *testing.T) {
	c := NewCache(2)
	for _, u := range []string{"/a", "/b", "/c"} {
		c.Card(catalog.Recipe{URL: u}, CardState{Width: 30})
	}
	if c.Len() != 2 {
		t.Errorf("expected cache bounded at 2, got %d", c.Len())
	}
}

func TestNilCache(t *testing.T) {
	var c *Cache
	if c.Card(catalog.Recipe{Title: "X"}, CardState{Width: 30}) == "" {
		t.Error("nil cache should still render")
	}
	if c.Len() != 0 {
		t.Error("nil cache Len should be 0")
	}
	c.Purge()
}

func TestResultsExactlyOneOfGridAndEmpty(t *testing.T) {
	c := NewCache(8)

	empty := Results(c, ListingInput{Width: 40, Height: 20})
	if empty.Empty == "" || empty.Grid != "" {
		t.Errorf("no results should render only the empty state: %+v", empty)
	}

	full := Results(c, ListingInput{
		Results: []catalog.Recipe{{Title: "Oat Bites", URL: "/o"}, {Title: "Kale Chips", URL: "/k"}},
		Saved:   func(u string) bool { return u == "/k" },
		Width:   40,
		Height:  20,
	})
	if full.Grid == "" || full.Empty != "" {
		t.Errorf("results should render only the grid: %+v", full)
	}
	if !strings.Contains(full.Grid, "Oat Bites") || !strings.Contains(full.Grid, "Kale Chips") {
		t.Errorf("grid missing cards:\n%s", full.Grid)
	}
}

func TestResultsScrollsToCursor(t *testing.T) {
	var rs []catalog.Recipe
	for i := 0; i < 30; i++ {
		rs = append(rs, catalog.Recipe{Title: "R" + strings.Repeat("x", i), URL: "/" + strings.Repeat("x", i)})
	}
	l := Results(NewCache(64), ListingInput{Results: rs, Cursor: 29, Width: 60, Height: 6})
	if !strings.Contains(l.Grid, rs[29].Title) {
		t.Errorf("cursor card should be visible:\n%s", l.Grid)
	}
	if strings.Contains(l.Grid, "♡ R\n") {
		t.Error("first card should have scrolled off")
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		query string
		live  bool
		want  string
	}{
		{"", false, "All recipes"},
		{"   ", true, "All recipes · live"},
		{"  oat  bites ", false, `Results for "oat bites"`},
		{"kale", true, `Results for "kale" · live`},
	}
	for _, tt := range tests {
		if got := Heading(tt.query, tt.live); got != tt.want {
			t.Errorf("Heading(%q, %v) = %q, want %q", tt.query, tt.live, got, tt.want)
		}
	}
}
