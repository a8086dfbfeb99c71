package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/opskrifter/internal/dispatch"
	"github.com/abelbrown/opskrifter/internal/overlay"
	"github.com/abelbrown/opskrifter/internal/render"
	"github.com/abelbrown/opskrifter/internal/saved"
)

const drawerWidth = 44

// View renders the UI.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.debugVisible {
		panel := debugOverlay(a.ring, a.width, a.height-1)
		return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, panel) + "\n" + debugStatusBar(a.width)
	}

	header := a.renderHeader()
	status := a.renderStatusBar()
	errorBar := ""
	if a.err != nil {
		errorBar = ErrorStyle.Width(a.width).Render("Error: "+a.err.Error()+" (press any key to dismiss)") + "\n"
	}

	bodyHeight := a.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(errorBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	return header + "\n" + a.renderBody(bodyHeight) + "\n" + errorBar + status
}

// renderHeader shows the header controls once the header has mounted.
func (a *App) renderHeader() string {
	parts := []string{Brand.Render("opskrifter")}
	if a.registry.Has(dispatch.BurgerButton) {
		parts = append(parts, "≡ menu")
	}
	if a.registry.Has(dispatch.SearchOpen) {
		parts = append(parts, "⌕ search")
	}
	if a.registry.Has(dispatch.SavedBadge) {
		parts = append(parts, render.Badge(len(a.saved)))
	}
	return Header.Width(a.width).Render(strings.Join(parts, "  "))
}

func (a *App) renderBody(height int) string {
	var page string
	if a.page == a.resultsPath {
		page = a.renderListing(height)
	} else {
		page = a.renderPage()
	}

	panel := a.renderActiveOverlay(height)
	backdrop := a.backdropVisible()
	if panel == "" && !backdrop {
		return page
	}
	if backdrop {
		page = Backdrop.Render(page)
	}
	if panel == "" {
		return page
	}

	if n, _ := a.activeOverlay(); n == overlay.Search {
		return lipgloss.JoinVertical(lipgloss.Left, panel, page)
	}
	pageWidth := a.width - drawerWidth - 2
	if pageWidth < 10 {
		return panel
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(pageWidth).MaxHeight(height).Render(page), panel)
}

// backdropVisible reports whether any drawer's backdrop is still shown,
// including during the short hide delay after a close.
func (a *App) backdropVisible() bool {
	for _, n := range overlay.All {
		if d := a.overlays.Drawer(n); d != nil && d.BackdropVisible() {
			return true
		}
	}
	return false
}

func (a *App) renderListing(height int) string {
	heading := render.Heading(a.query, a.live)
	if c := a.selection.Count(); c > 0 {
		heading += fmt.Sprintf(" (%d filters)", c)
	}
	if a.loading {
		heading = a.spinner.View() + " " + heading
	}
	heading = ResultsHeading.Render(heading)

	listing := render.Results(a.cards, render.ListingInput{
		Results: a.results,
		Saved:   a.isSaved,
		Cursor:  a.cursor,
		Width:   a.width - 2,
		Height:  height - lipgloss.Height(heading),
	})
	if listing.Empty != "" {
		return heading + "\n" + listing.Empty
	}
	return heading + "\n" + listing.Grid
}

// renderPage renders a non-listing page. Its heart tracks the page's save toggle.
func (a *App) renderPage() string {
	r, ok := a.onRecipePage()
	var b strings.Builder
	b.WriteString(render.Heart(a.isSaved(a.pageItem().URL)) + " ")
	if ok {
		b.WriteString(ResultsHeading.Render(render.Title(r)))
		if meta := render.Meta(r); meta != "" {
			b.WriteString("\n" + render.CardMeta.Render(meta))
		}
		if desc := render.Text(r.Description); desc != "" {
			b.WriteString("\n\n" + lipgloss.NewStyle().Width(clamp(a.width-6, 20, 100)).Render(desc))
		}
	} else {
		b.WriteString(ResultsHeading.Render(render.Text(a.page)))
	}
	return PageBody.Render(b.String())
}

func (a *App) renderActiveOverlay(height int) string {
	n, ok := a.activeOverlay()
	if !ok {
		return ""
	}
	inner := drawerWidth - 4
	switch n {
	case overlay.Search:
		return SearchOverlay.Width(clamp(a.width-4, 20, 84)).Render(a.search.View())
	case overlay.Saved:
		body := render.SavedList(a.saved, a.savedCursor, inner)
		return a.drawer(fmt.Sprintf("Saved recipes (%d)", len(a.saved)), body, height)
	case overlay.Filters:
		body := render.Facets(a.facetEntries, a.selection, a.facetCursor)
		return a.drawer("Filters", body, height)
	case overlay.MobileNav:
		return a.drawer("Menu", a.renderNav(), height)
	}
	return ""
}

func (a *App) drawer(title, body string, height int) string {
	content := DrawerTitle.Render(title) + "\n\n" + body
	return Drawer.Width(drawerWidth).MaxHeight(height).Render(content)
}

func (a *App) renderNav() string {
	if len(a.nav) == 0 {
		return render.EmptyState.Render("No links.")
	}
	lines := make([]string, len(a.nav))
	for i, l := range a.nav {
		label := render.Text(l.Title)
		if i == a.navCursor {
			lines[i] = NavItemSelected.Render(label)
		} else {
			lines[i] = NavItem.Render(label)
		}
	}
	return strings.Join(lines, "\n")
}

// renderStatusBar shows key hints for whatever has focus.
func (a *App) renderStatusBar() string {
	var hints [][2]string
	n, open := a.activeOverlay()
	switch {
	case open && n == overlay.Search:
		hints = [][2]string{{"enter", "search"}, {"ctrl+x", "close"}, {"esc", "close all"}}
	case open && n == overlay.Saved:
		hints = [][2]string{{"j/k", "move"}, {"enter", "open"}, {"x", "remove"}, {"c", "close"}}
	case open && n == overlay.Filters:
		hints = [][2]string{{"j/k", "move"}, {"space", "toggle"}, {"r", "reset"}, {"c", "close"}}
	case open && n == overlay.MobileNav:
		hints = [][2]string{{"j/k", "move"}, {"enter", "go"}, {"c", "close"}}
	case a.page != a.resultsPath:
		hints = [][2]string{{"space", "save"}, {"h", "back"}, {"q", "quit"}}
	default:
		hints = [][2]string{{"j/k", "move"}, {"enter", "open"}, {"space", "save"}}
		if a.registry.Has(dispatch.SearchOpen) {
			hints = append(hints, [2]string{"/", "search"})
		}
		if a.registry.Has(dispatch.FiltersButton) {
			hints = append(hints, [2]string{"f", "filters"})
		}
		if a.registry.Has(dispatch.SavedButton) {
			hints = append(hints, [2]string{"s", "saved"})
		}
		hints = append(hints, [2]string{"q", "quit"})
	}

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(StatusBarKey.Render(h[0]))
		b.WriteString(StatusBarText.Render(":" + h[1]))
	}

	right := fmt.Sprintf("%d/%d", min(a.cursor+1, len(a.results)), len(a.results))
	if a.status != "" {
		right = a.status + "  " + right
	}
	left := b.String()
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", gap) + StatusBarText.Render(right))
}

// selectedSaved returns the saved item under the drawer cursor.
func (a *App) selectedSaved() (saved.Item, bool) {
	if a.savedCursor < 0 || a.savedCursor >= len(a.saved) {
		return saved.Item{}, false
	}
	return a.saved[a.savedCursor], true
}
