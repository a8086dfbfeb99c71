package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/opskrifter/internal/dispatch"
	"github.com/abelbrown/opskrifter/internal/overlay"
	"github.com/abelbrown/opskrifter/internal/render"
)

// focusOrder decides which open overlay receives keys.
var focusOrder = []overlay.Name{overlay.Search, overlay.Saved, overlay.Filters, overlay.MobileNav}

// activeOverlay returns the open overlay that has keyboard focus.
func (a *App) activeOverlay() (overlay.Name, bool) {
	for _, n := range focusOrder {
		if a.overlays.IsOpen(n) {
			return n, true
		}
	}
	return "", false
}

// focusMarker is the marker of the element keys currently land on.
func (a *App) focusMarker() dispatch.Marker {
	if a.search.Focused() {
		return dispatch.SearchInput
	}
	if n, ok := a.activeOverlay(); ok {
		switch n {
		case overlay.Saved:
			return dispatch.SavedDrawer
		case overlay.Filters:
			return dispatch.FiltersDrawer
		case overlay.MobileNav:
			return dispatch.MobileNavDrawer
		case overlay.Search:
			return dispatch.SearchOverlay
		}
	}
	return dispatch.ResultsGrid
}

// click sends a click on path[0]. Controls that are not on the page cannot
// be clicked.
func (a *App) click(path ...dispatch.Node) tea.Cmd {
	if len(path) == 0 || !a.registry.Has(path[0].Marker) {
		return nil
	}
	_, cmd := a.dispatcher.Click(path)
	return cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Clear any existing error on key press
	if a.err != nil {
		a.err = nil
	}

	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if key.Matches(msg, keys.Debug) {
		a.debugVisible = !a.debugVisible
		return nil
	}
	if a.debugVisible {
		if key.Matches(msg, keys.Escape) {
			a.debugVisible = false
		}
		return nil
	}

	if key.Matches(msg, keys.Escape) {
		return a.dispatcher.Key(dispatch.KeyEvent{Key: dispatch.KeyEscape, Focus: a.focusMarker()})
	}

	if n, ok := a.activeOverlay(); ok {
		switch n {
		case overlay.Search:
			return a.handleSearchKey(msg)
		case overlay.Saved:
			return a.handleSavedKey(msg)
		case overlay.Filters:
			return a.handleFiltersKey(msg)
		case overlay.MobileNav:
			return a.handleNavKey(msg)
		}
	}
	return a.handlePageKey(msg)
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Open):
		return a.dispatcher.Key(dispatch.KeyEvent{Key: dispatch.KeyEnter, Focus: a.focusMarker()})
	case key.Matches(msg, keys.CloseSearch):
		return a.click(dispatch.N(dispatch.SearchClose), dispatch.N(dispatch.SearchOverlay))
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return cmd
}

func (a *App) handleSavedKey(msg tea.KeyMsg) tea.Cmd {
	drawer := dispatch.N(dispatch.SavedDrawer)
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		a.savedCursor = clamp(a.savedCursor-1, 0, len(a.saved)-1)
	case key.Matches(msg, keys.Down):
		a.savedCursor = clamp(a.savedCursor+1, 0, len(a.saved)-1)
	case key.Matches(msg, keys.Remove):
		if it, ok := a.selectedSaved(); ok {
			return a.click(dispatch.N(dispatch.SavedRemove, dispatch.AttrURL, it.URL), drawer)
		}
	case key.Matches(msg, keys.Open):
		if it, ok := a.selectedSaved(); ok {
			u := it.URL
			return func() tea.Msg { return Navigate{URL: u} }
		}
	case key.Matches(msg, keys.Close):
		return a.click(dispatch.N(dispatch.SavedClose), drawer)
	case key.Matches(msg, keys.Outside):
		return a.click(dispatch.N(dispatch.SavedBackdrop))
	case key.Matches(msg, keys.Saved):
		return a.click(dispatch.N(dispatch.SavedButton))
	}
	return nil
}

func (a *App) handleFiltersKey(msg tea.KeyMsg) tea.Cmd {
	drawer := dispatch.N(dispatch.FiltersDrawer)
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		a.facetCursor = clamp(a.facetCursor-1, 0, len(a.facetEntries)-1)
	case key.Matches(msg, keys.Down):
		a.facetCursor = clamp(a.facetCursor+1, 0, len(a.facetEntries)-1)
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Open):
		if a.facetCursor < len(a.facetEntries) {
			e := a.facetEntries[a.facetCursor]
			return a.click(
				dispatch.N(dispatch.FacetCheckbox, dispatch.AttrFacet, string(e.Facet), dispatch.AttrLabel, e.Label),
				dispatch.N(dispatch.FacetContainer),
				drawer,
			)
		}
	case key.Matches(msg, keys.Reset):
		return a.click(dispatch.N(dispatch.FiltersReset), drawer)
	case key.Matches(msg, keys.Close):
		return a.click(dispatch.N(dispatch.FiltersClose), drawer)
	case key.Matches(msg, keys.Outside):
		return a.click(dispatch.N(dispatch.FiltersBackdrop))
	}
	return nil
}

func (a *App) handleNavKey(msg tea.KeyMsg) tea.Cmd {
	drawer := dispatch.N(dispatch.MobileNavDrawer)
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Up):
		a.navCursor = clamp(a.navCursor-1, 0, len(a.nav)-1)
	case key.Matches(msg, keys.Down):
		a.navCursor = clamp(a.navCursor+1, 0, len(a.nav)-1)
	case key.Matches(msg, keys.Open):
		if a.navCursor < len(a.nav) {
			return a.click(dispatch.N(dispatch.NavLink, dispatch.AttrHref, a.nav[a.navCursor].Path), drawer)
		}
	case key.Matches(msg, keys.Close):
		return a.click(dispatch.N(dispatch.MobileNavClose), drawer)
	case key.Matches(msg, keys.Outside):
		return a.click(dispatch.N(dispatch.MobileNavBackdrop))
	case key.Matches(msg, keys.Menu):
		return a.click(dispatch.N(dispatch.BurgerButton))
	}
	return nil
}

// handlePageKey handles keys when no overlay is open.
func (a *App) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit

	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down),
		key.Matches(msg, keys.Top), key.Matches(msg, keys.Bottom):
		a.scroll(msg)
		return nil

	case key.Matches(msg, keys.Search):
		return a.click(dispatch.N(dispatch.SearchOpen))
	case key.Matches(msg, keys.Saved):
		return a.click(dispatch.N(dispatch.SavedButton))
	case key.Matches(msg, keys.Menu):
		return a.click(dispatch.N(dispatch.BurgerButton))
	case key.Matches(msg, keys.Filters):
		if a.page == a.resultsPath {
			return a.click(dispatch.N(dispatch.FiltersButton))
		}

	case key.Matches(msg, keys.Toggle):
		return a.clickSaveToggle()

	case key.Matches(msg, keys.Open):
		if a.page == a.resultsPath && a.cursor < len(a.results) {
			u := a.results[a.cursor].URL
			if u != "" {
				return func() tea.Msg { return Navigate{URL: u} }
			}
		}

	case key.Matches(msg, keys.Back):
		if a.page != a.resultsPath {
			target := ResultsURL(a.resultsPath, a.query)
			if target == "" {
				target = a.resultsPath
			}
			return func() tea.Msg { return Navigate{URL: target} }
		}

	case key.Matches(msg, keys.Clear):
		if a.page == a.resultsPath && a.query != "" {
			target := a.resultsPath
			return func() tea.Msg { return Navigate{URL: target} }
		}

	case key.Matches(msg, keys.Reload):
		return a.reload()
	}
	return nil
}

// scroll moves the results cursor. The page does not scroll while an
// overlay holds the scroll lock.
func (a *App) scroll(msg tea.KeyMsg) {
	if a.overlays.Document().ScrollLocked() || a.page != a.resultsPath {
		return
	}
	last := len(a.results) - 1
	switch {
	case key.Matches(msg, keys.Up):
		a.cursor = clamp(a.cursor-1, 0, last)
	case key.Matches(msg, keys.Down):
		a.cursor = clamp(a.cursor+1, 0, last)
	case key.Matches(msg, keys.Top):
		a.cursor = 0
	case key.Matches(msg, keys.Bottom):
		a.cursor = clamp(last, 0, last)
	}
}

// clickSaveToggle clicks the toggle on the focused card, or the page's own
// toggle elsewhere. On a recipe page the toggle declares the recipe; on any
// other page it declares no url.
func (a *App) clickSaveToggle() tea.Cmd {
	if a.page != a.resultsPath {
		if r, ok := a.onRecipePage(); ok {
			return a.click(dispatch.N(dispatch.SaveToggle, dispatch.AttrTitle, render.Title(r), dispatch.AttrURL, r.URL, dispatch.AttrImage, r.Image))
		}
		return a.click(dispatch.N(dispatch.SaveToggle))
	}
	if a.cursor >= len(a.results) {
		return nil
	}
	r := a.results[a.cursor]
	return a.click(
		dispatch.N(dispatch.SaveToggle, dispatch.AttrTitle, r.Title, dispatch.AttrURL, r.URL, dispatch.AttrImage, r.Image),
		dispatch.N(dispatch.ResultCard),
		dispatch.N(dispatch.ResultsGrid),
	)
}
