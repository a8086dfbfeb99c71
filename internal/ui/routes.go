package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/opskrifter/internal/dispatch"
	"github.com/abelbrown/opskrifter/internal/otel"
	"github.com/abelbrown/opskrifter/internal/overlay"
	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/search"
)

// surfaceMarkers are the markers each optional overlay brings with it.
var surfaceMarkers = map[overlay.Name][]dispatch.Marker{
	overlay.MobileNav: {dispatch.MobileNavDrawer, dispatch.MobileNavBackdrop, dispatch.MobileNavClose, dispatch.NavLink},
	overlay.Filters: {dispatch.FiltersButton, dispatch.FiltersDrawer, dispatch.FiltersBackdrop, dispatch.FiltersClose,
		dispatch.FiltersReset, dispatch.FacetContainer, dispatch.FacetCheckbox},
	overlay.Saved:  {dispatch.SavedDrawer, dispatch.SavedBackdrop, dispatch.SavedClose, dispatch.SavedRemove},
	overlay.Search: {dispatch.SearchOverlay, dispatch.SearchClose, dispatch.SearchInput},
}

// installRoutes registers the click routes in priority order, then the
// keyboard handlers.
func (a *App) installRoutes() {
	d := a.dispatcher

	d.Handle(dispatch.Route{Name: "search-open", Marker: dispatch.SearchOpen,
		Requires: []dispatch.Marker{dispatch.SearchOverlay}, Handle: a.opener(overlay.Search)})
	d.Handle(dispatch.Route{Name: "search-close", Marker: dispatch.SearchClose,
		Requires: []dispatch.Marker{dispatch.SearchOverlay}, Handle: a.closer(overlay.Search)})

	d.Handle(dispatch.Route{Name: "saved-open", Marker: dispatch.SavedButton,
		Requires: []dispatch.Marker{dispatch.SavedDrawer}, Handle: a.openSaved})
	d.Handle(dispatch.Route{Name: "saved-close", Marker: dispatch.SavedClose,
		Requires: []dispatch.Marker{dispatch.SavedDrawer}, Handle: a.closer(overlay.Saved)})
	d.Handle(dispatch.Route{Name: "saved-backdrop", Marker: dispatch.SavedBackdrop,
		Requires: []dispatch.Marker{dispatch.SavedDrawer}, Handle: a.closer(overlay.Saved)})

	d.Handle(dispatch.Route{Name: "mobile-nav-toggle", Marker: dispatch.BurgerButton,
		Requires: []dispatch.Marker{dispatch.MobileNavDrawer, dispatch.MobileNavBackdrop}, Handle: a.toggler(overlay.MobileNav)})
	d.Handle(dispatch.Route{Name: "mobile-nav-close", Marker: dispatch.MobileNavClose,
		Requires: []dispatch.Marker{dispatch.MobileNavDrawer}, Handle: a.closer(overlay.MobileNav)})
	d.Handle(dispatch.Route{Name: "mobile-nav-backdrop", Marker: dispatch.MobileNavBackdrop,
		Requires: []dispatch.Marker{dispatch.MobileNavDrawer}, Handle: a.closer(overlay.MobileNav)})
	d.Handle(dispatch.Route{Name: "mobile-nav-link", Marker: dispatch.NavLink,
		Requires: []dispatch.Marker{dispatch.MobileNavDrawer}, Handle: a.followNavLink})

	d.Handle(dispatch.Route{Name: "saved-remove", Marker: dispatch.SavedRemove,
		Requires: []dispatch.Marker{dispatch.SavedDrawer}, Handle: a.removeFromSaved})
	d.Handle(dispatch.Route{Name: "save-toggle", Marker: dispatch.SaveToggle, Handle: a.toggleSave})

	d.Handle(dispatch.Route{Name: "filters-open", Marker: dispatch.FiltersButton,
		Requires: []dispatch.Marker{dispatch.FiltersDrawer}, Handle: a.opener(overlay.Filters)})
	d.Handle(dispatch.Route{Name: "filters-close", Marker: dispatch.FiltersClose,
		Requires: []dispatch.Marker{dispatch.FiltersDrawer}, Handle: a.closer(overlay.Filters)})
	d.Handle(dispatch.Route{Name: "filters-backdrop", Marker: dispatch.FiltersBackdrop,
		Requires: []dispatch.Marker{dispatch.FiltersDrawer}, Handle: a.closer(overlay.Filters)})
	d.Handle(dispatch.Route{Name: "filters-reset", Marker: dispatch.FiltersReset,
		Requires: []dispatch.Marker{dispatch.FacetContainer}, Handle: a.resetFilters})
	d.Handle(dispatch.Route{Name: "facet-checkbox", Marker: dispatch.FacetCheckbox,
		Requires: []dispatch.Marker{dispatch.FacetContainer}, Handle: a.toggleFacet})

	d.OnKey(dispatch.KeyEscape, a.closeAll)
	d.OnKey(dispatch.KeyEnter, a.submitSearch)
}

func (a *App) opener(n overlay.Name) dispatch.Handler {
	return func(dispatch.Node) tea.Cmd { return a.openOverlay(n) }
}

func (a *App) closer(n overlay.Name) dispatch.Handler {
	return func(dispatch.Node) tea.Cmd { return a.closeOverlay(n) }
}

func (a *App) toggler(n overlay.Name) dispatch.Handler {
	return func(dispatch.Node) tea.Cmd {
		if a.overlays.IsOpen(n) {
			return a.closeOverlay(n)
		}
		return a.openOverlay(n)
	}
}

func (a *App) openOverlay(n overlay.Name) tea.Cmd {
	if !a.overlays.IsOpen(n) {
		a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindOverlayOpen, Comp: "ui", Overlay: string(n)})
	}
	return tea.Batch(a.effectCmds(a.overlays.Open(n))...)
}

func (a *App) closeOverlay(n overlay.Name) tea.Cmd {
	if a.overlays.IsOpen(n) {
		a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindOverlayClose, Comp: "ui", Overlay: string(n)})
	}
	if n == overlay.Search {
		a.search.Blur()
	}
	return tea.Batch(a.effectCmds(a.overlays.Close(n))...)
}

// effectCmds turns transition effects into fire-and-forget timers.
func (a *App) effectCmds(effects []overlay.Effect) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		name := e.Overlay
		switch e.Kind {
		case overlay.EffectFocus:
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg { return FocusSearch{} }))
		case overlay.EffectHideBackdrop:
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg { return BackdropHidden{Overlay: name} }))
		}
	}
	return cmds
}

// openSaved opens the saved drawer and re-reads the list it shows.
func (a *App) openSaved(dispatch.Node) tea.Cmd {
	cmd := a.openOverlay(overlay.Saved)
	if a.listSaved != nil {
		return tea.Batch(cmd, a.listSaved())
	}
	return cmd
}

// followNavLink closes the mobile nav and follows the link.
func (a *App) followNavLink(n dispatch.Node) tea.Cmd {
	cmd := a.closeOverlay(overlay.MobileNav)
	href := n.Attr(dispatch.AttrHref)
	if href == "" {
		return cmd
	}
	return tea.Batch(cmd, func() tea.Msg { return Navigate{URL: href} })
}

func (a *App) removeFromSaved(n dispatch.Node) tea.Cmd {
	u := n.Attr(dispatch.AttrURL)
	if a.removeSaved == nil || strings.TrimSpace(u) == "" {
		return nil
	}
	return a.removeSaved(u)
}

// toggleSave flips the saved state of the toggle's declared recipe. A toggle
// without a declared url acts on the current page.
func (a *App) toggleSave(n dispatch.Node) tea.Cmd {
	if a.toggleSaved == nil {
		return nil
	}
	item := saved.Item{
		Title: n.Attr(dispatch.AttrTitle),
		URL:   n.Attr(dispatch.AttrURL),
		Image: n.Attr(dispatch.AttrImage),
	}
	if strings.TrimSpace(item.URL) == "" {
		item.URL = a.page
	}
	return a.toggleSaved(item)
}

func (a *App) resetFilters(dispatch.Node) tea.Cmd {
	a.selection.Reset()
	a.refilter()
	return nil
}

func (a *App) toggleFacet(n dispatch.Node) tea.Cmd {
	label := n.Attr(dispatch.AttrLabel)
	if label == "" {
		return nil
	}
	a.selection.Toggle(search.Facet(n.Attr(dispatch.AttrFacet)), label)
	a.refilter()
	return nil
}

// closeAll closes every overlay. Closed overlays are unaffected.
func (a *App) closeAll(dispatch.KeyEvent) tea.Cmd {
	for _, n := range a.overlays.OpenNames() {
		a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindOverlayClose, Comp: "ui", Overlay: string(n)})
	}
	a.search.Blur()
	return tea.Batch(a.effectCmds(a.overlays.CloseAll())...)
}

// submitSearch navigates to the results page for the header search query.
// Blank queries do nothing.
func (a *App) submitSearch(ev dispatch.KeyEvent) tea.Cmd {
	if ev.Focus != dispatch.SearchInput {
		return nil
	}
	target := ResultsURL(a.resultsPath, a.search.Value())
	if target == "" {
		return nil
	}
	return func() tea.Msg { return Navigate{URL: target} }
}
