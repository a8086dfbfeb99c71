// Package ui provides the Bubble Tea TUI for opskrifter.
package ui

import (
	"github.com/abelbrown/opskrifter/internal/catalog"
	"github.com/abelbrown/opskrifter/internal/overlay"
	"github.com/abelbrown/opskrifter/internal/saved"
)

// CatalogLoaded is sent when the catalog fetch finishes. On failure
// Recipes is empty and Err is set; the listing still renders.
type CatalogLoaded struct {
	Recipes []catalog.Recipe
	Err     error
}

// SavedChanged is the saved-list change notification. It carries the list
// as read back from the store after a mutation, or on a plain refresh.
type SavedChanged struct {
	Items []saved.Item
	Rev   uint64 // store revision Items was read at
	Err   error  // write error; Items is still the current list
}

// BadgeRefresh fires at the scheduled delays after startup.
type BadgeRefresh struct {
	Attempt int
}

// HeaderMounted is sent once the header surfaces have been injected.
type HeaderMounted struct{}

// Navigate moves the app to another page. URL is a site-relative path,
// optionally with a query string.
type Navigate struct {
	URL string
}

// FocusSearch moves focus into the header search field.
type FocusSearch struct{}

// BackdropHidden is the delayed backdrop hide for a closed overlay.
type BackdropHidden struct {
	Overlay overlay.Name
}
