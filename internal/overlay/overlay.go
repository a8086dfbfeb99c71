// Package overlay holds the open/closed state of the page's drawers.
//
// Each drawer is a two-state machine, closed initially. Transitions return
// Effects describing deferred work (delayed focus, delayed backdrop hide);
// the UI schedules them as timers and never cancels them.
package overlay

import "time"

// Name identifies a drawer.
type Name string

const (
	MobileNav Name = "mobile-nav"
	Filters   Name = "filters"
	Saved     Name = "saved"
	Search    Name = "search"
)

// All lists every drawer in a stable order.
var All = []Name{MobileNav, Filters, Saved, Search}

const (
	// BackdropHideDelay lets the close animation finish before the
	// backdrop is hidden.
	BackdropHideDelay = 180 * time.Millisecond

	// FocusDelay lets the open transition start before the search input
	// takes focus.
	FocusDelay = 120 * time.Millisecond
)

// EffectKind is the kind of deferred work a transition requests.
type EffectKind int

const (
	EffectFocus EffectKind = iota
	EffectHideBackdrop
)

func (k EffectKind) String() string {
	switch k {
	case EffectFocus:
		return "focus"
	case EffectHideBackdrop:
		return "hide-backdrop"
	}
	return "unknown"
}

// Effect is deferred work requested by a transition.
type Effect struct {
	Kind    EffectKind
	Overlay Name
	Delay   time.Duration
}

// Drawer is one overlay's state.
type Drawer struct {
	name        Name
	open        bool
	ariaHidden  bool
	hasBackdrop bool
	backdropOn  bool // backdrop node shown (not hidden)
	focusOnOpen bool
}

func newDrawer(name Name) *Drawer {
	return &Drawer{
		name:        name,
		ariaHidden:  true,
		hasBackdrop: name != Search,
		focusOnOpen: name == Search,
	}
}

// Name returns the drawer's name.
func (d *Drawer) Name() Name { return d.name }

// IsOpen reports the visibility flag.
func (d *Drawer) IsOpen() bool { return d.open }

// AriaHidden mirrors the accessibility hidden attribute.
func (d *Drawer) AriaHidden() bool { return d.ariaHidden }

// Expanded mirrors aria-expanded on the button that controls the drawer.
func (d *Drawer) Expanded() bool { return d.open }

// BackdropVisible reports whether the backdrop is still shown. It stays
// true for BackdropHideDelay after a close.
func (d *Drawer) BackdropVisible() bool { return d.hasBackdrop && d.backdropOn }

func (d *Drawer) openState() []Effect {
	if d.open {
		return nil
	}
	d.open = true
	d.ariaHidden = false
	if d.hasBackdrop {
		d.backdropOn = true
	}
	if d.focusOnOpen {
		return []Effect{{Kind: EffectFocus, Overlay: d.name, Delay: FocusDelay}}
	}
	return nil
}

func (d *Drawer) closeState() []Effect {
	if !d.open {
		return nil
	}
	d.open = false
	d.ariaHidden = true
	if d.hasBackdrop {
		return []Effect{{Kind: EffectHideBackdrop, Overlay: d.name, Delay: BackdropHideDelay}}
	}
	return nil
}

// hideBackdrop applies a fired hide timer. A drawer reopened before the
// timer fired keeps its backdrop.
func (d *Drawer) hideBackdrop() bool {
	if d.open || !d.backdropOn {
		return false
	}
	d.backdropOn = false
	return true
}
