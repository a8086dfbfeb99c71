package overlay

// Document is the page-wide scroll lock. It is held while any drawer is
// open; closing one drawer does not unlock the page for another.
type Document struct {
	holders map[Name]struct{}
}

// ScrollLocked reports whether the page is scroll-locked.
func (d *Document) ScrollLocked() bool { return len(d.holders) > 0 }

func (d *Document) lock(n Name) {
	if d.holders == nil {
		d.holders = make(map[Name]struct{})
	}
	d.holders[n] = struct{}{}
}

func (d *Document) unlock(n Name) { delete(d.holders, n) }

// Set owns the four drawers and the document lock. Drawers are independent:
// opening one never closes another.
type Set struct {
	drawers map[Name]*Drawer
	doc     Document
}

// NewSet returns a Set with every drawer closed.
func NewSet() *Set {
	s := &Set{drawers: make(map[Name]*Drawer, len(All))}
	for _, n := range All {
		s.drawers[n] = newDrawer(n)
	}
	return s
}

// Drawer returns the named drawer, or nil for an unknown name.
func (s *Set) Drawer(n Name) *Drawer { return s.drawers[n] }

// IsOpen reports whether the named drawer is open.
func (s *Set) IsOpen(n Name) bool {
	d := s.drawers[n]
	return d != nil && d.open
}

// Document returns the page-wide lock.
func (s *Set) Document() *Document { return &s.doc }

// Open opens n. Opening an open drawer is a no-op.
func (s *Set) Open(n Name) []Effect {
	d := s.drawers[n]
	if d == nil {
		return nil
	}
	effects := d.openState()
	if d.open {
		s.doc.lock(n)
	}
	return effects
}

// Close closes n. Closing a closed drawer is a no-op.
func (s *Set) Close(n Name) []Effect {
	d := s.drawers[n]
	if d == nil {
		return nil
	}
	effects := d.closeState()
	s.doc.unlock(n)
	return effects
}

// Toggle opens a closed drawer and closes an open one.
func (s *Set) Toggle(n Name) []Effect {
	if s.IsOpen(n) {
		return s.Close(n)
	}
	return s.Open(n)
}

// CloseAll closes every drawer, open or not.
func (s *Set) CloseAll() []Effect {
	var effects []Effect
	for _, n := range All {
		effects = append(effects, s.Close(n)...)
	}
	return effects
}

// HideBackdrop applies a fired backdrop timer for n and reports whether the
// backdrop was hidden.
func (s *Set) HideBackdrop(n Name) bool {
	d := s.drawers[n]
	return d != nil && d.hideBackdrop()
}

// OpenNames lists open drawers in All order.
func (s *Set) OpenNames() []Name {
	var out []Name
	for _, n := range All {
		if s.drawers[n].open {
			out = append(out, n)
		}
	}
	return out
}
