package search

// Selection holds the active facet labels. Session-local: it is never
// persisted and a reload starts empty.
type Selection struct {
	Categories Set
	Tags       Set
}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return Selection{Categories: Set{}, Tags: Set{}}
}

// Toggle flips label in facet and returns whether it is now selected.
func (s *Selection) Toggle(facet Facet, label string) bool {
	set := s.set(facet)
	if set.Has(label) {
		delete(set, label)
		return false
	}
	set[label] = struct{}{}
	return true
}

// Selected reports whether label is active in facet.
func (s Selection) Selected(facet Facet, label string) bool {
	if facet == FacetTag {
		return s.Tags.Has(label)
	}
	return s.Categories.Has(label)
}

// Reset clears both facets.
func (s *Selection) Reset() {
	s.Categories = Set{}
	s.Tags = Set{}
}

// Active reports whether any facet constrains results.
func (s Selection) Active() bool {
	return len(s.Categories) > 0 || len(s.Tags) > 0
}

// Count is the number of selected labels across facets.
func (s Selection) Count() int {
	return len(s.Categories) + len(s.Tags)
}

// Reconcile drops selected labels that are not in the facet domain and
// returns how many were dropped.
func (s *Selection) Reconcile(f Facets) int {
	dropped := keepOnly(s.set(FacetCategory), f.Categories)
	dropped += keepOnly(s.set(FacetTag), f.Tags)
	return dropped
}

func (s *Selection) set(facet Facet) Set {
	if facet == FacetTag {
		if s.Tags == nil {
			s.Tags = Set{}
		}
		return s.Tags
	}
	if s.Categories == nil {
		s.Categories = Set{}
	}
	return s.Categories
}

func keepOnly(set Set, domain []string) int {
	allowed := NewSet(domain...)
	dropped := 0
	for label := range set {
		if !allowed.Has(label) {
			delete(set, label)
			dropped++
		}
	}
	return dropped
}
