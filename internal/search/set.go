package search

import "sort"

// Set is a membership-only set of facet labels.
type Set map[string]struct{}

// NewSet builds a set from labels.
func NewSet(labels ...string) Set {
	s := make(Set, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Has reports membership. Safe on a nil set.
func (s Set) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Values returns the labels sorted lexicographically.
func (s Set) Values() []string {
	out := make([]string, 0, len(s))
	for l := range s {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// anyOf reports whether any label is in the set.
func (s Set) anyOf(labels []string) bool {
	for _, l := range labels {
		if s.Has(l) {
			return true
		}
	}
	return false
}
