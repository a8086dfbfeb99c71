package search

import (
	"sort"
	"strings"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

// Facet names a filter dimension.
type Facet string

const (
	FacetCategory Facet = "category"
	FacetTag      Facet = "tag"
)

// Facets is the label domain of a catalog: every distinct category and tag,
// each sorted lexicographically.
type Facets struct {
	Categories []string
	Tags       []string
}

// BuildFacets collects the distinct facet labels of recipes. Blank labels
// are skipped.
func BuildFacets(recipes []catalog.Recipe) Facets {
	cats := make(map[string]struct{})
	tags := make(map[string]struct{})
	for _, r := range recipes {
		for _, c := range r.Categories {
			if strings.TrimSpace(c) != "" {
				cats[c] = struct{}{}
			}
		}
		for _, t := range r.Tags {
			if strings.TrimSpace(t) != "" {
				tags[t] = struct{}{}
			}
		}
	}
	return Facets{Categories: sortedKeys(cats), Tags: sortedKeys(tags)}
}

// Labels returns the domain for one facet.
func (f Facets) Labels(facet Facet) []string {
	if facet == FacetTag {
		return f.Tags
	}
	return f.Categories
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
