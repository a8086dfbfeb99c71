package search

import (
	"strings"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

// Filter returns the recipes matching query and the facet selections, in
// catalog order.
//
// A recipe matches the query when the normalized query is a substring of its
// Haystack; an empty query matches everything. A non-empty category set
// requires at least one shared category, likewise for tags, and both
// constraints must hold when both are active.
func Filter(recipes []catalog.Recipe, query string, categories, tags Set) []catalog.Recipe {
	q := Normalize(query)
	result := make([]catalog.Recipe, 0, len(recipes))

	for _, r := range recipes {
		if q != "" && !strings.Contains(Haystack(r), q) {
			continue
		}
		if len(categories) > 0 && !categories.anyOf(r.Categories) {
			continue
		}
		if len(tags) > 0 && !tags.anyOf(r.Tags) {
			continue
		}
		result = append(result, r)
	}

	return result
}

// Apply runs Filter with a Selection.
func Apply(recipes []catalog.Recipe, query string, sel Selection) []catalog.Recipe {
	return Filter(recipes, query, sel.Categories, sel.Tags)
}
