// Package search implements the recipe filter engine.
// All functions are pure: catalog in, filtered catalog out. No side effects.
package search

import (
	"strings"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

// Normalize lower-cases s, trims it and collapses internal whitespace runs
// to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Haystack is the normalized text a query is matched against: title,
// description, categories and tags joined by spaces.
func Haystack(r catalog.Recipe) string {
	parts := make([]string, 0, 2+len(r.Categories)+len(r.Tags))
	parts = append(parts, r.Title, r.Description)
	parts = append(parts, r.Categories...)
	parts = append(parts, r.Tags...)
	return Normalize(strings.Join(parts, " "))
}
