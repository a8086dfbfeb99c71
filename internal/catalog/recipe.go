// Package catalog loads the recipe catalog the listing is built from.
//
// The catalog is fetched once per page view and held in memory; callers
// treat the returned slice as read-only.
package catalog

import (
	"bytes"
	"encoding/json"
)

// Recipe is one record of the catalog. No id field is guaranteed; URL is
// the identity key.
type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	Minutes     *float64 `json:"minutes,omitempty"`
	Level       string   `json:"level,omitempty"`
	Image       string   `json:"image,omitempty"`
	URL         string   `json:"url"`
}

// envelope is the object form of the catalog file.
type envelope struct {
	Recipes []json.RawMessage `json:"recipes"`
}

// Decode parses a catalog body. It accepts a bare array of records or an
// object with a "recipes" array. Anything else decodes to an empty catalog.
// Records that fail to decode are skipped so one bad entry does not empty
// the whole catalog.
func Decode(body []byte) []Recipe {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []Recipe{}
	}

	var raw []json.RawMessage
	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &raw); err != nil {
			return []Recipe{}
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return []Recipe{}
		}
		raw = env.Recipes
	default:
		return []Recipe{}
	}

	recipes := make([]Recipe, 0, len(raw))
	for _, r := range raw {
		var rec Recipe
		if err := json.Unmarshal(r, &rec); err != nil {
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes
}
