package search

import (
	"reflect"
	"testing"

	"github.com/abelbrown/opskrifter/internal/catalog"
)

func TestBuildFacets(t *testing.T) {
	recipes := []catalog.Recipe{
		{Categories: []string{"lunch", "breakfast"}, Tags: []string{"snack", "vegan"}},
		{Categories: []string{"dinner", "lunch"}, Tags: []string{"  ", "gluten-free"}},
		{},
	}

	f := BuildFacets(recipes)
	if want := []string{"breakfast", "dinner", "lunch"}; !reflect.DeepEqual(f.Categories, want) {
		t.Errorf("Categories = %v, want %v", f.Categories, want)
	}
	if want := []string{"gluten-free", "snack", "vegan"}; !reflect.DeepEqual(f.Tags, want) {
		t.Errorf("Tags = %v, want %v", f.Tags, want)
	}
	if !reflect.DeepEqual(f.Labels(FacetTag), f.Tags) {
		t.Error("Labels(FacetTag) should return tags")
	}
}

func TestBuildFacetsEmpty(t *testing.T) {
	f := BuildFacets(nil)
	if len(f.Categories) != 0 || len(f.Tags) != 0 {
		t.Errorf("expected empty facets, got %+v", f)
	}
}

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()
	if !sel.Toggle(FacetTag, "snack") {
		t.Error("first toggle should select")
	}
	if !sel.Selected(FacetTag, "snack") || sel.Count() != 1 || !sel.Active() {
		t.Errorf("unexpected selection state %+v", sel)
	}
	if sel.Toggle(FacetTag, "snack") {
		t.Error("second toggle should deselect")
	}
	if sel.Active() {
		t.Error("selection should be inactive after deselect")
	}
}

func TestSelectionZeroValue(t *testing.T) {
	var sel Selection
	sel.Toggle(FacetCategory, "lunch")
	if !sel.Selected(FacetCategory, "lunch") {
		t.Error("zero Selection should accept toggles")
	}
}

func TestSelectionReset(t *testing.T) {
	sel := NewSelection()
	sel.Toggle(FacetCategory, "lunch")
	sel.Toggle(FacetTag, "snack")
	sel.Reset()
	if sel.Active() {
		t.Errorf("expected empty selection after reset, got %+v", sel)
	}
}

// After a rebuild the selection holds no label absent from the new domain.
func TestSelectionReconcileDropsStaleLabels(t *testing.T) {
	old := []catalog.Recipe{
		{Categories: []string{"lunch", "breakfast"}, Tags: []string{"snack"}},
	}
	fresh := []catalog.Recipe{
		{Categories: []string{"lunch"}, Tags: []string{"vegan"}},
	}

	sel := NewSelection()
	for _, c := range BuildFacets(old).Categories {
		sel.Toggle(FacetCategory, c)
	}
	sel.Toggle(FacetTag, "snack")

	facets := BuildFacets(fresh)
	if dropped := sel.Reconcile(facets); dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}

	domain := NewSet(append(facets.Categories, facets.Tags...)...)
	for _, l := range append(sel.Categories.Values(), sel.Tags.Values()...) {
		if !domain.Has(l) {
			t.Errorf("stale label %q survived reconcile", l)
		}
	}
	if !sel.Selected(FacetCategory, "lunch") {
		t.Error("label still in domain should stay selected")
	}
}

func TestSetValuesSorted(t *testing.T) {
	s := NewSet("c", "a", "b")
	if got := s.Values(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Values() = %v", got)
	}
	var nilSet Set
	if nilSet.Has("x") {
		t.Error("nil set should contain nothing")
	}
}
