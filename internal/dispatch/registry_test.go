package dispatch

import "testing"

func TestRegistryMountUnmount(t *testing.T) {
	r := NewRegistry()
	if r.Has(SavedDrawer) {
		t.Fatal("empty registry should have nothing mounted")
	}

	r.Mount(SavedDrawer, SavedBadge)
	if !r.Has(SavedDrawer) || !r.Has(SavedBadge) {
		t.Error("mounted markers should be present")
	}

	r.Unmount(SavedBadge)
	if r.Has(SavedBadge) {
		t.Error("unmounted marker should be gone")
	}
	if !r.Has(SavedDrawer) {
		t.Error("Unmount should only touch the named markers")
	}
}

func TestWhenMountedImmediate(t *testing.T) {
	r := NewRegistry()
	r.Mount(SearchOpen)

	ran := 0
	r.WhenMounted(func() { ran++ }, SearchOpen)
	if ran != 1 {
		t.Errorf("expected immediate run, got %d", ran)
	}
}

func TestWhenMountedDeferred(t *testing.T) {
	r := NewRegistry()

	ran := 0
	r.WhenMounted(func() { ran++ }, HeaderSurfaces...)
	if ran != 0 {
		t.Fatal("callback ran before surfaces mounted")
	}

	r.Mount(BurgerButton)
	if ran != 0 {
		t.Fatal("callback ran on a partial mount")
	}

	r.Mount(HeaderSurfaces...)
	if ran != 1 {
		t.Fatalf("expected one run after header mount, got %d", ran)
	}

	r.Mount(HeaderSurfaces...)
	if ran != 1 {
		t.Errorf("callback should run once, got %d", ran)
	}
}
