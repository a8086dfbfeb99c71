package store

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func TestOpen(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var name string
	err = st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&name)
	if err != nil {
		t.Fatalf("kv table not created: %v", err)
	}
	if name != "kv" {
		t.Errorf("expected table name 'kv', got %q", name)
	}
}

func TestGetItemMissing(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	value, ok, err := st.GetItem("nope")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if ok {
		t.Error("expected missing key to report ok=false")
	}
	if value != "" {
		t.Errorf("expected empty value, got %q", value)
	}
}

func TestSetItemOverwrites(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	if err := st.SetItem("k", "one"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if err := st.SetItem("k", "two"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}

	value, ok, err := st.GetItem("k")
	if err != nil || !ok {
		t.Fatalf("GetItem: ok=%v err=%v", ok, err)
	}
	if value != "two" {
		t.Errorf("expected 'two', got %q", value)
	}

	entries, err := st.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", len(entries))
	}
}

func TestRemoveItem(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	st.SetItem("k", "v")
	if err := st.RemoveItem("k"); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if err := st.RemoveItem("k"); err != nil {
		t.Fatalf("second RemoveItem should be a no-op, got %v", err)
	}

	if _, ok, _ := st.GetItem("k"); ok {
		t.Error("key should be gone after RemoveItem")
	}
}

func TestFilePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opskrifter.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.SetItem("saved", `[{"url":"/a"}]`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	st.Close()

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()

	value, ok, err := st.GetItem("saved")
	if err != nil || !ok {
		t.Fatalf("GetItem after reopen: ok=%v err=%v", ok, err)
	}
	if value != `[{"url":"/a"}]` {
		t.Errorf("unexpected value after reopen: %q", value)
	}
}

func TestConcurrentSetItem(t *testing.T) {
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer st.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := st.SetItem(fmt.Sprintf("k%d", n), "v"); err != nil {
				t.Errorf("SetItem(%d): %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	entries, err := st.Entries()
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	if len(entries) != 20 {
		t.Errorf("expected 20 entries, got %d", len(entries))
	}
}
