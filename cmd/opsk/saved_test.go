package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "opsk.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func run(t *testing.T, list *saved.Store, sub string, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := savedCommand(&buf, list, sub, args); err != nil {
		t.Fatalf("saved %s %v: %v", sub, args, err)
	}
	return buf.String()
}

func TestSavedCommand(t *testing.T) {
	list := saved.New(openTestStore(t))

	if out := run(t, list, "list"); !strings.Contains(out, "No saved recipes.") {
		t.Errorf("empty list output = %q", out)
	}

	out := run(t, list, "add", "--title", "Oat Bites", "--image", "/oat.jpg", "/opskrifter/oat-bites")
	if !strings.Contains(out, "1. Oat Bites") || !strings.Contains(out, "1 / 200 saved") {
		t.Errorf("add output = %q", out)
	}
	run(t, list, "add", "/opskrifter/kale-chips")

	items := list.List()
	if len(items) != 2 || items[0].URL != "/opskrifter/kale-chips" || items[0].Title != saved.DefaultTitle {
		t.Fatalf("after adds = %+v", items)
	}
	if items[1].Image != "/oat.jpg" {
		t.Errorf("--image not stored: %+v", items[1])
	}

	out = run(t, list, "remove", "/opskrifter/kale-chips")
	if strings.Contains(out, "kale-chips") || !strings.Contains(out, "Oat Bites") {
		t.Errorf("remove output = %q", out)
	}

	if out := run(t, list, "clear"); !strings.Contains(out, "cleared") {
		t.Errorf("clear output = %q", out)
	}
	if len(list.List()) != 0 {
		t.Error("clear should empty the list")
	}
}

func TestSavedCommandUsage(t *testing.T) {
	list := saved.New(openTestStore(t))
	tests := []struct {
		sub  string
		args []string
	}{
		{"add", nil},
		{"add", []string{"/a", "/b"}},
		{"add", []string{"--nope", "/a"}},
		{"remove", nil},
		{"frobnicate", nil},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		err := savedCommand(&buf, list, tt.sub, tt.args)
		if !errors.Is(err, errSavedUsage) {
			t.Errorf("saved %s %v: err = %v, want usage error", tt.sub, tt.args, err)
		}
	}
	if len(list.List()) != 0 {
		t.Error("usage errors must not change the list")
	}
}

func TestExportSaved(t *testing.T) {
	list := saved.New(openTestStore(t))
	list.Add(saved.Item{Title: "Oat Bites", URL: "/opskrifter/oat-bites"})

	path := filepath.Join(t.TempDir(), "saved.xlsx")
	var buf bytes.Buffer
	if err := exportSaved(&buf, list, path); err != nil {
		t.Fatalf("exportSaved: %v", err)
	}
	if !strings.Contains(buf.String(), "Wrote 1 saved recipes") {
		t.Errorf("output = %q", buf.String())
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[1][1] != "Oat Bites" {
		t.Errorf("rows = %v", rows)
	}
}

func TestDumpStorage(t *testing.T) {
	st := openTestStore(t)

	var buf bytes.Buffer
	if err := dumpStorage(&buf, st, false); err != nil {
		t.Fatalf("dumpStorage: %v", err)
	}
	if !strings.Contains(buf.String(), "Storage is empty.") {
		t.Errorf("empty dump = %q", buf.String())
	}

	saved.New(st).Add(saved.Item{Title: strings.Repeat("Long title ", 10), URL: "/long"})
	buf.Reset()
	if err := dumpStorage(&buf, st, false); err != nil {
		t.Fatalf("dumpStorage: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, saved.StorageKey) || !strings.Contains(out, "...") {
		t.Errorf("dump should list the key with a preview:\n%s", out)
	}

	buf.Reset()
	dumpStorage(&buf, st, true)
	if !strings.Contains(buf.String(), `"url":"/long"`) {
		t.Errorf("--full dump should print the whole value:\n%s", buf.String())
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short", 10); got != "short" {
		t.Errorf("preview(short) = %q", got)
	}
	if got := preview("ø"+strings.Repeat("x", 20), 10); got != "øxxxxxx..." {
		t.Errorf("preview(long) = %q", got)
	}
}
