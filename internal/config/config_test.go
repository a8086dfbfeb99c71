package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if got := cfg.CatalogURL(); got != "http://localhost:8080/assets/opskrifter.json" {
		t.Errorf("CatalogURL() = %q", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base", func(c *Config) { c.BaseURL = "" }},
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://example.com" }},
		{"no host", func(c *Config) { c.BaseURL = "http://" }},
		{"relative catalog", func(c *Config) { c.CatalogPath = "assets/x.json" }},
		{"relative results", func(c *Config) { c.ResultsPath = "soeg" }},
		{"no db", func(c *Config) { c.DBPath = "" }},
		{"zero timeout", func(c *Config) { c.FetchTimeoutMs = 0 }},
		{"bad nav", func(c *Config) { c.UI.Nav = []NavLink{{Title: "x"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CatalogPath != "/assets/opskrifter.json" {
		t.Errorf("expected default catalog path, got %q", cfg.CatalogPath)
	}
}

func TestLoadMalformedReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FetchTimeoutMs != 10000 {
		t.Errorf("expected defaults, got timeout %d", cfg.FetchTimeoutMs)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.BaseURL = "https://opskrifter.example"
	cfg.UI.Surfaces.Search = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.BaseURL != "https://opskrifter.example" {
		t.Errorf("BaseURL = %q", loaded.BaseURL)
	}
	if loaded.UI.Surfaces.Search {
		t.Error("search surface should stay disabled")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OPSKRIFTER_BASE_URL", "https://env.example")
	t.Setenv("OPSKRIFTER_METRICS_ADDR", "127.0.0.1:9464")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://env.example" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %q", cfg.MetricsAddr)
	}
}

func TestBadgeRefreshDelaysSkipsNonPositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.BadgeRefreshMs = []int{0, 250, -1, 1000}

	got := cfg.BadgeRefreshDelays()
	want := []time.Duration{250 * time.Millisecond, time.Second}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
