package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the persistent application configuration
type Config struct {
	// Site the catalog is fetched from
	BaseURL     string `json:"base_url"`
	CatalogPath string `json:"catalog_path"`
	ResultsPath string `json:"results_path"`

	// Local state
	DBPath   string `json:"db_path"`
	LogDir   string `json:"log_dir"`
	EventLog string `json:"event_log"`

	// Optional Prometheus listener, e.g. "127.0.0.1:9464". Empty disables it.
	MetricsAddr string `json:"metrics_addr,omitempty"`

	FetchTimeoutMs int `json:"fetch_timeout_ms"`

	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences and the surfaces present on the page.
type UIConfig struct {
	Surfaces SurfaceConfig `json:"surfaces"`
	Nav      []NavLink     `json:"nav"`

	// Delays after startup at which the saved badge is re-read.
	BadgeRefreshMs []int `json:"badge_refresh_ms"`
}

// SurfaceConfig toggles the optional page surfaces. A disabled surface is
// never mounted and every control that targets it is inert.
type SurfaceConfig struct {
	MobileNav bool `json:"mobile_nav"`
	Filters   bool `json:"filters"`
	Saved     bool `json:"saved"`
	Search    bool `json:"search"`
}

// NavLink is one entry of the mobile navigation drawer.
type NavLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		BaseURL:        "http://localhost:8080",
		CatalogPath:    "/assets/opskrifter.json",
		ResultsPath:    "/opskrifter",
		DBPath:         filepath.Join(dir, "opskrifter.db"),
		LogDir:         filepath.Join(dir, "logs"),
		EventLog:       filepath.Join(dir, "events.jsonl"),
		FetchTimeoutMs: 10000,
		UI: UIConfig{
			Surfaces: SurfaceConfig{
				MobileNav: true,
				Filters:   true,
				Saved:     true,
				Search:    true,
			},
			Nav: []NavLink{
				{Title: "Forside", Path: "/"},
				{Title: "Opskrifter", Path: "/opskrifter"},
				{Title: "Gemte", Path: "/gemte"},
				{Title: "Om", Path: "/om"},
			},
			BadgeRefreshMs: []int{300, 1000, 2500},
		},
	}
}

// Dir returns the data directory, ~/.opskrifter
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".opskrifter")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads config from path, or returns defaults when the file is missing
// or malformed. Environment overrides (including a .env file in the working
// directory) are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			cfg = DefaultConfig()
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	_ = godotenv.Load()
	cfg.ApplyEnv()

	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from OPSKRIFTER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("OPSKRIFTER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("OPSKRIFTER_CATALOG_PATH"); v != "" {
		c.CatalogPath = v
	}
	if v := os.Getenv("OPSKRIFTER_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("OPSKRIFTER_LOG_DIR"); v != "" {
		c.LogDir = v
	}
	if v := os.Getenv("OPSKRIFTER_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
}

// CatalogURL joins BaseURL and CatalogPath.
func (c *Config) CatalogURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.CatalogPath, "/")
}

// FetchTimeout returns the catalog request timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// BadgeRefreshDelays returns the badge refresh schedule as durations.
func (c *Config) BadgeRefreshDelays() []time.Duration {
	out := make([]time.Duration, 0, len(c.UI.BadgeRefreshMs))
	for _, ms := range c.UI.BadgeRefreshMs {
		if ms > 0 {
			out = append(out, time.Duration(ms)*time.Millisecond)
		}
	}
	return out
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}
	if !strings.HasPrefix(c.CatalogPath, "/") {
		return fmt.Errorf("catalog path must start with /")
	}
	if !strings.HasPrefix(c.ResultsPath, "/") {
		return fmt.Errorf("results path must start with /")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path cannot be empty")
	}
	if c.FetchTimeoutMs <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	for i, link := range c.UI.Nav {
		if link.Title == "" || link.Path == "" {
			return fmt.Errorf("nav link %d needs a title and a path", i)
		}
	}
	return nil
}
