// Command opskrifter is the terminal recipe browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/opskrifter/internal/catalog"
	"github.com/abelbrown/opskrifter/internal/config"
	"github.com/abelbrown/opskrifter/internal/logging"
	"github.com/abelbrown/opskrifter/internal/metrics"
	"github.com/abelbrown/opskrifter/internal/otel"
	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/store"
	"github.com/abelbrown/opskrifter/internal/ui"
)

// headerDelay is how long the header takes to arrive after startup.
const headerDelay = 150 * time.Millisecond

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid config: %v", err)
	}

	if err := logging.Init(cfg.LogDir, log.InfoLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	// Event log + ring buffer for the debug overlay
	events := otel.NewNullLogger()
	if err := os.MkdirAll(filepath.Dir(cfg.EventLog), 0755); err == nil {
		if f, err := os.OpenFile(cfg.EventLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			defer f.Close()
			events = otel.NewLogger(f)
		} else {
			logging.Warn("Event log unavailable", "path", cfg.EventLog, "error", err)
		}
	}
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	defer events.Close()
	events.Info(otel.KindStartup, "main", "opskrifter starting")

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		logging.Info("Metrics listening", "addr", cfg.MetricsAddr)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fatal("Failed to open database: %v", err)
	}
	defer st.Close()
	logging.Info("Store initialized", "path", cfg.DBPath)

	savedList := saved.New(st, saved.WithLogger(events), saved.WithMetrics(m))
	loader := catalog.NewLoader(cfg.CatalogURL(), cfg.FetchTimeout(),
		catalog.WithLogger(events), catalog.WithMetrics(m))

	// Create UI app with dependency injection
	app := ui.NewApp(ui.AppConfig{
		LoadCatalog: func() tea.Cmd {
			return func() tea.Msg {
				recipes, err := loader.Load(ctx)
				if err != nil {
					logging.Warn("Catalog load failed", "url", loader.URL(), "error", err)
				}
				return ui.CatalogLoaded{Recipes: recipes, Err: err}
			}
		},
		ListSaved: func() tea.Cmd {
			return func() tea.Msg {
				snap := savedList.Snapshot()
				return ui.SavedChanged{Items: snap.Items, Rev: snap.Rev}
			}
		},
		ToggleSaved: func(item saved.Item) tea.Cmd {
			return func() tea.Msg {
				snap, _, err := savedList.Toggle(item)
				if err != nil {
					logging.Error("Save toggle failed", "url", item.URL, "error", err)
				}
				return ui.SavedChanged{Items: snap.Items, Rev: snap.Rev, Err: err}
			}
		},
		RemoveSaved: func(url string) tea.Cmd {
			return func() tea.Msg {
				snap, err := savedList.Remove(url)
				if err != nil {
					logging.Error("Remove failed", "url", url, "error", err)
				}
				return ui.SavedChanged{Items: snap.Items, Rev: snap.Rev, Err: err}
			}
		},
		MountHeader: func() tea.Cmd {
			return tea.Tick(headerDelay, func(time.Time) tea.Msg { return ui.HeaderMounted{} })
		},
		Surfaces:     cfg.UI.Surfaces,
		Nav:          cfg.UI.Nav,
		ResultsPath:  cfg.ResultsPath,
		BadgeRefresh: cfg.BadgeRefreshDelays(),
		Ring:         ring,
		Logger:       events,
		Metrics:      m,
	})

	logging.Info("Starting UI", "catalog", loader.URL())
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logging.Error("Application error", "error", err)
	}

	events.Info(otel.KindShutdown, "main", "opskrifter exiting")
	logging.Info("opskrifter exiting normally")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
