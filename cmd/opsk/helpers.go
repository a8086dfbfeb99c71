package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/opskrifter/internal/config"
	"github.com/abelbrown/opskrifter/internal/logging"
	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/store"
)

// loadConfig reads the config file and environment or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		fatal("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config: %v", err)
	}
	// The CLI logs to stderr; only warnings and up.
	logging.SetOutput(os.Stderr, log.WarnLevel)
	return cfg
}

// openStore opens the database or exits.
func openStore(cfg *config.Config) *store.Store {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		fatal("create data directory: %v", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fatal("open database: %v", err)
	}
	return st
}

// openSaved opens the saved list on top of the store.
func openSaved(cfg *config.Config) (*saved.Store, func()) {
	st := openStore(cfg)
	return saved.New(st), func() { st.Close() }
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
