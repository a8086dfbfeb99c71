package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abelbrown/opskrifter/internal/export"
	"github.com/abelbrown/opskrifter/internal/saved"
)

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "saved.xlsx", "Output .xlsx path")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	list, closeFn := openSaved(cfg)
	defer closeFn()

	if err := exportSaved(os.Stdout, list, *out); err != nil {
		closeFn()
		fatal("export: %v", err)
	}
}

func exportSaved(w io.Writer, list *saved.Store, path string) error {
	items := list.List()
	if err := export.WriteXLSX(path, items); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %d saved recipes to %s\n", len(items), path)
	return nil
}
