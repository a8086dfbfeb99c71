package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abelbrown/opskrifter/internal/store"
)

func runStorage() {
	fs := flag.NewFlagSet("storage", flag.ExitOnError)
	full := fs.Bool("full", false, "Print whole values instead of a preview")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	st := openStore(cfg)
	defer st.Close()

	if err := dumpStorage(os.Stdout, st, *full); err != nil {
		st.Close()
		fatal("storage: %v", err)
	}
}

// dumpStorage prints every key with its size and a value preview.
func dumpStorage(w io.Writer, st *store.Store, full bool) error {
	entries, err := st.Entries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "Storage is empty.")
		return nil
	}
	for _, e := range entries {
		v := e.Value
		if !full {
			v = preview(v, 60)
		}
		fmt.Fprintf(w, "%-28s %7d bytes  %s\n", e.Key, len(e.Value), v)
	}
	return nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
