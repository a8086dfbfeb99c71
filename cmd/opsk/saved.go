package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/abelbrown/opskrifter/internal/render"
	"github.com/abelbrown/opskrifter/internal/saved"
)

const savedUsage = "usage: opsk saved list | add [--title T] [--image I] <url> | remove <url> | clear"

var errSavedUsage = errors.New(savedUsage)

func runSaved() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, savedUsage)
		os.Exit(1)
	}

	cfg := loadConfig()
	list, closeFn := openSaved(cfg)
	defer closeFn()

	if err := savedCommand(os.Stdout, list, os.Args[1], os.Args[2:]); err != nil {
		closeFn()
		if errors.Is(err, errSavedUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fatal("%v", err)
	}
}

// savedCommand runs one saved-list subcommand against list.
func savedCommand(w io.Writer, list *saved.Store, sub string, args []string) error {
	switch sub {
	case "list":
		printSaved(w, list.List())

	case "add":
		fs := flag.NewFlagSet("saved add", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		title := fs.String("title", "", "Recipe title")
		image := fs.String("image", "", "Image URL")
		if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
			return errSavedUsage
		}
		items, err := list.Add(saved.Item{Title: *title, URL: fs.Arg(0), Image: *image})
		if err != nil {
			return fmt.Errorf("add: %w", err)
		}
		printSaved(w, items)

	case "remove":
		if len(args) != 1 {
			return errSavedUsage
		}
		snap, err := list.Remove(args[0])
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		printSaved(w, snap.Items)

	case "clear":
		if _, err := list.Clear(); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		fmt.Fprintln(w, "Saved list cleared.")

	default:
		return fmt.Errorf("unknown subcommand %q: %w", sub, errSavedUsage)
	}
	return nil
}

func printSaved(w io.Writer, items []saved.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No saved recipes.")
		return
	}
	for i, it := range items {
		fmt.Fprintf(w, "%3d. %-40s %s\n", i+1, render.Text(it.Title), render.Text(it.URL))
	}
	fmt.Fprintf(w, "\n%d / %d saved\n", len(items), saved.MaxItems)
}
