package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abelbrown/opskrifter/internal/catalog"
	"github.com/abelbrown/opskrifter/internal/render"
	"github.com/abelbrown/opskrifter/internal/search"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

type searchOptions struct {
	query      string
	categories []string
	tags       []string
	file       string
	facets     bool
}

func parseSearchArgs(args []string) (searchOptions, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	var cats, tags multiFlag
	fs.Var(&cats, "category", "Require one of these categories (repeatable)")
	fs.Var(&tags, "tag", "Require one of these tags (repeatable)")
	file := fs.String("file", "", "Read the catalog from a local JSON file instead of the site")
	facets := fs.Bool("facets", false, "Print the facet labels instead of results")
	if err := fs.Parse(args); err != nil {
		return searchOptions{}, err
	}
	return searchOptions{
		query:      strings.Join(fs.Args(), " "),
		categories: cats,
		tags:       tags,
		file:       *file,
		facets:     *facets,
	}, nil
}

func runSearch() {
	opts, err := parseSearchArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	cfg := loadConfig()

	var recipes []catalog.Recipe
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			fatal("read catalog: %v", err)
		}
		recipes = catalog.Decode(data)
	} else {
		loader := catalog.NewLoader(cfg.CatalogURL(), cfg.FetchTimeout())
		recipes, err = loader.Load(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (continuing with an empty catalog)\n", err)
		}
	}

	if opts.facets {
		writeFacets(os.Stdout, search.BuildFacets(recipes))
		return
	}
	writeSearch(os.Stdout, opts, recipes)
}

func writeFacets(w io.Writer, f search.Facets) {
	fmt.Fprintf(w, "Categories (%d): %s\n", len(f.Categories), strings.Join(f.Categories, ", "))
	fmt.Fprintf(w, "Tags (%d): %s\n", len(f.Tags), strings.Join(f.Tags, ", "))
}

// writeSearch runs the engine over recipes and prints one line per match.
func writeSearch(w io.Writer, opts searchOptions, recipes []catalog.Recipe) {
	results := search.Filter(recipes, opts.query, search.NewSet(opts.categories...), search.NewSet(opts.tags...))
	fmt.Fprintln(w, render.Heading(opts.query, true))
	fmt.Fprintln(w, strings.Repeat("=", 60))
	if len(results) == 0 {
		fmt.Fprintln(w, "No recipes match your search.")
		return
	}
	for _, r := range results {
		line := render.Title(r)
		if meta := render.Meta(r); meta != "" {
			line += "  (" + meta + ")"
		}
		fmt.Fprintf(w, "%-50s %s\n", line, render.Text(r.URL))
	}
	fmt.Fprintf(w, "\n%d of %d recipes\n", len(results), len(recipes))
}
