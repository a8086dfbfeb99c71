// Command opsk is the opskrifter maintenance CLI.
//
// Usage:
//
//	opsk                          Show help
//	opsk search <query>           Run the catalog search engine
//	opsk saved list               Print the saved recipes
//	opsk saved add <url>          Save a recipe
//	opsk saved remove <url>       Remove a saved recipe
//	opsk saved clear              Delete the saved list
//	opsk storage                  Dump the local key/value storage
//	opsk export -o saved.xlsx     Export the saved list to a spreadsheet
//	opsk events                   JSONL event log viewer
package main

import (
	"fmt"
	"os"
)

const usage = `opsk - opskrifter maintenance CLI

Usage:
  opsk <command> [flags]

Commands:
  search      Run the search engine against the catalog
  saved       List, add, remove or clear saved recipes
  storage     Dump the local key/value storage
  export      Write the saved list to an .xlsx file
  events      JSONL event log viewer

Environment:
  OPSKRIFTER_BASE_URL   Site the catalog is fetched from
  OPSKRIFTER_DB         Path to the local database
  OPSKRIFTER_LOG_DIR    Log directory

Run 'opsk <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "search":
		runSearch()
	case "saved":
		runSaved()
	case "export":
		runExport()
	case "storage":
		runStorage()
	case "events":
		runEvents()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "opsk: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
