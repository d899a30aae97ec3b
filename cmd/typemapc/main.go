// Command typemapc drives a typemap engine from a YAML manifest file,
// standing in for the real `%typemap` directive parser a C front-end
// would otherwise attach (spec.md section 1 puts that parser out of
// scope). Usage mirrors the teacher's own CLI: a single subcommand
// string-matched in main, no flag-parsing framework.
package main

import (
	"fmt"
	"os"

	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/engine"
	"github.com/funvibe/funxy/internal/introspect"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [args]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <manifest.yaml>          run directives from a manifest, print to stdout")
	fmt.Fprintln(os.Stderr, "  export-yaml <manifest.yaml>  run a manifest, then dump the final table as YAML")
	fmt.Fprintln(os.Stderr, "  export-sqlite <manifest.yaml> run a manifest, print the row count of an in-memory SQLite export")
	fmt.Fprintln(os.Stderr, "  help                         show this message")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "typemapc: internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-help", "--help":
		usage()
	case "run":
		handleRun()
	case "export-yaml":
		handleExportYAML()
	case "export-sqlite":
		handleExportSQLite()
	default:
		fmt.Fprintf(os.Stderr, "typemapc: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func buildEngine() *engine.Engine {
	cfg, err := config.Load("typemapc.yaml")
	if err != nil {
		fatalf("typemapc: loading config: %v", err)
	}
	return engine.New(cfg)
}

func handleRun() {
	if len(os.Args) < 3 {
		fatalf("Usage: %s run <manifest.yaml>", os.Args[0])
	}
	dirs, err := loadManifest(os.Args[2])
	if err != nil {
		fatalf("%v", err)
	}
	e := buildEngine()
	if err := runManifest(e, dirs, os.Stdout); err != nil {
		fatalf("%v", err)
	}
}

func handleExportYAML() {
	if len(os.Args) < 3 {
		fatalf("Usage: %s export-yaml <manifest.yaml>", os.Args[0])
	}
	dirs, err := loadManifest(os.Args[2])
	if err != nil {
		fatalf("%v", err)
	}
	e := buildEngine()
	if err := runManifest(e, dirs, os.Stderr); err != nil {
		fatalf("%v", err)
	}
	out, err := introspect.ExportYAML(e)
	if err != nil {
		fatalf("typemapc: exporting yaml: %v", err)
	}
	os.Stdout.Write(out)
}

func handleExportSQLite() {
	if len(os.Args) < 3 {
		fatalf("Usage: %s export-sqlite <manifest.yaml>", os.Args[0])
	}
	dirs, err := loadManifest(os.Args[2])
	if err != nil {
		fatalf("%v", err)
	}
	e := buildEngine()
	if err := runManifest(e, dirs, os.Stderr); err != nil {
		fatalf("%v", err)
	}

	db, err := introspect.ExportSQLite(e)
	if err != nil {
		fatalf("typemapc: exporting sqlite: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM typemap_entries`).Scan(&count); err != nil {
		fatalf("typemapc: querying sqlite export: %v", err)
	}
	fmt.Printf("typemap_entries: %d rows\n", count)
}
