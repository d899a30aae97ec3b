// Package introspect turns a live engine's scope stack into the
// diagnostic formats an operator or a downstream tool needs: a
// colorized terminal dump, a YAML export, an ephemeral in-memory
// SQLite database for ad-hoc SQL inspection, and gofmt-style
// pretty-printing of a substituted Go code fragment. None of this is
// on the engine's register/search hot path; it exists purely to look
// at an *engine.Engine from the outside, the way the teacher's
// debugger_cli.go looks at a running VM from the outside.
package introspect

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"
	"golang.org/x/tools/imports"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/funxy/internal/engine"
)

// ansi color codes used by Dump when colored output is requested.
const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// Dump writes a human-readable diagnostic of every scope in e to w,
// tagged with a fresh session id so repeated invocations captured in
// the same log can be told apart. When colored is true, the table's
// own textual dump (scope headers, op-keys, code/cleared status) gets
// ANSI highlighting; StdoutIsColorCapable reports whether that should
// actually be requested for the process's stdout.
func Dump(e *engine.Engine, w io.Writer, colored bool) {
	session := uuid.New()
	fmt.Fprintf(w, "# typemap debug dump, session %s\n", session)

	if !colored {
		e.Debug(w)
		return
	}

	var raw bytes.Buffer
	e.Debug(&raw)
	colorizeDump(&raw, w)
}

// StdoutIsColorCapable reports whether the process's stdout is an
// interactive terminal that should receive ANSI-colored output,
// honouring the NO_COLOR convention the teacher's color detection
// already follows (internal/evaluator/builtins_term.go).
func StdoutIsColorCapable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// colorizeDump highlights "scope N:" headers in yellow and "(code)"
// / "(cleared)" status markers in green/dim, leaving everything else
// untouched, and writes the result to w.
func colorizeDump(raw *bytes.Buffer, w io.Writer) {
	for {
		line, err := raw.ReadString('\n')
		if line == "" && err != nil {
			return
		}
		fmt.Fprint(w, colorizeLine(line))
		if err != nil {
			return
		}
	}
}

func colorizeLine(line string) string {
	switch {
	case len(line) >= 6 && line[:6] == "scope ":
		return ansiYellow + line[:len(line)-1] + ansiReset + "\n"
	case bytes.Contains([]byte(line), []byte("(code)")):
		return ansiGreen + line[:len(line)-1] + ansiReset + "\n"
	case bytes.Contains([]byte(line), []byte("(cleared)")):
		return ansiDim + line[:len(line)-1] + ansiReset + "\n"
	default:
		return line
	}
}

// exportedEntry is the YAML/SQLite projection of one registered
// typemap, built on top of the engine's structured Entries snapshot
// rather than re-parsing Dump's text output.
type exportedEntry struct {
	Scope  int    `yaml:"scope"`
	Header string `yaml:"header"`
	OpKey  string `yaml:"op_key"`
	Op     string `yaml:"op"`
	Status string `yaml:"status"`
}

// collectEntries flattens e's scope stack into the YAML/SQLite
// projection, deriving Header from the Snapshot's type/name the same
// way Dump's colorized text labels a bucket.
func collectEntries(e *engine.Engine) []exportedEntry {
	snaps := e.Entries()
	out := make([]exportedEntry, 0, len(snaps))
	for _, s := range snaps {
		header := s.Type
		if s.Name != "" {
			header += " " + s.Name
		}
		out = append(out, exportedEntry{
			Scope:  s.Scope,
			Header: header,
			OpKey:  s.OpKey,
			Op:     s.Op,
			Status: s.Status,
		})
	}
	return out
}

// ExportYAML renders every scope's registered entries as a YAML
// document, for capturing a snapshot of an engine's state outside the
// process.
func ExportYAML(e *engine.Engine) ([]byte, error) {
	entries := collectEntries(e)
	return yaml.Marshal(entries)
}

// ExportSQLite loads every scope's registered entries into a single
// table of a fresh, process-lifetime, in-memory SQLite database so an
// operator can run ad-hoc SQL over a snapshot of engine state. The
// database is never written to disk and does not outlive the caller;
// it is not typemap storage, only a debug side-channel (spec.md's
// no-persistence non-goal binds the engine itself, not this sidecar).
// The caller owns the returned *sql.DB and must Close it.
func ExportSQLite(e *engine.Engine) (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("introspect: opening in-memory sqlite: %w", err)
	}

	const schema = `CREATE TABLE typemap_entries (
		scope  INTEGER NOT NULL,
		header TEXT NOT NULL,
		op_key TEXT NOT NULL,
		op     TEXT NOT NULL,
		status TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("introspect: creating typemap_entries: %w", err)
	}

	stmt, err := db.Prepare(`INSERT INTO typemap_entries (scope, header, op_key, op, status) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("introspect: preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, en := range collectEntries(e) {
		if _, err := stmt.Exec(en.Scope, en.Header, en.OpKey, en.Op, en.Status); err != nil {
			db.Close()
			return nil, fmt.Errorf("introspect: inserting entry: %w", err)
		}
	}
	return db, nil
}

// FormatGoFragment gofmt-formats and import-fixes a substituted code
// fragment emitted by a binding generator built on this engine (most
// registered typemaps target C/C++, but a generator producing Go glue
// code wants its emitted fragments readable). Fragments that are not
// valid standalone Go are returned unchanged, since a typemap's code
// string is free-form target-language text, not guaranteed Go.
func FormatGoFragment(code string) (string, error) {
	formatted, err := imports.Process("", []byte(code), nil)
	if err != nil {
		return code, fmt.Errorf("introspect: formatting fragment: %w", err)
	}
	return string(formatted), nil
}
