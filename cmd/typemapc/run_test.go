package main

import (
	"strings"
	"testing"

	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/engine"
)

func newTestEngine() *engine.Engine {
	return engine.New(config.Default())
}

func TestRunManifestRegisterThenSearch(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{
		{
			Op:     "register",
			OpName: "in",
			Parms:  []parm{{Type: "int", Name: "x"}},
			Code:   "$1 = PyInt_AsLong($input);",
		},
		{
			Op:     "search",
			OpName: "in",
			Type:   "int",
			Name:   "x",
		},
	}

	var out strings.Builder
	if err := runManifest(e, dirs, &out); err != nil {
		t.Fatalf("runManifest: %v", err)
	}
	if !strings.Contains(out.String(), "PyInt_AsLong") {
		t.Errorf("search output missing registered code: %q", out.String())
	}
}

func TestRunManifestLookupSubstitutesPlaceholders(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{
		{
			Op:     "register",
			OpName: "in",
			Parms:  []parm{{Type: "int", Name: "x"}},
			Code:   "$1 = PyInt_AsLong(arg);",
		},
		{
			Op:     "lookup",
			OpName: "in",
			Type:   "int",
			Name:   "x",
			LName:  "lx",
		},
	}
	var out strings.Builder
	if err := runManifest(e, dirs, &out); err != nil {
		t.Fatalf("runManifest: %v", err)
	}
	if !strings.Contains(out.String(), "lx = PyInt_AsLong(arg);") {
		t.Errorf("lookup output = %q, want $1 substituted to lx", out.String())
	}
}

func TestRunManifestScopePushPop(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{
		{Op: "register", OpName: "in", Parms: []parm{{Type: "int"}}, Code: "scope0"},
		{Op: "push_scope"},
		{Op: "register", OpName: "in", Parms: []parm{{Type: "int"}}, Code: "scope1"},
		{Op: "search", OpName: "in", Type: "int"},
		{Op: "pop_scope"},
		{Op: "search", OpName: "in", Type: "int"},
	}
	var out strings.Builder
	if err := runManifest(e, dirs, &out); err != nil {
		t.Fatalf("runManifest: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 search result lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "scope1") {
		t.Errorf("first search should hit scope 1, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "scope0") {
		t.Errorf("second search (after pop) should hit scope 0, got %q", lines[1])
	}
}

func TestRunManifestExceptRoundTrip(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{
		{Op: "except_register", Code: "handle(e);"},
		{Op: "except_lookup"},
		{Op: "except_clear"},
		{Op: "except_lookup"},
	}
	var out strings.Builder
	if err := runManifest(e, dirs, &out); err != nil {
		t.Fatalf("runManifest: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "handle(e);") {
		t.Errorf("first except_lookup should report registered code, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "no %except block") {
		t.Errorf("second except_lookup (after clear) should report absence, got %q", lines[1])
	}
}

func TestRunManifestUnknownOpErrors(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{{Op: "frobnicate"}}
	var out strings.Builder
	err := runManifest(e, dirs, &out)
	if err == nil {
		t.Fatalf("expected an error for an unknown directive op")
	}
	if !strings.Contains(err.Error(), "validation") {
		t.Errorf("error = %q, want it to mention validation", err.Error())
	}
}

func TestRunManifestDebugProducesDump(t *testing.T) {
	e := newTestEngine()
	dirs := []directive{
		{Op: "register", OpName: "in", Parms: []parm{{Type: "int", Name: "x"}}, Code: "c"},
		{Op: "debug"},
	}
	var out strings.Builder
	if err := runManifest(e, dirs, &out); err != nil {
		t.Fatalf("runManifest: %v", err)
	}
	if !strings.Contains(out.String(), "scope 0") {
		t.Errorf("debug directive should dump the scope stack, got %q", out.String())
	}
}
