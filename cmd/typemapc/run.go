package main

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/funxy/internal/engine"
	"github.com/funvibe/funxy/internal/introspect"
	"github.com/funvibe/funxy/internal/pipeline"
)

// validateStage checks every directive's op against the known set
// before anything runs, so a manifest with one typo reports every bad
// directive instead of stopping at the first.
type validateStage struct {
	dirs []directive
}

func (v validateStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	for _, d := range v.dirs {
		if !knownOps[d.Op] {
			ctx.AddDiagnostic("validate", fmt.Sprintf("unknown directive op %q", d.Op))
		}
	}
	return ctx
}

// executeStage runs every directive against the engine in order,
// stopping at the first one that errors (unlike validateStage,
// execution has ordering dependencies a manifest author relies on:
// register before search, push_scope before the scope it opens).
type executeStage struct {
	e    *engine.Engine
	dirs []directive
	out  io.Writer
}

func (x executeStage) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Diagnostics) > 0 {
		return ctx
	}
	sink := newCounterSink()
	for i, d := range x.dirs {
		if err := runOne(x.e, d, sink, x.out); err != nil {
			ctx.Err = fmt.Errorf("typemapc: directive %d (%s): %w", i, d.Op, err)
			return ctx
		}
	}
	return ctx
}

// runManifest validates then executes every directive in dirs
// against e, writing operator-facing output to out.
func runManifest(e *engine.Engine, dirs []directive, out io.Writer) error {
	directives := make([]pipeline.Directive, len(dirs))
	for i, d := range dirs {
		directives[i] = d
	}

	ctx := pipeline.NewPipelineContext(directives, out)
	p := pipeline.New(validateStage{dirs: dirs}, executeStage{e: e, dirs: dirs, out: out})
	result := p.Run(ctx)

	if len(result.Diagnostics) > 0 {
		for _, diag := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "typemapc: %s: %s\n", diag.Stage, diag.Message)
		}
		return fmt.Errorf("typemapc: manifest failed validation (%d issue(s))", len(result.Diagnostics))
	}
	return result.Err
}

func runOne(e *engine.Engine, d directive, sink *counterSink, out io.Writer) error {
	switch d.Op {
	case "register":
		return e.Register(d.OpName, toParams(d.Parms), d.Code, d.toLocals(), d.toKwargs())

	case "copy":
		return e.Copy(d.OpName, toParams(d.Parms), toParams(d.Dest))

	case "clear":
		e.Clear(d.OpName, toParams(d.Parms))
		return nil

	case "apply":
		return e.Apply(toParams(d.Parms), toParams(d.Dest))

	case "clear_apply":
		e.ClearApply(toParams(d.Parms))
		return nil

	case "search":
		entry, ok := e.Search(d.OpName, parseType(d.Type), d.Name)
		if !ok {
			fmt.Fprintf(out, "search(%s, %s, %s): no match\n", d.OpName, d.Type, d.Name)
			return nil
		}
		fmt.Fprintf(out, "search(%s, %s, %s): %s\n", d.OpName, d.Type, d.Name, entry.Code)
		return nil

	case "lookup":
		code, ok := e.Lookup(d.OpName, parseType(d.Type), d.Name, d.LName, d.Source, d.Target, sink)
		if !ok {
			fmt.Fprintf(out, "lookup(%s, %s, %s): no match\n", d.OpName, d.Type, d.Name)
			return nil
		}
		fmt.Fprintf(out, "lookup(%s, %s, %s): %s\n", d.OpName, d.Type, d.Name, code)
		return nil

	case "push_scope":
		return e.PushScope()

	case "pop_scope":
		if _, ok := e.PopScope(); !ok {
			fmt.Fprintln(out, "pop_scope: already at scope 0, ignored")
		}
		return nil

	case "except_register":
		e.ExceptRegister(d.Code)
		return nil

	case "except_lookup":
		code, ok := e.ExceptLookup()
		if !ok {
			fmt.Fprintln(out, "except_lookup: no %except block in scope")
			return nil
		}
		fmt.Fprintf(out, "except_lookup: %s\n", code)
		return nil

	case "except_clear":
		e.ExceptClear()
		return nil

	case "debug":
		introspect.Dump(e, out, d.Colored)
		return nil

	default:
		return fmt.Errorf("unknown directive op %q", d.Op)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
