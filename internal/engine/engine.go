// Package engine is the typemap engine's façade (spec.md section 6):
// it composes internal/registry, internal/match, internal/substitute,
// internal/locals and internal/ctype behind the single explicit handle
// the DESIGN NOTES in spec.md section 9 call for ("pass an engine
// handle explicitly rather than rely on a singleton"), the same way
// the teacher passes its *evaluator.Interpreter around rather than
// reaching for package-level state.
package engine

import (
	"io"

	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/registry"
)

// Engine owns one scope-stacked typemap table plus the remember set
// its substitutions feed. A program that needs more than one
// independent typemap universe (e.g. one per target language) creates
// one Engine per universe; nothing here is shared between them.
type Engine struct {
	table      *registry.Table
	remembered *ctype.Remembered
	cfg        config.Config
}

// New creates an Engine with an empty scope 0.
func New(cfg config.Config) *Engine {
	return &Engine{
		table:      registry.NewTable(cfg.MaxScope),
		remembered: ctype.NewRemembered(),
		cfg:        cfg,
	}
}

// Init resets the Engine's scope stack to a single empty scope 0, per
// spec.md section 6's `init` operation. The remember set is left
// alone: it tracks what the target-language binding has been told
// about, which outlives any one typemap registration.
func (e *Engine) Init() {
	e.table.Init()
}

func (e *Engine) defaultType() ctype.Type {
	return ctype.Default(e.cfg.DefaultTypeName)
}

// Remembered exposes the set of types the substituter has reported
// via a $descriptor-family placeholder, for a binding generator that
// needs to emit one type-registration call per distinct type.
func (e *Engine) Remembered() *ctype.Remembered {
	return e.remembered
}

// Config returns the configuration this Engine was built with.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// PushScope installs a fresh, empty scope on top of the stack.
func (e *Engine) PushScope() error {
	return e.table.PushScope()
}

// PopScope removes the current scope, unless it is scope 0.
func (e *Engine) PopScope() (map[string]bool, bool) {
	return e.table.PopScope()
}

// Register stores a typemap in the current scope.
func (e *Engine) Register(op string, parms []registry.Param, code string, locals []registry.Local, kwargs []registry.KwArg) error {
	return e.table.Register(op, parms, code, locals, kwargs)
}

// Copy re-registers an existing typemap under a new parameter
// signature.
func (e *Engine) Copy(op string, srcparms, destparms []registry.Param) error {
	return e.table.Copy(op, srcparms, destparms)
}

// Clear strips code/locals/kwargs from a typemap's stored shell.
func (e *Engine) Clear(op string, parms []registry.Param) {
	e.table.Clear(op, parms)
}

// Apply bulk-copies every typemap registered against src onto dest.
func (e *Engine) Apply(src, dest []registry.Param) error {
	return e.table.Apply(src, dest)
}

// ClearApply strips every entry Apply would have copied.
func (e *Engine) ClearApply(parms []registry.Param) {
	e.table.ClearApply(parms)
}

// ExceptRegister sets the current scope's %except code block.
func (e *Engine) ExceptRegister(code string) {
	e.table.ExceptRegister(code)
}

// ExceptLookup returns the current scope's %except code block; outer
// scopes are not consulted (see internal/registry/registry_except.go).
func (e *Engine) ExceptLookup() (string, bool) {
	return e.table.ExceptLookup()
}

// ExceptClear removes the current scope's %except code block.
func (e *Engine) ExceptClear() {
	e.table.ExceptClear()
}

// Debug writes a human diagnostic dump of every scope to w.
func (e *Engine) Debug(w io.Writer) {
	e.table.DumpTo(w)
}

// Entries returns a structured snapshot of every registered bucket
// slot across every scope, for tooling that needs more than the
// textual Debug dump (YAML/SQL export, colorized rendering).
func (e *Engine) Entries() []registry.Snapshot {
	return e.table.Entries()
}
