package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funxy/internal/registry"
)

// parm is one manifest-described parameter: a type spelling plus an
// optional name. It mirrors registry.Param one field at a time so a
// manifest author never has to know about ctype.Type's concrete
// shapes.
type parm struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

func (p parm) toParam() registry.Param {
	return registry.Param{Type: parseType(p.Type), Name: p.Name}
}

func toParams(parms []parm) []registry.Param {
	out := make([]registry.Param, len(parms))
	for i, p := range parms {
		out[i] = p.toParam()
	}
	return out
}

// local mirrors registry.Local for manifest authors.
type local struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Init string `yaml:"init"`
}

// kwarg mirrors registry.KwArg for manifest authors.
type kwarg struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// directive is one manifest entry (spec.md section 6's operation
// table, fields flattened into a single struct since YAML has no
// sum-type notation). Op selects which fields apply; unused fields
// are simply left zero.
type directive struct {
	Op string `yaml:"op"`

	OpName string `yaml:"op_name"`
	Parms  []parm `yaml:"parms"`
	Dest   []parm `yaml:"dest"`
	Code   string `yaml:"code"`
	Locals []local `yaml:"locals"`
	Kwargs []kwarg `yaml:"kwargs"`

	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	LName string `yaml:"lname"`

	Source string `yaml:"source"`
	Target string `yaml:"target"`

	Colored bool `yaml:"colored"`
}

// Describe implements pipeline.Directive, identifying this directive
// in diagnostics emitted by the validate stage.
func (d directive) Describe() string {
	if d.OpName != "" {
		return d.Op + "(" + d.OpName + ")"
	}
	return d.Op
}

var knownOps = map[string]bool{
	"register": true, "copy": true, "clear": true, "apply": true,
	"clear_apply": true, "search": true, "lookup": true,
	"push_scope": true, "pop_scope": true,
	"except_register": true, "except_lookup": true, "except_clear": true,
	"debug": true,
}

func (d directive) toLocals() []registry.Local {
	out := make([]registry.Local, len(d.Locals))
	for i, l := range d.Locals {
		out[i] = registry.Local{Name: l.Name, Type: l.Type, Init: l.Init}
	}
	return out
}

func (d directive) toKwargs() []registry.KwArg {
	out := make([]registry.KwArg, len(d.Kwargs))
	for i, k := range d.Kwargs {
		out[i] = registry.KwArg{Name: k.Name, Value: k.Value}
	}
	return out
}

// loadManifest reads and parses a YAML manifest file: a top-level
// list of directives executed in order.
func loadManifest(path string) ([]directive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("typemapc: reading manifest: %w", err)
	}
	var dirs []directive
	if err := yaml.Unmarshal(data, &dirs); err != nil {
		return nil, fmt.Errorf("typemapc: parsing manifest: %w", err)
	}
	return dirs, nil
}
