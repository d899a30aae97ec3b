// Package ctype is a reference implementation of the C-type abstract
// syntax that the typemap engine treats as an external collaborator
// (see spec.md section 1). It exists so the engine can be exercised
// end-to-end without a real C front-end attached.
package ctype

import (
	"fmt"
	"strings"
)

// Type is the interface the matcher and substituter consume. Real
// bindings to a C/C++ front-end would implement this over their own
// AST; this package provides a small, self-contained tree.
type Type interface {
	String() string
	isType()
}

// Named is a base type or an unresolved typedef name, e.g. "int".
type Named struct {
	Name string
}

func (n Named) String() string { return n.Name }
func (Named) isType()          {}

// Pointer adds one level of indirection, e.g. "int *".
type Pointer struct {
	Elem Type
}

func (p Pointer) String() string { return p.Elem.String() + " *" }
func (Pointer) isType()          {}

// ANYDim marks an unspecified array dimension ("T[ANY]").
const ANYDim = -1

// Array represents a (possibly multi-dimensional) array type.
// A dimension equal to ANYDim renders as the literal token ANY.
type Array struct {
	Elem Type
	Dims []int
}

func (a Array) String() string {
	var b strings.Builder
	b.WriteString(a.Elem.String())
	for _, d := range a.Dims {
		if d == ANYDim {
			b.WriteString(" [ANY]")
		} else {
			fmt.Fprintf(&b, " [%d]", d)
		}
	}
	return b.String()
}
func (Array) isType() {}

// Qualified wraps a type with one or more cv-qualifiers.
type Qualified struct {
	Qualifiers []string
	Elem       Type
}

func (q Qualified) String() string {
	return strings.Join(q.Qualifiers, " ") + " " + q.Elem.String()
}
func (Qualified) isType() {}

// Typedef is a named type that resolves, one level at a time, to
// Target.
type Typedef struct {
	Name   string
	Target Type
}

func (t Typedef) String() string { return t.Name }
func (Typedef) isType()          {}

// Equal reports whether two types render identically. The matcher
// only ever compares types via their textual form, per spec.md
// section 4.4, so this is sufficient for all engine purposes.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}
