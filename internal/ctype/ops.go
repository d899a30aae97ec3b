package ctype

import (
	"fmt"
	"strings"
	"sync"
)

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := t.(Array)
	return ok
}

// ArrayNDim returns the number of array dimensions of t, or 0 if t is
// not an array.
func ArrayNDim(t Type) int {
	a, ok := t.(Array)
	if !ok {
		return 0
	}
	return len(a.Dims)
}

// ArrayGetDim returns the k-th dimension of t as its textual form
// ("ANY" for an unspecified dimension). Out-of-range k returns "".
func ArrayGetDim(t Type, k int) string {
	a, ok := t.(Array)
	if !ok || k < 0 || k >= len(a.Dims) {
		return ""
	}
	if a.Dims[k] == ANYDim {
		return "ANY"
	}
	return fmt.Sprintf("%d", a.Dims[k])
}

// ArraySetDim returns a copy of t with its k-th dimension replaced.
// dim == ANYDim sets the dimension back to ANY.
func ArraySetDim(t Type, k int, dim int) Type {
	a, ok := t.(Array)
	if !ok || k < 0 || k >= len(a.Dims) {
		return t
	}
	dims := append([]int(nil), a.Dims...)
	dims[k] = dim
	return Array{Elem: a.Elem, Dims: dims}
}

// NoArrays replaces every dimension of t with ANY, matching the
// matcher's array-stripped fallback rung (spec.md section 4.4 step 2).
func NoArrays(t Type) Type {
	a, ok := t.(Array)
	if !ok {
		return t
	}
	dims := make([]int, len(a.Dims))
	for i := range dims {
		dims[i] = ANYDim
	}
	return Array{Elem: a.Elem, Dims: dims}
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := t.(Pointer)
	return ok
}

// DelPointer removes one level of indirection from t. If t is not a
// pointer, t is returned unchanged (the caller must consult IsPointer
// first; spec.md section 4.6 requires the $* family to stay untouched
// on non-pointer types).
func DelPointer(t Type) Type {
	p, ok := t.(Pointer)
	if !ok {
		return t
	}
	return p.Elem
}

// AddPointer wraps t in one additional level of indirection.
func AddPointer(t Type) Type {
	return Pointer{Elem: t}
}

// Base strips every Pointer/Array/Qualified wrapper, returning the
// innermost Named/Typedef.
func Base(t Type) Type {
	for {
		switch v := t.(type) {
		case Pointer:
			t = v.Elem
		case Array:
			t = v.Elem
		case Qualified:
			t = v.Elem
		default:
			return t
		}
	}
}

// LType returns the "language type" used inside generated code. The
// reference module follows the common SWIG convention that the
// language type drops cv-qualifiers.
func LType(t Type) Type {
	return StripQualifiers(t)
}

// StripQualifiers removes one Qualified wrapper from the outside of t,
// collapsing any directly nested Qualified wrappers in the same call.
// A type with no Qualified wrapper is returned unchanged.
func StripQualifiers(t Type) Type {
	q, ok := t.(Qualified)
	if !ok {
		return t
	}
	inner := q.Elem
	for {
		iq, ok := inner.(Qualified)
		if !ok {
			break
		}
		inner = iq.Elem
	}
	return inner
}

// HasQualifiers reports whether t carries cv-qualifiers.
func HasQualifiers(t Type) bool {
	_, ok := t.(Qualified)
	return ok
}

// TypedefResolve resolves one level of typedef on t. ok is false if t
// is not a typedef (the matcher's fallback loop in spec.md section 4.4
// step 4 uses this to know when to stop).
func TypedefResolve(t Type) (Type, bool) {
	td, ok := t.(Typedef)
	if !ok {
		return t, false
	}
	return td.Target, true
}

// Str renders the canonical textual form of t.
func Str(t Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}

// Manglestr produces a deterministic textual mangling of t, used to
// build $mangle/$descriptor placeholders.
func Manglestr(t Type) string {
	switch v := t.(type) {
	case nil:
		return ""
	case Named:
		return "_" + v.Name
	case Typedef:
		return "_" + v.Name
	case Pointer:
		return "_p" + Manglestr(v.Elem)
	case Array:
		var b strings.Builder
		for _, d := range v.Dims {
			if d == ANYDim {
				b.WriteString("_a_ANY")
			} else {
				fmt.Fprintf(&b, "_a%d", d)
			}
		}
		return b.String() + Manglestr(v.Elem)
	case Qualified:
		return "_q_" + strings.Join(v.Qualifiers, "_") + Manglestr(v.Elem)
	default:
		return Str(t)
	}
}

// Default is the catch-all sentinel type returned when no specific or
// fallback type matches. Its name is configurable (see
// config.Config.DefaultTypeName) but defaults to "SWIGTYPE".
func Default(name string) Type {
	if name == "" {
		name = "SWIGTYPE"
	}
	return Named{Name: name}
}

// Remembered tracks every type the engine has been asked to remember
// via the $descriptor/$&descriptor/... placeholder family (spec.md
// section 4.6). It is owned by an Engine, not global, so that two
// engines in the same process never share remember state.
type Remembered struct {
	mu   sync.Mutex
	seen map[string]Type
}

// NewRemembered creates an empty remember set.
func NewRemembered() *Remembered {
	return &Remembered{seen: make(map[string]Type)}
}

// Remember records t, keyed by its mangled form. It is idempotent.
func (r *Remembered) Remember(t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[Manglestr(t)] = t
}

// All returns every remembered type's mangled key.
func (r *Remembered) All() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.seen))
	for k := range r.seen {
		keys = append(keys, k)
	}
	return keys
}

// Count returns how many distinct types have been remembered.
func (r *Remembered) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
