package registry

import (
	"fmt"

	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/typekey"
)

// prefixSuffix walks the first len(parms)-1 parameters of a
// multi-argument typemap, accumulating the op-key suffix (spec.md
// section 4.3). When create is true, it also creates the container
// type/name nodes for those parameters and, at each one, a code-less
// marker entry keyed by the op-key accumulated so far ("Intermediate
// parameters create the container nodes only; they do not store
// code", spec.md section 3) — this is what lets search_multi's
// recursive walk (spec.md section 4.5) find "something" at an
// intermediate parameter and keep descending, without that something
// ever carrying code of its own. When create is false, it reports
// ok=false as soon as a node is missing, without creating anything —
// the lookup path copy/apply use to confirm a registration exists at
// a scope.
func prefixSuffix(tt typeTable, op string, parms []Param, create bool) (suffix string, ok bool) {
	opKey := typekey.OpKey(op)
	for i := 0; i < len(parms)-1; i++ {
		p := parms[i]
		typ := ctype.Str(p.Type)

		node, exists := tt[typ]
		if !exists {
			if !create {
				return "", false
			}
			node = newTypeNode()
			tt[typ] = node
		}
		var b bucket
		if create {
			b = node.bucketFor(p.Name)
		} else {
			var bok bool
			b, bok = node.peekBucket(p.Name)
			if !bok {
				return "", false
			}
		}

		markerKey := opKey + suffix
		if create {
			if _, exists := b[markerKey]; !exists {
				b[markerKey] = &Entry{Type: p.Type, PName: p.Name}
			}
		} else if _, exists := b[markerKey]; !exists {
			return "", false
		}

		suffix += typekey.Suffix(typ, p.Name)
	}
	return suffix, true
}

// lastBucket returns the bucket belonging to parms' final parameter,
// creating the type/name container nodes on demand when create is
// true.
func lastBucket(tt typeTable, last Param, create bool) (bucket, bool) {
	typ := ctype.Str(last.Type)
	node, exists := tt[typ]
	if !exists {
		if !create {
			return nil, false
		}
		node = newTypeNode()
		tt[typ] = node
	}
	if create {
		return node.bucketFor(last.Name), true
	}
	return node.peekBucket(last.Name)
}

func cloneLocals(locals []Local) []Local {
	return append([]Local(nil), locals...)
}

func cloneKwargs(kwargs []KwArg) []KwArg {
	return append([]KwArg(nil), kwargs...)
}

// Register stores code (plus deep copies of locals and kwargs) for
// op against the parameter tuple parms, in the table's current scope.
// parms must be non-empty.
func (t *Table) Register(op string, parms []Param, code string, locals []Local, kwargs []KwArg) error {
	if len(parms) == 0 {
		return fmt.Errorf("typemap: Register requires at least one parameter")
	}
	sc := t.scopes[t.CurrentIndex()]

	suffix, ok := prefixSuffix(sc.types, op, parms, true)
	if !ok {
		return fmt.Errorf("typemap: Register: impossible state while creating prefix nodes")
	}

	last := parms[len(parms)-1]
	b, ok := lastBucket(sc.types, last, true)
	if !ok {
		return fmt.Errorf("typemap: Register: impossible state while creating terminal node")
	}

	key := typekey.OpKey(op) + suffix
	b[key] = &Entry{
		Code:    code,
		HasCode: true,
		Type:    last.Type,
		PName:   last.Name,
		Typemap: fmt.Sprintf("typemap(%s) %s %s", op, ctype.Str(last.Type), last.Name),
		Locals:  cloneLocals(locals),
		Kwargs:  cloneKwargs(kwargs),
	}
	return nil
}

// findChain looks up the entry registered for (op, parms) in scope sc
// without creating anything; it mirrors Register's walk read-only.
func findChain(sc *scope, op string, parms []Param) (*Entry, bool) {
	if len(parms) == 0 {
		return nil, false
	}
	suffix, ok := prefixSuffix(sc.types, op, parms, false)
	if !ok {
		return nil, false
	}
	last := parms[len(parms)-1]
	b, ok := lastBucket(sc.types, last, false)
	if !ok {
		return nil, false
	}
	e, ok := b[typekey.OpKey(op)+suffix]
	return e, ok
}

// Copy finds the entry registered for (op, srcparms) in the nearest
// scope (current scope down to 0) and re-registers it under
// destparms in the current scope. It requires len(srcparms) ==
// len(destparms).
func (t *Table) Copy(op string, srcparms, destparms []Param) error {
	if len(srcparms) != len(destparms) {
		return ErrArityMismatch
	}
	for ts := t.CurrentIndex(); ts >= 0; ts-- {
		sc := t.scopes[ts]
		entry, ok := findChain(sc, op, srcparms)
		if !ok {
			continue
		}
		return t.Register(op, destparms, entry.Code, entry.Locals, entry.Kwargs)
	}
	return fmt.Errorf("typemap: Copy: %s not found for source signature", op)
}

// Clear strips Code/Locals/Kwargs from the entry registered for
// (op, parms) in the current scope, leaving the bucket slot in place.
// It is a silent no-op if the chain does not exist.
func (t *Table) Clear(op string, parms []Param) {
	sc := t.scopes[t.CurrentIndex()]
	entry, ok := findChain(sc, op, parms)
	if !ok {
		return
	}
	entry.Code = ""
	entry.HasCode = false
	entry.Locals = nil
	entry.Kwargs = nil
}
