package registry

import (
	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/typekey"
)

// ExactAt performs a single, non-fallback lookup of (op, typ, name)
// in scope ts: scope[typ][name?][op] (spec.md section 4.4, step 1).
// An empty name selects the type-only (anonymous) bucket. It is the
// primitive internal/match builds its fallback ladder on top of.
func (t *Table) ExactAt(ts int, op string, typ ctype.Type, name string) (*Entry, bool) {
	sc := t.ScopeAt(ts)
	if sc == nil {
		return nil, false
	}
	node, ok := sc.types[ctype.Str(typ)]
	if !ok {
		return nil, false
	}
	b, ok := node.peekBucket(name)
	if !ok {
		return nil, false
	}
	// No preceding parameters at this rung, so the key carries no
	// suffix: the single-parameter degenerate case of a multi-argument
	// op-key.
	e, ok := b[typekey.OpKey(op)]
	return e, ok
}
