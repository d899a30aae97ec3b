// Package match implements the fallback lookup the wrapper emitter
// uses to find the most specific typemap for a given (op, type,
// name?): spec.md section 4.4 (Matcher) and section 4.5
// (Multi-matcher).
package match

import (
	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/registry"
	"github.com/funvibe/funxy/internal/typekey"
)

// exactBoth tries the name-keyed lookup first (if name is non-empty),
// then the type-only lookup, updating result/backup per the rules in
// Search. It returns the code-carrying entry if one was found (the
// caller should stop searching immediately in that case), else nil.
func exactBoth(t *registry.Table, ts int, op string, typ ctype.Type, name string, backup **registry.Entry) *registry.Entry {
	if name != "" {
		if e, ok := t.ExactAt(ts, op, typ, name); ok {
			if e.HasCode {
				return e
			}
			*backup = e
		}
	}
	if e, ok := t.ExactAt(ts, op, typ, ""); ok {
		if e.HasCode {
			return e
		}
		*backup = e
	}
	return nil
}

// Search returns the most specific entry carrying code for (op, typ,
// name), walking the fallback ladder of spec.md section 4.4. It
// returns the absent value if nothing at all (not even a cleared
// entry) was found. defaultType is the external type module's
// catch-all sentinel (ctype.Default(...)).
func Search(t *registry.Table, op string, typ ctype.Type, name string, defaultType ctype.Type) (*registry.Entry, bool) {
	var backup *registry.Entry

	for ts := t.CurrentIndex(); ts >= 0; ts-- {
		cur := typ
		for {
			if e := exactBoth(t, ts, op, cur, name, &backup); e != nil {
				return e, true
			}

			if ctype.IsArray(cur) {
				noArr := ctype.NoArrays(cur)
				if e := exactBoth(t, ts, op, noArr, name, &backup); e != nil {
					return e, true
				}
			}

			if ctype.HasQualifiers(cur) {
				cur = ctype.StripQualifiers(cur)
				continue
			}
			if resolved, ok := ctype.TypedefResolve(cur); ok {
				cur = resolved
				continue
			}
			break
		}

		if e := exactBoth(t, ts, op, defaultType, name, &backup); e != nil {
			return e, true
		}
	}

	if backup != nil {
		return backup, true
	}
	return nil, false
}

// SearchMulti extends Search to a tuple of parameters (spec.md
// section 4.5), finding the longest prefix of parms whose terminal
// entry carries code. It returns the matched entry and how many
// leading parameters it consumes; (nil, 0) if parms[0] alone has no
// match.
func SearchMulti(t *registry.Table, op string, parms []registry.Param, defaultType ctype.Type) (*registry.Entry, int) {
	if len(parms) == 0 {
		return nil, 0
	}
	first := parms[0]
	tm, ok := Search(t, op, first.Type, first.Name, defaultType)
	if !ok {
		return nil, 0
	}

	rest := parms[1:]
	if len(rest) == 0 {
		if tm.HasCode {
			return tm, 1
		}
		return nil, 0
	}

	nestedOp := op + typekey.Suffix(ctype.Str(first.Type), first.Name)
	if nested, n := SearchMulti(t, nestedOp, rest, defaultType); nested != nil {
		tm = nested
		if tm.HasCode {
			return tm, n + 1
		}
		return nil, 0
	}

	if tm.HasCode {
		return tm, 1
	}
	return nil, 0
}
