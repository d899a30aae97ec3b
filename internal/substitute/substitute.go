// Package substitute expands the placeholder language described in
// spec.md section 4.6 over a retrieved typemap's code and its
// declared locals. Per the DESIGN NOTES in spec.md section 9, this
// is implemented as a single tokenising pass over the code buffer
// that dispatches on each "$..." token against a closed table of
// placeholder kinds, rather than the fragile repeated textual-replace
// passes the original source used — this removes the failure mode
// where a user identifier like "$type_check" is partially consumed by
// the "$type" rule, while still honouring the required priority
// ordering (indexed forms before bare "$n").
package substitute

import (
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/registry"
)

// Remember is the external type module's remember hook (spec.md
// section 4.6): invoked at most once per placeholder family, and only
// if that family's placeholder actually occurred in the code.
type Remember func(ctype.Type)

// Input bundles the parameters a single substitution pass needs.
type Input struct {
	Type  ctype.Type
	PName string
	LName string
	Index int // 1-based index of this parameter within its multi-argument typemap

	Remember Remember
}

// Result applies every placeholder substitution in spec.md section
// 4.6 to code, and to every local whose declared Type still contains
// a "$" on entry. It returns new values; the caller's slice and the
// registry's stored copies are never mutated.
func Result(code string, locals []registry.Local, in Input) (string, []registry.Local) {
	toks := buildTokens(in)

	newCode := expand(code, toks)

	newLocals := make([]registry.Local, len(locals))
	for i, l := range locals {
		nl := l
		if strings.Contains(l.Type, "$") {
			nl.Type = expand(l.Type, toks)
		}
		newLocals[i] = nl
	}
	return newCode, newLocals
}

// token is one recognised "$..." placeholder and its expansion. fire,
// when non-nil, is called the first time this token is actually
// consumed by expand (used for the $descriptor family's remember
// hook).
type token struct {
	text  string
	value string
	fire  func()
}

// buildTokens enumerates every placeholder this Input can expand,
// ordered most-specific-first (longest text first) so that e.g.
// "$1_type" is matched before the bare "$1" rule — the priority
// ordering spec.md section 4.6 requires.
func buildTokens(in Input) []token {
	var toks []token
	i := strconv.Itoa(in.Index)

	addDims(&toks, in, i)
	addNames(&toks, in, i)
	addTypeFamily(&toks, in, i, "", in.Type, true)
	addTypeFamily(&toks, in, i, "*", starType(in.Type), ctype.IsPointer(in.Type))
	addTypeFamily(&toks, in, i, "&", ctype.AddPointer(in.Type), true)
	addBaseFamily(&toks, in, i)

	// Bare positional: lowest priority so it never pre-empts any
	// "$i_..." form above.
	toks = append(toks, token{text: "$" + i, value: in.LName})

	sortBySpecificity(toks)
	return toks
}

func starType(t ctype.Type) ctype.Type {
	if !ctype.IsPointer(t) {
		return nil
	}
	return ctype.DelPointer(t)
}

func addDims(toks *[]token, in Input, i string) {
	n := ctype.ArrayNDim(in.Type)
	for k := 0; k < n; k++ {
		d := ctype.ArrayGetDim(in.Type, k)
		ks := strconv.Itoa(k)
		*toks = append(*toks, token{text: "$" + i + "_dim" + ks, value: d})
		if in.Index == 1 {
			*toks = append(*toks, token{text: "$dim" + ks, value: d})
		}
	}
}

func addNames(toks *[]token, in Input, i string) {
	name := in.PName
	if name == "" {
		name = in.LName
	}
	if in.Index == 1 {
		*toks = append(*toks, token{text: "$parmname", value: name})
	}
	*toks = append(*toks, token{text: "$" + i + "_name", value: in.PName})
}

// addTypeFamily expands the $type/$ltype/$mangle/$descriptor family
// (and its $tag<i>_... indexed twin) for virtual type v. ok must be
// true for the family to be expanded at all; when false (e.g. the
// $*... family on a non-pointer type) nothing is added and those
// placeholders are left untouched in the code, per spec.md section
// 4.6.
func addTypeFamily(toks *[]token, in Input, i, tag string, v ctype.Type, ok bool) {
	if !ok || v == nil {
		return
	}
	str := ctype.Str(v)
	ltype := ctype.Str(ctype.LType(v))
	mangle := ctype.Manglestr(v)
	descriptor := "SWIGTYPE" + mangle

	add := func(suffix, value string, isDescriptor bool) {
		base := "$" + tag + suffix
		indexed := "$" + tag + i + "_" + suffix

		var fire func()
		if isDescriptor && in.Remember != nil {
			fired := false
			fire = func() {
				if !fired {
					fired = true
					in.Remember(v)
				}
			}
		}
		*toks = append(*toks, token{text: indexed, value: value, fire: fire})
		if in.Index == 1 {
			*toks = append(*toks, token{text: base, value: value, fire: fire})
		}
	}

	add("type", str, false)
	add("ltype", ltype, false)
	add("mangle", mangle, false)
	add("descriptor", descriptor, true)
}

// addBaseFamily expands $basetype/$basemangle for V = base(type). Unlike
// the "*"/"&" families, the index goes in front of the fused word
// ("$i_basetype", not "$base<i>_type") and there is no ltype or
// descriptor form, per spec.md section 4.6.
func addBaseFamily(toks *[]token, in Input, i string) {
	v := ctype.Base(in.Type)
	if v == nil {
		return
	}
	str := ctype.Str(v)
	mangle := ctype.Manglestr(v)

	add := func(word, value string) {
		*toks = append(*toks, token{text: "$" + i + "_" + word, value: value})
		if in.Index == 1 {
			*toks = append(*toks, token{text: "$" + word, value: value})
		}
	}
	add("basetype", str)
	add("basemangle", mangle)
}

func sortBySpecificity(toks []token) {
	// Longer text first, so e.g. "$1_type" is tried before "$1". A
	// simple insertion sort keeps this readable; token lists here are
	// always small (a couple dozen entries at most).
	for i := 1; i < len(toks); i++ {
		for j := i; j > 0 && len(toks[j].text) > len(toks[j-1].text); j-- {
			toks[j], toks[j-1] = toks[j-1], toks[j]
		}
	}
}

// expand performs a single left-to-right tokenising pass over s,
// testing each outstanding "$" occurrence against toks (longest-first)
// and copying through anything that doesn't match any placeholder —
// including a lone "$" or a partially-matching user identifier like
// "$type_check", which the identContinues guard protects.
func expand(s string, toks []token) string {
	var out strings.Builder

	i := 0
	for i < len(s) {
		if s[i] != '$' {
			out.WriteByte(s[i])
			i++
			continue
		}
		matched := false
		for _, tk := range toks {
			if strings.HasPrefix(s[i:], tk.text) && !identContinues(s, i+len(tk.text)) {
				out.WriteString(tk.value)
				if tk.fire != nil {
					tk.fire()
				}
				i += len(tk.text)
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// identContinues reports whether s[pos] continues an identifier
// (letter, digit or underscore).
func identContinues(s string, pos int) bool {
	if pos >= len(s) {
		return false
	}
	c := s[pos]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
