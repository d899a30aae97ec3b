// Package locals materialises a typemap's declared local variables
// into the wrapper function being generated (spec.md section 4.7).
package locals

import (
	"regexp"
	"strconv"

	"github.com/funvibe/funxy/internal/registry"
)

// Sink is the capability the wrapper emitter exposes
// (Wrapper_new_localv in spec.md section 6): given a preferred base
// name and a declaration, it allocates a fresh local and returns the
// actual unique identifier used.
type Sink interface {
	NewLocalV(preferredName, declarationText, initialValue string) string
}

// Materialize allocates a wrapper local for every named entry in
// locals and rewrites every identifier-boundary occurrence of its
// original name in code to the sink-assigned name. argNum is appended
// to the preferred base name when >= 0 (the sentinel -1 means "no
// argument index", e.g. for a return-value typemap).
func Materialize(code string, locals []registry.Local, sink Sink, argNum int) string {
	for _, l := range locals {
		if l.Name == "" {
			continue
		}
		declName := l.Name
		if argNum >= 0 {
			declName = l.Name + strconv.Itoa(argNum)
		}
		newName := sink.NewLocalV(declName, l.Type, l.Init)
		code = replaceIdentifier(code, l.Name, newName)
	}
	return code
}

// replaceIdentifier substitutes every whole-word occurrence of name
// in s with replacement. "Whole word" means the match is not
// preceded or followed by an identifier character, matching spec.md
// section 4.7's "identifier-boundary" rule.
func replaceIdentifier(s, name, replacement string) string {
	if name == "" {
		return s
	}
	re := identRegexp(name)
	return re.ReplaceAllString(s, replacement)
}

func identRegexp(name string) *regexp.Regexp {
	// \b doesn't fire at a boundary between two non-word runes, but
	// Go identifiers are ASCII word characters here so \b is exact.
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}
