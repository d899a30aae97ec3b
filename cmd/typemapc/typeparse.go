package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/ctype"
)

var dimPattern = regexp.MustCompile(`\[\s*(\w*)\s*\]`)

// parseType turns the textual C-type spelling used in a manifest
// ("int", "const char *", "int [ANY]", "char * *", "int [2][3]") into
// a ctype.Type tree. The manifest stands in for a real C front-end
// (spec.md section 1 puts type parsing out of scope), so this is
// deliberately a small token reader, not a general C grammar.
func parseType(s string) ctype.Type {
	s = strings.TrimSpace(s)

	var dims []int
	if loc := dimPattern.FindStringIndex(s); loc != nil {
		for _, m := range dimPattern.FindAllStringSubmatch(s[loc[0]:], -1) {
			dims = append(dims, parseDim(m[1]))
		}
		s = strings.TrimSpace(s[:loc[0]])
	}

	toks := strings.Fields(s)

	nstar := 0
	for len(toks) > 0 && toks[len(toks)-1] == "*" {
		nstar++
		toks = toks[:len(toks)-1]
	}

	var quals []string
	for len(toks) > 0 && isQualifier(toks[0]) {
		quals = append(quals, toks[0])
		toks = toks[1:]
	}

	var base ctype.Type = ctype.Named{Name: strings.Join(toks, " ")}
	if len(quals) > 0 {
		base = ctype.Qualified{Qualifiers: quals, Elem: base}
	}
	for i := 0; i < nstar; i++ {
		base = ctype.Pointer{Elem: base}
	}
	if len(dims) > 0 {
		base = ctype.Array{Elem: base, Dims: dims}
	}
	return base
}

func isQualifier(tok string) bool {
	return tok == "const" || tok == "volatile"
}

func parseDim(inner string) int {
	if inner == "ANY" || inner == "" {
		return ctype.ANYDim
	}
	n, err := strconv.Atoi(inner)
	if err != nil {
		return ctype.ANYDim
	}
	return n
}
