package engine

import (
	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/match"
	"github.com/funvibe/funxy/internal/registry"
)

// Search returns the most specific typemap registered for (op, typ,
// name), falling back through arrays, qualifiers, typedefs and the
// engine's default type (spec.md section 4.4).
func (e *Engine) Search(op string, typ ctype.Type, name string) (*registry.Entry, bool) {
	return match.Search(e.table, op, typ, name, e.defaultType())
}

// SearchMulti extends Search across a tuple of parameters, returning
// the longest prefix whose terminal entry carries code (spec.md
// section 4.5).
func (e *Engine) SearchMulti(op string, parms []registry.Param) (*registry.Entry, int) {
	return match.SearchMulti(e.table, op, parms, e.defaultType())
}
