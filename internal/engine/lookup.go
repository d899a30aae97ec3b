package engine

import (
	"strings"

	"github.com/funvibe/funxy/internal/ctype"
	"github.com/funvibe/funxy/internal/locals"
	"github.com/funvibe/funxy/internal/substitute"
)

// Lookup is the single-parameter degenerate case of AttachParms
// (spec.md section 4.8, last paragraph): it searches for (op, typ,
// pname), substitutes the matched code against this one parameter at
// index 1, materialises any locals against f, and then performs three
// textual replacements substitute.Result's placeholder grammar does
// not cover: $source, $target and $typemap.
func (e *Engine) Lookup(op string, typ ctype.Type, pname, lname, source, target string, f locals.Sink) (string, bool) {
	entry, ok := e.Search(op, typ, pname)
	if !ok || !entry.HasCode {
		return "", false
	}
	cp := entry.Clone()

	code, subLocals := substitute.Result(cp.Code, cp.Locals, substitute.Input{
		Type:     typ,
		PName:    pname,
		LName:    lname,
		Index:    1,
		Remember: e.remembered.Remember,
	})

	if len(subLocals) > 0 && f != nil {
		code = locals.Materialize(code, subLocals, f, -1)
	}

	code = strings.ReplaceAll(code, "$source", source)
	code = strings.ReplaceAll(code, "$target", target)
	code = strings.ReplaceAll(code, "$typemap", cp.Typemap)

	return code, true
}
