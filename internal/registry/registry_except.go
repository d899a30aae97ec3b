package registry

// ExceptRegister sets the global %except code block on the current
// scope's side slot (spec.md section 4.9).
func (t *Table) ExceptRegister(code string) {
	sc := t.scopes[t.CurrentIndex()]
	sc.exceptCode = code
	sc.hasExcept = true
}

// ExceptLookup returns the %except code, plus ok=true if one is set.
//
// spec.md documents an open question here: the source's lookup loop
// decrements a scope index but always reads from the topmost scope
// regardless of it. This implementation consults only the current
// (top) scope: when that scope has no %except block, ok is false, even
// if an outer scope holds one. Outer scopes are never walked; see
// DESIGN.md for the reasoning.
func (t *Table) ExceptLookup() (string, bool) {
	sc := t.scopes[t.CurrentIndex()]
	if !sc.hasExcept {
		return "", false
	}
	return sc.exceptCode, true
}

// ExceptClear removes the %except block from the current scope only.
func (t *Table) ExceptClear() {
	sc := t.scopes[t.CurrentIndex()]
	sc.exceptCode = ""
	sc.hasExcept = false
}
