package registry

// Table is the scope-stacked typemap table (spec.md components 2 and
// 3). Unlike the teacher's SymbolTable, which chains scopes through an
// `outer` pointer and is reached via a package-level singleton, Table
// is an explicit, caller-owned handle over a bounded array of scopes,
// per the DESIGN NOTES re-architecture in spec.md section 9 ("pass an
// engine handle explicitly rather than rely on a singleton").
type Table struct {
	scopes   []*scope
	maxScope int
}

// NewTable creates a Table with scope 0 already installed. maxScope
// bounds the total number of scopes on the stack, scope 0 included;
// values <= 0 fall back to the spec's default of 32.
func NewTable(maxScope int) *Table {
	if maxScope <= 0 {
		maxScope = 32
	}
	t := &Table{maxScope: maxScope}
	t.Init()
	return t
}

// Init resets the stack, installing a fresh, empty scope 0.
func (t *Table) Init() {
	t.scopes = []*scope{newScope()}
}

// PushScope installs a fresh scope on top of the stack. It fails with
// ErrScopeOverflow once the stack already holds maxScope scopes.
func (t *Table) PushScope() error {
	if len(t.scopes) >= t.maxScope {
		return ErrScopeOverflow
	}
	t.scopes = append(t.scopes, newScope())
	return nil
}

// PopScope removes the top scope and returns the set of type strings
// its table held, as a plain map the caller now owns; the popped
// typemap entries themselves are not returned. Popping scope 0 is a
// no-op that
// returns ok=false, matching spec.md's "scope 0 ... is never popped".
func (t *Table) PopScope() (map[string]bool, bool) {
	if len(t.scopes) <= 1 {
		return nil, false
	}
	top := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]

	names := make(map[string]bool, len(top.types))
	for typ := range top.types {
		names[typ] = true
	}
	return names, true
}

// CurrentIndex returns the index (0-based) of the top scope.
func (t *Table) CurrentIndex() int {
	return len(t.scopes) - 1
}

// ScopeAt returns the scope at index ts, or nil if out of range.
func (t *Table) ScopeAt(ts int) *scope {
	if ts < 0 || ts >= len(t.scopes) {
		return nil
	}
	return t.scopes[ts]
}

// Depth returns how many scopes are currently on the stack.
func (t *Table) Depth() int {
	return len(t.scopes)
}
