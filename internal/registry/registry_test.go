package registry

import (
	"strings"
	"testing"

	"github.com/funvibe/funxy/internal/ctype"
)

func intParam(name string) Param {
	return Param{Type: ctype.Named{Name: "int"}, Name: name}
}

func TestRegisterThenExactAt(t *testing.T) {
	tab := NewTable(0)
	parms := []Param{intParam("x")}
	if err := tab.Register("in", parms, "$1 = PyInt_AsLong($input);", nil, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "x")
	if !ok || !e.HasCode {
		t.Fatalf("ExactAt(in,int,x) = %v,%v, want code-carrying entry", e, ok)
	}
	if e.Code != "$1 = PyInt_AsLong($input);" {
		t.Errorf("Code = %q", e.Code)
	}

	if _, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "y"); ok {
		t.Errorf("ExactAt(in,int,y) should miss: only (in,int,x) was registered")
	}
}

func TestRegisterTwiceReplaces(t *testing.T) {
	tab := NewTable(0)
	parms := []Param{intParam("x")}
	tab.Register("in", parms, "first", nil, nil)
	tab.Register("in", parms, "second", nil, nil)

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "x")
	if !ok || e.Code != "second" {
		t.Fatalf("expected replaced code 'second', got %+v ok=%v", e, ok)
	}
}

func TestClearLeavesShell(t *testing.T) {
	tab := NewTable(0)
	parms := []Param{intParam("x")}
	tab.Register("in", parms, "code", []Local{{Name: "tmp", Type: "int"}}, nil)

	tab.Clear("in", parms)

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "x")
	if !ok {
		t.Fatalf("Clear should leave the bucket shell in place")
	}
	if e.HasCode || e.Code != "" || e.Locals != nil {
		t.Errorf("Clear should strip code/locals, got %+v", e)
	}
}

func TestClearOnMissingChainIsNoop(t *testing.T) {
	tab := NewTable(0)
	tab.Clear("in", []Param{intParam("x")}) // must not panic
}

func TestCopyAcrossSignatures(t *testing.T) {
	tab := NewTable(0)
	src := []Param{intParam("foo")}
	dest := []Param{{Type: ctype.Named{Name: "size_t"}, Name: "n"}}

	tab.Register("in", src, "in-code", nil, nil)
	tab.Register("out", src, "out-code", nil, nil)

	if err := tab.Copy("in", src, dest); err != nil {
		t.Fatalf("Copy(in): %v", err)
	}
	if err := tab.Copy("out", src, dest); err != nil {
		t.Fatalf("Copy(out): %v", err)
	}

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "size_t"}, "n")
	if !ok || e.Code != "in-code" {
		t.Fatalf("Copy(in) result = %+v, ok=%v", e, ok)
	}
	e, ok = tab.ExactAt(tab.CurrentIndex(), "out", ctype.Named{Name: "size_t"}, "n")
	if !ok || e.Code != "out-code" {
		t.Fatalf("Copy(out) result = %+v, ok=%v", e, ok)
	}
}

func TestCopyArityMismatch(t *testing.T) {
	tab := NewTable(0)
	src := []Param{intParam("a"), intParam("b")}
	dest := []Param{intParam("c")}
	if err := tab.Copy("in", src, dest); err != ErrArityMismatch {
		t.Errorf("Copy arity mismatch = %v, want ErrArityMismatch", err)
	}
}

func TestCopyNotFound(t *testing.T) {
	tab := NewTable(0)
	src := []Param{intParam("a")}
	dest := []Param{intParam("b")}
	if err := tab.Copy("in", src, dest); err == nil {
		t.Errorf("Copy with no matching registration should error")
	}
}

func TestApplyThenClearApplyRestoresEmpty(t *testing.T) {
	tab := NewTable(0)
	src := []Param{intParam("foo")}
	dest := []Param{{Type: ctype.Named{Name: "size_t"}, Name: "n"}}

	tab.Register("in", src, "code", nil, nil)
	if err := tab.Apply(src, dest); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "size_t"}, "n"); !ok || !e.HasCode {
		t.Fatalf("Apply did not copy entry, got %+v ok=%v", e, ok)
	}

	tab.ClearApply(dest)
	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "size_t"}, "n")
	if !ok || e.HasCode {
		t.Fatalf("ClearApply should leave a code-less shell, got %+v ok=%v", e, ok)
	}
}

func TestApplyNeverOverwritesExistingTarget(t *testing.T) {
	tab := NewTable(0)
	src := []Param{intParam("foo")}
	dest := []Param{{Type: ctype.Named{Name: "size_t"}, Name: "n"}}

	tab.Register("in", dest, "already-here", nil, nil)
	tab.Register("in", src, "from-apply", nil, nil)
	tab.Apply(src, dest)

	e, _ := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "size_t"}, "n")
	if e.Code != "already-here" {
		t.Errorf("Apply must not overwrite an existing destination entry, got %q", e.Code)
	}
}

func TestScopeShadowingAndPop(t *testing.T) {
	tab := NewTable(0)
	parms := []Param{intParam("")}

	tab.Register("in", parms, "scope0-code", nil, nil)
	if err := tab.PushScope(); err != nil {
		t.Fatalf("PushScope: %v", err)
	}
	tab.Register("in", parms, "scope1-code", nil, nil)

	e, _ := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "")
	if e.Code != "scope1-code" {
		t.Errorf("expected scope 1's entry to shadow scope 0, got %q", e.Code)
	}

	if _, ok := tab.PopScope(); !ok {
		t.Fatalf("PopScope should succeed at depth 1")
	}
	e, _ = tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "")
	if e.Code != "scope0-code" {
		t.Errorf("after Pop, expected scope 0's entry, got %q", e.Code)
	}
}

func TestScope0NeverPops(t *testing.T) {
	tab := NewTable(0)
	if _, ok := tab.PopScope(); ok {
		t.Errorf("PopScope at scope 0 must report ok=false")
	}
	if tab.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1 after a no-op pop", tab.Depth())
	}
}

func TestPushRegisterPopLeavesScope0Unchanged(t *testing.T) {
	tab := NewTable(0)
	parms := []Param{intParam("x")}
	tab.Register("in", parms, "scope0", nil, nil)

	tab.PushScope()
	tab.Register("in", parms, "scope1", nil, nil)
	tab.PopScope()

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in", ctype.Named{Name: "int"}, "x")
	if !ok || e.Code != "scope0" {
		t.Errorf("push/register/pop must leave scope 0 unchanged, got %+v ok=%v", e, ok)
	}
}

func TestScopeOverflow(t *testing.T) {
	tab := NewTable(2)
	if err := tab.PushScope(); err != nil {
		t.Fatalf("first PushScope: %v", err)
	}
	if err := tab.PushScope(); err != ErrScopeOverflow {
		t.Errorf("PushScope at max depth = %v, want ErrScopeOverflow", err)
	}
}

func TestMultiArgStoredOnLastParamSlot(t *testing.T) {
	tab := NewTable(0)
	argc := Param{Type: ctype.Named{Name: "int"}, Name: "argc"}
	argv := Param{Type: ctype.Pointer{Elem: ctype.Pointer{Elem: ctype.Named{Name: "char"}}}, Name: "argv"}

	if err := tab.Register("in", []Param{argc, argv}, "multi-code", nil, nil); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e, ok := tab.ExactAt(tab.CurrentIndex(), "in-int+argc:", argv.Type, "argv")
	if !ok || e.Code != "multi-code" {
		t.Fatalf("expected entry under op-key suffix on argv's slot, got %+v ok=%v", e, ok)
	}

	marker, ok := tab.ExactAt(tab.CurrentIndex(), "in", argc.Type, "argc")
	if !ok {
		t.Fatalf("intermediate parameter must still carry an existence marker for search_multi to walk through")
	}
	if marker.HasCode {
		t.Errorf("intermediate parameter's marker must not carry code")
	}
}

func TestExceptHook(t *testing.T) {
	tab := NewTable(0)
	if _, ok := tab.ExceptLookup(); ok {
		t.Fatalf("fresh table should have no %%except block")
	}
	tab.ExceptRegister("handle(e);")
	code, ok := tab.ExceptLookup()
	if !ok || code != "handle(e);" {
		t.Fatalf("ExceptLookup = %q,%v", code, ok)
	}
	tab.ExceptClear()
	if _, ok := tab.ExceptLookup(); ok {
		t.Errorf("ExceptClear should remove the block")
	}
}

func TestDumpIsDeterministic(t *testing.T) {
	tab := NewTable(0)
	tab.Register("in", []Param{intParam("x")}, "code", nil, nil)

	var b1, b2 strings.Builder
	tab.DumpTo(&b1)
	tab.DumpTo(&b2)
	if b1.String() != b2.String() {
		t.Errorf("DumpTo is not deterministic:\n%s\nvs\n%s", b1.String(), b2.String())
	}
	if !strings.Contains(b1.String(), "scope 0") {
		t.Errorf("Dump missing scope header: %s", b1.String())
	}
}
