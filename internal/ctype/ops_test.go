package ctype

import "testing"

func TestArrayDims(t *testing.T) {
	arr := Array{Elem: Named{Name: "double"}, Dims: []int{ANYDim}}

	if !IsArray(arr) {
		t.Fatalf("expected Array to report IsArray")
	}
	if ArrayNDim(arr) != 1 {
		t.Errorf("ArrayNDim = %d, want 1", ArrayNDim(arr))
	}
	if got := ArrayGetDim(arr, 0); got != "ANY" {
		t.Errorf("ArrayGetDim(0) = %q, want ANY", got)
	}

	sized := ArraySetDim(arr, 0, 16)
	if got := ArrayGetDim(sized, 0); got != "16" {
		t.Errorf("ArrayGetDim after SetDim = %q, want 16", got)
	}
	if got := sized.String(); got != "double [16]" {
		t.Errorf("String() = %q, want %q", got, "double [16]")
	}

	back := NoArrays(sized)
	if got := back.String(); got != "double [ANY]" {
		t.Errorf("NoArrays round trip = %q, want %q", got, "double [ANY]")
	}
}

func TestPointerOps(t *testing.T) {
	base := Named{Name: "int"}
	ptr := AddPointer(base)

	if !IsPointer(ptr) {
		t.Fatalf("expected AddPointer result to report IsPointer")
	}
	if got := DelPointer(ptr); !Equal(got, base) {
		t.Errorf("DelPointer(AddPointer(int)) = %s, want int", got)
	}
	if got := DelPointer(base); !Equal(got, base) {
		t.Errorf("DelPointer on non-pointer must be a no-op, got %s", got)
	}
	if got := ptr.String(); got != "int *" {
		t.Errorf("String() = %q, want %q", got, "int *")
	}
}

func TestQualifiersAndTypedefs(t *testing.T) {
	qual := Qualified{Qualifiers: []string{"const"}, Elem: Named{Name: "int"}}
	if !HasQualifiers(qual) {
		t.Fatalf("expected HasQualifiers")
	}
	stripped := StripQualifiers(qual)
	if HasQualifiers(stripped) {
		t.Errorf("StripQualifiers left qualifiers in place")
	}
	if !Equal(stripped, Named{Name: "int"}) {
		t.Errorf("StripQualifiers = %s, want int", stripped)
	}

	td := Typedef{Name: "Integer", Target: Named{Name: "int"}}
	resolved, ok := TypedefResolve(td)
	if !ok || !Equal(resolved, Named{Name: "int"}) {
		t.Errorf("TypedefResolve(Integer) = %v,%v want int,true", resolved, ok)
	}
	if _, ok := TypedefResolve(Named{Name: "int"}); ok {
		t.Errorf("TypedefResolve on a non-typedef must report ok=false")
	}
}

func TestBaseAndMangle(t *testing.T) {
	nested := Pointer{Elem: Array{Elem: Qualified{Qualifiers: []string{"const"}, Elem: Named{Name: "int"}}, Dims: []int{ANYDim}}}
	if got := Base(nested); !Equal(got, Named{Name: "int"}) {
		t.Errorf("Base(const int [ANY] *) = %s, want int", got)
	}

	m1 := Manglestr(Named{Name: "int"})
	m2 := Manglestr(Pointer{Elem: Named{Name: "int"}})
	if m1 == m2 {
		t.Errorf("Manglestr must differ between int and int*, got %q for both", m1)
	}
}

func TestRememberedIsPerEngineNotGlobal(t *testing.T) {
	r1 := NewRemembered()
	r2 := NewRemembered()

	r1.Remember(Named{Name: "int"})
	if r1.Count() != 1 {
		t.Errorf("r1.Count() = %d, want 1", r1.Count())
	}
	if r2.Count() != 0 {
		t.Errorf("r2.Count() = %d, want 0 (remember sets must not be shared)", r2.Count())
	}

	r1.Remember(Named{Name: "int"})
	if r1.Count() != 1 {
		t.Errorf("Remember must be idempotent, got Count()=%d", r1.Count())
	}
}
