package types

import (
	"errors"
	"testing"
)

func TestBuiltinSizes(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		name string
		size uint32
	}{
		{"void", 0},
		{"bool", 4},
		{"int", 4},
		{"uint", 4},
		{"float", 4},
		{"float1", 4},
		{"float2", 8},
		{"float3", 12},
		{"float4", 16},
		{"uint2", 8},
		{"half3", 6},
		{"double2", 16},
		{"float3x3", 36},
		{"float4x4", 64},
		{"matrix", 64},
	}
	for _, tt := range tests {
		id, ok := r.Resolve(nil, tt.name)
		if !ok {
			t.Errorf("%s not registered", tt.name)
			continue
		}
		it := r.MustLookup(id)
		if it.Size != tt.size || it.Kind != KindBuiltIn {
			t.Errorf("%s = %+v, want size %d builtin", tt.name, it, tt.size)
		}
	}
	if again := r.RegisterBuiltIn("float3", 99); r.MustLookup(again).Size != 12 {
		t.Errorf("RegisterBuiltIn must be idempotent")
	}
}

func TestRegisterTypeIdempotent(t *testing.T) {
	r := NewRegistry()
	before := r.Len()
	a := r.RegisterType([]string{"Render"}, "Vertex")
	b := r.RegisterType([]string{"Render"}, "Vertex")
	if a != b {
		t.Fatalf("ids differ: %d vs %d", a, b)
	}
	if r.Len() != before+1 {
		t.Fatalf("duplicate entry created: %d -> %d", before, r.Len())
	}
	if got := r.MustLookup(a).Name; got != "Render::Vertex" {
		t.Fatalf("qualified name = %q", got)
	}
	if c := r.RegisterType(nil, "Vertex"); c == a {
		t.Fatalf("different namespaces must yield different types")
	}
}

func TestAliasUniqueness(t *testing.T) {
	r := NewRegistry()
	f3, _ := r.Resolve(nil, "float3")
	f4, _ := r.Resolve(nil, "float4")
	if err := r.RegisterAlias(nil, "vec3", f3); err != nil {
		t.Fatalf("first alias: %v", err)
	}
	err := r.RegisterAlias(nil, "vec3", f4)
	if !errors.Is(err, ErrAliasExists) {
		t.Fatalf("second alias err = %v, want ErrAliasExists", err)
	}
	if id, _ := r.Resolve(nil, "vec3"); id != f3 {
		t.Fatalf("first registration must be unaffected")
	}
	if err := r.RegisterAlias(nil, "bad", TypeID(100000)); err == nil {
		t.Fatalf("alias to unknown type must fail")
	}
	if len(r.Aliases()) != 1 {
		t.Fatalf("Aliases = %v", r.Aliases())
	}
}

func TestNamespaceResolution(t *testing.T) {
	r := NewRegistry()
	ab := []string{"A", "B"}
	id := r.RegisterType(ab, "B")

	if got, ok := r.Resolve(ab, "B"); !ok || got != id {
		t.Errorf("B from inside A::B: %d,%v", got, ok)
	}
	if got, ok := r.Resolve([]string{"A", "B", "Inner"}, "B"); !ok || got != id {
		t.Errorf("B from nested A::B::Inner: %d,%v", got, ok)
	}
	if _, ok := r.Resolve([]string{"C"}, "B"); ok {
		t.Errorf("bare B must not resolve from C")
	}
	if got, ok := r.Resolve([]string{"C"}, "A::B::B"); !ok || got != id {
		t.Errorf("qualified A::B::B from C: %d,%v", got, ok)
	}
	if got, ok := r.Resolve([]string{"A"}, "B::B"); !ok || got != id {
		t.Errorf("partially qualified B::B from A: %d,%v", got, ok)
	}
}

func TestResolvePrecedence(t *testing.T) {
	r := NewRegistry()
	user := r.RegisterType([]string{"N"}, "float3")
	if got, _ := r.Resolve([]string{"N"}, "float3"); got != user {
		t.Errorf("inner user type must shadow the global built-in")
	}
	builtin, _ := r.Resolve(nil, "float3")
	if builtin == user {
		t.Fatalf("built-in lost")
	}

	f4, _ := r.Resolve(nil, "float4")
	other := r.RegisterType([]string{"N"}, "Color")
	if err := r.RegisterAlias([]string{"N"}, "Color", f4); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Resolve([]string{"N"}, "Color"); got != f4 || got == other {
		t.Errorf("alias must win over user type at the same level")
	}
}

func TestSetSize(t *testing.T) {
	r := NewRegistry()
	id := r.RegisterType(nil, "Fwd")
	if r.MustLookup(id).Defined {
		t.Fatalf("fresh type must be undefined")
	}
	if !r.SetSize(id, 32) {
		t.Fatalf("SetSize failed")
	}
	if it := r.MustLookup(id); it.Size != 32 || !it.Defined {
		t.Fatalf("item = %+v", it)
	}
	f, _ := r.Resolve(nil, "float")
	if r.SetSize(f, 8) {
		t.Fatalf("built-in size must be immutable")
	}
	if len(r.UserTypes()) != 1 {
		t.Fatalf("UserTypes = %v", r.UserTypes())
	}
}

func TestQualifyAndSimpleName(t *testing.T) {
	if Qualify(nil, "X") != "X" || Qualify([]string{"A", "B"}, "X") != "A::B::X" {
		t.Fatalf("Qualify mismatch")
	}
	if SimpleName("A::B::X") != "X" || SimpleName("X") != "X" {
		t.Fatalf("SimpleName mismatch")
	}
}
