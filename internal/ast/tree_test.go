package ast

import (
	"slices"
	"testing"

	"reflectc/internal/token"
)

func stream(texts ...string) *token.Stream {
	syms := make([]token.Symbol, len(texts))
	for i, s := range texts {
		syms[i] = token.Symbol{Kind: token.LookupWord(s), Text: s}
	}
	return token.NewStream(syms)
}

func TestArena(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("Allocate/Get mismatch: id=%d", id)
	}
	a.Allocate(9)
	var got []int
	for i, v := range a.All() {
		if *a.Get(i) != *v {
			t.Fatalf("All yielded index %d for %d", i, *v)
		}
		got = append(got, *v)
	}
	if !slices.Equal(got, []int{7, 9}) {
		t.Errorf("All = %v", got)
	}
}

func TestTreeStructure(t *testing.T) {
	// namespace A { namespace B { struct S { }; } }
	tr := NewTree(stream("namespace", "A", "{", "namespace", "B", "{", "struct", "S"))
	root := tr.Root()
	if tr.Kind(root) != KindGlobalNamespace || tr.Symbol(root).Kind != token.EOF {
		t.Fatalf("bad root")
	}
	a := tr.Add(root, KindNamespace, 1, nil)
	b := tr.Add(a, KindNamespace, 4, nil)
	s := tr.Add(b, KindStruct, 6, RecordPayload{})
	name := tr.Add(s, KindTypeName, 7, nil)
	body := tr.Add(s, KindBody, NoSymbol, nil)

	if tr.Parent(s) != b || !slices.Equal(tr.Children(s), []NodeID{name, body}) {
		t.Fatalf("links broken")
	}
	if tr.FirstChild(s, KindBody) != body || tr.FirstChild(s, KindAlignas).IsValid() {
		t.Fatalf("FirstChild mismatch")
	}
	if tr.EnclosingScope(name) != b {
		t.Fatalf("EnclosingScope = %d, want %d", tr.EnclosingScope(name), b)
	}
	if got := tr.NamespacePath(name); !slices.Equal(got, []string{"A", "B"}) {
		t.Fatalf("NamespacePath = %v", got)
	}
	if got := tr.NamespacePath(root); len(got) != 0 {
		t.Fatalf("root path = %v", got)
	}
	if tr.Text(name) != "S" {
		t.Fatalf("Text = %q", tr.Text(name))
	}
	if recs := tr.Records(); !slices.Equal(recs, []NodeID{s}) {
		t.Fatalf("Records = %v", recs)
	}
}

func TestWalkOrderAndSkip(t *testing.T) {
	tr := NewTree(stream())
	a := tr.Add(tr.Root(), KindNamespace, NoSymbol, nil)
	a1 := tr.Add(a, KindStruct, NoSymbol, nil)
	tr.Add(a1, KindBody, NoSymbol, nil)
	b := tr.Add(tr.Root(), KindNamespace, NoSymbol, nil)

	var seen []NodeID
	tr.Walk(tr.Root(), func(id NodeID, depth int) bool {
		seen = append(seen, id)
		return id != a1
	})
	want := []NodeID{tr.Root(), a, a1, b}
	if !slices.Equal(seen, want) {
		t.Fatalf("Walk = %v, want %v", seen, want)
	}
}

func TestModifierStrings(t *testing.T) {
	m := TypeModifierSet{Const: true, Long: 2, Sign: SignUnsigned}
	if got := m.String(); got != "const unsigned long long" {
		t.Fatalf("String = %q", got)
	}
	if !m.HasWidth() || m.NoStorage() {
		t.Fatalf("flags mismatch")
	}
	if a, ok := FnAttrByName("override"); !ok || a != FnOverride {
		t.Fatalf("FnAttrByName")
	}
	if got := (FnConst | FnFinal).String(); got != "const final" {
		t.Fatalf("FnAttr.String = %q", got)
	}
	p := FunctionPayload{Access: AccessPrivate, Attrs: FnConst, Specifier: FnSpecDelete}
	if got := p.String(); got != "private const = delete" {
		t.Fatalf("FunctionPayload = %q", got)
	}
}
