package source

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("shaders/vertex.h", []byte("struct A {};"), 0)
	id2 := fs.Add("shaders/vertex.h", []byte("struct B {};"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids for two versions, got %d twice", id1)
	}

	latest, ok := fs.Latest("shaders/./vertex.h")
	if !ok || latest != id2 {
		t.Fatalf("Latest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "struct A {};" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
	if fs.Get(FileID(99)) != nil {
		t.Errorf("Get of unknown id should be nil")
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.h")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("struct A\r\n{\r\n};\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "struct A\n{\n};\n" {
		t.Errorf("content not normalized: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.h")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestResolveAndLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.h", []byte("struct A\n{\n    float x;\n};"))
	f := fs.Get(id)

	start, end := fs.Resolve(Span{File: id, Start: 15, End: 20})
	if start != (LineCol{Line: 3, Col: 5}) {
		t.Errorf("start = %+v", start)
	}
	if end != (LineCol{Line: 3, Col: 10}) {
		t.Errorf("end = %+v", end)
	}

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "struct A"},
		{3, "    float x;"},
		{4, "};"},
		{5, ""},
	}
	for _, tt := range tests {
		if got := f.Line(tt.line); got != tt.want {
			t.Errorf("Line(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
	if got := f.Text(Span{File: id, Start: 15, End: 20}); got != "float" {
		t.Errorf("Text = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover should keep receiver, got %v", got)
	}
	if !a.Within(8) || a.Within(7) || (Span{Start: 5, End: 2}).Within(10) {
		t.Errorf("Within bounds wrong for %v", a)
	}
	if !(Span{}).IsZero() || a.IsZero() {
		t.Errorf("IsZero wrong")
	}
	if !a.After().Empty() || a.After().Start != 8 {
		t.Errorf("After = %v", a.After())
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q,%v", s, ok)
	}
	a := in.Intern("Render::Vertex")
	if in.Intern("Render::Vertex") != a {
		t.Errorf("Intern must be idempotent")
	}
	if _, ok := in.Find("Missing"); ok {
		t.Errorf("Find should not insert")
	}
	if in.Len() != 2 {
		t.Errorf("Len = %d, want 2", in.Len())
	}
	if in.MustLookup(a) != "Render::Vertex" {
		t.Errorf("MustLookup mismatch")
	}
}

func TestInternerConcurrent(t *testing.T) {
	in := NewInterner()
	var wg sync.WaitGroup
	ids := make([]StringID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = in.Intern("float4")
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("concurrent Intern returned different ids: %v", ids)
		}
	}
}
