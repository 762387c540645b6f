package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"reflectc/internal/lexer"
	"reflectc/internal/parser"
	"reflectc/internal/source"
	"reflectc/internal/token"
)

func lexVirtual(t *testing.T, src string) (*source.FileSet, *token.Stream) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tree.h", []byte(src))
	return fs, lexer.Tokenize(fs.Get(id), lexer.Options{})
}

func TestFormatTokens(t *testing.T) {
	fs, syms := lexVirtual(t, "struct Foo;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, syms, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: Keyword") || !strings.HasSuffix(lines[0], `"struct" at 1:1-1:7`) {
		t.Errorf("unexpected first line %q", lines[0])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, syms); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 || out[2].Kind != "StatementTerminator" {
		t.Errorf("unexpected tokens: %+v", out)
	}
}

func TestFormatTree(t *testing.T) {
	fs, syms := lexVirtual(t, "namespace gfx { struct Foo { float x; }; }")
	res := parser.Execute(context.Background(), syms, parser.Options{})
	if !res.OK {
		t.Fatalf("parse failed with %d errors", res.Errors)
	}

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, res.Tree, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "GlobalNamespace\n") {
		t.Errorf("missing root line:\n%s", out)
	}
	if !strings.Contains(out, `└─ Namespace "gfx" (1:11-1:14)`) {
		t.Errorf("missing namespace line:\n%s", out)
	}
	if !strings.Contains(out, `Struct "struct"`) && !strings.Contains(out, `Struct "Foo"`) {
		t.Errorf("missing struct line:\n%s", out)
	}
	if !strings.Contains(out, `MemberVariable "x"`) {
		t.Errorf("missing member line:\n%s", out)
	}

	buf.Reset()
	if err := FormatTreeJSON(&buf, res.Tree); err != nil {
		t.Fatal(err)
	}
	var root TreeNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Kind != "GlobalNamespace" || len(root.Children) != 1 || root.Children[0].Text != "gfx" {
		t.Errorf("unexpected JSON tree: %+v", root)
	}
}

func TestRenderTree(t *testing.T) {
	node := &treeNode{label: "root", children: []*treeNode{{label: "a"}, {label: "b"}}}
	block := renderTree(node)
	want := []string{
		"root",
		"/ | \\",
		"a   b",
	}
	if len(block.lines) != len(want) {
		t.Fatalf("got %q", block.lines)
	}
	for i := range want {
		if strings.TrimRight(block.lines[i], " ") != want[i] {
			t.Errorf("line %d: got %q, want %q", i, block.lines[i], want[i])
		}
	}
}
