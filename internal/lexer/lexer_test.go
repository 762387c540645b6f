package lexer_test

import (
	"testing"

	"reflectc/internal/diag"
	"reflectc/internal/lexer"
	"reflectc/internal/source"
	"reflectc/internal/token"
)

func lexString(t *testing.T, input string) (*token.Stream, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.h", []byte(input))
	bag := diag.NewBag(16)
	stream := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return stream, bag
}

type want struct {
	kind token.Kind
	text string
}

func TestLexStructDeclaration(t *testing.T) {
	src := `namespace Render::Data {
struct alignas(16) Vertex : register(b2)
{
    float3 position : POSITION; // coordinates
    /* uv */ float2 _uv = {0.5f, .25};
    const int* const p;
    Vertex(int a) : n(a) {}
    ~Vertex() noexcept = default;
};
}`
	stream, bag := lexString(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	expected := []want{
		{token.Keyword, "namespace"}, {token.Identifier, "Render"}, {token.SpecialUse, "::"},
		{token.Identifier, "Data"}, {token.GrouperOpen, "{"},
		{token.Keyword, "struct"}, {token.Keyword, "alignas"}, {token.GrouperOpen, "("},
		{token.Literal, "16"}, {token.GrouperClose, ")"}, {token.Identifier, "Vertex"},
		{token.SpecialUse, ":"}, {token.Keyword, "register"}, {token.GrouperOpen, "("},
		{token.Identifier, "b2"}, {token.GrouperClose, ")"},
		{token.GrouperOpen, "{"},
		{token.Identifier, "float3"}, {token.Identifier, "position"}, {token.SpecialUse, ":"},
		{token.Identifier, "POSITION"}, {token.StatementTerminator, ";"},
		{token.Identifier, "float2"}, {token.Identifier, "_uv"}, {token.Operator, "="},
		{token.GrouperOpen, "{"}, {token.Literal, "0.5f"}, {token.SpecialUse, ","},
		{token.Literal, ".25"}, {token.GrouperClose, "}"}, {token.StatementTerminator, ";"},
		{token.Keyword, "const"}, {token.Identifier, "int"}, {token.Operator, "*"},
		{token.Keyword, "const"}, {token.Identifier, "p"}, {token.StatementTerminator, ";"},
		{token.Identifier, "Vertex"}, {token.GrouperOpen, "("}, {token.Identifier, "int"},
		{token.Identifier, "a"}, {token.GrouperClose, ")"}, {token.SpecialUse, ":"},
		{token.Identifier, "n"}, {token.GrouperOpen, "("}, {token.Identifier, "a"},
		{token.GrouperClose, ")"}, {token.GrouperOpen, "{"}, {token.GrouperClose, "}"},
		{token.Operator, "~"}, {token.Identifier, "Vertex"}, {token.GrouperOpen, "("},
		{token.GrouperClose, ")"}, {token.Keyword, "noexcept"}, {token.Operator, "="},
		{token.Keyword, "default"}, {token.StatementTerminator, ";"},
		{token.GrouperClose, "}"}, {token.StatementTerminator, ";"},
		{token.GrouperClose, "}"},
	}
	if stream.Len() != len(expected) {
		for _, s := range stream.Symbols() {
			t.Logf("%v", s)
		}
		t.Fatalf("got %d symbols, want %d", stream.Len(), len(expected))
	}
	for i, w := range expected {
		got := stream.At(i)
		if got.Kind != w.kind || got.Text != w.text {
			t.Errorf("symbol %d = %v, want %v %q", i, got, w.kind, w.text)
		}
		if got.Pos != i {
			t.Errorf("symbol %d has Pos %d", i, got.Pos)
		}
	}
	if !stream.At(stream.Len()).IsEOF() {
		t.Errorf("expected EOF sentinel at end")
	}
}

func TestLexOperators(t *testing.T) {
	stream, _ := lexString(t, "T&& r; a->b; x += 1; #include \"a.h\"")
	texts := make([]string, 0, stream.Len())
	for _, s := range stream.Symbols() {
		texts = append(texts, s.Text)
	}
	expected := []string{"T", "&&", "r", ";", "a", "->", "b", ";", "x", "+=", "1", ";", "#", "include", `"a.h"`}
	if len(texts) != len(expected) {
		t.Fatalf("got %v", texts)
	}
	for i := range expected {
		if texts[i] != expected[i] {
			t.Errorf("symbol %d = %q, want %q", i, texts[i], expected[i])
		}
	}
	if !stream.At(14).IsString() {
		t.Errorf("include path must be a string literal")
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown char", "int $x;", diag.LexUnknownChar},
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"newline in string", "\"ab\ncd\"", diag.LexUnterminatedString},
		{"block comment", "/* never closed", diag.LexUnterminatedBlockComment},
		{"bad exponent", "1e+", diag.LexBadNumber},
		{"bad hex", "0xz", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := lexString(t, tt.src)
			if !bag.HasErrors() {
				t.Fatalf("expected an error")
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("code = %v, want %v", got, tt.code)
			}
		})
	}
}

func TestLexEmpty(t *testing.T) {
	stream, bag := lexString(t, "  // only a comment\n")
	if stream.Len() != 0 || bag.Len() != 0 {
		t.Fatalf("expected empty stream, got %d symbols", stream.Len())
	}
}

func TestLexErrorLimit(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("noise.h", []byte("@ @ @ @ @"))
	bag := diag.NewBag(16)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 2})
	lx.All()

	if lx.Errors() != 5 {
		t.Fatalf("Errors() = %d, want 5", lx.Errors())
	}
	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("expected 2 errors and 1 suppression warning, got %d", len(items))
	}
	if items[2].Severity != diag.SevWarning {
		t.Errorf("last diagnostic should be the suppression warning, got %v", items[2].Severity)
	}
}
