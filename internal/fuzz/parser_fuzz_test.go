package fuzztests

import (
	"context"
	"testing"
	"time"

	"reflectc/internal/diag"
	"reflectc/internal/hlsl"
	"reflectc/internal/lexer"
	"reflectc/internal/parser"
	"reflectc/internal/source"
	"reflectc/internal/testkit"
)

// parseTimeout bounds one input; anything slower is treated as a hang.
const parseTimeout = 5 * time.Second

func parseInput(ctx context.Context, input []byte) (parser.Result, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("fuzz.h", input)
	bag := diag.NewBag(128)
	rep := diag.BagReporter{Bag: bag}
	stream := lexer.Tokenize(fs.Get(fileID), lexer.Options{Reporter: rep})
	res := parser.Execute(ctx, stream, parser.Options{Reporter: rep, MaxErrors: 128})
	return res, bag
}

func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("namespace a { namespace b { namespace c { struct T { float x; }; } } }"))
	f.Add([]byte("struct T { void f() { { { { } } } } };"))
	f.Add([]byte("struct T { T() : a(b(c(d))) {} float a; };"))
	f.Add([]byte("struct T { int x = {{{ }; };"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = parseInput(ctx, input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// FuzzLayoutInvariants checks tree links for every input and, for inputs that
// parse cleanly, unique type names, member bounds and the HLSL renderers.
func FuzzLayoutInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		res, bag := parseInput(context.Background(), input)
		if err := testkit.CheckTreeInvariants(res.Tree); err != nil {
			t.Fatalf("tree invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		if !res.OK || bag.HasErrors() {
			return
		}

		seen := make(map[string]bool)
		for _, info := range res.Infos.All() {
			if seen[info.TypeName] {
				t.Fatalf("duplicate type info %q", info.TypeName)
			}
			seen[info.TypeName] = true
			if err := testkit.CheckTypeInfo(info); err != nil {
				t.Fatal(err)
			}

			_ = hlsl.StreamDatum(info)
			_ = hlsl.ConstantBuffer(info, 0)
			_ = hlsl.StructuredBuffer(info)
			_ = hlsl.InputElements(info)
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
