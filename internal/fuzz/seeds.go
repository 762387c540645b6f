// Package fuzztests holds fuzz harnesses for the header front end
// (source -> lexer -> parser -> layout -> hlsl). They guard against panics,
// hangs and broken layout invariants on arbitrary input.
package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для корпуса
	maxFuzzInput = 1 << 16
)

// inlineSeeds cover constructs the sample headers do not.
var inlineSeeds = []string{
	"",
	"struct Foo { float3 position; float2 uv; };",
	"struct S { static float k; constexpr int n = 3; float x; };",
	"namespace A::B { struct T { float x; }; } namespace C { struct V { ::A::B::T t; }; }",
	"using Index = const uint; struct P { Index i; long long l; unsigned short int s; };",
	"class C { float a; public: public: float b; protected: float c; };",
	"struct alignas(16) A { int x; int& & y; };",
	"struct N { N* next; const N& self; float w : WEIGHT0; };",
	"struct Broken { float3 a;",
	"namespace { struct X {}; }}}",
	"struct D { float m[4]; Foo(int a, float b = 1.0f) : m{a}, w(b) {} };",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".h", ".hpp", ".hlsli":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
