package fuzztests

import (
	"testing"

	"reflectc/internal/diag"
	"reflectc/internal/lexer"
	"reflectc/internal/source"
)

func FuzzLexerSymbols(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.h", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		stream := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		size := uint32(len(file.Content))
		prevEnd := uint32(0)
		for i, sym := range stream.Symbols() {
			if !sym.Span.Within(size) {
				t.Fatalf("symbol %d span %v outside content of %d bytes", i, sym.Span, size)
			}
			if sym.Span.Start < prevEnd {
				t.Fatalf("symbol %d overlaps previous symbol", i)
			}
			prevEnd = sym.Span.End
		}
		// за концом потока всегда стоит EOF
		if stream.Has(stream.Len()) {
			t.Fatalf("stream reports a symbol past its end")
		}
	})
}
