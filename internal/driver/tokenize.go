package driver

import (
	"context"
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/lexer"
	"reflectc/internal/observ"
	"reflectc/internal/source"
	"reflectc/internal/token"
)

// TokenizeResult is the symbol stream of one header plus lexer diagnostics.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Symbols *token.Stream
	Bag     *diag.Bag
	Timing  *observ.Report
}

// Counts tallies symbols by kind, the EOF sentinel excluded.
func (r *TokenizeResult) Counts() map[token.Kind]int {
	counts := make(map[token.Kind]int)
	for _, sym := range r.Symbols.Symbols() {
		if sym.Kind != token.EOF {
			counts[sym.Kind]++
		}
	}
	return counts
}

// Tokenize loads path and lexes it into a symbol stream.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timer := observ.NewTimer()
	endLoad := timer.Track(string(StageLoad))
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	endLoad(fmt.Sprintf("%d bytes", len(file.Content)))

	endLex := timer.Track(string(StageLex))
	res := tokenizeFile(fs, file, opts.MaxDiagnostics)
	endLex(fmt.Sprintf("%d symbols", res.Symbols.Len()))

	report := timer.Report()
	res.Timing = &report
	return res, nil
}

func tokenizeFile(fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Symbols: lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}),
		Bag:     bag,
	}
}
