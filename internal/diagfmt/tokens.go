package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"reflectc/internal/source"
	"reflectc/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty выводит символы в человекочитаемом формате, по одному на строку.
func FormatTokensPretty(w io.Writer, syms *token.Stream, fs *source.FileSet) error {
	for i, sym := range syms.Symbols() {
		startPos, endPos := fs.Resolve(sym.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-19s %q at %d:%d-%d:%d\n",
			i+1, sym.Kind.String(), sym.Text,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит символы в JSON формате.
func FormatTokensJSON(w io.Writer, syms *token.Stream) error {
	output := make([]TokenOutput, 0, syms.Len())
	for _, sym := range syms.Symbols() {
		output = append(output, TokenOutput{
			Kind: sym.Kind.String(),
			Text: sym.Text,
			Span: sym.Span,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
