package parser

import (
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// SyntaxError is a grammar failure at one symbol. Handlers return it instead
// of reporting; the top-level loop turns it into a diagnostic.
type SyntaxError struct {
	Sym   token.Symbol
	Code  diag.Code
	Msg   string
	Notes []diag.Note
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Sym, e.Msg)
}

// fail builds a SyntaxError for the symbol at pos. Running out of symbols is
// always LackOfCode regardless of the requested code, except for unclosed
// groupers which keep NoMatchingGrouper.
func (p *Parser) fail(pos int, code diag.Code, msg string) *SyntaxError {
	sym := p.syms.At(pos)
	if sym.IsEOF() && code != diag.SynNoMatchingGrouper && code != diag.SynNestingTooDeep {
		code = diag.SynLackOfCode
		msg = "unexpected end of input: " + msg
	}
	return &SyntaxError{Sym: sym, Code: code, Msg: msg}
}

// withNote attaches a secondary location to err.
func (p *Parser) withNote(err *SyntaxError, pos int, msg string) *SyntaxError {
	err.Notes = append(err.Notes, diag.Note{Span: p.syms.Span(pos), Msg: msg})
	return err
}

// expectTerminator requires ';' at pos.
func (p *Parser) expectTerminator(pos int, after string) error {
	if p.syms.At(pos).IsTerminator() {
		return nil
	}
	return p.fail(pos, diag.SynWrongSuccessor, fmt.Sprintf("expected ';' after %s, got %s", after, describe(p.syms.At(pos))))
}

func describe(sym token.Symbol) string {
	if sym.IsEOF() {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", sym.Text)
}
