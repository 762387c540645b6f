package parser

import (
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// skipBalanced skips from the opener at pos to its matching closer and
// returns the count including both. Nested groupers must match.
func (p *Parser) skipBalanced(pos int) (int, error) {
	if p.syms.At(pos).Kind != token.GrouperOpen {
		return 0, p.fail(pos, diag.SynWrongSuccessor, fmt.Sprintf("expected an opening grouper, got %s", describe(p.syms.At(pos))))
	}
	stack := []int{pos}
	i := pos + 1
	for len(stack) > 0 {
		sym := p.syms.At(i)
		switch sym.Kind {
		case token.EOF:
			open := stack[len(stack)-1]
			return 0, p.withNote(p.fail(i, diag.SynNoMatchingGrouper, fmt.Sprintf("missing '%s'", token.Closer(p.syms.At(open).Text))), open, "opened here")
		case token.GrouperOpen:
			stack = append(stack, i)
		case token.GrouperClose:
			open := stack[len(stack)-1]
			if err := p.expectClose(i, open, token.Closer(p.syms.At(open).Text)); err != nil {
				return 0, err
			}
			stack = stack[:len(stack)-1]
		}
		i++
	}
	return i - pos, nil
}

// skipUntil skips symbols until stop matches at nesting level zero, a
// closer appears at level zero, or the input ends. The stopping symbol is
// not consumed.
func (p *Parser) skipUntil(pos int, stop func(token.Symbol) bool) (int, error) {
	i := pos
	for {
		sym := p.syms.At(i)
		switch {
		case stop(sym):
			return i - pos, nil
		case sym.IsEOF():
			return 0, p.fail(i, diag.SynLackOfCode, "expected ';'")
		case sym.Kind == token.GrouperClose:
			return i - pos, nil
		case sym.Kind == token.GrouperOpen:
			n, err := p.skipBalanced(i)
			if err != nil {
				return 0, err
			}
			i += n
		default:
			i++
		}
	}
}

// skipToTerminator skips an expression up to the next top-level ';'.
func (p *Parser) skipToTerminator(pos int) (int, error) {
	return p.skipUntil(pos, token.Symbol.IsTerminator)
}
