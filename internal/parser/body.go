package parser

import (
	"fmt"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// parseFunctionBody parses '{' statements '}' of a member function.
// Statements are kept only structurally: declarations get a type node,
// everything else is skipped up to its ';'.
func (p *Parser) parseFunctionBody(pos int, fn ast.NodeID) (int, error) {
	body := p.tree.Add(fn, ast.KindFunctionBody, pos, nil)
	return p.parseBlock(pos, body)
}

func (p *Parser) parseBlock(pos int, block ast.NodeID) (int, error) {
	if err := p.enter(pos); err != nil {
		return 0, err
	}
	defer p.leave()

	i := pos + 1
	for {
		sym := p.syms.At(i)
		switch {
		case sym.IsEOF():
			return 0, p.withNote(p.fail(i, diag.SynNoMatchingGrouper, "missing '}'"), pos, "block opened here")
		case sym.IsClose("}"):
			return i + 1 - pos, nil
		case sym.Kind == token.GrouperClose:
			return 0, p.withNote(p.fail(i, diag.SynGrouperMismatch, fmt.Sprintf("expected '}', got '%s'", sym.Text)), pos, "block opened here")
		}

		n, err := p.parseStatement(i, block)
		if err != nil {
			return 0, err
		}
		i += n
	}
}

func (p *Parser) parseStatement(pos int, block ast.NodeID) (int, error) {
	sym := p.syms.At(pos)
	switch {
	case sym.IsTerminator():
		p.tree.Add(block, ast.KindNoOp, pos, nil)
		return 1, nil
	case sym.IsOpen("{"):
		inner := p.tree.Add(block, ast.KindBlock, pos, nil)
		return p.parseBlock(pos, inner)
	case sym.IsKeyword("return"):
		p.tree.Add(block, ast.KindReturn, pos, nil)
		n, err := p.skipToTerminator(pos + 1)
		if err != nil {
			return 0, err
		}
		if err := p.expectTerminator(pos+1+n, "return statement"); err != nil {
			return 0, err
		}
		return n + 2, nil
	}

	if end, ok, resolved := p.isTypeChunk(pos); ok && resolved && p.syms.At(end).IsIdent() {
		return p.parseDeclaration(pos, block)
	}

	p.tree.Add(block, ast.KindExprStatement, pos, nil)
	n, err := p.skipToTerminator(pos)
	if err != nil {
		return 0, err
	}
	if err := p.expectTerminator(pos+n, "expression"); err != nil {
		return 0, err
	}
	return n + 1, nil
}

// Type name [= expr | (args) | {args}] ;
func (p *Parser) parseDeclaration(pos int, block ast.NodeID) (int, error) {
	decl := p.tree.Add(block, ast.KindDeclaration, ast.NoSymbol, nil)
	n, err := p.parseTypeNode(pos, decl, ScopeStatement)
	if err != nil {
		return 0, err
	}
	i := pos + n
	if !p.syms.At(i).IsIdent() {
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected variable name, got %s", describe(p.syms.At(i))))
	}
	p.tree.Node(decl).Sym = i
	i++
	k, err := p.skipToTerminator(i)
	if err != nil {
		return 0, err
	}
	i += k
	if err := p.expectTerminator(i, "declaration"); err != nil {
		return 0, err
	}
	return i + 1 - pos, nil
}
