package parser

import (
	"fmt"
	"strings"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/token"
	"reflectc/internal/trace"
	"reflectc/internal/types"
)

// parseScopeItem dispatches on the symbol at pos inside a namespace scope
// (the global one included) and returns how many symbols were consumed.
func (p *Parser) parseScopeItem(pos int, scope ast.NodeID) (int, error) {
	sym := p.syms.At(pos)
	switch {
	case sym.IsKeyword("class"), sym.IsKeyword("struct"):
		sp := trace.Begin(p.tracer, trace.ScopeNode, "record", p.span)
		n, record, err := p.parseRecord(pos, scope)
		if err != nil {
			sp.Fail(err)
			return n, err
		}
		sp.WithExtra("name", p.tree.Text(p.tree.FirstChild(record, ast.KindTypeName))).End("")
		if rec, ok := p.tree.Node(record).Payload.(ast.RecordPayload); ok && !rec.Forward {
			p.layoutRecord(record)
		}
		return n, nil
	case sym.IsKeyword("using"):
		return p.parseUsing(pos, scope)
	case sym.IsKeyword("namespace"):
		return p.parseNamespace(pos, scope)
	case sym.IsSpecial("#"):
		return p.parseInclude(pos, scope)
	case sym.IsTerminator():
		p.tree.Add(scope, ast.KindNoOp, pos, nil)
		return 1, nil
	case sym.Kind == token.GrouperClose:
		return 0, p.fail(pos, diag.SynGrouperMismatch, fmt.Sprintf("unmatched '%s'", sym.Text))
	default:
		return 0, p.fail(pos, diag.SynUnsupportedConstruct, fmt.Sprintf("unsupported declaration starting with %s", describe(sym)))
	}
}

// namespace A { ... }  |  namespace A::B { ... }
func (p *Parser) parseNamespace(pos int, scope ast.NodeID) (int, error) {
	i := pos + 1
	if !p.syms.At(i).IsIdent() {
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected namespace name, got %s", describe(p.syms.At(i))))
	}

	pushed := 0
	defer func() { p.ns = p.ns[:len(p.ns)-pushed] }()

	inner := scope
	for {
		inner = p.tree.Add(inner, ast.KindNamespace, i, nil)
		p.ns = append(p.ns, p.syms.At(i).Text)
		pushed++
		i++
		if !p.syms.At(i).IsSpecial("::") {
			break
		}
		i++
		if !p.syms.At(i).IsIdent() {
			return 0, p.fail(i, diag.SynWrongSuccessor, "expected namespace name after '::'")
		}
	}

	open := i
	if !p.syms.At(open).IsOpen("{") {
		return 0, p.fail(open, diag.SynWrongSuccessor, fmt.Sprintf("expected '{' after namespace name, got %s", describe(p.syms.At(open))))
	}
	if err := p.enter(open); err != nil {
		return 0, err
	}
	defer p.leave()

	i = open + 1
	for {
		sym := p.syms.At(i)
		switch {
		case sym.IsEOF():
			return 0, p.withNote(p.fail(i, diag.SynNoMatchingGrouper, "missing '}' to close namespace"), open, "namespace opened here")
		case sym.IsClose("}"):
			i++
			return i - pos, nil
		}
		n, err := p.parseScopeItem(i, inner)
		if err != nil {
			return 0, err
		}
		i += n
	}
}

// using Alias = Type;
func (p *Parser) parseUsing(pos int, scope ast.NodeID) (int, error) {
	i := pos + 1
	name := p.syms.At(i)
	if name.IsKeyword("namespace") {
		return 0, p.fail(i, diag.SynUnsupportedConstruct, "'using namespace' is not supported")
	}
	if !name.IsIdent() {
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected alias name after 'using', got %s", describe(name)))
	}
	if !p.syms.At(i + 1).IsOperator("=") {
		return 0, p.fail(i+1, diag.SynWrongSuccessor, fmt.Sprintf("expected '=' after alias name, got %s", describe(p.syms.At(i+1))))
	}
	alias := p.tree.Add(scope, ast.KindAlias, i, nil)
	n, err := p.parseTypeNode(i+2, alias, ScopeAlias)
	if err != nil {
		return 0, err
	}
	end := i + 2 + n
	if err := p.expectTerminator(end, "alias declaration"); err != nil {
		return 0, err
	}

	tp, _ := p.tree.Node(p.tree.FirstChild(alias, ast.KindTypeNode)).Payload.(ast.TypePayload)
	if err := p.reg.RegisterAlias(p.ns, name.Text, tp.Type); err != nil {
		return 0, p.fail(i, diag.SynRepetitionOfCode, fmt.Sprintf("alias '%s' is already declared", types.Qualify(p.ns, name.Text)))
	}
	return end + 1 - pos, nil
}

// #include "path"  |  #include <path>
func (p *Parser) parseInclude(pos int, scope ast.NodeID) (int, error) {
	i := pos + 1
	if !p.syms.At(i).IsKeyword("include") {
		return 0, p.fail(i, diag.SynUnsupportedConstruct, "only #include directives are supported")
	}
	i++
	sym := p.syms.At(i)
	switch {
	case sym.IsString():
		p.tree.Add(scope, ast.KindInclude, pos, ast.IncludePayload{Path: sym.Unquote()})
		return i + 1 - pos, nil
	case sym.IsOperator("<"):
		var sb strings.Builder
		j := i + 1
		for !p.syms.At(j).IsOperator(">") {
			s := p.syms.At(j)
			if s.IsEOF() || s.IsTerminator() || s.Kind == token.GrouperOpen || s.Kind == token.GrouperClose {
				return 0, p.fail(j, diag.SynWrongSuccessor, "expected '>' to close include path")
			}
			sb.WriteString(s.Text)
			j++
		}
		p.tree.Add(scope, ast.KindInclude, pos, ast.IncludePayload{Path: sb.String()})
		return j + 1 - pos, nil
	default:
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected include path, got %s", describe(sym)))
	}
}
