package parser

import (
	"fmt"
	"strconv"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// parseRecord parses
//
//	class|struct [alignas(N)] Name ;
//	class|struct [alignas(N)] Name [: register(bN)] { members } ;
//
// The type is registered in the current namespace before the body is parsed,
// so members may refer to it through pointers.
func (p *Parser) parseRecord(pos int, scope ast.NodeID) (int, ast.NodeID, error) {
	kind := ast.KindStruct
	access := ast.AccessPublic
	if p.syms.At(pos).IsKeyword("class") {
		kind = ast.KindClass
		access = ast.AccessPrivate
	}
	record := p.tree.Add(scope, kind, pos, nil)

	i := pos + 1
	if p.syms.At(i).IsKeyword("alignas") {
		n, err := p.parseAlignas(i, record)
		if err != nil {
			return 0, record, err
		}
		i += n
	}

	name := p.syms.At(i)
	if !name.IsIdent() {
		return 0, record, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected type name after '%s', got %s", p.syms.At(pos).Text, describe(name)))
	}
	p.tree.Add(record, ast.KindTypeName, i, nil)
	typeID := p.reg.RegisterType(p.ns, name.Text)
	i++

	if p.syms.At(i).IsTerminator() {
		p.tree.SetPayload(record, ast.RecordPayload{Type: typeID, Forward: true})
		return i + 1 - pos, record, nil
	}
	p.tree.SetPayload(record, ast.RecordPayload{Type: typeID})

	if p.syms.At(i).IsSpecial(":") {
		if !p.syms.At(i + 1).IsKeyword("register") {
			return 0, record, p.fail(i+1, diag.SynUnsupportedConstruct, "base classes are not supported; expected 'register(...)'")
		}
		n, err := p.parseRegister(i+1, record)
		if err != nil {
			return 0, record, err
		}
		i += 1 + n
	}

	if !p.syms.At(i).IsOpen("{") {
		return 0, record, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected '{' or ';' after '%s', got %s", name.Text, describe(p.syms.At(i))))
	}
	n, err := p.parseRecordBody(i, record, name.Text, access)
	if err != nil {
		return 0, record, err
	}
	i += n
	if err := p.expectTerminator(i, "class body"); err != nil {
		return 0, record, err
	}
	return i + 1 - pos, record, nil
}

// alignas ( N )
func (p *Parser) parseAlignas(pos int, record ast.NodeID) (int, error) {
	if !p.syms.At(pos + 1).IsOpen("(") {
		return 0, p.fail(pos+1, diag.SynWrongSuccessor, "expected '(' after 'alignas'")
	}
	lit := p.syms.At(pos + 2)
	align, err := strconv.ParseUint(lit.Text, 0, 32)
	if lit.Kind != token.Literal || err != nil || align == 0 || align&(align-1) != 0 {
		return 0, p.fail(pos+2, diag.SynWrongSuccessor, fmt.Sprintf("alignas expects a power-of-two integer, got %s", describe(lit)))
	}
	if err := p.expectClose(pos+3, pos+1, ")"); err != nil {
		return 0, err
	}
	p.tree.Add(record, ast.KindAlignas, pos, ast.AlignPayload{Align: uint32(align)})
	return 4, nil
}

// register ( b3 )  |  register ( 3 )
func (p *Parser) parseRegister(pos int, record ast.NodeID) (int, error) {
	if !p.syms.At(pos + 1).IsOpen("(") {
		return 0, p.fail(pos+1, diag.SynWrongSuccessor, "expected '(' after 'register'")
	}
	arg := p.syms.At(pos + 2)
	var (
		class byte
		text  = arg.Text
	)
	if arg.IsIdent() && len(text) > 1 {
		switch text[0] {
		case 'b', 't', 'u', 's':
			class, text = text[0], text[1:]
		}
	}
	index, err := strconv.ParseInt(text, 10, 32)
	if (arg.Kind != token.Literal && class == 0) || err != nil || index < 0 {
		return 0, p.fail(pos+2, diag.SynWrongSuccessor, fmt.Sprintf("expected register slot like 'b0', got %s", describe(arg)))
	}
	if err := p.expectClose(pos+3, pos+1, ")"); err != nil {
		return 0, err
	}
	p.tree.Add(record, ast.KindRegister, pos+2, ast.RegisterPayload{Class: class, Index: int32(index)})
	return 4, nil
}

// expectClose requires the closer at pos for the opener at open.
func (p *Parser) expectClose(pos, open int, closer string) error {
	sym := p.syms.At(pos)
	switch {
	case sym.IsClose(closer):
		return nil
	case sym.IsEOF():
		return p.withNote(p.fail(pos, diag.SynNoMatchingGrouper, fmt.Sprintf("missing '%s'", closer)), open, "opened here")
	case sym.Kind == token.GrouperClose:
		return p.withNote(p.fail(pos, diag.SynGrouperMismatch, fmt.Sprintf("expected '%s', got '%s'", closer, sym.Text)), open, "opened here")
	default:
		return p.fail(pos, diag.SynWrongSuccessor, fmt.Sprintf("expected '%s', got %s", closer, describe(sym)))
	}
}

// parseRecordBody parses '{' members '}' and returns the count including both braces.
func (p *Parser) parseRecordBody(pos int, record ast.NodeID, className string, access ast.Access) (int, error) {
	if err := p.enter(pos); err != nil {
		return 0, err
	}
	defer p.leave()

	body := p.tree.Add(record, ast.KindBody, pos, nil)
	i := pos + 1
	for {
		sym := p.syms.At(i)
		switch {
		case sym.IsEOF():
			return 0, p.withNote(p.fail(i, diag.SynNoMatchingGrouper, fmt.Sprintf("missing '}' to close '%s'", className)), pos, "body opened here")
		case sym.IsClose("}"):
			return i + 1 - pos, nil
		case sym.Kind == token.GrouperClose:
			return 0, p.withNote(p.fail(i, diag.SynGrouperMismatch, fmt.Sprintf("expected '}', got '%s'", sym.Text)), pos, "body opened here")
		case sym.IsKeyword("public"), sym.IsKeyword("protected"), sym.IsKeyword("private"):
			if !p.syms.At(i + 1).IsSpecial(":") {
				return 0, p.fail(i+1, diag.SynWrongSuccessor, fmt.Sprintf("expected ':' after '%s'", sym.Text))
			}
			access = accessOf(sym.Text)
			p.tree.Add(body, ast.KindAccessModifier, i, ast.AccessPayload{Access: access})
			i += 2
			continue
		case sym.IsTerminator():
			p.tree.Add(body, ast.KindNoOp, i, nil)
			i++
			continue
		}

		n, err := p.parseMember(i, body, className, access)
		if err != nil {
			return 0, err
		}
		i += n
	}
}

func accessOf(kw string) ast.Access {
	switch kw {
	case "protected":
		return ast.AccessProtected
	case "private":
		return ast.AccessPrivate
	default:
		return ast.AccessPublic
	}
}
