package parser

import (
	"fmt"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/token"
)

// parseMember handles one declaration inside a class body.
func (p *Parser) parseMember(pos int, body ast.NodeID, className string, access ast.Access) (int, error) {
	i := pos
	virtual := false
	if p.syms.At(i).IsKeyword("virtual") {
		virtual = true
		i++
	}

	sym := p.syms.At(i)
	switch {
	case sym.IsOperator("~"):
		n, err := p.parseDestructor(i, body, className, access)
		return i - pos + n, err
	case sym.IsIdent() && sym.Text == className && p.syms.At(i+1).IsOpen("("):
		if virtual {
			return 0, p.fail(pos, diag.SynWrongScope, "constructors cannot be virtual")
		}
		return p.parseConstructor(i, body, access)
	case sym.IsKeyword("class"), sym.IsKeyword("struct"), sym.IsKeyword("using"):
		return 0, p.fail(i, diag.SynUnsupportedConstruct, fmt.Sprintf("nested '%s' declarations are not supported", sym.Text))
	}

	end, ok, _ := p.isTypeChunk(i)
	if ok && p.syms.At(end).IsIdent() && p.syms.At(end+1).IsOpen("(") && (virtual || p.opensParameters(end+1)) {
		n, err := p.parseMemberFunction(i, end, body, access)
		return i - pos + n, err
	}
	if virtual {
		return 0, p.fail(pos, diag.SynWrongSuccessor, "'virtual' must be followed by a member function")
	}
	return p.parseMemberVariable(i, body, access)
}

// opensParameters tells "float f(int a)" from "float z(3)": after the paren
// a parameter list starts with ')', a modifier or a known type.
func (p *Parser) opensParameters(open int) bool {
	next := p.syms.At(open + 1)
	if next.IsClose(")") || isModifier(next) {
		return true
	}
	_, ok, resolved := p.isTypeChunk(open + 1)
	return ok && resolved
}

// Type name [init | : SEMANTIC] ;
func (p *Parser) parseMemberVariable(pos int, body ast.NodeID, access ast.Access) (int, error) {
	member := p.tree.Add(body, ast.KindMemberVariable, ast.NoSymbol, ast.AccessPayload{Access: access})
	n, err := p.parseTypeNode(pos, member, ScopeMember)
	if err != nil {
		return 0, err
	}
	i := pos + n
	if !p.syms.At(i).IsIdent() {
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected member name, got %s", describe(p.syms.At(i))))
	}
	p.tree.Node(member).Sym = i
	i++

	sym := p.syms.At(i)
	switch {
	case sym.IsSpecial(":"):
		sem := p.syms.At(i + 1)
		if !sem.IsIdent() && !sem.IsString() {
			return 0, p.fail(i+1, diag.SynWrongSuccessor, fmt.Sprintf("expected semantic name after ':', got %s", describe(sem)))
		}
		typeNode := p.tree.FirstChild(member, ast.KindTypeNode)
		p.tree.Add(typeNode, ast.KindSemantic, i+1, ast.SemanticPayload{Name: sem.Unquote()})
		i += 2
	case sym.IsOpen("("), sym.IsOpen("{"):
		k, err := p.skipBalanced(i)
		if err != nil {
			return 0, err
		}
		p.tree.Add(member, ast.KindMemberInit, i, nil)
		i += k
	case sym.IsOperator("="):
		k, err := p.skipToTerminator(i + 1)
		if err != nil {
			return 0, err
		}
		if k == 0 {
			return 0, p.fail(i+1, diag.SynWrongSuccessor, "expected initializer after '='")
		}
		p.tree.Add(member, ast.KindMemberInit, i, nil)
		i += 1 + k
	case sym.IsOpen("["):
		return 0, p.fail(i, diag.SynUnsupportedConstruct, "array members are not supported")
	}
	if err := p.expectTerminator(i, "member declaration"); err != nil {
		return 0, err
	}
	return i + 1 - pos, nil
}

// ReturnType name ( params ) attrs ( ; | body )
func (p *Parser) parseMemberFunction(pos, namePos int, body ast.NodeID, access ast.Access) (int, error) {
	fn := p.tree.Add(body, ast.KindMemberFunction, namePos, nil)
	n, err := p.parseTypeNode(pos, fn, ScopeReturnType)
	if err != nil {
		return 0, err
	}
	if pos+n != namePos {
		return 0, p.fail(pos+n, diag.SynWrongSuccessor, fmt.Sprintf("expected function name, got %s", describe(p.syms.At(pos+n))))
	}
	i := namePos + 1
	k, err := p.parseParameterList(i, fn)
	if err != nil {
		return 0, err
	}
	i += k
	payload := ast.FunctionPayload{Access: access}
	k, err = p.parseFunctionTail(i, fn, &payload)
	p.tree.SetPayload(fn, payload)
	if err != nil {
		return 0, err
	}
	return i + k - pos, nil
}

// Name ( params ) [: init-list] attrs ( ; | body )
func (p *Parser) parseConstructor(pos int, body ast.NodeID, access ast.Access) (int, error) {
	ctor := p.tree.Add(body, ast.KindConstructor, pos, nil)
	i := pos + 1
	n, err := p.parseParameterList(i, ctor)
	if err != nil {
		return 0, err
	}
	params := p.tree.FirstChild(ctor, ast.KindParameterList)
	i += n
	if p.syms.At(i).IsSpecial(":") {
		n, err := p.parseInitializerList(i, ctor, params)
		if err != nil {
			return 0, err
		}
		i += n
	}
	payload := ast.FunctionPayload{Access: access}
	n, err = p.parseFunctionTail(i, ctor, &payload)
	p.tree.SetPayload(ctor, payload)
	if err != nil {
		return 0, err
	}
	return i + n - pos, nil
}

// ~ Name ( ) attrs ( ; | body )
func (p *Parser) parseDestructor(pos int, body ast.NodeID, className string, access ast.Access) (int, error) {
	name := p.syms.At(pos + 1)
	if !name.IsIdent() || name.Text != className {
		return 0, p.fail(pos+1, diag.SynWrongSuccessor, fmt.Sprintf("destructor name must be '%s', got %s", className, describe(name)))
	}
	dtor := p.tree.Add(body, ast.KindDestructor, pos+1, nil)
	i := pos + 2
	if !p.syms.At(i).IsOpen("(") {
		return 0, p.fail(i, diag.SynWrongSuccessor, "expected '(' after destructor name")
	}
	if p.syms.At(i+1).Is(token.Identifier, "void") {
		i++
	}
	if err := p.expectClose(i+1, pos+2, ")"); err != nil {
		if se, ok := err.(*SyntaxError); ok && se.Code == diag.SynWrongSuccessor {
			se.Msg = "destructors take no parameters"
		}
		return 0, err
	}
	p.tree.Add(dtor, ast.KindParameterList, pos+2, nil)
	i += 2
	payload := ast.FunctionPayload{Access: access}
	n, err := p.parseFunctionTail(i, dtor, &payload)
	p.tree.SetPayload(dtor, payload)
	if err != nil {
		return 0, err
	}
	return i + n - pos, nil
}

// ( [Type [name] [= default] {, Type [name] [= default]}] )
func (p *Parser) parseParameterList(pos int, owner ast.NodeID) (int, error) {
	if !p.syms.At(pos).IsOpen("(") {
		return 0, p.fail(pos, diag.SynWrongSuccessor, fmt.Sprintf("expected '(', got %s", describe(p.syms.At(pos))))
	}
	list := p.tree.Add(owner, ast.KindParameterList, pos, nil)
	i := pos + 1
	if p.syms.At(i).IsClose(")") {
		return 2, nil
	}
	if p.syms.At(i).Is(token.Identifier, "void") && p.syms.At(i+1).IsClose(")") {
		return 3, nil
	}
	for {
		param := p.tree.Add(list, ast.KindParameter, ast.NoSymbol, nil)
		n, err := p.parseTypeNode(i, param, ScopeParameter)
		if err != nil {
			return 0, err
		}
		i += n
		if p.syms.At(i).IsIdent() {
			p.tree.Node(param).Sym = i
			i++
		}
		if p.syms.At(i).IsOperator("=") {
			k, err := p.skipUntil(i+1, func(s token.Symbol) bool { return s.IsSpecial(",") || s.IsClose(")") })
			if err != nil {
				return 0, err
			}
			i += 1 + k
		}

		sym := p.syms.At(i)
		switch {
		case sym.IsSpecial(","):
			i++
		case sym.IsClose(")"):
			return i + 1 - pos, nil
		default:
			return 0, p.expectClose(i, pos, ")")
		}
	}
}

// : member(value) {, member(value)}   value is a literal or a parameter name.
func (p *Parser) parseInitializerList(pos int, owner, params ast.NodeID) (int, error) {
	list := p.tree.Add(owner, ast.KindInitializerList, pos, nil)
	i := pos + 1
	for {
		if !p.syms.At(i).IsIdent() {
			return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected member name in initializer list, got %s", describe(p.syms.At(i))))
		}
		init := p.tree.Add(list, ast.KindInitializer, i, nil)
		open := p.syms.At(i + 1)
		if !open.IsOpen("(") && !open.IsOpen("{") {
			return 0, p.fail(i+1, diag.SynWrongSuccessor, fmt.Sprintf("expected '(' or '{' after '%s'", p.syms.At(i).Text))
		}
		closer := token.Closer(open.Text)
		i += 2

		value := p.syms.At(i)
		switch {
		case value.IsClose(closer):
			// value-initialisation: member()
		case value.Kind == token.Literal:
			p.tree.Add(init, ast.KindLiteral, i, nil)
			i++
		case value.IsIdent():
			if !p.hasParameter(params, value.Text) {
				return 0, p.fail(i, diag.SynSymbolNotFound, fmt.Sprintf("'%s' is not a constructor parameter", value.Text))
			}
			p.tree.Add(init, ast.KindIdentifier, i, nil)
			i++
		default:
			return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("initializer value must be a literal or a parameter name, got %s", describe(value)))
		}
		if err := p.expectClose(i, i-1, closer); err != nil {
			return 0, err
		}
		i++
		if !p.syms.At(i).IsSpecial(",") {
			return i - pos, nil
		}
		i++
	}
}

func (p *Parser) hasParameter(params ast.NodeID, name string) bool {
	for _, param := range p.tree.Children(params) {
		if p.tree.Node(param).Sym != ast.NoSymbol && p.tree.Text(param) == name {
			return true
		}
	}
	return false
}

// attribute order: const noexcept override final abstract [= default|delete|0]
var attrOrder = map[string]int{
	"const":    0,
	"noexcept": 1,
	"override": 2,
	"final":    3,
	"abstract": 4,
}

// parseFunctionTail parses trailing attributes, the optional specifier and
// either ';' or a function body.
func (p *Parser) parseFunctionTail(pos int, fn ast.NodeID, payload *ast.FunctionPayload) (int, error) {
	i := pos
	last := -1
	lastText := ""
	for {
		sym := p.syms.At(i)
		order, isAttr := attrOrder[sym.Text]
		if sym.Kind != token.Keyword || !isAttr {
			break
		}
		bit, _ := ast.FnAttrByName(sym.Text)
		if payload.Attrs&bit != 0 {
			return 0, p.fail(i, diag.SynRepetitionOfCode, fmt.Sprintf("duplicate '%s'", sym.Text))
		}
		if order < last {
			return 0, p.fail(i, diag.SynWrongPredecessor, fmt.Sprintf("'%s' must come before '%s'", sym.Text, lastText))
		}
		payload.Attrs |= bit
		last, lastText = order, sym.Text
		i++
		if sym.Text == "noexcept" && p.syms.At(i).IsOpen("(") {
			n, err := p.skipBalanced(i)
			if err != nil {
				return 0, err
			}
			i += n
		}
	}

	sym := p.syms.At(i)
	switch {
	case sym.IsOperator("="):
		spec := p.syms.At(i + 1)
		switch {
		case spec.IsKeyword("default"):
			payload.Specifier = ast.FnSpecDefault
		case spec.IsKeyword("delete"):
			payload.Specifier = ast.FnSpecDelete
		case spec.Is(token.Literal, "0"):
			payload.Specifier = ast.FnSpecPure
		default:
			return 0, p.fail(i+1, diag.SynWrongSuccessor, fmt.Sprintf("expected 'default', 'delete' or '0' after '=', got %s", describe(spec)))
		}
		i += 2
		if err := p.expectTerminator(i, "'"+spec.Text+"'"); err != nil {
			return 0, err
		}
		return i + 1 - pos, nil
	case sym.IsKeyword("default"), sym.IsKeyword("delete"), sym.Is(token.Literal, "0"):
		return 0, p.fail(i, diag.SynWrongPredecessor, fmt.Sprintf("'%s' must follow '='", sym.Text))
	case sym.IsTerminator():
		return i + 1 - pos, nil
	case sym.IsOpen("{"):
		n, err := p.parseFunctionBody(i, fn)
		if err != nil {
			return 0, err
		}
		return i + n - pos, nil
	default:
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected ';' or function body, got %s", describe(sym)))
	}
}
