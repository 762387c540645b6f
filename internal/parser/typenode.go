package parser

import (
	"fmt"
	"strings"

	"reflectc/internal/ast"
	"reflectc/internal/diag"
	"reflectc/internal/token"
	"reflectc/internal/types"
)

// TypeScope is the grammatical position a type node is parsed in. It decides
// which storage modifiers are legal.
type TypeScope uint8

const (
	ScopeMember TypeScope = iota
	ScopeParameter
	ScopeReturnType
	ScopeStatement
	ScopeAlias
)

func (s TypeScope) String() string {
	switch s {
	case ScopeMember:
		return "member declaration"
	case ScopeParameter:
		return "function parameter"
	case ScopeReturnType:
		return "return type"
	case ScopeStatement:
		return "statement"
	case ScopeAlias:
		return "type alias"
	default:
		return "unknown scope"
	}
}

var modifierWords = map[string]bool{
	"static":       true,
	"constexpr":    true,
	"const":        true,
	"mutable":      true,
	"thread_local": true,
	"short":        true,
	"long":         true,
	"signed":       true,
	"unsigned":     true,
}

func isModifier(sym token.Symbol) bool {
	return sym.Kind == token.Keyword && modifierWords[sym.Text]
}

// parseTypeNode parses
//
//	modifiers [::] [Ns ::]* Base modifiers { * | & | && | const }
//
// into a TypeNode child of owner and returns the consumed count.
func (p *Parser) parseTypeNode(pos int, owner ast.NodeID, scope TypeScope) (int, error) {
	node := p.tree.Add(owner, ast.KindTypeNode, ast.NoSymbol, nil)
	var mods ast.TypeModifierSet
	i := pos

	for isModifier(p.syms.At(i)) {
		if err := p.applyModifier(&mods, i, scope); err != nil {
			return 0, err
		}
		i++
	}

	global := false
	if p.syms.At(i).IsSpecial("::") {
		global = true
		i++
	}

	var (
		segments []string
		basePos  = ast.NoSymbol
	)
	for p.syms.At(i).IsIdent() {
		segments = append(segments, p.syms.At(i).Text)
		basePos = i
		if !p.syms.At(i+1).IsSpecial("::") || !p.syms.At(i+2).IsIdent() {
			break
		}
		i += 2
	}

	name := strings.Join(segments, types.ScopeSep)
	var (
		typeID types.TypeID
		found  bool
	)
	if len(segments) > 0 {
		typeID, found = p.resolve(name, global)
	}

	switch {
	case found:
		i = basePos + 1
	case mods.HasWidth() && len(segments) <= 1 && !global:
		// implicit int; an unresolved identifier is the declarator
		name = "int"
		typeID, _ = p.reg.Resolve(nil, name)
		basePos = i - 1
	case len(segments) == 0:
		return 0, p.fail(i, diag.SynWrongSuccessor, fmt.Sprintf("expected type name, got %s", describe(p.syms.At(i))))
	default:
		return 0, p.fail(basePos, diag.SynWrongSuccessor, fmt.Sprintf("unknown type '%s'", name))
	}
	p.tree.Node(node).Sym = basePos

	for isModifier(p.syms.At(i)) {
		if err := p.applyModifier(&mods, i, scope); err != nil {
			return 0, err
		}
		i++
	}

	if mods.HasWidth() {
		item, _ := p.reg.Lookup(typeID)
		if err := p.checkWidth(basePos, item, mods); err != nil {
			return 0, err
		}
	}

	n, err := p.parseIndirections(i, node)
	if err != nil {
		return 0, err
	}
	i += n

	p.tree.SetPayload(node, ast.TypePayload{Mods: mods, Type: typeID, Name: name})
	return i - pos, nil
}

// resolve looks a (possibly qualified) type name up from the current namespace.
func (p *Parser) resolve(name string, global bool) (types.TypeID, bool) {
	if global {
		return p.reg.Resolve(nil, name)
	}
	return p.reg.Resolve(p.ns, name)
}

// parseIndirections parses the pointer/reference suffix chain.
func (p *Parser) parseIndirections(pos int, node ast.NodeID) (int, error) {
	i := pos
	last := ast.NoNodeID
	refSeen := false
	for {
		sym := p.syms.At(i)
		switch {
		case sym.IsOperator("*"):
			if refSeen {
				return 0, p.fail(i, diag.SynWrongSuccessor, "pointer to reference is not allowed")
			}
			last = p.tree.Add(node, ast.KindIndirection, i, ast.IndirectionPayload{Kind: ast.Pointer})
		case sym.IsOperator("&"), sym.IsOperator("&&"):
			if refSeen {
				return 0, p.fail(i, diag.SynWrongSuccessor, "reference to reference is not allowed")
			}
			refSeen = true
			at := i
			kind := ast.LValueRef
			switch {
			case sym.Text == "&&":
				kind = ast.RValueRef
			case p.syms.At(i + 1).IsOperator("&"):
				// "& &" тоже rvalue
				kind = ast.RValueRef
				i++
			}
			last = p.tree.Add(node, ast.KindIndirection, at, ast.IndirectionPayload{Kind: kind})
		case sym.IsKeyword("const") && last.IsValid():
			prev, _ := p.tree.Node(last).Payload.(ast.IndirectionPayload)
			if prev.Const {
				return 0, p.fail(i, diag.SynRepetitionOfCode, fmt.Sprintf("duplicate 'const' after '%s'", prev.Kind))
			}
			prev.Const = true
			p.tree.SetPayload(last, prev)
		default:
			return i - pos, nil
		}
		i++
	}
}

// checkWidth validates short/long/signed/unsigned against the base type:
// int takes all of them, char only a sign, double only a single long.
func (p *Parser) checkWidth(pos int, base types.Item, mods ast.TypeModifierSet) error {
	ok := false
	if base.Kind == types.KindBuiltIn {
		switch base.Name {
		case "int":
			ok = true
		case "char":
			ok = !mods.Short && mods.Long == 0
		case "double":
			ok = !mods.Short && mods.Long == 1 && mods.Sign == ast.SignUnspecified
		}
	}
	if !ok {
		return p.fail(pos, diag.SynWrongSuccessor, fmt.Sprintf("invalid width or sign modifiers for '%s'", base.Name))
	}
	return nil
}

// applyModifier folds the modifier keyword at pos into mods.
func (p *Parser) applyModifier(mods *ast.TypeModifierSet, pos int, scope TypeScope) error {
	word := p.syms.At(pos).Text
	repeat := func() error {
		return p.fail(pos, diag.SynRepetitionOfCode, fmt.Sprintf("duplicate '%s'", word))
	}
	wrongScope := func() error {
		return p.fail(pos, diag.SynWrongScope, fmt.Sprintf("'%s' is not allowed in a %s", word, scope))
	}

	switch word {
	case "const":
		mods.Const = true
	case "static", "constexpr":
		if scope == ScopeParameter || scope == ScopeAlias {
			return wrongScope()
		}
		flag := &mods.Static
		if word == "constexpr" {
			flag = &mods.Constexpr
		}
		if *flag {
			return repeat()
		}
		*flag = true
	case "mutable":
		if scope != ScopeMember {
			return wrongScope()
		}
		if mods.Mutable {
			return repeat()
		}
		mods.Mutable = true
	case "thread_local":
		if scope != ScopeStatement {
			return wrongScope()
		}
		if mods.ThreadLocal {
			return repeat()
		}
		mods.ThreadLocal = true
	case "short":
		if mods.Long > 0 {
			return p.fail(pos, diag.SynWrongSuccessor, "'short' cannot be combined with 'long'")
		}
		if mods.Short {
			return repeat()
		}
		mods.Short = true
	case "long":
		if mods.Short {
			return p.fail(pos, diag.SynWrongSuccessor, "'long' cannot be combined with 'short'")
		}
		if mods.Long >= 2 {
			return p.fail(pos, diag.SynRepetitionOfCode, "'long long long' is too long")
		}
		mods.Long++
	case "signed", "unsigned":
		sign := ast.SignSigned
		if word == "unsigned" {
			sign = ast.SignUnsigned
		}
		switch mods.Sign {
		case ast.SignUnspecified:
			mods.Sign = sign
		case sign:
			return repeat()
		default:
			return p.fail(pos, diag.SynWrongSuccessor, "'signed' cannot be combined with 'unsigned'")
		}
	}
	return nil
}

// isTypeChunk looks ahead for a syntactically complete type starting at pos
// without touching the tree. end is the first symbol after it; resolved
// reports whether the base name is a known type.
func (p *Parser) isTypeChunk(pos int) (end int, ok bool, resolved bool) {
	i := pos
	width := false
	for isModifier(p.syms.At(i)) {
		switch p.syms.At(i).Text {
		case "short", "long", "signed", "unsigned":
			width = true
		}
		i++
	}
	global := false
	if p.syms.At(i).IsSpecial("::") {
		global = true
		i++
	}
	var segments []string
	for p.syms.At(i).IsIdent() {
		segments = append(segments, p.syms.At(i).Text)
		if !p.syms.At(i+1).IsSpecial("::") || !p.syms.At(i+2).IsIdent() {
			i++
			break
		}
		i += 2
	}

	switch {
	case len(segments) > 0:
		_, resolved = p.resolve(strings.Join(segments, types.ScopeSep), global)
		if !resolved && width && len(segments) == 1 && !global {
			i--
			resolved = true
		}
	case width:
		resolved = true
	default:
		return pos, false, false
	}

	for isModifier(p.syms.At(i)) {
		i++
	}
	for {
		sym := p.syms.At(i)
		if sym.IsOperator("*") || sym.IsOperator("&") || sym.IsOperator("&&") || sym.IsKeyword("const") {
			i++
			continue
		}
		break
	}
	return i, true, resolved
}
