package layout

import (
	"errors"
	"fmt"
	"math"

	"fortio.org/safecast"

	"reflectc/internal/ast"
	"reflectc/internal/types"
)

// PackAlign is the constant-buffer packing granularity.
const PackAlign = 16

// Generator turns completed class/struct nodes into TypeInfos.
type Generator struct {
	Target Target
	Types  *types.Registry
	Table  *Table
}

func NewGenerator(target Target, reg *types.Registry) *Generator {
	if target.PtrSize == 0 {
		target = DefaultTarget()
	}
	return &Generator{
		Target: target,
		Types:  reg,
		Table:  NewTable(),
	}
}

// PackedSize rounds size up to the next multiple of PackAlign.
// Zero stays zero.
func PackedSize(size uint32) uint32 {
	if size == 0 {
		return 0
	}
	return ((size-1)/PackAlign + 1) * PackAlign
}


// Generate computes the layout of record, records the size in the type
// registry and registers the TypeInfo under the record's simple name.
// On error nothing is registered.
func (g *Generator) Generate(tree *ast.Tree, record ast.NodeID) (TypeInfo, error) {
	kind := tree.Kind(record)
	if !kind.IsRecord() {
		return TypeInfo{}, &Error{Kind: ErrNotRecord, Sym: tree.Symbol(record), Msg: fmt.Sprintf("node %s is not a class or struct", kind)}
	}
	rec, _ := tree.Node(record).Payload.(ast.RecordPayload)

	info := TypeInfo{RegisterIndex: NoRegister}
	var (
		nameNode ast.NodeID
		body     ast.NodeID
	)
	for _, child := range tree.Children(record) {
		switch tree.Kind(child) {
		// alignas остаётся в дереве, на упаковку не влияет
		case ast.KindTypeName:
			if !nameNode.IsValid() {
				nameNode = child
			}
		case ast.KindRegister:
			if p, ok := tree.Node(child).Payload.(ast.RegisterPayload); ok {
				info.RegisterIndex = p.Index
			}
		case ast.KindBody:
			body = child
		}
	}
	info.TypeName = tree.Text(nameNode)
	info.DeclName = types.Qualify(tree.NamespacePath(record), info.TypeName)

	if !body.IsValid() {
		return TypeInfo{}, &Error{Kind: ErrIncompleteType, Sym: tree.Symbol(nameNode), Type: info.TypeName, Msg: "forward declaration has no layout"}
	}

	var total uint64
	for _, child := range tree.Children(body) {
		if tree.Kind(child) != ast.KindMemberVariable {
			continue
		}
		member, skip, err := g.member(tree, child, info.TypeName)
		if err != nil {
			return TypeInfo{}, err
		}
		if skip {
			continue
		}
		member.ByteOffset = uint32(total) //nolint:gosec // checked below against MaxUint32
		total += uint64(member.Size)
		if total > math.MaxUint32 {
			return TypeInfo{}, &Error{Kind: ErrSizeOverflow, Sym: tree.Symbol(child), Type: info.TypeName, Msg: "accumulated size exceeds 4 GiB"}
		}
		info.Members = append(info.Members, member)
	}

	if total == 0 {
		return TypeInfo{}, &Error{Kind: ErrEmptyType, Sym: tree.Symbol(nameNode), Type: info.TypeName, Msg: fmt.Sprintf("%s has no members with storage", info.TypeName)}
	}

	if total > math.MaxUint32-PackAlign {
		return TypeInfo{}, &Error{Kind: ErrSizeOverflow, Sym: tree.Symbol(nameNode), Type: info.TypeName, Msg: "packed size exceeds 4 GiB"}
	}
	size, err := safecast.Conv[uint32](total)
	if err != nil {
		return TypeInfo{}, &Error{Kind: ErrSizeOverflow, Sym: tree.Symbol(nameNode), Type: info.TypeName, Msg: "packed size exceeds 4 GiB"}
	}
	info.Size = PackedSize(size)

	if _, err := g.Table.Register(info); err != nil {
		if errors.Is(err, ErrInfoExists) {
			return TypeInfo{}, &Error{Kind: ErrDuplicate, Sym: tree.Symbol(nameNode), Type: info.TypeName, Msg: fmt.Sprintf("layout for %s is already registered; keeping the first one", info.TypeName)}
		}
		return TypeInfo{}, err
	}
	if rec.Type.IsValid() && g.Types != nil {
		g.Types.SetSize(rec.Type, info.Size)
	}
	return info.Clone(), nil
}

// member lays out one member variable. skip is true for members without
// instance storage (static, constexpr).
func (g *Generator) member(tree *ast.Tree, id ast.NodeID, owner string) (TypeInfo, bool, error) {
	typeNode := tree.FirstChild(id, ast.KindTypeNode)
	var tp ast.TypePayload
	ok := false
	if typeNode.IsValid() {
		tp, ok = tree.Node(typeNode).Payload.(ast.TypePayload)
	}
	if !ok {
		return TypeInfo{}, false, &Error{Kind: ErrUnresolvedMember, Sym: tree.Symbol(id), Type: owner, Msg: "member has no resolved type"}
	}
	if tp.Mods.NoStorage() {
		return TypeInfo{}, true, nil
	}

	m := TypeInfo{
		DeclName:      tree.Text(id),
		RegisterIndex: NoRegister,
	}
	if sem := tree.FirstChild(typeNode, ast.KindSemantic); sem.IsValid() {
		if p, ok := tree.Node(sem).Payload.(ast.SemanticPayload); ok {
			m.SemanticName = p.Name
		}
	}
	if m.SemanticName == "" {
		m.SemanticName = DefaultSemantic(m.DeclName)
	}

	item, ok := g.Types.Lookup(tp.Type)
	if !ok {
		return TypeInfo{}, false, &Error{Kind: ErrUnresolvedMember, Sym: tree.Symbol(id), Type: owner, Msg: fmt.Sprintf("type of %s is not registered", m.DeclName)}
	}

	if ind := indirections(tree, typeNode); ind != "" {
		m.TypeName = types.SimpleName(item.Name) + ind
		m.Size = g.Target.PtrSize
		return m, false, nil
	}

	switch item.Kind {
	case types.KindBuiltIn:
		m.IsBuiltIn = true
		m.TypeName, m.Size = builtinName(item, tp.Mods)
	case types.KindUserDefined:
		simple := types.SimpleName(item.Name)
		nested, found := g.Table.Lookup(simple)
		if !item.Defined || !found {
			return TypeInfo{}, false, &Error{Kind: ErrIncompleteType, Sym: tree.Symbol(typeNode), Type: owner, Msg: fmt.Sprintf("member %s has incomplete type %s", m.DeclName, item.Name)}
		}
		m.TypeName = simple
		m.Size = item.Size
		m.Members = nested.Members
	}
	return m, false, nil
}

// indirections renders the pointer/reference suffix chain of a type node.
func indirections(tree *ast.Tree, typeNode ast.NodeID) string {
	var s string
	for _, c := range tree.Children(typeNode) {
		if p, ok := tree.Node(c).Payload.(ast.IndirectionPayload); ok {
			s += p.Kind.String()
		}
	}
	return s
}

// builtinName applies width and sign modifiers to a built-in base type.
func builtinName(item types.Item, mods ast.TypeModifierSet) (string, uint32) {
	unsigned := mods.Sign == ast.SignUnsigned
	switch item.Name {
	case "int":
		switch {
		case mods.Short && unsigned:
			return "uint16_t", 2
		case mods.Short:
			return "int16_t", 2
		case mods.Long == 2 && unsigned:
			return "uint64_t", 8
		case mods.Long == 2:
			return "int64_t", 8
		case unsigned:
			return "uint", 4
		}
	case "double":
		// long double хранится как double
		return "double", 8
	}
	return item.Name, item.Size
}
