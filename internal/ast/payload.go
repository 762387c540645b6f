package ast

import (
	"fmt"

	"reflectc/internal/types"
)

// Payload is the kind-specific data of a node. Each node kind carries at most
// one payload type.
type Payload interface {
	isPayload()
	fmt.Stringer
}

// AccessPayload is attached to access-modifier sections and to members.
type AccessPayload struct {
	Access Access
}

// FunctionPayload describes member functions, constructors and destructors.
type FunctionPayload struct {
	Access    Access
	Attrs     FnAttr
	Specifier FnSpecifier
}

// TypePayload is the resolved result of a type node.
type TypePayload struct {
	Mods TypeModifierSet
	Type types.TypeID
	Name string // qualified name as written (or "int" when implied)
}

// IndirectionPayload is one pointer/reference suffix.
type IndirectionPayload struct {
	Kind  IndirectionKind
	Const bool
}

// AlignPayload holds the argument of alignas(N).
type AlignPayload struct {
	Align uint32
}

// RegisterPayload holds `register(b<N>)`.
type RegisterPayload struct {
	Class byte // 'b', 't', 'u', 's' или 0
	Index int32
}

// SemanticPayload holds an explicit member semantic.
type SemanticPayload struct {
	Name string
}

// IncludePayload holds the path of an #include directive.
type IncludePayload struct {
	Path string
}

// RecordPayload marks class/struct nodes.
type RecordPayload struct {
	Type    types.TypeID
	Forward bool
}

func (AccessPayload) isPayload()      {}
func (FunctionPayload) isPayload()    {}
func (TypePayload) isPayload()        {}
func (IndirectionPayload) isPayload() {}
func (AlignPayload) isPayload()       {}
func (RegisterPayload) isPayload()    {}
func (SemanticPayload) isPayload()    {}
func (IncludePayload) isPayload()     {}
func (RecordPayload) isPayload()      {}

func (p AccessPayload) String() string { return p.Access.String() }

func (p FunctionPayload) String() string {
	s := p.Access.String()
	if p.Attrs != 0 {
		s += " " + p.Attrs.String()
	}
	if p.Specifier != FnSpecNone {
		s += " " + p.Specifier.String()
	}
	return s
}

func (p TypePayload) String() string {
	if mods := p.Mods.String(); mods != "" {
		return mods + " " + p.Name
	}
	return p.Name
}

func (p IndirectionPayload) String() string {
	if p.Const {
		return p.Kind.String() + " const"
	}
	return p.Kind.String()
}

func (p AlignPayload) String() string { return fmt.Sprintf("align %d", p.Align) }

func (p RegisterPayload) String() string {
	if p.Class == 0 {
		return fmt.Sprintf("register(%d)", p.Index)
	}
	return fmt.Sprintf("register(%c%d)", p.Class, p.Index)
}

func (p SemanticPayload) String() string { return p.Name }
func (p IncludePayload) String() string  { return p.Path }

func (p RecordPayload) String() string {
	if p.Forward {
		return fmt.Sprintf("type#%d forward", p.Type)
	}
	return fmt.Sprintf("type#%d", p.Type)
}
