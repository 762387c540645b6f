package types

import "fmt"

// TypeID indexes the registry. NoTypeID marks "not found".
type TypeID uint32

const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind distinguishes seeded built-ins from declared types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBuiltIn
	KindUserDefined
)

func (k Kind) String() string {
	switch k {
	case KindBuiltIn:
		return "builtin"
	case KindUserDefined:
		return "user"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Item is one entry of the type table.
type Item struct {
	Name    string // fully qualified, e.g. Render::Vertex
	Size    uint32
	Kind    Kind
	Defined bool // true once a layout with a size has been computed
}

// Alias is an alternate qualified name for a registered type.
type Alias struct {
	Name   string
	Target TypeID
}

// ScopeSep separates namespace segments in qualified names.
const ScopeSep = "::"
