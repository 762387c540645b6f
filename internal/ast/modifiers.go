package ast

import "strings"

// Sign is the signedness requested by signed/unsigned.
type Sign uint8

const (
	SignUnspecified Sign = iota
	SignSigned
	SignUnsigned
)

// TypeModifierSet collects the storage and width modifiers of one type node.
// Mutual exclusion: short excludes long, signed excludes unsigned, long at most twice.
type TypeModifierSet struct {
	Const       bool
	Constexpr   bool
	Mutable     bool
	Static      bool
	ThreadLocal bool
	Short       bool
	Long        uint8 // 0, 1 или 2
	Sign        Sign
}

// HasWidth reports whether a width or sign modifier was given (these imply int).
func (m TypeModifierSet) HasWidth() bool {
	return m.Short || m.Long > 0 || m.Sign != SignUnspecified
}

// NoStorage reports whether the declaration occupies no instance storage.
func (m TypeModifierSet) NoStorage() bool {
	return m.Static || m.Constexpr
}

func (m TypeModifierSet) String() string {
	var parts []string
	if m.Static {
		parts = append(parts, "static")
	}
	if m.ThreadLocal {
		parts = append(parts, "thread_local")
	}
	if m.Constexpr {
		parts = append(parts, "constexpr")
	}
	if m.Mutable {
		parts = append(parts, "mutable")
	}
	if m.Const {
		parts = append(parts, "const")
	}
	switch m.Sign {
	case SignSigned:
		parts = append(parts, "signed")
	case SignUnsigned:
		parts = append(parts, "unsigned")
	}
	if m.Short {
		parts = append(parts, "short")
	}
	for range m.Long {
		parts = append(parts, "long")
	}
	return strings.Join(parts, " ")
}

// Access is a class member access level.
type Access uint8

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "public"
	}
}

// FnAttr is a bit set of trailing member function attributes.
type FnAttr uint8

const (
	FnConst FnAttr = 1 << iota
	FnNoexcept
	FnOverride
	FnFinal
	FnAbstract
)

var fnAttrNames = []struct {
	bit  FnAttr
	name string
}{
	{FnConst, "const"},
	{FnNoexcept, "noexcept"},
	{FnOverride, "override"},
	{FnFinal, "final"},
	{FnAbstract, "abstract"},
}

// FnAttrByName maps an attribute keyword to its bit.
func FnAttrByName(name string) (FnAttr, bool) {
	for _, a := range fnAttrNames {
		if a.name == name {
			return a.bit, true
		}
	}
	return 0, false
}

func (f FnAttr) String() string {
	var parts []string
	for _, a := range fnAttrNames {
		if f&a.bit != 0 {
			parts = append(parts, a.name)
		}
	}
	return strings.Join(parts, " ")
}

// FnSpecifier is the `= default|delete|0` suffix of a member function.
type FnSpecifier uint8

const (
	FnSpecNone FnSpecifier = iota
	FnSpecDefault
	FnSpecDelete
	FnSpecPure
)

func (s FnSpecifier) String() string {
	switch s {
	case FnSpecDefault:
		return "= default"
	case FnSpecDelete:
		return "= delete"
	case FnSpecPure:
		return "= 0"
	default:
		return ""
	}
}

// IndirectionKind distinguishes pointer and reference suffixes.
type IndirectionKind uint8

const (
	Pointer IndirectionKind = iota
	LValueRef
	RValueRef
)

func (k IndirectionKind) String() string {
	switch k {
	case LValueRef:
		return "&"
	case RValueRef:
		return "&&"
	default:
		return "*"
	}
}
