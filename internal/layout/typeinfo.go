package layout

import (
	"errors"
	"fmt"
)

// NoRegister is the RegisterIndex of a TypeInfo without a binding annotation.
const NoRegister int32 = -1

// TypeInfo is the reflected layout of a struct or of one of its members.
// Struct-level infos are registered once and never mutated afterwards.
type TypeInfo struct {
	TypeName      string     `msgpack:"type" json:"type"`
	IsBuiltIn     bool       `msgpack:"builtin" json:"builtin"`
	DeclName      string     `msgpack:"decl" json:"decl"`
	SemanticName  string     `msgpack:"semantic,omitempty" json:"semantic,omitempty"`
	Size          uint32     `msgpack:"size" json:"size"`
	ByteOffset    uint32     `msgpack:"offset" json:"offset"`
	RegisterIndex int32      `msgpack:"register" json:"register"`
	Members       []TypeInfo `msgpack:"members,omitempty" json:"members,omitempty"`
}

// HasRegister reports whether a binding index was declared.
func (ti TypeInfo) HasRegister() bool { return ti.RegisterIndex >= 0 }

// Clone returns a deep copy.
func (ti TypeInfo) Clone() TypeInfo {
	out := ti
	if ti.Members != nil {
		out.Members = make([]TypeInfo, len(ti.Members))
		for i, m := range ti.Members {
			out.Members[i] = m.Clone()
		}
	}
	return out
}

func (ti TypeInfo) String() string {
	return fmt.Sprintf("%s %s (size %d, offset %d, %d members)", ti.TypeName, ti.DeclName, ti.Size, ti.ByteOffset, len(ti.Members))
}

// ErrInfoExists is returned when a TypeInfo name is already taken.
var ErrInfoExists = errors.New("type info already registered")

// Table holds struct-level TypeInfos in registration order, addressable by
// simple name or index.
type Table struct {
	infos  []TypeInfo
	byName map[string]int
}

func NewTable() *Table {
	return &Table{byName: make(map[string]int)}
}

// Register adds info under its TypeName. The first registration wins.
func (t *Table) Register(info TypeInfo) (int, error) {
	if idx, ok := t.byName[info.TypeName]; ok {
		return idx, fmt.Errorf("%w: %s", ErrInfoExists, info.TypeName)
	}
	idx := len(t.infos)
	t.infos = append(t.infos, info)
	t.byName[info.TypeName] = idx
	return idx, nil
}

// Lookup returns the TypeInfo registered under name.
func (t *Table) Lookup(name string) (TypeInfo, bool) {
	if t == nil {
		return TypeInfo{}, false
	}
	idx, ok := t.byName[name]
	if !ok {
		return TypeInfo{}, false
	}
	return t.infos[idx].Clone(), true
}

// At returns the i-th registered TypeInfo.
func (t *Table) At(i int) (TypeInfo, bool) {
	if t == nil || i < 0 || i >= len(t.infos) {
		return TypeInfo{}, false
	}
	return t.infos[i].Clone(), true
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.infos)
}

// All returns copies of every registered TypeInfo.
func (t *Table) All() []TypeInfo {
	if t == nil {
		return nil
	}
	out := make([]TypeInfo, len(t.infos))
	for i, ti := range t.infos {
		out[i] = ti.Clone()
	}
	return out
}

// FromInfos rebuilds a table, e.g. from a cache entry.
func FromInfos(infos []TypeInfo) *Table {
	t := NewTable()
	for _, ti := range infos {
		_, _ = t.Register(ti) //nolint:errcheck // cached tables are already unique
	}
	return t
}
