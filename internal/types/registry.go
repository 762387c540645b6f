package types

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"reflectc/internal/source"
)

// ErrAliasExists is returned when an alias name is registered twice.
var ErrAliasExists = errors.New("alias already registered")

// Registry is the namespace-scoped type table of one translation unit.
// Not safe for concurrent use: one parser owns one registry.
type Registry struct {
	strings  *source.Interner
	items    []Item // items[0] резерв под NoTypeID
	builtins map[source.StringID]TypeID
	users    map[source.StringID]TypeID
	aliases  map[source.StringID]TypeID
	aliasLog []Alias
}

// NewRegistry returns a registry seeded with the built-in types.
func NewRegistry() *Registry {
	r := &Registry{
		strings:  source.NewInterner(),
		items:    make([]Item, 1, 128),
		builtins: make(map[source.StringID]TypeID, 128),
		users:    make(map[source.StringID]TypeID),
		aliases:  make(map[source.StringID]TypeID),
	}
	for _, spec := range builtinSpecs() {
		r.RegisterBuiltIn(spec.name, spec.size)
	}
	return r
}

// Qualify joins namespace segments and a name with "::".
func Qualify(namespace []string, name string) string {
	if len(namespace) == 0 {
		return name
	}
	return strings.Join(namespace, ScopeSep) + ScopeSep + name
}

// SimpleName strips every namespace qualifier.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, ScopeSep); i >= 0 {
		return qualified[i+len(ScopeSep):]
	}
	return qualified
}

func (r *Registry) add(it Item) TypeID {
	n, err := safecast.Conv[uint32](len(r.items))
	if err != nil {
		panic(fmt.Errorf("type table overflow: %w", err))
	}
	r.items = append(r.items, it)
	return TypeID(n)
}

// RegisterBuiltIn adds a built-in type. Registering a known name returns its id.
func (r *Registry) RegisterBuiltIn(name string, size uint32) TypeID {
	key := r.strings.Intern(name)
	if id, ok := r.builtins[key]; ok {
		return id
	}
	id := r.add(Item{Name: name, Size: size, Kind: KindBuiltIn, Defined: true})
	r.builtins[key] = id
	return id
}

// RegisterType adds a user-defined type under namespace. It is idempotent by
// qualified name: a second call returns the existing id.
func (r *Registry) RegisterType(namespace []string, name string) TypeID {
	qualified := Qualify(namespace, name)
	key := r.strings.Intern(qualified)
	if id, ok := r.users[key]; ok {
		return id
	}
	id := r.add(Item{Name: qualified, Kind: KindUserDefined})
	r.users[key] = id
	return id
}

// RegisterAlias binds namespace::alias to target. A second registration of the
// same qualified alias fails with ErrAliasExists and leaves the first intact.
func (r *Registry) RegisterAlias(namespace []string, alias string, target TypeID) error {
	if _, ok := r.Lookup(target); !ok {
		return fmt.Errorf("alias %s: unknown target type %d", alias, target)
	}
	qualified := Qualify(namespace, alias)
	key := r.strings.Intern(qualified)
	if _, ok := r.aliases[key]; ok {
		return fmt.Errorf("%w: %s", ErrAliasExists, qualified)
	}
	r.aliases[key] = target
	r.aliasLog = append(r.aliasLog, Alias{Name: qualified, Target: target})
	return nil
}

// Resolve looks name up starting at namespace and walking toward the root.
// At each level the alias table wins over built-ins, built-ins over user types.
func (r *Registry) Resolve(namespace []string, name string) (TypeID, bool) {
	for level := len(namespace); level >= 0; level-- {
		key, ok := r.strings.Find(Qualify(namespace[:level], name))
		if !ok {
			continue
		}
		if id, ok := r.aliases[key]; ok {
			return id, true
		}
		if id, ok := r.builtins[key]; ok {
			return id, true
		}
		if id, ok := r.users[key]; ok {
			return id, true
		}
	}
	return NoTypeID, false
}

// SetSize records the computed storage size of a user type and marks it defined.
func (r *Registry) SetSize(id TypeID, size uint32) bool {
	if !id.IsValid() || int(id) >= len(r.items) || r.items[id].Kind != KindUserDefined {
		return false
	}
	r.items[id].Size = size
	r.items[id].Defined = true
	return true
}

func (r *Registry) Lookup(id TypeID) (Item, bool) {
	if !id.IsValid() || int(id) >= len(r.items) {
		return Item{}, false
	}
	return r.items[id], true
}

// MustLookup panics when id is invalid.
func (r *Registry) MustLookup(id TypeID) Item {
	it, ok := r.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return it
}

// Len counts registered types (built-ins included).
func (r *Registry) Len() int { return len(r.items) - 1 }

// UserTypes returns user-defined items in registration order.
func (r *Registry) UserTypes() []Item {
	out := make([]Item, 0, len(r.users))
	for _, it := range r.items[1:] {
		if it.Kind == KindUserDefined {
			out = append(out, it)
		}
	}
	return out
}

// Aliases returns aliases in registration order.
func (r *Registry) Aliases() []Alias {
	out := make([]Alias, len(r.aliasLog))
	copy(out, r.aliasLog)
	return out
}
