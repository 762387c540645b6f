package ast

import (
	"iter"

	"reflectc/internal/token"
)

// NodeID is a stable index into the tree arena.
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }

// NoSymbol is the symbol position of synthetic nodes.
const NoSymbol = -1

// Node is one syntax tree node. Children are owned exclusively by their parent.
type Node struct {
	Kind     Kind
	Sym      int // позиция символа в потоке или NoSymbol
	Parent   NodeID
	Children []NodeID
	Payload  Payload
}

// maxWalkDepth bounds parent walks; the arena cannot form cycles, so hitting
// it means the tree was corrupted.
const maxWalkDepth = 1 << 16

// Tree is an arena-backed syntax tree rooted at a synthetic GlobalNamespace.
type Tree struct {
	Symbols *token.Stream
	nodes   *Arena[Node]
	root    NodeID
}

func NewTree(symbols *token.Stream) *Tree {
	t := &Tree{
		Symbols: symbols,
		nodes:   NewArena[Node](uint(symbols.Len()/2 + 1)), //nolint:gosec // non-negative
	}
	t.root = NodeID(t.nodes.Allocate(Node{Kind: KindGlobalNamespace, Sym: NoSymbol}))
	return t
}

func (t *Tree) Root() NodeID { return t.root }

// Add appends a new child of parent and returns its id.
func (t *Tree) Add(parent NodeID, kind Kind, sym int, payload Payload) NodeID {
	id := NodeID(t.nodes.Allocate(Node{Kind: kind, Sym: sym, Parent: parent, Payload: payload}))
	if p := t.nodes.Get(uint32(parent)); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Node returns the node for id, or nil.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes.Get(uint32(id))
}

// SetPayload replaces the payload of id.
func (t *Tree) SetPayload(id NodeID, p Payload) {
	if n := t.Node(id); n != nil {
		n.Payload = p
	}
}

func (t *Tree) Len() int { return int(t.nodes.Len()) }

func (t *Tree) Kind(id NodeID) Kind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

func (t *Tree) Parent(id NodeID) NodeID {
	if n := t.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Symbol returns the symbol a node was built from (EOF sentinel for synthetic nodes).
func (t *Tree) Symbol(id NodeID) token.Symbol {
	n := t.Node(id)
	if n == nil || n.Sym == NoSymbol {
		return token.Symbol{Kind: token.EOF}
	}
	return t.Symbols.At(n.Sym)
}

// Text returns the text of the node's symbol.
func (t *Tree) Text(id NodeID) string {
	return t.Symbol(id).Text
}

// FirstChild returns the first direct child of the given kind.
func (t *Tree) FirstChild(id NodeID, kind Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Kind(c) == kind {
			return c
		}
	}
	return NoNodeID
}

// EnclosingScope walks toward the root and returns the nearest namespace node
// strictly above id (or id itself when it is a namespace).
func (t *Tree) EnclosingScope(id NodeID) NodeID {
	for depth := 0; id.IsValid() && depth < maxWalkDepth; depth++ {
		if t.Kind(id).IsScope() {
			return id
		}
		id = t.Parent(id)
	}
	return t.root
}

// NamespacePath lists namespace names from the root down to scope.
func (t *Tree) NamespacePath(scope NodeID) []string {
	var rev []string
	id := t.EnclosingScope(scope)
	for depth := 0; id.IsValid() && depth < maxWalkDepth; depth++ {
		if t.Kind(id) == KindNamespace {
			rev = append(rev, t.Text(id))
		}
		id = t.Parent(id)
	}
	out := make([]string, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) {
	type frame struct {
		id    NodeID
		depth int
	}
	stack := []frame{{id, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.id, top.depth) {
			continue
		}
		children := t.Children(top.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[i], top.depth + 1})
		}
	}
}

// Nodes yields every node in creation order, the root first.
func (t *Tree) Nodes() iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for i, n := range t.nodes.All() {
			if !yield(NodeID(i), n) {
				return
			}
		}
	}
}

// Records returns every class/struct node in source order.
func (t *Tree) Records() []NodeID {
	var out []NodeID
	t.Walk(t.root, func(id NodeID, _ int) bool {
		if t.Kind(id).IsRecord() {
			out = append(out, id)
		}
		return true
	})
	return out
}
