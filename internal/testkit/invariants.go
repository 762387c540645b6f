// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"reflectc/internal/ast"
	"reflectc/internal/layout"
)

// CheckTreeInvariants verifies the arena links of a syntax tree:
//  1. the root is a GlobalNamespace without parent or symbol;
//  2. every other node has a valid parent that lists it exactly once;
//  3. every symbol position is NoSymbol or inside the stream (EOF included).
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil {
		return fmt.Errorf("nil tree")
	}
	root := tree.Node(tree.Root())
	if root == nil || root.Kind != ast.KindGlobalNamespace {
		return fmt.Errorf("root is not a GlobalNamespace")
	}
	if root.Parent.IsValid() || root.Sym != ast.NoSymbol {
		return fmt.Errorf("root has parent %d or symbol %d", root.Parent, root.Sym)
	}

	symbols := tree.Symbols.Len()
	for id, node := range tree.Nodes() {
		if node.Sym != ast.NoSymbol && (node.Sym < 0 || node.Sym > symbols) {
			return fmt.Errorf("node %d (%s): symbol %d outside stream of %d", id, node.Kind, node.Sym, symbols)
		}
		if id == tree.Root() {
			continue
		}
		parent := tree.Node(node.Parent)
		if parent == nil {
			return fmt.Errorf("node %d (%s): dangling parent %d", id, node.Kind, node.Parent)
		}
		count := 0
		for _, c := range parent.Children {
			if c == id {
				count++
			}
		}
		if count != 1 {
			return fmt.Errorf("node %d (%s): listed %d times by parent %d", id, node.Kind, count, node.Parent)
		}
	}
	return nil
}

// CheckTypeInfo verifies that members of info stay inside it and that
// offsets never go backwards. Nested member tables are checked recursively.
func CheckTypeInfo(info layout.TypeInfo) error {
	var prev uint32
	for _, m := range info.Members {
		if m.ByteOffset < prev {
			return fmt.Errorf("%s.%s: offset %d goes backwards", info.TypeName, m.DeclName, m.ByteOffset)
		}
		if uint64(m.ByteOffset)+uint64(m.Size) > uint64(info.Size) {
			return fmt.Errorf("%s.%s: [%d,+%d) exceeds size %d", info.TypeName, m.DeclName, m.ByteOffset, m.Size, info.Size)
		}
		prev = m.ByteOffset
	}
	return nil
}
