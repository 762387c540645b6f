package testkit

import (
	"strings"
	"testing"

	"reflectc/internal/ast"
	"reflectc/internal/layout"
	"reflectc/internal/token"
)

func TestCheckTreeInvariants(t *testing.T) {
	stream := token.NewStream([]token.Symbol{{Kind: token.Identifier, Text: "a"}, {Kind: token.Identifier, Text: "b"}})
	tree := ast.NewTree(stream)
	ns := tree.Add(tree.Root(), ast.KindNamespace, 0, nil)
	tree.Add(ns, ast.KindStruct, 1, nil)
	if err := CheckTreeInvariants(tree); err != nil {
		t.Fatalf("valid tree rejected: %v", err)
	}

	tree.Add(ns, ast.KindStruct, 7, nil)
	err := CheckTreeInvariants(tree)
	if err == nil || !strings.Contains(err.Error(), "outside stream") {
		t.Fatalf("expected symbol range error, got %v", err)
	}

	if err := CheckTreeInvariants(nil); err == nil {
		t.Fatal("nil tree accepted")
	}
}

func TestCheckTypeInfo(t *testing.T) {
	info := layout.TypeInfo{
		TypeName: "Foo",
		Size:     32,
		Members: []layout.TypeInfo{
			{DeclName: "a", Size: 12},
			{DeclName: "b", Size: 8, ByteOffset: 12},
		},
	}
	if err := CheckTypeInfo(info); err != nil {
		t.Fatalf("valid info rejected: %v", err)
	}

	info.Size = 16
	if err := CheckTypeInfo(info); err == nil {
		t.Fatal("member past the end accepted")
	}

	info.Size = 32
	info.Members[1].ByteOffset = 0
	info.Members[0].ByteOffset = 4
	if err := CheckTypeInfo(info); err == nil {
		t.Fatal("backwards offset accepted")
	}
}
