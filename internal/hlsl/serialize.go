// Package hlsl renders reflected TypeInfos back into HLSL declarations and
// vertex-input descriptors.
package hlsl

import (
	"strconv"
	"strings"

	"reflectc/internal/layout"
)

// DefaultSemantic derives a semantic from a declared member name.
func DefaultSemantic(declName string) string {
	return layout.DefaultSemantic(declName)
}

func semanticOf(m layout.TypeInfo) string {
	if m.SemanticName != "" {
		return m.SemanticName
	}
	return DefaultSemantic(m.DeclName)
}

// StreamDatum renders a vertex stream struct with a semantic on every member:
//
//	struct Foo { float3 position : POSITION; float2 uv : UV; };
func StreamDatum(info layout.TypeInfo) string {
	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(info.TypeName)
	sb.WriteString(" {")
	for _, m := range info.Members {
		sb.WriteString(" ")
		sb.WriteString(m.TypeName)
		sb.WriteString(" ")
		sb.WriteString(m.DeclName)
		sb.WriteString(" : ")
		sb.WriteString(semanticOf(m))
		sb.WriteString(";")
	}
	sb.WriteString(" };")
	return sb.String()
}

// ConstantBuffer renders a cbuffer bound to the declared register, or to
// defaultIndex when the struct has none.
func ConstantBuffer(info layout.TypeInfo, defaultIndex int32) string {
	index := defaultIndex
	if info.HasRegister() {
		index = info.RegisterIndex
	}
	var sb strings.Builder
	sb.WriteString("cbuffer ")
	sb.WriteString(info.TypeName)
	sb.WriteString(" : register(b")
	sb.WriteString(strconv.FormatInt(int64(index), 10))
	sb.WriteString(") {")
	writePlainMembers(&sb, info.Members)
	sb.WriteString(" };")
	return sb.String()
}

// StructuredBuffer renders the element struct of a structured buffer.
// Members carry no semantics.
func StructuredBuffer(info layout.TypeInfo) string {
	var sb strings.Builder
	sb.WriteString("struct ")
	sb.WriteString(info.TypeName)
	sb.WriteString(" {")
	writePlainMembers(&sb, info.Members)
	sb.WriteString(" };")
	return sb.String()
}

func writePlainMembers(sb *strings.Builder, members []layout.TypeInfo) {
	for _, m := range members {
		sb.WriteString(" ")
		sb.WriteString(m.TypeName)
		sb.WriteString(" ")
		sb.WriteString(m.DeclName)
		sb.WriteString(";")
	}
}
