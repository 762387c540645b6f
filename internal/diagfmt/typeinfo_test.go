package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"reflectc/internal/layout"
)

func fooInfo() layout.TypeInfo {
	return layout.TypeInfo{
		TypeName:      "Foo",
		Size:          32,
		RegisterIndex: layout.NoRegister,
		Members: []layout.TypeInfo{
			{TypeName: "float3", IsBuiltIn: true, DeclName: "position", Size: 12, RegisterIndex: layout.NoRegister},
			{TypeName: "float2", IsBuiltIn: true, DeclName: "uv", SemanticName: "TEXCOORD0", Size: 8, ByteOffset: 12, RegisterIndex: layout.NoRegister},
		},
	}
}

func TestFormatTypeInfosHLSL(t *testing.T) {
	infos := []layout.TypeInfo{fooInfo()}
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{OutputStream, "struct Foo { float3 position : POSITION; float2 uv : TEXCOORD0; };\n"},
		{OutputCBuffer, "cbuffer Foo : register(b3) { float3 position; float2 uv; };\n"},
		{OutputStructured, "struct Foo { float3 position; float2 uv; };\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatTypeInfos(&buf, infos, TypeInfoOpts{Format: tt.format, DefaultRegister: 3}); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFormatTypeInfosPretty(t *testing.T) {
	info := fooInfo()
	info.RegisterIndex = 2
	var buf bytes.Buffer
	if err := FormatTypeInfos(&buf, []layout.TypeInfo{info}, TypeInfoOpts{Format: OutputPretty}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Foo  size 32  register b2\n") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "+12") || !strings.Contains(out, ": TEXCOORD0") {
		t.Errorf("member lines missing: %q", out)
	}
}

func TestFormatTypeInfosJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTypeInfos(&buf, nil, TypeInfoOpts{Format: OutputJSON, Source: "a.h"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"types": []`) {
		t.Errorf("empty table should encode as []: %s", buf.String())
	}

	buf.Reset()
	if err := FormatTypeInfos(&buf, []layout.TypeInfo{fooInfo()}, TypeInfoOpts{Format: OutputJSON}); err != nil {
		t.Fatal(err)
	}
	var out typeInfosOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 || out.Types[0].Members[1].ByteOffset != 12 {
		t.Errorf("unexpected round trip: %+v", out)
	}
}

func TestFormatInputLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTypeInfos(&buf, []layout.TypeInfo{fooInfo()}, TypeInfoOpts{Format: OutputInputLayout}); err != nil {
		t.Fatal(err)
	}
	var out []inputLayoutOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 1 || out[0].Stride != 32 || len(out[0].Elements) != 2 {
		t.Fatalf("unexpected layout: %+v", out)
	}
	if e := out[0].Elements[1]; e.SemanticName != "TEXCOORD" || e.SemanticIndex != 0 || e.AlignedByteOffset != 12 {
		t.Errorf("unexpected element: %+v", e)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, err := ParseOutputFormat("HLSL-CBUFFER"); err != nil || f != OutputCBuffer {
		t.Errorf("got %q, %v", f, err)
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Error("expected error")
	}
}

func TestFormatUnits(t *testing.T) {
	units := []UnitTypeInfos{
		{Source: "a.h", Infos: []layout.TypeInfo{fooInfo()}},
		{Source: "empty.h"},
		{Source: "b.h", Infos: []layout.TypeInfo{fooInfo()}},
	}

	var buf bytes.Buffer
	if err := FormatUnits(&buf, units, TypeInfoOpts{Format: OutputStructured}); err != nil {
		t.Fatal(err)
	}
	want := "// a.h\nstruct Foo { float3 position; float2 uv; };\n\n// b.h\nstruct Foo { float3 position; float2 uv; };\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := FormatUnits(&buf, units, TypeInfoOpts{Format: OutputJSON}); err != nil {
		t.Fatal(err)
	}
	var out []typeInfosOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 3 || out[1].Source != "empty.h" || out[1].Count != 0 || out[2].Types[0].TypeName != "Foo" {
		t.Errorf("unexpected units: %+v", out)
	}

	buf.Reset()
	if err := FormatUnits(&buf, units[:1], TypeInfoOpts{Format: OutputJSON}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"source": "a.h"`) {
		t.Errorf("single unit should carry its source: %s", buf.String())
	}
}
