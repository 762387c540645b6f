package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"reflectc/internal/hlsl"
	"reflectc/internal/layout"
)

// OutputFormat selects how reflected TypeInfos are written.
type OutputFormat string

const (
	OutputPretty      OutputFormat = "pretty"
	OutputJSON        OutputFormat = "json"
	OutputStream      OutputFormat = "hlsl-struct"     // struct with semantics
	OutputCBuffer     OutputFormat = "hlsl-cbuffer"    // cbuffer with register
	OutputStructured  OutputFormat = "hlsl-structured" // struct without semantics
	OutputInputLayout OutputFormat = "input-layout"
)

var outputFormats = []OutputFormat{OutputPretty, OutputJSON, OutputStream, OutputCBuffer, OutputStructured, OutputInputLayout}

// ParseOutputFormat parses a --format value for reflected types.
func ParseOutputFormat(s string) (OutputFormat, error) {
	for _, f := range outputFormats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	names := make([]string, len(outputFormats))
	for i, f := range outputFormats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("invalid output format: %q (expected: %s)", s, strings.Join(names, "|"))
}

// TypeInfoOpts configures FormatTypeInfos.
type TypeInfoOpts struct {
	Format          OutputFormat
	DefaultRegister int32 // cbuffer index for types without register(bN)
	Source          string
}

// FormatTypeInfos writes infos in the requested format.
func FormatTypeInfos(w io.Writer, infos []layout.TypeInfo, opts TypeInfoOpts) error {
	switch opts.Format {
	case OutputJSON:
		return formatTypeInfosJSON(w, infos, opts.Source)
	case OutputStream, OutputCBuffer, OutputStructured:
		return formatTypeInfosHLSL(w, infos, opts)
	case OutputInputLayout:
		return formatInputLayouts(w, infos)
	case OutputPretty, "":
		return formatTypeInfosPretty(w, infos)
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

func formatTypeInfosPretty(w io.Writer, infos []layout.TypeInfo) error {
	var sb strings.Builder
	for i, info := range infos {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s  size %d", info.TypeName, info.Size)
		if info.HasRegister() {
			fmt.Fprintf(&sb, "  register b%d", info.RegisterIndex)
		}
		sb.WriteByte('\n')
		writeMembersPretty(&sb, info.Members, "  ")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeMembersPretty(sb *strings.Builder, members []layout.TypeInfo, indent string) {
	for _, m := range members {
		fmt.Fprintf(sb, "%s+%-4d %-10s %-16s %4d", indent, m.ByteOffset, m.TypeName, m.DeclName, m.Size)
		if m.SemanticName != "" {
			fmt.Fprintf(sb, "  : %s", m.SemanticName)
		}
		sb.WriteByte('\n')
		if !m.IsBuiltIn && len(m.Members) > 0 {
			writeMembersPretty(sb, m.Members, indent+"  ")
		}
	}
}

type typeInfosOutput struct {
	Source string            `json:"source,omitempty"`
	Types  []layout.TypeInfo `json:"types"`
	Count  int               `json:"count"`
}

func formatTypeInfosJSON(w io.Writer, infos []layout.TypeInfo, src string) error {
	if infos == nil {
		infos = []layout.TypeInfo{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(typeInfosOutput{Source: src, Types: infos, Count: len(infos)})
}

func formatTypeInfosHLSL(w io.Writer, infos []layout.TypeInfo, opts TypeInfoOpts) error {
	for _, info := range infos {
		var text string
		switch opts.Format {
		case OutputStream:
			text = hlsl.StreamDatum(info)
		case OutputCBuffer:
			text = hlsl.ConstantBuffer(info, opts.DefaultRegister)
		default:
			text = hlsl.StructuredBuffer(info)
		}
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

type inputLayoutOutput struct {
	Type     string              `json:"type"`
	Stride   uint32              `json:"stride"`
	Elements []hlsl.InputElement `json:"elements"`
}

func formatInputLayouts(w io.Writer, infos []layout.TypeInfo) error {
	out := make([]inputLayoutOutput, 0, len(infos))
	for _, info := range infos {
		elems := hlsl.InputElements(info)
		if elems == nil {
			elems = []hlsl.InputElement{}
		}
		out = append(out, inputLayoutOutput{Type: info.TypeName, Stride: info.Size, Elements: elems})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// UnitTypeInfos is the reflected table of one translation unit.
type UnitTypeInfos struct {
	Source string
	Infos  []layout.TypeInfo
}

// FormatUnits writes the tables of several units. A single unit is written
// exactly as FormatTypeInfos would; several units are separated by a header
// line (text formats) or collected into one JSON array.
func FormatUnits(w io.Writer, units []UnitTypeInfos, opts TypeInfoOpts) error {
	if len(units) == 1 {
		o := opts
		o.Source = units[0].Source
		return FormatTypeInfos(w, units[0].Infos, o)
	}
	switch opts.Format {
	case OutputJSON:
		out := make([]typeInfosOutput, 0, len(units))
		for _, u := range units {
			infos := u.Infos
			if infos == nil {
				infos = []layout.TypeInfo{}
			}
			out = append(out, typeInfosOutput{Source: u.Source, Types: infos, Count: len(infos)})
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	case OutputInputLayout:
		var all []layout.TypeInfo
		for _, u := range units {
			all = append(all, u.Infos...)
		}
		return formatInputLayouts(w, all)
	}

	first := true
	for _, u := range units {
		if len(u.Infos) == 0 {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintf(w, "// %s\n", u.Source); err != nil {
			return err
		}
		if err := FormatTypeInfos(w, u.Infos, opts); err != nil {
			return err
		}
	}
	return nil
}
