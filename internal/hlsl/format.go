package hlsl

import (
	"strconv"
	"strings"
)

// Format is a vertex attribute format code. Values match DXGI_FORMAT.
type Format uint32

const (
	FormatUnknown            Format = 0
	FormatR32G32B32A32Float  Format = 2
	FormatR32G32B32A32Uint   Format = 3
	FormatR32G32B32A32Sint   Format = 4
	FormatR32G32B32Float     Format = 6
	FormatR32G32B32Uint      Format = 7
	FormatR32G32B32Sint      Format = 8
	FormatR16G16B16A16Float  Format = 10
	FormatR16G16B16A16Uint   Format = 12
	FormatR16G16B16A16Sint   Format = 14
	FormatR32G32Float        Format = 16
	FormatR32G32Uint         Format = 17
	FormatR32G32Sint         Format = 18
	FormatR16G16Float        Format = 34
	FormatR16G16Uint         Format = 36
	FormatR16G16Sint         Format = 38
	FormatR32Float           Format = 41
	FormatR32Uint            Format = 42
	FormatR32Sint            Format = 43
	FormatR16Float           Format = 54
	FormatR16Uint            Format = 57
	FormatR16Sint            Format = 59
	DefaultFormat                   = FormatR32Float
)

var formatNames = map[Format]string{
	FormatUnknown:           "UNKNOWN",
	FormatR32G32B32A32Float: "R32G32B32A32_FLOAT",
	FormatR32G32B32A32Uint:  "R32G32B32A32_UINT",
	FormatR32G32B32A32Sint:  "R32G32B32A32_SINT",
	FormatR32G32B32Float:    "R32G32B32_FLOAT",
	FormatR32G32B32Uint:     "R32G32B32_UINT",
	FormatR32G32B32Sint:     "R32G32B32_SINT",
	FormatR16G16B16A16Float: "R16G16B16A16_FLOAT",
	FormatR16G16B16A16Uint:  "R16G16B16A16_UINT",
	FormatR16G16B16A16Sint:  "R16G16B16A16_SINT",
	FormatR32G32Float:       "R32G32_FLOAT",
	FormatR32G32Uint:        "R32G32_UINT",
	FormatR32G32Sint:        "R32G32_SINT",
	FormatR16G16Float:       "R16G16_FLOAT",
	FormatR16G16Uint:        "R16G16_UINT",
	FormatR16G16Sint:        "R16G16_SINT",
	FormatR32Float:          "R32_FLOAT",
	FormatR32Uint:           "R32_UINT",
	FormatR32Sint:           "R32_SINT",
	FormatR16Float:          "R16_FLOAT",
	FormatR16Uint:           "R16_UINT",
	FormatR16Sint:           "R16_SINT",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "FORMAT(" + strconv.FormatUint(uint64(f), 10) + ")"
}

// формат по компонентам: [1..4]
var componentFormats = map[string][4]Format{
	"float": {FormatR32Float, FormatR32G32Float, FormatR32G32B32Float, FormatR32G32B32A32Float},
	"int":   {FormatR32Sint, FormatR32G32Sint, FormatR32G32B32Sint, FormatR32G32B32A32Sint},
	"uint":  {FormatR32Uint, FormatR32G32Uint, FormatR32G32B32Uint, FormatR32G32B32A32Uint},
	"bool":  {FormatR32Uint, FormatR32G32Uint, FormatR32G32B32Uint, FormatR32G32B32A32Uint},
	"dword": {FormatR32Uint, FormatR32G32Uint, FormatR32G32B32Uint, FormatR32G32B32A32Uint},
	"half":  {FormatR16Float, FormatR16G16Float, FormatUnknown, FormatR16G16B16A16Float},

	"int16_t":  {FormatR16Sint, FormatR16G16Sint, FormatUnknown, FormatR16G16B16A16Sint},
	"uint16_t": {FormatR16Uint, FormatR16G16Uint, FormatUnknown, FormatR16G16B16A16Uint},
}

// FormatOf maps a built-in type name such as "float3" or "uint2" to its
// format code. Unrecognised names, matrices and 64-bit types fall back to
// DefaultFormat.
func FormatOf(typeName string) Format {
	scalar, n, ok := splitVector(typeName)
	if !ok {
		return DefaultFormat
	}
	formats, ok := componentFormats[scalar]
	if !ok || formats[n-1] == FormatUnknown {
		return DefaultFormat
	}
	return formats[n-1]
}

// splitVector splits "float3" into ("float", 3). Scalars have one component.
func splitVector(typeName string) (scalar string, n int, ok bool) {
	if _, known := componentFormats[typeName]; known {
		return typeName, 1, true
	}
	if len(typeName) < 2 {
		return "", 0, false
	}
	last := typeName[len(typeName)-1]
	if last < '1' || last > '4' {
		return "", 0, false
	}
	return typeName[:len(typeName)-1], int(last - '0'), true
}

// splitMatrix splits "float4x3" into ("float", 4, 3).
func splitMatrix(typeName string) (scalar string, rows, cols int, ok bool) {
	x := strings.LastIndexByte(typeName, 'x')
	if x < 2 || x != len(typeName)-2 {
		return "", 0, 0, false
	}
	r, c := typeName[x-1], typeName[x+1]
	if r < '1' || r > '4' || c < '1' || c > '4' {
		return "", 0, 0, false
	}
	return typeName[:x-1], int(r - '0'), int(c - '0'), true
}

// componentSize is the byte width of one component of scalar.
func componentSize(scalar string) uint32 {
	switch scalar {
	case "half", "int16_t", "uint16_t":
		return 2
	case "double":
		return 8
	default:
		return 4
	}
}
