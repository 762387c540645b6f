package hlsl

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"reflectc/internal/layout"
)

// InputElement describes one vertex attribute, mirroring
// D3D11_INPUT_ELEMENT_DESC without slot and instancing fields.
type InputElement struct {
	SemanticName      string `json:"semantic"`
	SemanticIndex     uint32 `json:"index"`
	Format            Format `json:"format"`
	AlignedByteOffset uint32 `json:"offset"`
}

// SplitSemantic separates a trailing decimal index: "TEXCOORD1" -> ("TEXCOORD", 1).
func SplitSemantic(semantic string) (string, uint32) {
	i := len(semantic)
	for i > 0 && semantic[i-1] >= '0' && semantic[i-1] <= '9' {
		i--
	}
	if i == len(semantic) || i == 0 {
		return semantic, 0
	}
	n, err := strconv.ParseUint(semantic[i:], 10, 32)
	if err != nil {
		return semantic, 0
	}
	return semantic[:i], uint32(n)
}

// InputElements flattens info into vertex input elements. Nested structs
// contribute their members at the nested offset; matrices expand into one
// element per row with consecutive semantic indices. Members that are not
// built-in values (pointers, references) are skipped.
func InputElements(info layout.TypeInfo) []InputElement {
	var out []InputElement
	appendElements(&out, info.Members, 0)
	return out
}

func appendElements(out *[]InputElement, members []layout.TypeInfo, base uint32) {
	for _, m := range members {
		offset := base + m.ByteOffset
		if !m.IsBuiltIn {
			if len(m.Members) > 0 && !strings.HasSuffix(m.TypeName, "*") && !strings.HasSuffix(m.TypeName, "&") {
				appendElements(out, m.Members, offset)
			}
			continue
		}

		name, index := SplitSemantic(semanticOf(m))
		if scalar, rows, cols, ok := splitMatrix(m.TypeName); ok {
			vec := scalar + strconv.Itoa(cols)
			stride := componentSize(scalar) * safecast.MustConv[uint32](cols)
			for r := range rows {
				row := safecast.MustConv[uint32](r)
				*out = append(*out, InputElement{
					SemanticName:      name,
					SemanticIndex:     index + row,
					Format:            FormatOf(vec),
					AlignedByteOffset: offset + row*stride,
				})
			}
			continue
		}
		*out = append(*out, InputElement{
			SemanticName:      name,
			SemanticIndex:     index,
			Format:            FormatOf(m.TypeName),
			AlignedByteOffset: offset,
		})
	}
}
