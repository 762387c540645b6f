package types

import "fmt"

type builtinSpec struct {
	name string
	size uint32
}

// scalar sizes follow HLSL shader model 5 storage rules
var scalarSpecs = []builtinSpec{
	{"bool", 4},
	{"int", 4},
	{"uint", 4},
	{"dword", 4},
	{"half", 2},
	{"float", 4},
	{"double", 8},
}

// builtinSpecs lists every built-in type with its byte size: scalars,
// vectors <scalar>1..4 and matrices <scalar>RxC.
func builtinSpecs() []builtinSpec {
	out := []builtinSpec{
		{"void", 0},
		{"char", 1},
		{"matrix", 64},
	}
	for _, s := range scalarSpecs {
		out = append(out, s)
		if s.name == "dword" {
			continue
		}
		for n := uint32(1); n <= 4; n++ {
			out = append(out, builtinSpec{fmt.Sprintf("%s%d", s.name, n), s.size * n})
		}
		for r := uint32(1); r <= 4; r++ {
			for c := uint32(1); c <= 4; c++ {
				out = append(out, builtinSpec{fmt.Sprintf("%s%dx%d", s.name, r, c), s.size * r * c})
			}
		}
	}
	return out
}
