package layout

// Target describes the host the reflected structs are shared with.
// Only the pointer width affects layout.
type Target struct {
	Name    string
	PtrSize uint32 // bytes
}

func DefaultTarget() Target {
	return Target{Name: "x86_64", PtrSize: 8}
}

// TargetForPointerSize returns a target with the given pointer width
// (0 selects the default).
func TargetForPointerSize(size uint32) Target {
	switch size {
	case 0, 8:
		return DefaultTarget()
	case 4:
		return Target{Name: "x86", PtrSize: 4}
	default:
		return Target{Name: "custom", PtrSize: size}
	}
}
