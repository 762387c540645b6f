package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build metadata for reflectc. Overridable via -ldflags "-X reflectc/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	majorColor  = color.New(color.FgYellow, color.Bold)
	minorColor  = color.New(color.FgGreen, color.Bold)
	patchColor  = color.New(color.FgBlue, color.Bold)
	suffixColor = color.New(color.Faint)
)

// Colored renders Version with each semver component in its own colour.
// Strings that are not of the form X.Y.Z[-suffix] are returned unchanged.
func Colored() string {
	v := strings.TrimSpace(Version)
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += suffixColor.Sprint(suffix)
	}
	return out
}
