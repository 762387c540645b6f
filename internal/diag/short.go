package diag

import (
	"fmt"
	"sort"
	"strings"

	"reflectc/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics one per line as
// "path:line:col: SEVERITY CODE: message", sorted deterministically.
// Used by golden tests and the CLI short format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = append(rendered, render(fs, d.Severity, d.Code, d.Primary, d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				rendered = append(rendered, render(fs, SevInfo, d.Code, n.Span, "note: "+n.Msg))
			}
		}
	}
	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		return di.Code < dj.Code
	})

	var sb strings.Builder
	for i, d := range rendered {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return sb.String()
}

func render(fs *source.FileSet, sev Severity, code Code, sp source.Span, msg string) shortDiagnostic {
	path := "<unknown>"
	if f := fs.Get(sp.File); f != nil {
		path = f.DisplayPath(fs.BaseDir())
	}
	start, _ := fs.Resolve(sp)
	return shortDiagnostic{
		Severity: sev.String(),
		Code:     code.ID(),
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  msg,
	}
}
