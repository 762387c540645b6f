package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"reflectc/internal/diag"
	"reflectc/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		gutter: color.New(color.FgHiBlack),
		caret:  color.New(color.FgGreen, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// hasLocation reports whether d points into a file. I/O and timing records
// are created with a zero span.
func hasLocation(d diag.Diagnostic) bool {
	return !d.Primary.IsZero() || d.Code < diag.IOLoadFileError
}

// Pretty renders diagnostics for humans:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	  12 | struct Foo {
//	     |        ^~~
//
// followed by notes when enabled. The bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := fmt.Sprintf("%s %s", p.severity(d.Severity).Sprint(d.Severity.String()), p.bold.Sprint(d.Code.ID()))
	if !hasLocation(d) {
		fmt.Fprintf(w, "%s: %s\n", header, d.Message)
	} else {
		fmt.Fprintf(w, "%s: %s: %s\n", location(d.Primary, fs, opts.PathMode), header, d.Message)
		snippet(w, d.Primary, fs, opts, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		label := p.note.Sprint("note")
		if n.Span.IsZero() {
			fmt.Fprintf(w, "  %s: %s\n", label, n.Msg)
			continue
		}
		fmt.Fprintf(w, "  %s: %s: %s\n", label, location(n.Span, fs, opts.PathMode), n.Msg)
	}
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(sp.File), fs, mode), start.Line, start.Col)
}

// snippet prints the context lines and the offending line with a ^~~ marker
// under the span. Multi-line spans are marked up to the end of the first line.
func snippet(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	gutterWidth := len(fmt.Sprint(start.Line))

	first := start.Line
	if opts.Context > 0 && uint32(opts.Context) < first {
		first -= uint32(opts.Context)
	} else if opts.Context > 0 {
		first = 1
	}
	for ln := first; ln <= start.Line; ln++ {
		text := clip(expandTabs(f.Line(ln)), opts.Width)
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.Line(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:max(stop, col)])), 1)
	if opts.Width > 0 {
		limit := int(opts.Width)
		if pad >= limit {
			return
		}
		width = max(min(width, limit-pad), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clip(s string, width uint8) string {
	if width == 0 || runewidth.StringWidth(s) <= int(width) {
		return s
	}
	return runewidth.Truncate(s, int(width), "...")
}
