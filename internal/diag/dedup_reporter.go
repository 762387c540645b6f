package diag

import "reflectc/internal/source"

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter drops a diagnostic when one with the same code, primary span
// and message already went through. Grammar recovery can revisit the same
// symbol from two handlers, so the parser pipeline reports through it.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]Severity
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]Severity)}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, span: primary, msg: msg}
	// повтор с той же или меньшей важностью не нужен
	if prev, ok := r.seen[key]; ok && prev.AtLeast(sev) {
		r.suppressed++
		return
	}
	r.seen[key] = sev
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many reports were dropped as repeats.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
