package observ

import (
	"strings"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * step)
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)

	lex := tm.Begin("lex")
	tm.End(lex, "12 symbols")
	done := tm.Track("parse")
	done("")
	tm.End(lex, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "lex" || r.Phases[0].Note != "12 symbols" {
		t.Errorf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS != 1 || r.Phases[1].DurationMS != 1 {
		t.Errorf("unexpected durations: %+v", r.Phases)
	}
	if r.TotalMS != 2 {
		t.Errorf("total = %v, want 2", r.TotalMS)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	tm.Add("layout", 3*time.Millisecond, "2 types")
	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("missing header: %q", s)
	}
	if !strings.Contains(s, "layout") || !strings.Contains(s, "// 2 types") {
		t.Errorf("summary lacks phase line: %q", s)
	}
	if !strings.Contains(s, "total") || !strings.Contains(s, "3.00 ms") {
		t.Errorf("summary lacks total: %q", s)
	}
}

func TestReportTotals(t *testing.T) {
	tm := NewTimer()
	tm.Add("lex", time.Millisecond, "a.h")
	tm.Add("parse", 2*time.Millisecond, "")
	tm.Add("lex", 3*time.Millisecond, "b.h")

	totals := tm.Report().Totals()
	if len(totals.Phases) != 2 {
		t.Fatalf("expected 2 folded phases, got %+v", totals.Phases)
	}
	if totals.Phases[0].Name != "lex" || totals.Phases[0].DurationMS != 4 {
		t.Errorf("lex not folded: %+v", totals.Phases[0])
	}
	if totals.TotalMS != 6 {
		t.Errorf("total = %v, want 6", totals.TotalMS)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatalf("nil timer reported phases: %+v", r)
	}
}
