package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a process-wide monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a fresh span id; 0 is never returned.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// getGoroutineID reads N from the "goroutine N [" stack header. Units of a
// directory run are reflected on separate goroutines; the id groups them.
func getGoroutineID() uint64 {
	var buf [64]byte
	header := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], []byte("goroutine "))
	if i := bytes.IndexByte(header, ' '); i > 0 {
		if gid, err := strconv.ParseUint(string(header[:i]), 10, 64); err == nil {
			return gid
		}
	}
	return 0
}

// Span is an open begin/end pair. A Span from a disabled tracer is inert;
// every method is safe on it.
type Span struct {
	tracer  Tracer
	begin   Event
	extra   map[string]string
	started time.Time
}

var inert = Span{tracer: Nop}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		sp := inert
		return &sp
	}
	now := time.Now()
	sp := &Span{
		tracer:  t,
		started: now,
		begin: Event{
			Time:     now,
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      getGoroutineID(),
			Name:     name,
		},
	}
	ev := sp.begin
	t.Emit(&ev)
	return sp
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled() && s.begin.SpanID != 0
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Elapsed = ev.Time.Sub(s.started)
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return ev.Elapsed
}

// Fail closes the span with err as its detail and marks the end event with
// an "error" extra so NDJSON consumers can filter failed units.
func (s *Span) Fail(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.WithExtra("error", "true").End(err.Error())
}

// WithExtra attaches a key/value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span id, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}
