package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("ParseLevel should reject unknown levels")
	}
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}

	var flag Level
	if err := flag.Set("debug"); err != nil || flag != LevelDebug || flag.Type() != "level" {
		t.Errorf("Set(debug) = %v, level %v", err, flag)
	}
	if err := flag.Set("loud"); err == nil || flag != LevelDebug {
		t.Errorf("Set(loud) should fail and keep %v", flag)
	}
	if LevelDebug.ShouldEmit(ScopeNone) || Level(42).ShouldEmit(ScopeDriver) {
		t.Errorf("out of range levels or scopes must not emit")
	}
}

func TestStorageModeFlag(t *testing.T) {
	var m StorageMode
	if err := m.Set("Both"); err != nil || m != ModeBoth || !m.Streams() {
		t.Fatalf("Set(Both) = %v, mode %v", err, m)
	}
	if err := m.Set("disk"); err == nil || m != ModeBoth {
		t.Errorf("Set(disk) should fail and keep %v", m)
	}
	if ModeRing.Streams() || m.Type() != "mode" || StorageMode(9).String() != "unknown" {
		t.Errorf("unexpected mode helpers")
	}
}

func TestSpanFail(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	sp := Begin(tr, ScopeUnit, "unit:broken.h", 0)
	sp.Fail(errors.New("unexpected EOF"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Detail string            `json:"detail"`
		Extra  map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("end event is not JSON: %v", err)
	}
	if ev.Detail != "unexpected EOF" || ev.Extra["error"] != "true" {
		t.Errorf("unexpected end event: %+v", ev)
	}

	inertSpan := Begin(Nop, ScopeUnit, "x", 0)
	if inertSpan.Fail(errors.New("x")) != 0 || inertSpan.ID() != 0 {
		t.Errorf("inert span should do nothing")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	ctx := WithTracer(context.Background(), tr)
	ctx, parent := StartSpan(ctx, ScopePass, "parse")
	_, child := StartSpan(ctx, ScopeUnit, "unit:a.h")
	child.WithExtra("types", "3").End("ok")
	Begin(tr, ScopeNode, "record", parent.ID()).End("") // filtered at detail
	parent.End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatalf("line 3 is not JSON: %v", err)
	}
	if ev["name"] != "unit:a.h" || ev["kind"] != "end" || ev["detail"] != "ok" {
		t.Errorf("unexpected event: %v", ev)
	}
	if uint64(ev["parent_id"].(float64)) != parent.ID() {
		t.Errorf("child parent = %v, want %d", ev["parent_id"], parent.ID())
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		Point(r, ScopeNode, "p", string(rune('a'+i)), 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d", len(snap))
	}
	if snap[0].Detail != "c" || snap[2].Detail != "e" {
		t.Errorf("wrong order: %q %q", snap[0].Detail, snap[2].Detail)
	}
	var out bytes.Buffer
	if err := r.Dump(&out, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "\n") != 3 || !strings.Contains(out.String(), "• p (e)") {
		t.Errorf("dump:\n%s", out.String())
	}
}

func TestNewAndRingOf(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off level should give a disabled tracer")
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "reflect", 0).End("")
	ring := RingOf(tr)
	if ring == nil || len(ring.Snapshot()) != 2 {
		t.Fatalf("ring should hold both events")
	}
	if !strings.Contains(buf.String(), "reflect") {
		t.Errorf("stream output missing event: %q", buf.String())
	}

	// error: поток молчит, кольцо пишет фазы
	buf.Reset()
	tr, err = New(Config{Level: LevelError, Mode: ModeBoth, Output: &buf, RingSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	if buf.Len() != 0 {
		t.Errorf("error level must not stream: %q", buf.String())
	}
	if got := len(RingOf(tr).Snapshot()); got != 2 {
		t.Errorf("ring at error level holds %d events, want 2", got)
	}
	if _, err := New(Config{Level: LevelPhase}); err == nil {
		t.Errorf("missing mode should be an error")
	}
}

func TestInertSpans(t *testing.T) {
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.WithExtra("k", "v").End("") != 0 {
		t.Fatalf("spans from Nop must be inert")
	}
	ctx, sp := StartSpan(context.Background(), ScopePass, "lex")
	if CurrentSpan(ctx).SpanID != 0 || sp.ID() != 0 {
		t.Fatalf("StartSpan without tracer must not open a span")
	}
}

func TestHeartbeat(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 {
		t.Fatalf("no heartbeat recorded")
	}
	if snap[0].Kind != KindHeartbeat || snap[0].Extra["goroutines"] == "" {
		t.Errorf("unexpected heartbeat event: %+v", snap[0])
	}
	if StartHeartbeat(Nop, time.Second) != nil {
		t.Errorf("heartbeat on Nop should be nil")
	}
}
