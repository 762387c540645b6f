package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"reflectc/internal/diag"
	"reflectc/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs, bag := brokenBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SYN2002" {
		t.Errorf("unexpected header: %+v", d)
	}
	if d.Location == nil || d.Location.File != "test.h" {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 10 || d.Location.EndCol != 13 {
		t.Errorf("unexpected positions: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "declared here" {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONNotesAndMax(t *testing.T) {
	fs, bag := brokenBag(t)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings").WithNote(source.Span{}, `{"kind":"unit"}`))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes should be dropped without IncludeNotes")
	}
	timing := out.Diagnostics[1]
	if timing.Location != nil {
		t.Errorf("timing record should have no location: %+v", timing.Location)
	}
	if len(timing.Notes) != 1 || timing.Notes[0].Location != nil {
		t.Errorf("timing notes must be kept: %+v", timing.Notes)
	}
	if string(timing.Timing) != `{"kind":"unit"}` {
		t.Errorf("timing report not decoded: %s", timing.Timing)
	}
	if out.Summary != (SummaryJSON{Errors: 1, Infos: 1}) {
		t.Errorf("summary = %+v", out.Summary)
	}

	if out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1}); out.Count != 1 || out.Omitted != 1 {
		t.Errorf("Max not applied: count %d, omitted %d", out.Count, out.Omitted)
	}
}

func TestSarif(t *testing.T) {
	fs, bag := brokenBag(t)
	var buf bytes.Buffer
	err := Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "reflectc", ToolVersion: "1.0", InvocationArgs: []string{"reflectc", "reflect", "test.h"}})
	if err != nil {
		t.Fatalf("Sarif() error: %v", err)
	}

	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "reflectc" || len(run.Tool.Driver.Rules) != 1 {
		t.Errorf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Results) != 1 || run.Results[0].RuleID != "SYN2002" || run.Results[0].Level != "error" {
		t.Fatalf("unexpected results: %+v", run.Results)
	}
	region := run.Results[0].Locations[0].PhysicalLocation.Region
	if region.StartLine != 2 || region.StartColumn != 10 {
		t.Errorf("unexpected region: %+v", region)
	}
	if len(run.Invocations) != 1 || run.Invocations[0].ExecutionSuccessful {
		t.Errorf("unexpected invocation: %+v", run.Invocations)
	}
}
