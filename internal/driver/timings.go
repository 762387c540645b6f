package driver

import (
	"encoding/json"
	"fmt"

	"reflectc/internal/diag"
	"reflectc/internal/observ"
	"reflectc/internal/source"
)

// timingPayload is the JSON note of an ObsTimings record.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	Types   int                  `json:"types"`
	TotalMS float64              `json:"total_ms"`
	Slowest string               `json:"slowest,omitempty"`
	Phases  []observ.PhaseReport `json:"phases"`
}

func unitTimings(path string, types int, report observ.Report) timingPayload {
	p := timingPayload{
		Kind:    "unit",
		Path:    path,
		Types:   types,
		TotalMS: report.TotalMS,
		Phases:  report.Phases,
	}
	slowest := -1.0
	for _, ph := range report.Phases {
		if ph.DurationMS > slowest {
			slowest = ph.DurationMS
			p.Slowest = ph.Name
		}
	}
	return p
}

func (p timingPayload) message() string {
	msg := fmt.Sprintf("timings (%s): total %.2f ms", p.Kind, p.TotalMS)
	if p.Slowest != "" {
		msg += ", slowest " + p.Slowest
	}
	if p.Path != "" {
		msg += ", " + p.Path
	}
	return msg
}

// appendTimingDiagnostic attaches an info record with the payload as its JSON
// note. Timing never displaces a real diagnostic: a full bag grows by one.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "unit"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, payload.message()).
		WithNote(source.Span{}, string(data))
	if !bag.Add(entry) {
		overflow := diag.NewBag(1)
		overflow.Add(entry)
		bag.Merge(overflow)
	}
}
