package main

import (
	"fmt"
	"io"

	"reflectc/internal/observ"
)

func printTimings(out io.Writer, path string, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	fmt.Fprintf(out, "%s: %.1f ms", path, report.TotalMS)
	for _, ph := range report.Phases {
		fmt.Fprintf(out, "  %s %.1f", ph.Name, ph.DurationMS)
	}
	fmt.Fprintln(out)
}

// printTotals sums phases across units.
func printTotals(out io.Writer, units int, reports []observ.Report) {
	if out == nil || len(reports) == 0 {
		return
	}
	var all observ.Report
	for _, r := range reports {
		all.TotalMS += r.TotalMS
		all.Phases = append(all.Phases, r.Phases...)
	}
	totals := all.Totals()
	fmt.Fprintf(out, "%d units: %.1f ms cpu", units, totals.TotalMS)
	for _, ph := range totals.Phases {
		fmt.Fprintf(out, "  %s %.1f", ph.Name, ph.DurationMS)
	}
	fmt.Fprintln(out)
}
