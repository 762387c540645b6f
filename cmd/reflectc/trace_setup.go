package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reflectc/internal/trace"
)

var (
	activeTracer    trace.Tracer = trace.Nop
	activeHeartbeat *trace.Heartbeat
)

// setupTracing reads the trace flags, builds the tracer and attaches it to
// the command context.
func setupTracing(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()

	traceOutput, err := pf.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelFlag, ok := pf.Lookup("trace-level").Value.(*trace.Level)
	if !ok {
		return fmt.Errorf("trace-level flag is not a trace level")
	}
	level := *levelFlag
	modeFlag, ok := pf.Lookup("trace-mode").Value.(*trace.StorageMode)
	if !ok {
		return fmt.Errorf("trace-mode flag is not a storage mode")
	}
	ringSize, err := pf.GetInt("trace-ring-size")
	if err != nil {
		return fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}
	heartbeat, err := pf.GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	mode := *modeFlag
	// a file target implies streaming
	if traceOutput != "" && !mode.Streams() {
		mode = trace.ModeBoth
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
		Heartbeat:  heartbeat,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	activeTracer = tracer
	if heartbeat > 0 {
		activeHeartbeat = trace.StartHeartbeat(tracer, heartbeat)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return nil
}

// closeTracing flushes and closes the active tracer. Safe to call twice.
func closeTracing(errOut io.Writer) {
	if activeHeartbeat != nil {
		activeHeartbeat.Stop()
		activeHeartbeat = nil
	}
	tracer := activeTracer
	activeTracer = trace.Nop
	if err := tracer.Flush(); err != nil {
		fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
	}
	if err := tracer.Close(); err != nil {
		fmt.Fprintf(errOut, "trace: close error: %v\n", err)
	}
}

// dumpTraceRing writes the ring buffer of the active tracer, if it keeps one.
func dumpTraceRing(w io.Writer) {
	ring := trace.RingOf(activeTracer)
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "--- trace ring ---")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
