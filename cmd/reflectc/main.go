package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reflectc/internal/trace"
	"reflectc/internal/version"
)

// errReported signals that diagnostics were already printed and only the
// exit status is left to set.
var errReported = errors.New("errors reported")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "reflectc",
		Short: "C++ struct reflection for HLSL",
		Long: `reflectc parses C++-style structure declarations, computes their memory
layout and emits HLSL declarations and input layouts for them`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupProfiling(cmd); err != nil {
				return err
			}
			return setupTracing(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeTracing(cmd.ErrOrStderr())
			stopProfiling(cmd.ErrOrStderr())
		},
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "print errors only")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|json|sarif)")
	pf.String("path-mode", "auto", "how paths are shown (auto|absolute|relative|basename)")
	pf.String("trace", "", "trace output file (- for stderr)")
	traceLevel := trace.LevelOff
	pf.Var(&traceLevel, "trace-level", "trace level (off|error|phase|detail|debug)")
	traceMode := trace.ModeRing
	pf.Var(&traceMode, "trace-mode", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newReflectCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	os.Exit(run(newRootCmd(), os.Args[1:]))
}

func run(root *cobra.Command, args []string) (code int) {
	defer func() {
		if r := recover(); r != nil {
			dumpTraceRing(os.Stderr)
			closeTracing(os.Stderr)
			stopProfiling(os.Stderr)
			fmt.Fprintf(os.Stderr, "reflectc: internal error: %v\n", r)
			code = 2
		}
	}()

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		closeTracing(root.ErrOrStderr())
		stopProfiling(root.ErrOrStderr())
		if !errors.Is(err, errReported) {
			fmt.Fprintf(root.ErrOrStderr(), "reflectc: %v\n", err)
		}
		return 1
	}
	return 0
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
