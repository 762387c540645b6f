package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"reflectc/internal/diag"
	"reflectc/internal/diagfmt"
	"reflectc/internal/driver"
	"reflectc/internal/source"
	"reflectc/internal/version"
)

type outputFlags struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	pathMode       diagfmt.PathMode
}

func readOutputFlags(cmd *cobra.Command) (outputFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var out outputFlags

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return out, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on":
		out.color = true
	case "off":
		out.color = false
	case "auto", "":
		out.color = isTerminal(os.Stderr)
	default:
		return out, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if out.quiet, err = pf.GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.timings, err = pf.GetBool("timings"); err != nil {
		return out, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if out.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return out, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if out.diagFormat, err = pf.GetString("diag-format"); err != nil {
		return out, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	out.diagFormat = strings.ToLower(out.diagFormat)
	switch out.diagFormat {
	case "pretty", "json", "sarif":
	default:
		return out, fmt.Errorf("invalid --diag-format value %q (expected pretty|json|sarif)", out.diagFormat)
	}
	pathMode, err := pf.GetString("path-mode")
	if err != nil {
		return out, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	if out.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return out, err
	}
	return out, nil
}

// driverOptions reads the per-command layout flags shared by parse and reflect.
func driverOptions(cmd *cobra.Command, flags outputFlags) (driver.Options, error) {
	opts := driver.Options{MaxDiagnostics: flags.maxDiagnostics}
	var err error
	if opts.MaxDepth, err = cmd.Flags().GetInt("max-depth"); err != nil {
		return opts, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if opts.PointerSize, err = cmd.Flags().GetUint32("pointer-size"); err != nil {
		return opts, fmt.Errorf("failed to get pointer-size flag: %w", err)
	}
	switch opts.PointerSize {
	case 0, 4, 8:
	default:
		return opts, fmt.Errorf("invalid --pointer-size %d (expected 4 or 8)", opts.PointerSize)
	}
	if opts.MaxDepth < 0 {
		return opts, fmt.Errorf("invalid --max-depth %d", opts.MaxDepth)
	}
	return opts, nil
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-depth", 0, "maximum namespace/brace nesting (0=default)")
	cmd.Flags().Uint32("pointer-size", 8, "size of pointer and reference members (4|8)")
}

// emitDiagnostics writes bag to stderr in the selected format. With --quiet
// only errors are shown.
func emitDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, flags outputFlags) error {
	if bag == nil {
		return nil
	}
	if flags.quiet {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity.AtLeast(diag.SevError) })
	}
	bag.Sort()
	errOut := cmd.ErrOrStderr()

	switch flags.diagFormat {
	case "json":
		return diagfmt.JSON(errOut, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			Max:              flags.maxDiagnostics,
			IncludeNotes:     true,
		})
	case "sarif":
		return diagfmt.Sarif(errOut, bag, fs, diagfmt.SarifRunMeta{
			ToolName:       "reflectc",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		})
	default:
		if bag.Len() == 0 {
			return nil
		}
		diagfmt.Pretty(errOut, bag, fs, diagfmt.PrettyOpts{
			Color:     flags.color,
			Context:   2,
			PathMode:  flags.pathMode,
			ShowNotes: true,
			Max:       flags.maxDiagnostics,
		})
		return nil
	}
}
