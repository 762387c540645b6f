package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reflectc/internal/diagfmt"
	"reflectc/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.h",
		Short: "Parse a header and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	addLayoutFlags(cmd)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json", "tree":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	flags, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, flags)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := emitDiagnostics(cmd, result.Bag, result.FileSet, flags); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	tree := result.Result.Tree
	switch format {
	case "pretty":
		err = diagfmt.FormatTreePretty(out, tree, result.FileSet)
	case "json":
		err = diagfmt.FormatTreeJSON(out, tree)
	case "tree":
		err = diagfmt.FormatTreeDiagram(out, tree)
	}
	if err != nil {
		return err
	}
	if flags.timings && !flags.quiet {
		printTimings(cmd.ErrOrStderr(), result.File.Path, result.Timing)
	}
	if !result.Result.OK || result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
