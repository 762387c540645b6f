package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reflectc/internal/diagfmt"
	"reflectc/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.h",
		Short: "Tokenize a header into its symbol stream",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	flags, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], driver.Options{MaxDiagnostics: flags.maxDiagnostics})
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := emitDiagnostics(cmd, result.Bag, result.FileSet, flags); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Symbols, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Symbols)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if flags.timings && !flags.quiet {
		printTimings(cmd.ErrOrStderr(), result.File.Path, result.Timing)
	}
	if result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
