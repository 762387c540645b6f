package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reflectc/internal/prof"
)

var activeProfile *prof.Session

// setupProfiling starts the profilers requested by --cpu-profile,
// --mem-profile and --runtime-trace.
func setupProfiling(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUPath, err = pf.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemPath, err = pf.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.TracePath, err = pf.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	activeProfile = session
	return nil
}

func stopProfiling(errOut io.Writer) {
	session := activeProfile
	activeProfile = nil
	if err := session.Stop(); err != nil {
		fmt.Fprintf(errOut, "profile: %v\n", err)
	}
}
