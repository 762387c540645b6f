package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reflectc/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Create a reflect.toml project manifest",
		Long: `Initialize a reflectc project by writing a reflect.toml manifest. If [path|name]
is omitted, the current directory is used. A missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	path, err := project.Init(target, filepath.Base(target))
	if err != nil {
		return err
	}
	rel := displayPath(wd, filepath.Dir(path))
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized reflectc project in %s\n", rel)
	fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", project.ManifestName)
	return nil
}
