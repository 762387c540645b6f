package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reflectc/internal/diagfmt"
	"reflectc/internal/driver"
	"reflectc/internal/observ"
	"reflectc/internal/project"
	"reflectc/internal/source"
)

func newReflectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect [flags] [file|directory ...]",
		Short: "Compute struct layouts and emit HLSL declarations",
		Long: `Reflect parses every struct in the given headers, computes its layout and
writes the result in the selected format. Directories are walked for header
files and processed in parallel. Without arguments the sources listed in the
nearest reflect.toml are used.`,
		RunE: runReflect,
	}
	f := cmd.Flags()
	f.String("format", "pretty", "output format (pretty|json|hlsl-struct|hlsl-cbuffer|hlsl-structured|input-layout)")
	f.Int("jobs", 0, "max parallel workers for directories (0=auto)")
	f.Int32("register", 0, "cbuffer register for types without register(bN)")
	f.StringSlice("ext", nil, "header extensions to pick up in directories (default .h,.hpp,.hlsli)")
	f.Bool("cache", false, "reuse layouts from the user cache directory")
	f.String("cache-dir", "", "cache directory (implies --cache)")
	f.Bool("clear-cache", false, "drop every cache entry before running")
	f.String("ui", "auto", "progress UI for directories (auto|on|off)")
	addLayoutFlags(cmd)
	return cmd
}

type reflectPlan struct {
	paths      []string
	extensions []string
	register   int32
	format     diagfmt.OutputFormat
	jobs       int
	ui         uiMode
}

func runReflect(cmd *cobra.Command, args []string) error {
	flags, err := readOutputFlags(cmd)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, flags)
	if err != nil {
		return err
	}
	plan, err := planReflect(cmd, args, &opts)
	if err != nil {
		return err
	}
	cache, err := openCache(cmd)
	if err != nil {
		return err
	}
	opts.Cache = cache
	// pretty-режим печатает тайминги строкой, а не диагностикой
	opts.Timings = flags.timings && flags.diagFormat != "pretty"

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	fs := source.NewFileSetWithBase(wd)
	useUI := !flags.quiet && shouldUseTUI(plan.ui)

	var results []driver.ReflectResult
	for _, path := range plan.paths {
		st, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			fileID, err := fs.Load(path)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", path, err)
			}
			res, err := driver.Reflect(cmd.Context(), fs, fileID, opts)
			if err != nil {
				return err
			}
			results = append(results, *res)
			continue
		}
		dirOpts := driver.DirOptions{
			Options:    opts,
			Extensions: plan.extensions,
			Jobs:       plan.jobs,
			FileSet:    fs,
		}
		dirResults, err := reflectDirectory(cmd.Context(), path, dirOpts, useUI)
		if err != nil {
			return fmt.Errorf("reflect %s: %w", path, err)
		}
		results = append(results, dirResults...)
	}

	units := make([]diagfmt.UnitTypeInfos, 0, len(results))
	for i := range results {
		units = append(units, diagfmt.UnitTypeInfos{Source: displayPath(wd, results[i].Path), Infos: results[i].Infos})
	}
	err = diagfmt.FormatUnits(cmd.OutOrStdout(), units, diagfmt.TypeInfoOpts{
		Format:          plan.format,
		DefaultRegister: plan.register,
	})
	if err != nil {
		return err
	}

	bag := driver.MergeBags(results, flags.maxDiagnostics)
	if err := emitDiagnostics(cmd, bag, fs, flags); err != nil {
		return err
	}
	if flags.timings && !flags.quiet && flags.diagFormat == "pretty" {
		reports := make([]observ.Report, 0, len(results))
		for i := range results {
			if results[i].Timing != nil {
				printTimings(cmd.ErrOrStderr(), displayPath(wd, results[i].Path), results[i].Timing)
				reports = append(reports, *results[i].Timing)
			}
		}
		if len(reports) > 1 {
			printTotals(cmd.ErrOrStderr(), len(reports), reports)
		}
	}

	for i := range results {
		if !results[i].OK {
			return errReported
		}
	}
	return nil
}

// planReflect merges the command line with reflect.toml. Explicit flags win.
// The manifest is consulted only when no paths are given.
func planReflect(cmd *cobra.Command, args []string, opts *driver.Options) (reflectPlan, error) {
	f := cmd.Flags()
	plan := reflectPlan{paths: args}
	formatName, err := f.GetString("format")
	if err != nil {
		return plan, fmt.Errorf("failed to get format flag: %w", err)
	}
	if plan.register, err = f.GetInt32("register"); err != nil {
		return plan, fmt.Errorf("failed to get register flag: %w", err)
	}
	if plan.extensions, err = f.GetStringSlice("ext"); err != nil {
		return plan, fmt.Errorf("failed to get ext flag: %w", err)
	}
	if plan.jobs, err = f.GetInt("jobs"); err != nil {
		return plan, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := f.GetString("ui")
	if err != nil {
		return plan, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if plan.ui, err = readUIMode(uiValue); err != nil {
		return plan, err
	}

	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return plan, err
		}
		m, ok, err := project.Load(wd)
		if err != nil {
			return plan, err
		}
		if !ok {
			return plan, errors.New("no inputs given and no " + project.ManifestName + " found")
		}
		cfg := m.Config
		plan.paths = m.SourcePaths()
		if !f.Changed("ext") {
			plan.extensions = cfg.Reflect.Extensions
		}
		if !f.Changed("register") {
			plan.register = cfg.Reflect.DefaultRegister
		}
		if !f.Changed("format") {
			formatName = cfg.Output.Format
		}
		if !f.Changed("max-depth") {
			opts.MaxDepth = cfg.Reflect.MaxDepth
		}
		if !f.Changed("pointer-size") {
			opts.PointerSize = cfg.Reflect.PointerSize
		}
	}

	if plan.register < 0 {
		return plan, fmt.Errorf("invalid --register %d", plan.register)
	}
	if plan.format, err = diagfmt.ParseOutputFormat(formatName); err != nil {
		return plan, err
	}
	return plan, nil
}

func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	f := cmd.Flags()
	enabled, err := f.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := f.GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	clearAll, err := f.GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	var cache *driver.DiskCache
	switch {
	case dir != "":
		cache, err = driver.OpenDiskCacheAt(dir)
	case enabled || clearAll:
		cache, err = driver.OpenDiskCache("reflectc")
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if clearAll {
		if err := cache.DropAll(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
		if !enabled && dir == "" {
			return nil, nil
		}
	}
	return cache, nil
}

func reflectDirectory(ctx context.Context, dir string, opts driver.DirOptions, useUI bool) ([]driver.ReflectResult, error) {
	if !useUI {
		_, results, err := driver.ReflectDir(ctx, dir, opts)
		return results, err
	}
	files, err := driver.ListSources(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return runReflectDirWithUI(ctx, "reflect "+dir, dir, files, opts)
}

func displayPath(base, path string) string {
	if !filepath.IsAbs(path) || base == "" {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
