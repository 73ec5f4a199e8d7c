package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"orbit/internal/diag"
	"orbit/internal/diagfmt"
	"orbit/internal/driver"
	"orbit/internal/observ"
)

type buildFlags struct {
	format   string
	ui       autoMode
	cache    bool
	cacheDir string
}

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [files or dirs...]",
		Short: "Run the front-end pipeline over source files",
		Long: `Run read->scan->import->export over every source file. Directories are
searched for *.orb files. Without arguments the [build].sources of orbit.toml
are used.`,
		RunE: runBuild,
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("cache", false, "reuse scan results from the disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default: user cache dir)")
}

func readBuildFlags(cmd *cobra.Command, e *env) (buildFlags, error) {
	var bf buildFlags
	var err error
	if bf.format, err = cmd.Flags().GetString("format"); err != nil {
		return bf, err
	}
	bf.format = strings.ToLower(bf.format)
	if bf.format != "pretty" && bf.format != "json" {
		return bf, fmt.Errorf("unsupported format %q (must be pretty or json)", bf.format)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return bf, err
	}
	if bf.ui, err = parseAutoMode("ui", uiValue); err != nil {
		return bf, err
	}
	if bf.cacheDir, err = cmd.Flags().GetString("cache-dir"); err != nil {
		return bf, err
	}
	if e.manifest != nil {
		bf.cache = e.manifest.Config.Build.Cache
		if bf.cacheDir == "" {
			bf.cacheDir = e.manifest.CacheDir()
		}
	}
	if cmd.Flags().Changed("cache") {
		if bf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
			return bf, err
		}
	}
	return bf, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	bf, err := readBuildFlags(cmd, e)
	if err != nil {
		return err
	}
	files, err := resolveInputs(e, args)
	if err != nil {
		return err
	}
	results, err := buildOnce(cmd, e, bf, files)
	if err != nil {
		return err
	}
	if driver.HasErrors(results) {
		dumpTraceOnFailure(cmd)
		return errFailed
	}
	return nil
}

func resolveInputs(e *env, args []string) ([]string, error) {
	inputs := args
	if len(inputs) == 0 && e.manifest != nil {
		inputs = e.manifest.Sources()
	}
	if len(inputs) == 0 {
		return nil, errors.New("no sources given and no orbit.toml found\nplease pass files or directories, e.g.:\n  orbit build src/")
	}
	files, err := driver.CollectSources(inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", driver.SourceExt, strings.Join(inputs, ", "))
	}
	return files, nil
}

// buildOnce compiles files and reports the outcome.
func buildOnce(cmd *cobra.Command, e *env, bf buildFlags, files []string) ([]driver.Result, error) {
	opts := driver.Options{
		Jobs:       e.jobs,
		NewSession: e.newSession,
	}
	if bf.cache {
		cache, err := openCache(bf.cacheDir)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}
	if e.timings {
		opts.Timer = observ.NewTimer()
	}
	if e.metrics {
		opts.Metrics = observ.NewMetrics(nil)
	}

	var results []driver.Result
	if bf.ui.enabled(stdoutIsTerminal) && bf.format == "pretty" && !e.quiet {
		var err error
		if results, err = runCompileWithUI(compileContext(cmd), "orbit build", files, opts); err != nil {
			return nil, err
		}
	} else {
		results = driver.CompileAll(compileContext(cmd), files, opts)
	}

	if err := report(cmd, e, bf.format, results); err != nil {
		return results, err
	}
	if opts.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if opts.Metrics != nil {
		if err := opts.Metrics.WriteText(cmd.ErrOrStderr()); err != nil {
			return results, err
		}
	}
	return results, nil
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache("orbit")
}

func report(cmd *cobra.Command, e *env, format string, results []driver.Result) error {
	bag := diag.NewBag(max(len(results), 1))
	warnings := make([]diagfmt.FileWarnings, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			bag.Add(r.Err)
		}
		if len(r.Warnings) > 0 {
			warnings = append(warnings, diagfmt.FileWarnings{Path: r.Path, Warnings: r.Warnings})
		}
	}
	bag.Sort()

	if format == "json" {
		return diagfmt.JSON(cmd.OutOrStdout(), bag, warnings, diagfmt.JSONOpts{BaseDir: e.baseDir()})
	}

	errOut := cmd.ErrOrStderr()
	opts := e.prettyOpts()
	if !e.quiet {
		for _, fw := range warnings {
			if err := diagfmt.PrettyWarnings(errOut, fw.Path, fw.Warnings, opts); err != nil {
				return err
			}
		}
	}
	if err := diagfmt.Pretty(errOut, bag, opts); err != nil {
		return err
	}
	if e.quiet {
		return nil
	}
	return printSummary(cmd.OutOrStdout(), results)
}

func printSummary(out io.Writer, results []driver.Result) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		u := r.Unit
		cached := ""
		if u.Cached {
			cached = " (cached)"
		}
		if _, err := fmt.Fprintf(out, "ok   %s%s\n", r.Path, cached); err != nil {
			return err
		}
		for _, imp := range u.Imports {
			if _, err := fmt.Fprintf(out, "     import %s => %s\n", imp.Module, imp.Dir); err != nil {
				return err
			}
		}
		for _, exp := range u.Exports {
			if _, err := fmt.Fprintf(out, "     export %s => %s\n", exp.Name, exp.Symbol); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(out, "%d file(s), %d failed\n", len(results), failed)
	return err
}

// compileContext returns the command context, or Background when the
// command runs outside Execute.
func compileContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
