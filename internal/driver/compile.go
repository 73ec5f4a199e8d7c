package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"orbit/internal/buildpipeline"
	"orbit/internal/diag"
	"orbit/internal/observ"
	"orbit/internal/phase"
	"orbit/internal/session"
	"orbit/internal/source"
	"orbit/internal/trace"
)

// Options configures Compile and CompileAll. The zero value is usable.
type Options struct {
	// Jobs bounds parallel runs in CompileAll; <= 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Progress buildpipeline.ProgressSink
	Timer    *observ.Timer
	Metrics  *observ.Metrics
	// NewSession creates the session of each CompileAll run. Defaults to a
	// session with the plain convention and no module paths.
	NewSession func() *session.Session
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, n))
}

func (o Options) newSession() *session.Session {
	if o.NewSession != nil {
		if s := o.NewSession(); s != nil {
			return s
		}
	}
	return session.New(nil)
}

// Result is the outcome of compiling one file.
type Result struct {
	Path     string
	Unit     *Unit
	Err      *diag.Diagnostic
	// Warnings holds the session's warnings, most recent first.
	Warnings []session.Warning
	Elapsed  time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

// NewPipeline builds read->scan->import->export bound to sess. file is only
// used to label progress events.
func NewPipeline(sess *session.Session, file string, opts Options) phase.Phase[string, *Unit] {
	obs := phase.Observer{Timer: opts.Timer, Metrics: opts.Metrics, Progress: opts.Progress, File: file}

	var (
		read phase.Phase[string, string] = phase.Observe[string, string](source.NewResolver(sess, PhaseRead), obs)
		scan phase.Phase[string, *Unit]  = phase.Observe[string, *Unit](NewScanner(sess, PhaseScan, opts.Cache), obs)
		imp  phase.Phase[*Unit, *Unit]   = phase.Observe[*Unit, *Unit](NewImporter(sess, PhaseImport), obs)
		exp  phase.Phase[*Unit, *Unit]   = phase.Observe[*Unit, *Unit](NewExporter(sess, PhaseExport), obs)
	)
	front := phase.NewChain[string, string, *Unit](read, scan)
	mid := phase.NewChain[string, *Unit, *Unit](front, imp)
	return phase.NewChain[string, *Unit, *Unit](mid, exp)
}

// Compile runs the reference pipeline on path against sess. Annotations
// accumulate in sess, so a session should serve a single file.
func Compile(ctx context.Context, sess *session.Session, path string, opts Options) Result {
	start := time.Now()
	pipeline := NewPipeline(sess, path, opts)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeChain, pipeline.ID(), trace.ParentSpan(ctx)).
		WithExtra("file", path)
	ctx = trace.WithSpan(WithFile(ctx, path), span)

	unit, err := pipeline.Execute(ctx, path)
	res := Result{
		Path:     path,
		Unit:     unit,
		Warnings: sess.WarningsLIFO(),
		Elapsed:  time.Since(start),
	}
	if err != nil {
		res.Unit = nil
		res.Err = diag.Wrap(err)
		if res.Err.Path() == "" {
			res.Err = res.Err.WithPath(path)
		}
		span.WithExtra("kind", res.Err.Kind().String()).End(res.Err.Message())
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Status: buildpipeline.StatusError, Err: res.Err, Elapsed: res.Elapsed})
		return res
	}
	span.End("ok")
	buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: path, Status: buildpipeline.StatusDone, Elapsed: res.Elapsed})
	return res
}

// CompileAll compiles every path in parallel, each against its own session.
// Results are returned in the order of paths.
func CompileAll(ctx context.Context, paths []string, opts Options) []Result {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile-all", trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	for _, p := range paths {
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: p, Status: buildpipeline.StatusQueued})
	}

	var g errgroup.Group
	g.SetLimit(opts.jobs(len(paths)))
	for i, p := range paths {
		g.Go(func() error {
			results[i] = Compile(ctx, opts.newSession(), p, opts)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.WithExtra("files", strconv.Itoa(len(paths))).WithExtra("failed", strconv.Itoa(failed)).End("")
	return results
}

// CollectSources expands directories in paths into the sorted list of
// SourceExt files below them. Plain file arguments are kept as given.
func CollectSources(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		st, err := os.Stat(p)
		if err != nil || !st.IsDir() {
			out = append(out, p)
			continue
		}
		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// детерминированный порядок
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}

// HasErrors reports whether any result failed.
func HasErrors(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
