package phase

import (
	"context"
	"time"

	"orbit/internal/buildpipeline"
	"orbit/internal/diag"
	"orbit/internal/observ"
	"orbit/internal/session"
	"orbit/internal/trace"
)

// Observer bundles the sinks an Observed phase reports to. Any field may be
// nil.
type Observer struct {
	Timer    *observ.Timer
	Metrics  *observ.Metrics
	Progress buildpipeline.ProgressSink
	File     string // reported in progress events
}

// Observed wraps a phase with tracing, timing, metrics and progress events.
// It keeps the wrapped phase's identifier and never touches the Session
// beyond reading its warning count.
type Observed[I, O any] struct {
	inner Phase[I, O]
	obs   Observer
}

// Observe wraps p.
func Observe[I, O any](p Phase[I, O], obs Observer) *Observed[I, O] {
	return &Observed[I, O]{inner: p, obs: obs}
}

func (o *Observed[I, O]) ID() string                { return o.inner.ID() }
func (o *Observed[I, O]) Session() *session.Session { return o.inner.Session() }
func (o *Observed[I, O]) Unwrap() Phase[I, O]       { return o.inner }

// Execute runs the wrapped phase. Errors that are not diagnostics are
// converted with diag.Wrap so that callers always see a *diag.Diagnostic.
func (o *Observed[I, O]) Execute(ctx context.Context, in I) (O, error) {
	id := o.inner.ID()
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePhase, id, trace.ParentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	idx := -1
	if o.obs.Timer != nil {
		idx = o.obs.Timer.Begin(id)
	}
	warnBefore := len(o.inner.Session().Warnings())
	buildpipeline.Emit(o.obs.Progress, buildpipeline.Event{File: o.obs.File, Phase: id, Status: buildpipeline.StatusWorking})

	start := time.Now()
	out, err := o.inner.Execute(ctx, in)
	elapsed := time.Since(start)

	o.obs.Metrics.ObservePhase(id, elapsed.Seconds())
	o.obs.Metrics.WarningsPushed(id, len(o.inner.Session().Warnings())-warnBefore)

	if err != nil {
		d := diag.Wrap(err)
		o.obs.Metrics.PhaseFailed(id, d.Kind().String())
		if idx >= 0 {
			o.obs.Timer.End(idx, d.Kind().String())
		}
		span.WithExtra("kind", d.Kind().String()).End(d.Message())
		buildpipeline.Emit(o.obs.Progress, buildpipeline.Event{File: o.obs.File, Phase: id, Status: buildpipeline.StatusError, Err: d, Elapsed: elapsed})
		var zero O
		return zero, d
	}

	if idx >= 0 {
		o.obs.Timer.End(idx, "")
	}
	span.End("ok")
	buildpipeline.Emit(o.obs.Progress, buildpipeline.Event{File: o.obs.File, Phase: id, Status: buildpipeline.StatusDone, Elapsed: elapsed})
	return out, nil
}
