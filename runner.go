// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ops

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "code.hybscloud.com/ops"

// Execution modes reported in logs, spans and metrics.
const (
	modeSync  = "sync"
	modeAsync = "async"
)

// Runner executes op trees on behalf of a host, with structured logging,
// tracing and metrics around every run.
//
// A Runner is safe for concurrent use as long as its [Handler] is.
// The context value handed to each run is not synchronized: runs sharing a
// context must be serialized by the caller.
type Runner struct {
	handler    Handler
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
	limit      int
	preferSync bool

	metricsOnce sync.Once
	runs        metric.Int64Counter
	failures    metric.Int64Counter
	suspensions metric.Int64Counter
	duration    metric.Float64Histogram
}

// Option configures a [Runner].
type Option func(*Runner)

// WithHandler sets the handler that resolves suspensions on the
// asynchronous path. Without one, a suspending tree fails with
// [ErrUnhandled].
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracerProvider sets the provider of the runner's tracer.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		r.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the provider of the runner's meter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Runner) {
		r.meter = mp.Meter(instrumentationName)
	}
}

// WithConcurrency bounds the number of jobs [ExecuteAll] runs at once.
// n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.limit = n
	}
}

// WithPreferSync selects the synchronous path for trees tagged [Sync]
// (the default). With false every run takes the asynchronous path.
func WithPreferSync(prefer bool) Option {
	return func(r *Runner) {
		r.preferSync = prefer
	}
}

// NewRunner creates a runner using the global OpenTelemetry providers and
// slog.Default() unless configured otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:     slog.Default(),
		tracer:     otel.Tracer(instrumentationName),
		meter:      otel.Meter(instrumentationName),
		preferSync: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// initMetrics lazily creates the instruments.
// Failures are logged once and leave the affected instrument unset.
func (r *Runner) initMetrics() {
	r.metricsOnce.Do(func() {
		var initErrors []string
		var err error

		r.runs, err = r.meter.Int64Counter("ops_runs_total",
			metric.WithDescription("Number of op tree runs"),
		)
		if err != nil {
			initErrors = append(initErrors, "runs: "+err.Error())
		}

		r.failures, err = r.meter.Int64Counter("ops_run_failures_total",
			metric.WithDescription("Number of op tree runs that failed"),
		)
		if err != nil {
			initErrors = append(initErrors, "failures: "+err.Error())
		}

		r.suspensions, err = r.meter.Int64Counter("ops_suspensions_total",
			metric.WithDescription("Number of suspensions dispatched to the handler"),
		)
		if err != nil {
			initErrors = append(initErrors, "suspensions: "+err.Error())
		}

		r.duration, err = r.meter.Float64Histogram("ops_run_duration_seconds",
			metric.WithDescription("Time spent running an op tree"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErrors = append(initErrors, "duration: "+err.Error())
		}

		if len(initErrors) > 0 {
			r.logger.Error("failed to initialize some op metrics",
				slog.Int("failed_count", len(initErrors)),
				slog.Any("errors", initErrors),
			)
		}
	})
}

// Execute runs op against c with args. Trees tagged [Sync] take the
// synchronous path when the runner prefers it; all others are driven
// asynchronously through the runner's handler. Failures are returned
// unwrapped.
//
// ctx carries the trace; it is never polled for cancellation.
func Execute[C, R any](ctx context.Context, r *Runner, op Op[C, R], c C, args ...Erased) (R, error) {
	r.initMetrics()

	caps := op.Caps()
	mode := modeAsync
	if r.preferSync && caps.IsSync() {
		mode = modeSync
	}
	runID := uuid.NewString()

	ctx, span := r.tracer.Start(ctx, "ops.Execute",
		trace.WithAttributes(
			attribute.String("ops.run_id", runID),
			attribute.String("ops.mode", mode),
			attribute.String("ops.caps", caps.String()),
		),
	)
	defer span.End()

	r.logger.Debug("op run started",
		slog.String("run_id", runID),
		slog.String("mode", mode),
		slog.String("caps", caps.String()),
	)

	start := time.Now()
	var (
		v   R
		n   int
		err error
	)
	if mode == modeSync {
		v, err = RunSync(op, c, args...)
	} else {
		v, n, err = drive[R](op.Perform(c, args...)(complete[R]), r.handler)
	}
	elapsed := time.Since(start)

	attrs := metric.WithAttributes(attribute.String("mode", mode))
	if r.runs != nil {
		r.runs.Add(ctx, 1, attrs)
	}
	if r.suspensions != nil && n > 0 {
		r.suspensions.Add(ctx, int64(n), attrs)
	}
	if r.duration != nil {
		r.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
	span.SetAttributes(attribute.Int("ops.suspensions", n))

	if err != nil {
		if r.failures != nil {
			r.failures.Add(ctx, 1, attrs)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("op run failed",
			slog.String("run_id", runID),
			slog.String("mode", mode),
			slog.Int("suspensions", n),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
		return v, err
	}

	r.logger.Debug("op run finished",
		slog.String("run_id", runID),
		slog.String("mode", mode),
		slog.Int("suspensions", n),
		slog.Duration("elapsed", elapsed),
	)
	return v, nil
}

// Job is one independent run for [ExecuteAll].
type Job[C, R any] struct {
	Op      Op[C, R]
	Context C
	Args    []Erased
}

// ExecuteAll runs jobs concurrently, bounded by [WithConcurrency], and
// returns one [Outcome] per job in job order. A failing job does not stop
// the others. Jobs must not share a context value.
func ExecuteAll[C, R any](ctx context.Context, r *Runner, jobs []Job[C, R]) []Outcome[R] {
	out := make([]Outcome[R], len(jobs))
	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, j := range jobs {
		g.Go(func() error {
			v, err := Execute(ctx, r, j.Op, j.Context, j.Args...)
			out[i] = Outcome[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
