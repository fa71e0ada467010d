// Package workload drives stacks through push, pop and teardown scenarios
// and checks that they keep LIFO order and release every node.
package workload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/openfga/linkedstack/internal/build"
	"github.com/openfga/linkedstack/internal/concurrency"
	"github.com/openfga/linkedstack/pkg/logger"
	"github.com/openfga/linkedstack/pkg/stack"
	"github.com/openfga/linkedstack/pkg/telemetry"
)

var tracer = otel.Tracer("internal/workload")

var (
	// ErrOrderViolation is returned when a pop yields a value other than the
	// most recently pushed one.
	ErrOrderViolation = errors.New("stack returned values out of LIFO order")

	// ErrCountMismatch is returned when a stack holds a different number of
	// values than were pushed and not yet popped.
	ErrCountMismatch = errors.New("stack length does not match pushes minus pops")
)

// ctx is checked once per this many pushes.
const cancelCheckInterval = 4096

// lifo is the surface shared by stack.Stack[int32] and stack.Int32Stack.
type lifo interface {
	Push(int32)
	Pop() (int32, bool)
	Release() int
}

func newStack(v Variant) lifo {
	if v == VariantInt32 {
		return stack.NewInt32()
	}
	return stack.New[int32]()
}

// WorkerReport is what a single worker did to its stack.
type WorkerReport struct {
	Worker           int
	Pushed           int
	Popped           int
	EmptyPops        int
	Released         int
	TeardownDuration time.Duration
}

// Report aggregates every worker of a Run.
type Report struct {
	Variant   Variant
	Workers   []WorkerReport
	Pushed    int
	Popped    int
	EmptyPops int
	Released  int
	Duration  time.Duration
}

type runner struct {
	cfg      Config
	logger   logger.Logger
	metrics  *Metrics
	newStack func(Variant) lifo
}

type Option func(*runner)

// WithLogger sets the logger used for per-worker and summary entries.
func WithLogger(l logger.Logger) Option {
	return func(r *runner) {
		r.logger = l
	}
}

// WithMetrics records the run into m.
func WithMetrics(m *Metrics) Option {
	return func(r *runner) {
		r.metrics = m
	}
}

// WithRegisterer creates Metrics registered with reg and records the run into them.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *runner) {
		r.metrics = NewMetrics(reg)
	}
}

// Run executes cfg.Workers independent workers. Each worker owns one stack
// for its whole life and never shares it. The first worker error cancels
// the others and is returned.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	r := &runner{
		cfg:      cfg,
		logger:   logger.NewNoopLogger(),
		newStack: newStack,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r.run(ctx)
}

func (r *runner) run(ctx context.Context) (*Report, error) {
	ctx, span := tracer.Start(ctx, "workload.Run", trace.WithAttributes(
		attribute.String("variant", string(r.cfg.Variant)),
		attribute.Int("elements", r.cfg.Elements),
		attribute.Int("workers", r.cfg.Workers),
	))
	defer span.End()

	start := time.Now()

	p := concurrency.NewResultPool[WorkerReport](ctx, r.cfg.Workers)

	for id := range r.cfg.Workers {
		p.Go(func(ctx context.Context) (WorkerReport, error) {
			return r.runWorker(ctx, id)
		})
	}

	workers, err := p.Wait()
	if err != nil {
		telemetry.TraceError(span, err)
		r.logger.ErrorWithContext(ctx, "workload failed", zap.Error(err))
		return nil, err
	}

	slices.SortFunc(workers, func(a, b WorkerReport) int {
		return a.Worker - b.Worker
	})

	report := &Report{
		Variant:  r.cfg.Variant,
		Workers:  workers,
		Duration: time.Since(start),
	}
	for _, w := range workers {
		report.Pushed += w.Pushed
		report.Popped += w.Popped
		report.EmptyPops += w.EmptyPops
		report.Released += w.Released
	}

	r.logger.InfoWithContext(ctx, "workload complete",
		zap.String("variant", string(report.Variant)),
		zap.Int("workers", len(report.Workers)),
		zap.Int("pushed", report.Pushed),
		zap.Int("popped", report.Popped),
		zap.Int("released", report.Released),
		zap.Duration("duration", report.Duration),
		zap.String("build.version", build.Version),
	)

	return report, nil
}

func (r *runner) runWorker(ctx context.Context, id int) (WorkerReport, error) {
	ctx, span := tracer.Start(ctx, "workload.worker", trace.WithAttributes(
		attribute.Int("worker", id),
	))
	defer span.End()

	w := WorkerReport{Worker: id}
	s := r.newStack(r.cfg.Variant)

	// Values pushed are 0, 1, 2, ... so the expected top is always next-1.
	var next int32

	push := func(n int) error {
		for i := range n {
			if i%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			s.Push(next)
			next++
			w.Pushed++
		}
		return nil
	}

	// popDown pops n values, expecting from-1, from-2, ... in that order.
	popDown := func(from int32, n int) error {
		for i := range n {
			want := from - 1 - int32(i)
			got, ok := s.Pop()
			if !ok {
				w.EmptyPops++
				return fmt.Errorf("worker %d: %w: empty after %d of %d pops", id, ErrCountMismatch, i, n)
			}
			w.Popped++
			if got != want {
				return fmt.Errorf("worker %d: %w: popped %d, expected %d", id, ErrOrderViolation, got, want)
			}
		}
		return nil
	}

	err := func() error {
		if err := push(r.cfg.Elements); err != nil {
			return err
		}

		if err := popDown(next, r.cfg.Pops); err != nil {
			return err
		}
		remaining := r.cfg.Elements - r.cfg.Pops

		if r.cfg.Refill > 0 {
			if err := push(r.cfg.Refill); err != nil {
				return err
			}
			if err := popDown(next, r.cfg.Refill); err != nil {
				return err
			}

			// The refill must not have disturbed what was underneath it.
			if remaining > 0 {
				if err := popDown(int32(remaining), 1); err != nil {
					return err
				}
				remaining--
			}
		}

		start := time.Now()
		w.Released = s.Release()
		w.TeardownDuration = time.Since(start)

		if w.Released != remaining {
			return fmt.Errorf("worker %d: %w: released %d nodes, expected %d", id, ErrCountMismatch, w.Released, remaining)
		}

		if v, ok := s.Pop(); ok {
			w.Popped++
			return fmt.Errorf("worker %d: %w: popped %d after release", id, ErrCountMismatch, v)
		}
		w.EmptyPops++

		return nil
	}()

	if err != nil {
		s.Release()
		telemetry.TraceError(span, err)
		return w, err
	}

	r.metrics.observe(r.cfg.Variant, w)

	r.logger.DebugWithContext(ctx, "worker complete",
		zap.Int("worker", id),
		zap.Int("pushed", w.Pushed),
		zap.Int("popped", w.Popped),
		zap.Int("released", w.Released),
		zap.Duration("teardown", w.TeardownDuration),
	)

	return w, nil
}
