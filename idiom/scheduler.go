package idiom

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Scheduler is the "heap-managed recursion stack" §5 and §9 describe.
// Go's goroutine stacks are themselves heap-allocated and grow on demand
// (unlike a fixed native call stack), so ordinary recursive Go calls
// already give get() the property the source language needed a manual
// continuation stack for; Scheduler's job is the rest of §5's contract —
// metering reentry depth, and running every concurrent fan-out (array
// mapping, method argument evaluation) through one buffered-join helper
// that honors ctx cancellation and preserves result order.
type Scheduler struct {
	reg                    *prometheus.Registry
	reentryDepth           prometheus.Histogram
	recursionMinNotReached prometheus.Counter
}

// NewScheduler builds a Scheduler with its own metrics registry, so
// multiple Schedulers (e.g. one per test) never collide on registration.
func NewScheduler() *Scheduler {
	reg := prometheus.NewRegistry()
	depth := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "idiom_get_reentry_depth",
		Help:    "Remaining path length observed at each get() reentry.",
		Buckets: prometheus.LinearBuckets(0, 50, 10),
	})
	minNotReached := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "idiom_recursion_minimum_not_reached_total",
		Help: "Count of Recurse evaluations that failed to reach their configured minimum.",
	})
	reg.MustRegister(depth, minNotReached)
	return &Scheduler{reg: reg, reentryDepth: depth, recursionMinNotReached: minNotReached}
}

// Registry exposes the Scheduler's metrics so an HTTP server (cmd/idiomget
// serve) can publish them.
func (s *Scheduler) Registry() *prometheus.Registry { return s.reg }

func (s *Scheduler) observeReentry(pathLen int) {
	if s == nil {
		return
	}
	s.reentryDepth.Observe(float64(pathLen))
}

func (s *Scheduler) observeRecursionMinNotReached() {
	if s == nil {
		return
	}
	s.recursionMinNotReached.Inc()
}

var defaultScheduler = NewScheduler()

func schedulerFor(o *Options) *Scheduler {
	if o != nil && o.Scheduler != nil {
		return o.Scheduler
	}
	return defaultScheduler
}

// mapArray applies fn to every element of arr concurrently, preserving
// element order in the result regardless of completion order, and
// cancels outstanding work on the first error (§5 "Parallelism within a
// step", "Cancellation").
func mapArray(ctx context.Context, arr Array, fn func(ctx context.Context, idx int, v Value) (Value, error)) (Array, error) {
	out := make(Array, len(arr))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range arr {
		i, v := i, v
		g.Go(func() error {
			res, err := fn(gctx, i, v)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// mapComputables evaluates a slice of Computable arguments concurrently,
// used for Method argument evaluation (§4.1.2, §5).
func mapComputables(ctx context.Context, c *Context, o *Options, doc *CursorDoc, exprs []Computable) ([]Value, error) {
	out := make([]Value, len(exprs))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range exprs {
		i, e := i, e
		g.Go(func() error {
			v, err := e.Compute(gctx, c, o, doc)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
