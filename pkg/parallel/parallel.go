// Package parallel maps a function over a slice with a bounded worker pool,
// preserving input order in the output.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/mixkit/pkg/progress"
)

type Option func(*config)

type config struct {
	reporter progress.Reporter
}

// WithReporter attaches a progress reporter. Reporting is skipped for inputs
// at or under progress.SkipBelow elements.
func WithReporter(r progress.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// Map applies fn to every element of in using at most workers goroutines and
// returns the results in input order. The first error cancels the shared
// context and is returned. workers <= 1 runs sequentially on the calling
// goroutine.
func Map[T, R any](ctx context.Context, workers int, in []T, fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	rep := progress.ForSize(cfg.reporter, len(in))
	rep.Start(len(in))
	defer rep.Done()

	out := make([]R, len(in))

	if workers <= 1 {
		for i, v := range in {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r, err := fn(ctx, v)
			if err != nil {
				return nil, err
			}
			out[i] = r
			rep.Advance(1)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range in {
		g.Go(func() error {
			r, err := fn(gctx, v)
			if err != nil {
				return err
			}
			out[i] = r
			rep.Advance(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ForEach is Map for functions with no result.
func ForEach[T any](ctx context.Context, workers int, in []T, fn func(context.Context, T) error, opts ...Option) error {
	_, err := Map(ctx, workers, in, func(ctx context.Context, v T) (struct{}, error) {
		return struct{}{}, fn(ctx, v)
	}, opts...)
	return err
}
