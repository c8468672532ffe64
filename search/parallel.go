package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvroute/filter"
	"github.com/katalvlaran/lvroute/instance"
)

// RunParallel runs opts' Workers independent searches on in, each on its own
// Model, and returns the result with the lowest objective (lowest worker id
// on ties). Worker 0 uses the seed itself, so one worker reproduces Run.
//
// Errors: ErrNilModel, option errors, model build errors, and the first
// worker error, after which the other workers are canceled.
func RunParallel(ctx context.Context, in *instance.Instance, opts ...Option) (Result, error) {
	if in == nil {
		return Result{}, ErrNilModel
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return Result{}, err
	}

	var (
		results = make([]Result, o.Workers)
		g, gctx = errgroup.WithContext(ctx)
	)
	for w := 0; w < o.Workers; w++ {
		g.Go(func() error {
			m, err := in.Build(filter.WithLogger(o.Logger.Named("filter").With(zap.Int("worker", w))))
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w], err = run(gctx, m, o, w)
			return err
		})
	}
	if err = g.Wait(); err != nil {
		return Result{}, err
	}

	best := 0
	for w := 1; w < len(results); w++ {
		if results[w].Objective < results[best].Objective {
			best = w
		}
	}
	return results[best], nil
}
