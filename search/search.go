package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvroute/instance"
	"github.com/katalvlaran/lvroute/interval"
)

// Run improves the committed routes of m by random moves filtered by its
// manager: a feasible move is committed when it does not increase the
// energy cost plus the unperformed penalty.
//
// Run stops after opts' Iterations or TimeLimit, and returns ctx.Err()
// with the partial result when ctx is done first.
//
// Errors: ErrNilModel, ErrBadIterations, ErrNegativeTimeLimit, ctx.Err().
func Run(ctx context.Context, m *instance.Model, opts ...Option) (Result, error) {
	if m == nil {
		return Result{}, ErrNilModel
	}
	o, err := gatherOptions(opts)
	if err != nil {
		return Result{}, err
	}
	return run(ctx, m, o, 0)
}

func run(ctx context.Context, m *instance.Model, o Options, worker int) (Result, error) {
	var (
		rng, seed = workerRNG(o.Seed, worker)
		mv        = newMover(m)
		energy    = m.Energy
		start     = time.Now()
		deadline  time.Time
		res       = Result{Worker: worker, Seed: seed}
		delta     int64
		ok        bool
		err       error
	)
	if o.TimeLimit > 0 {
		deadline = start.Add(o.TimeLimit)
	}
	accept := func() bool {
		return interval.CapAdd(interval.CapSub(energy.AcceptedCost(), energy.CommittedCost()), delta) <= 0
	}

	for res.Iterations < o.Iterations {
		if res.Iterations&deadlineMask == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
			if !deadline.IsZero() && time.Now().After(deadline) {
				res.TimedOut = true
				break
			}
		}
		res.Iterations++
		if delta, ok = mv.propose(rng); !ok {
			continue
		}
		if m.Manager.Propose(accept) {
			res.Accepted++
		}
	}

	res.Routes = m.Routes()
	res.EnergyCost = energy.CommittedCost()
	res.Penalty = m.Penalty()
	res.Objective = interval.CapAdd(res.EnergyCost, res.Penalty)
	res.Elapsed = time.Since(start)
	o.Logger.Info("search finished",
		zap.Int("worker", worker),
		zap.Int64("seed", seed),
		zap.Int("iterations", res.Iterations),
		zap.Int("accepted", res.Accepted),
		zap.Int64("energy", res.EnergyCost),
		zap.Int64("penalty", res.Penalty),
		zap.Int64("objective", res.Objective),
		zap.Bool("timed_out", res.TimedOut),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, err
}
