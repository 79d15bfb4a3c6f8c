// Package batch implements the parallel batch runner (C11, spec §4.9):
// N independent simulations dispatched across a bounded worker pool,
// each owning fresh strategy instances, order-preserved in the output,
// first-error-wins.
package batch

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/parkercole/feesim/engine"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/simtypes"
)

// maxDefaultWorkers bounds the auto-selected worker count (spec §4.9:
// "min(n_cores, 8) unless overridden").
const maxDefaultWorkers = 8

// workerCount resolves the effective pool size: nWorkers if positive,
// else min(NumCPU, 8).
func workerCount(nWorkers int) int {
	if nWorkers > 0 {
		return nWorkers
	}
	if n := runtime.NumCPU(); n < maxDefaultWorkers {
		return n
	}
	return maxDefaultWorkers
}

// StrategyFactory builds one fresh strategy instance, called once per
// pool-owning task so no VM state is ever shared across simulations
// (spec §3, §9).
type StrategyFactory func() (feestrategy.Strategy, error)

// Run executes len(configs) single-asset simulations in parallel.
// newSubmission/newBaseline are invoked once per task (single-asset) to
// build that task's isolated pool pair. nWorkers<=0 auto-selects
// min(NumCPU, 8).
func Run(configs []simtypes.Config, newSubmission, newBaseline StrategyFactory, nWorkers int) (simtypes.BatchResult, error) {
	results := make([]simtypes.Result, len(configs))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workerCount(nWorkers))

	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			sub, err := newSubmission()
			if err != nil {
				return err
			}
			base, err := newBaseline()
			if err != nil {
				return err
			}
			res, err := engine.NewSingleAssetEngine(cfg).Run(sub, base)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return simtypes.BatchResult{}, err
	}

	return simtypes.BatchResult{
		RunID:      uuid.New().String(),
		Results:    results,
		Strategies: []string{"submission", "baseline"},
	}, nil
}

// RunV2 is Run's multi-asset counterpart. newSubmission/newBaseline are
// invoked once per pool within each task, matching MultiAssetEngine.Run.
func RunV2(configs []simtypes.ConfigV2, newSubmission, newBaseline StrategyFactory, nWorkers int) (simtypes.BatchResultV2, error) {
	results := make([]simtypes.ResultV2, len(configs))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workerCount(nWorkers))

	for i, cfg := range configs {
		i, cfg := i, cfg
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := engine.NewMultiAssetEngine(cfg).Run(
				engine.StrategyFactory(newSubmission),
				engine.StrategyFactory(newBaseline),
			)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return simtypes.BatchResultV2{}, err
	}

	return simtypes.BatchResultV2{
		RunID:      uuid.New().String(),
		Results:    results,
		Strategies: []string{"submission", "baseline"},
	}, nil
}
