// Package engine ties together the CFMM pool, price process, retail
// generator, and arbitrageur into the per-step simulation loop for both
// the single-asset (C9) and multi-asset (C10) cases.
package engine

import (
	"fmt"

	"github.com/parkercole/feesim/arbitrage"
	"github.com/parkercole/feesim/cfmm"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/priceprocess"
	"github.com/parkercole/feesim/retail"
	"github.com/parkercole/feesim/simtypes"
)

const (
	nameSubmission = "submission"
	nameBaseline   = "baseline"
)

// SingleAssetEngine runs the single-pair (X/Y) simulation loop (spec
// §4.7). It owns one pool per strategy, sharing the same price process
// and retail stream so submission and baseline results are comparable.
type SingleAssetEngine struct {
	config simtypes.Config
}

// NewSingleAssetEngine constructs an engine for the given configuration.
func NewSingleAssetEngine(config simtypes.Config) *SingleAssetEngine {
	return &SingleAssetEngine{config: config}
}

// Run executes the full single-asset simulation against a submission and
// a baseline strategy, each owning its own pool instance (spec §3, §9).
func (e *SingleAssetEngine) Run(submission, baseline feestrategy.Strategy) (simtypes.Result, error) {
	cfg := e.config
	if err := cfg.Validate(); err != nil {
		return simtypes.Result{}, err
	}

	seed := cfg.SeedOrZero()
	strategies := []string{nameSubmission, nameBaseline}

	pools := map[string]*cfmm.Pool{}
	for name, strat := range map[string]feestrategy.Strategy{nameSubmission: submission, nameBaseline: baseline} {
		pool, err := cfmm.New(strat, cfg.InitialX, cfg.InitialY)
		if err != nil {
			return simtypes.Result{}, fmt.Errorf("%s: %w", name, err)
		}
		if err := pool.Initialize(); err != nil {
			return simtypes.Result{}, fmt.Errorf("%s: %w", name, err)
		}
		pools[name] = pool
	}

	priceProcess := priceprocess.NewGBM(cfg.InitialPrice, cfg.GBMMu, cfg.GBMSigma, cfg.GBMDt, seed)
	retailGen := retail.NewGenerator(cfg.RetailArrivalRate, cfg.RetailMeanSize, cfg.RetailSizeSigma, cfg.RetailBuyProb, seed+1)
	arb := arbitrage.New()

	p0 := cfg.InitialPrice
	// Design note (spec §9 Open Questions): the initial portfolio value
	// prices both X and Y at p0, matching the reference implementation's
	// behavior exactly rather than the more natural p0*X + 1*Y.
	initialValue := map[string]float64{
		nameSubmission: cfg.InitialX*p0 + cfg.InitialY*p0,
		nameBaseline:   cfg.InitialX*p0 + cfg.InitialY*p0,
	}
	edges := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	arbVolumeY := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	retailVolumeY := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	feeSumBid := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	feeSumAsk := map[string]float64{nameSubmission: 0, nameBaseline: 0}

	steps := make([]simtypes.StepResult, 0, cfg.NSteps)

	for t := uint32(0); t < cfg.NSteps; t++ {
		fairPrice := priceProcess.Step()

		for _, name := range strategies {
			pool := pools[name]
			if result := arb.ExecuteArb(pool, fairPrice, uint64(t)); result != nil {
				var edge float64
				if result.Side == arbitrage.SideBuy {
					edge = result.AmountX*fairPrice - result.AmountY
				} else {
					edge = result.AmountY - result.AmountX*fairPrice
				}
				edges[name] += edge
				arbVolumeY[name] += result.AmountY
			}
		}

		orders := retailGen.GenerateOrders(fairPrice)
		for _, order := range orders {
			for _, name := range strategies {
				pool := pools[name]
				if order.Buy {
					xOut, _, ok := pool.ExecuteXForY(order.AmountIn, uint64(t))
					if !ok {
						continue
					}
					edges[name] += order.AmountIn - xOut*fairPrice
					retailVolumeY[name] += order.AmountIn
				} else {
					yOut, _, ok := pool.ExecuteBuyX(order.AmountIn, uint64(t))
					if !ok {
						continue
					}
					edges[name] += order.AmountIn*fairPrice - yOut
					retailVolumeY[name] += yOut
				}
			}
		}

		step := simtypes.StepResult{
			Timestamp:  t,
			FairPrice:  fairPrice,
			SpotPrices: map[string]float64{},
			PnLs:       map[string]float64{},
			Fees:       map[string][2]float64{},
		}
		for _, name := range strategies {
			pool := pools[name]
			rx, ry := pool.Reserves()
			accX, accY := pool.AccumulatedFees()
			step.SpotPrices[name] = ry / rx
			step.PnLs[name] = (rx+accX)*fairPrice + (ry + accY) - initialValue[name]
			quote := pool.CurrentFees()
			step.Fees[name] = [2]float64{quote.Bid, quote.Ask}
			feeSumBid[name] += quote.Bid
			feeSumAsk[name] += quote.Ask
		}
		steps = append(steps, step)
	}

	finalPrice := priceProcess.Price()
	pnl := map[string]float64{}
	initialReserves := map[string][2]float64{}
	averageFees := map[string][2]float64{}
	n := float64(cfg.NSteps)
	for _, name := range strategies {
		pool := pools[name]
		rx, ry := pool.Reserves()
		accX, accY := pool.AccumulatedFees()
		pnl[name] = (rx+accX)*finalPrice + (ry + accY) - initialValue[name]
		initialReserves[name] = [2]float64{cfg.InitialX, cfg.InitialY}
		if n > 0 {
			averageFees[name] = [2]float64{feeSumBid[name] / n, feeSumAsk[name] / n}
		}
	}

	return simtypes.Result{
		Seed:             seed,
		Strategies:       strategies,
		PnL:              pnl,
		Edges:            edges,
		FinalPrice:       finalPrice,
		InitialFairPrice: p0,
		InitialReserves:  initialReserves,
		Steps:            steps,
		ArbVolumeY:       arbVolumeY,
		RetailVolumeY:    retailVolumeY,
		AverageFees:      averageFees,
	}, nil
}
