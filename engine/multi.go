package engine

import (
	"fmt"

	"github.com/parkercole/feesim/arbitrage"
	"github.com/parkercole/feesim/cfmm"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/priceprocess"
	"github.com/parkercole/feesim/retail"
	"github.com/parkercole/feesim/router"
	"github.com/parkercole/feesim/simtypes"
)

// MultiAssetEngine runs the N-asset, M-pool simulation loop (spec §4.8).
// Two independent pool sets (submission and baseline) share one price
// process and one retail stream; every pool owns its own fee-strategy
// instance, constructed fresh per pool per strategy.
type MultiAssetEngine struct {
	config simtypes.ConfigV2
}

// NewMultiAssetEngine constructs an engine for the given configuration.
func NewMultiAssetEngine(config simtypes.ConfigV2) *MultiAssetEngine {
	return &MultiAssetEngine{config: config}
}

// StrategyFactory builds a fresh strategy instance for one pool. The
// multi-asset engine calls it once per (pool, strategy-name) pair so
// that no VM state is ever shared across pools (spec §3, §9).
type StrategyFactory func() (feestrategy.Strategy, error)

// Run executes the full multi-asset simulation. submissionFactory and
// baselineFactory are invoked once per pool in config.Pools, each
// yielding an independent strategy instance.
func (e *MultiAssetEngine) Run(submissionFactory, baselineFactory StrategyFactory) (simtypes.ResultV2, error) {
	cfg := e.config
	if err := cfg.Validate(); err != nil {
		return simtypes.ResultV2{}, err
	}

	seed := cfg.SeedOrZero()
	nAssets := len(cfg.InitialPrices)
	strategies := []string{nameSubmission, nameBaseline}

	pools := make([]*cfmm.Pool, 0, len(cfg.Pools)*2)
	poolNames := make([]string, 0, len(cfg.Pools)*2)
	for poolIdx, pc := range cfg.Pools {
		sub, err := submissionFactory()
		if err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d submission: %w", poolIdx, err)
		}
		base, err := baselineFactory()
		if err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d baseline: %w", poolIdx, err)
		}

		subPool, err := cfmm.NewWithPair(sub, pc.InitialA, pc.InitialB, pc.TokenA, pc.TokenB, poolIdx*2)
		if err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d submission: %w", poolIdx, err)
		}
		if err := subPool.InitializeV2OrFallback(); err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d submission: %w", poolIdx, err)
		}
		basePool, err := cfmm.NewWithPair(base, pc.InitialA, pc.InitialB, pc.TokenA, pc.TokenB, poolIdx*2+1)
		if err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d baseline: %w", poolIdx, err)
		}
		if err := basePool.InitializeV2OrFallback(); err != nil {
			return simtypes.ResultV2{}, fmt.Errorf("pool %d baseline: %w", poolIdx, err)
		}

		pools = append(pools, subPool, basePool)
		poolNames = append(poolNames, nameSubmission, nameBaseline)
	}

	priceProcess := priceprocess.NewMultiAssetGBM(cfg.InitialPrices, cfg.NumeraireToken, cfg.GBMMu, cfg.GBMSigma, cfg.GBMDt, seed)
	retailGen := retail.NewGeneratorV2(nAssets, cfg.RetailArrivalRate, cfg.RetailMeanSize, cfg.RetailSizeSigma, cfg.RetailBuyProb, seed+1)
	arb := arbitrage.New()
	rtr := router.New()

	initialValue := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	for i, pool := range pools {
		rx, ry := pool.Reserves()
		prices := priceProcess.CurrentPrices()
		initialValue[poolNames[i]] += rx*prices[pool.TokenA] + ry*prices[pool.TokenB]
	}

	edges := map[string]float64{nameSubmission: 0, nameBaseline: 0}

	for t := uint32(0); t < cfg.NSteps; t++ {
		prices := priceProcess.Step()

		for i, pool := range pools {
			fairPrice := prices[pool.TokenB] / prices[pool.TokenA]
			if result := arb.ExecuteArb(pool, fairPrice, uint64(t)); result != nil {
				var edge float64
				if result.Side == arbitrage.SideBuy {
					edge = result.AmountX*prices[pool.TokenA] - result.AmountY*prices[pool.TokenB]
				} else {
					edge = result.AmountY*prices[pool.TokenB] - result.AmountX*prices[pool.TokenA]
				}
				edges[poolNames[i]] += edge
			}
		}

		orders := retailGen.GenerateOrders()
		routerPools := make([]router.Pool, len(pools))
		for i, p := range pools {
			routerPools[i] = p
		}
		for _, order := range orders {
			amountIn := router.AmountIn(order.SizeNumeraire, prices[order.TokenIn])
			idx, amountOut, _, ok := rtr.Execute(routerPools, order.TokenIn, order.TokenOut, amountIn, uint64(t))
			if !ok {
				continue
			}
			edge := amountIn*prices[order.TokenIn] - amountOut*prices[order.TokenOut]
			edges[poolNames[idx]] += edge
		}
	}

	finalPrices := priceProcess.CurrentPrices()
	pnl := map[string]float64{nameSubmission: 0, nameBaseline: 0}
	poolStates := make([]simtypes.PoolStateV2, 0, len(pools))
	for i, pool := range pools {
		rx, ry := pool.Reserves()
		accX, accY := pool.AccumulatedFees()
		pnl[poolNames[i]] += (rx+accX)*finalPrices[pool.TokenA] + (ry+accY)*finalPrices[pool.TokenB]
		poolStates = append(poolStates, simtypes.PoolStateV2{
			PoolID: pool.PoolID, TokenA: pool.TokenA, TokenB: pool.TokenB,
			ReserveA: rx, ReserveB: ry,
		})
	}
	for name, init := range initialValue {
		pnl[name] -= init
	}

	return simtypes.ResultV2{
		Seed:        seed,
		Strategies:  strategies,
		PnL:         pnl,
		Edges:       edges,
		FinalPrices: append([]float64(nil), finalPrices...),
		Pools:       poolStates,
	}, nil
}
