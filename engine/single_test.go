package engine_test

import (
	"testing"

	"github.com/parkercole/feesim/engine"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/simtypes"
)

// Boundary scenario 1 (spec §8): trivial zero-flow.
func TestTrivialZeroFlow(t *testing.T) {
	seed := uint64(42)
	cfg := simtypes.Config{
		NSteps:       10,
		InitialPrice: 1,
		InitialX:     1000,
		InitialY:     1000,
		GBMMu:        0,
		GBMSigma:     0,
		GBMDt:        1,
		RetailArrivalRate: 0,
		RetailMeanSize:    1,
		RetailSizeSigma:   1,
		RetailBuyProb:     0.5,
		Seed:              &seed,
	}
	eng := engine.NewSingleAssetEngine(cfg)
	result, err := eng.Run(
		feestrategy.NewConstantFeeStrategy(0, 0),
		feestrategy.NewConstantFeeStrategy(0, 0),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range result.Strategies {
		if pnl := result.PnL[name]; pnl != 0 {
			t.Fatalf("%s: expected zero PnL, got %v", name, pnl)
		}
		if edge := result.Edges[name]; edge != 0 {
			t.Fatalf("%s: expected zero edge, got %v", name, edge)
		}
	}
}

func TestDeterminismAcrossRuns(t *testing.T) {
	seed := uint64(7)
	cfg := simtypes.Config{
		NSteps: 50, InitialPrice: 1, InitialX: 1000, InitialY: 1000,
		GBMMu: 0.01, GBMSigma: 0.2, GBMDt: 1.0 / 365,
		RetailArrivalRate: 3, RetailMeanSize: 5, RetailSizeSigma: 0.5, RetailBuyProb: 0.5,
		Seed: &seed,
	}
	run := func() simtypes.Result {
		eng := engine.NewSingleAssetEngine(cfg)
		res, err := eng.Run(
			feestrategy.NewConstantFeeStrategy(0.003, 0.003),
			feestrategy.NewConstantFeeStrategy(0.001, 0.001),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}
	a, b := run(), run()
	if a.PnL["submission"] != b.PnL["submission"] || a.Edges["submission"] != b.Edges["submission"] {
		t.Fatalf("expected deterministic replay, got %+v vs %+v", a, b)
	}
}
