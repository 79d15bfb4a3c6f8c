package batch_test

import (
	"errors"
	"testing"

	"github.com/parkercole/feesim/batch"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/simtypes"
)

func configs(n int) []simtypes.Config {
	out := make([]simtypes.Config, n)
	for i := range out {
		seed := uint64(i)
		out[i] = simtypes.Config{
			NSteps: 20, InitialPrice: 1, InitialX: 1000, InitialY: 1000,
			GBMMu: 0.01, GBMSigma: 0.1, GBMDt: 1.0 / 365,
			RetailArrivalRate: 2, RetailMeanSize: 3, RetailSizeSigma: 0.4, RetailBuyProb: 0.5,
			Seed: &seed,
		}
	}
	return out
}

func newConstant(bid, ask float64) batch.StrategyFactory {
	return func() (feestrategy.Strategy, error) {
		return feestrategy.NewConstantFeeStrategy(bid, ask), nil
	}
}

// Boundary scenario 5 (spec §8): batch determinism across worker counts.
func TestBatchDeterministicAcrossWorkerCounts(t *testing.T) {
	cfgs := configs(16)
	sub, base := newConstant(0.003, 0.003), newConstant(0.001, 0.001)

	withOne, err := batch.Run(cfgs, sub, base, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	withEight, err := batch.Run(cfgs, sub, base, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(withOne.Results) != len(withEight.Results) {
		t.Fatalf("result count mismatch")
	}
	for i := range withOne.Results {
		a, b := withOne.Results[i], withEight.Results[i]
		if a.PnL["submission"] != b.PnL["submission"] || a.Edges["submission"] != b.Edges["submission"] {
			t.Fatalf("seed %d diverged across worker counts: %+v vs %+v", i, a, b)
		}
	}
}

func TestBatchFirstErrorWins(t *testing.T) {
	cfgs := []simtypes.Config{
		{InitialPrice: 1, InitialX: 1000, InitialY: 1000, NSteps: 1, GBMDt: 1},
		{InitialPrice: 1, InitialX: -1, InitialY: 1000, NSteps: 1, GBMDt: 1}, // invalid
	}
	_, err := batch.Run(cfgs, newConstant(0, 0), newConstant(0, 0), 2)
	if !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig to propagate, got %v", err)
	}
}

func TestBatchResultsOrderPreserved(t *testing.T) {
	cfgs := configs(8)
	result, err := batch.Run(cfgs, newConstant(0.003, 0.003), newConstant(0.001, 0.001), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, res := range result.Results {
		if res.Seed != uint64(i) {
			t.Fatalf("expected order-preserved results, index %d has seed %d", i, res.Seed)
		}
	}
}
