package router_test

import (
	"testing"

	"github.com/parkercole/feesim/cfmm"
	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/router"
)

func newPool(t *testing.T, bid, ask, a, b float64, tokenA, tokenB, id int) *cfmm.Pool {
	t.Helper()
	p, err := cfmm.NewWithPair(feestrategy.NewConstantFeeStrategy(bid, ask), a, b, tokenA, tokenB, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.InitializeV2OrFallback(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

// Boundary: retail routing optimality (spec §8 property 8).
func TestRouteOptimality(t *testing.T) {
	cheap := newPool(t, 0.001, 0.001, 1000, 1000, 0, 1, 0)
	expensive := newPool(t, 0.05, 0.05, 1000, 1000, 0, 1, 1)
	pools := []router.Pool{cheap, expensive}

	idx, out, ok := router.Route(pools, 0, 1, 10)
	if !ok {
		t.Fatalf("expected a quoting pool")
	}
	if idx != 0 {
		t.Fatalf("expected the lower-fee pool (index 0) to win, got %d", idx)
	}
	if out <= 0 {
		t.Fatalf("expected positive output, got %v", out)
	}
}

func TestRouteUnsupportedPairReturnsNotOK(t *testing.T) {
	p := newPool(t, 0.003, 0.003, 1000, 1000, 0, 1, 0)
	pools := []router.Pool{p}
	if _, _, ok := router.Route(pools, 2, 3, 10); ok {
		t.Fatalf("expected no pool to support an unrelated pair")
	}
}

func TestExecuteAppliesWinningPoolTrade(t *testing.T) {
	cheap := newPool(t, 0.001, 0.001, 1000, 1000, 0, 1, 0)
	expensive := newPool(t, 0.05, 0.05, 1000, 1000, 0, 1, 1)
	pools := []router.Pool{cheap, expensive}

	r := router.New()
	idx, out, _, ok := r.Execute(pools, 0, 1, 10, 0)
	if !ok || idx != 0 || out <= 0 {
		t.Fatalf("expected execution against pool 0, got idx=%d out=%v ok=%v", idx, out, ok)
	}
}

func TestAmountInFloorsAtEpsilon(t *testing.T) {
	if got := router.AmountIn(0, 1); got != 1e-12 {
		t.Fatalf("expected epsilon floor, got %v", got)
	}
}
