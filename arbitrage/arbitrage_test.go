package arbitrage_test

import (
	"math"
	"testing"

	"github.com/parkercole/feesim/arbitrage"
	"github.com/parkercole/feesim/cfmm"
	"github.com/parkercole/feesim/feestrategy"
)

func TestZeroFeeNoArbInvariance(t *testing.T) {
	p, err := cfmm.New(feestrategy.NewConstantFeeStrategy(0, 0), 1000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rxBefore, ryBefore := p.Reserves()
	spot := ryBefore / rxBefore

	arb := arbitrage.New()
	result := arb.ExecuteArb(p, spot, 0)
	if result != nil {
		t.Fatalf("expected no trade at current spot with zero fees, got %+v", result)
	}
	rxAfter, ryAfter := p.Reserves()
	if math.Abs(rxAfter-rxBefore) > 1e-9 || math.Abs(ryAfter-ryBefore) > 1e-9 {
		t.Fatalf("expected reserves unchanged, got (%v,%v) vs (%v,%v)", rxBefore, ryBefore, rxAfter, ryAfter)
	}
}

func TestArbMovesPriceTowardTarget(t *testing.T) {
	p, err := cfmm.New(feestrategy.NewConstantFeeStrategy(0.003, 0.003), 1000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arb := arbitrage.New()
	result := arb.ExecuteArb(p, 1.1, 0)
	if result == nil {
		t.Fatalf("expected a trade when fair price diverges from spot")
	}
	rx, ry := p.Reserves()
	newSpot := ry / rx
	if math.Abs(newSpot-1.1) > 0.05 {
		t.Fatalf("expected new spot near 1.1, got %v", newSpot)
	}
}

func TestArbIdempotence(t *testing.T) {
	p, err := cfmm.New(feestrategy.NewConstantFeeStrategy(0.003, 0.003), 1000, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Initialize(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	arb := arbitrage.New()
	first := arb.ExecuteArb(p, 1.1, 0)
	if first == nil {
		t.Fatalf("expected first arb to trade")
	}
	second := arb.ExecuteArb(p, 1.1, 1)
	if second != nil {
		t.Fatalf("expected idempotent second arb against unchanged fair price, got %+v", second)
	}
}
