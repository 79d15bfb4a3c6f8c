package wad_test

import (
	"errors"
	"math"
	"testing"

	"github.com/daoleno/uniswapv3-sdk/constants"
	"github.com/parkercole/feesim/wad"
)

func TestFromFloatNegative(t *testing.T) {
	if _, err := wad.FromFloat(-0.1); !errors.Is(err, wad.ErrNegative) {
		t.Fatalf("expected ErrNegative, got %v", err)
	}
}

func TestFromBps(t *testing.T) {
	w, err := wad.FromBps(25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Float64(); math.Abs(got-0.0025) > 1e-12 {
		t.Fatalf("expected 0.0025, got %v", got)
	}
}

func TestClampSaturatesUpper(t *testing.T) {
	w := wad.MustFromFloat(1.5).Clamp()
	if got := w.Float64(); got >= 1.0 {
		t.Fatalf("expected clamp below 1.0, got %v", got)
	}
	if g := w.Gamma(); g <= 0 {
		t.Fatalf("expected gamma > 0, got %v", g)
	}
}

func TestClampLeavesZeroUnchanged(t *testing.T) {
	zero, _ := wad.FromFloat(0)
	w := zero.Clamp()
	if got := w.Float64(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestGammaOfZeroFeeIsOne(t *testing.T) {
	if g := wad.Zero().Gamma(); g != 1 {
		t.Fatalf("expected gamma=1 for zero fee, got %v", g)
	}
}

func TestFromTier(t *testing.T) {
	w, err := wad.FromTier(constants.FeeMedium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Float64(); math.Abs(got-0.003) > 1e-9 {
		t.Fatalf("expected 0.003 for FeeMedium, got %v", got)
	}

	if _, err := wad.FromTier(constants.FeeAmount(999)); !errors.Is(err, wad.ErrInvalidTier) {
		t.Fatalf("expected ErrInvalidTier, got %v", err)
	}
}
