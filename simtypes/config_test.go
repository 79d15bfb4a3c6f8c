package simtypes_test

import (
	"errors"
	"testing"

	"github.com/parkercole/feesim/simtypes"
)

func TestConfigValidate(t *testing.T) {
	c := simtypes.Config{InitialPrice: 1, InitialX: 1000, InitialY: 1000}
	if err := c.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := simtypes.Config{InitialPrice: 1, InitialX: 0, InitialY: 1000}
	if err := bad.Validate(); !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfigV2Validate(t *testing.T) {
	ok := simtypes.ConfigV2{
		InitialPrices:  []float64{2, 1, 3},
		NumeraireToken: 1,
		Pools: []simtypes.PoolConfigV2{
			{TokenA: 0, TokenB: 1, InitialA: 100, InitialB: 100},
		},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooFewAssets := simtypes.ConfigV2{InitialPrices: []float64{1}}
	if err := tooFewAssets.Validate(); !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for n_assets < 2")
	}

	badNumeraire := ok
	badNumeraire.NumeraireToken = 5
	if err := badNumeraire.Validate(); !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for out-of-bounds numeraire")
	}

	noPools := ok
	noPools.Pools = nil
	if err := noPools.Validate(); !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for empty pool list")
	}

	badPool := ok
	badPool.Pools = []simtypes.PoolConfigV2{{TokenA: 0, TokenB: 0, InitialA: 1, InitialB: 1}}
	if err := badPool.Validate(); !errors.Is(err, simtypes.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for identical token indices")
	}
}
