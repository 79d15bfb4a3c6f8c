// Package simtypes holds the configuration inputs and aggregated
// outputs for the simulation engines and batch runner (spec §3, C12).
package simtypes

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig reports a configuration that fails validation, fatal
// to the simulation per spec §7.
var ErrInvalidConfig = errors.New("simtypes: invalid configuration")

// Config is the single-asset simulation configuration (spec §3).
type Config struct {
	NSteps             uint32
	InitialPrice       float64
	InitialX           float64
	InitialY           float64
	GBMMu              float64
	GBMSigma           float64
	GBMDt              float64
	RetailArrivalRate  float64
	RetailMeanSize     float64
	RetailSizeSigma    float64
	RetailBuyProb      float64
	Seed               *uint64
}

// SeedOrZero returns the configured seed, defaulting to 0 when unset.
func (c Config) SeedOrZero() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// Validate checks the invariants spec §7 requires before a single-asset
// simulation can run.
func (c Config) Validate() error {
	if c.InitialX <= 0 || c.InitialY <= 0 {
		return fmt.Errorf("%w: initial reserves must be positive, got (%g, %g)", ErrInvalidConfig, c.InitialX, c.InitialY)
	}
	if c.InitialPrice <= 0 {
		return fmt.Errorf("%w: initial_price must be positive, got %g", ErrInvalidConfig, c.InitialPrice)
	}
	return nil
}

// PoolConfigV2 describes one multi-asset pool: the token indices it
// trades and its initial reserves.
type PoolConfigV2 struct {
	TokenA  int
	TokenB  int
	InitialA float64
	InitialB float64
}

// ConfigV2 is the multi-asset simulation configuration (spec §3).
type ConfigV2 struct {
	NSteps            uint32
	InitialPrices     []float64
	GBMMu             float64
	GBMSigma          float64
	GBMDt             float64
	RetailArrivalRate float64
	RetailMeanSize    float64
	RetailSizeSigma   float64
	RetailBuyProb     float64
	NumeraireToken    int
	Pools             []PoolConfigV2
	Seed              *uint64
}

// SeedOrZero returns the configured seed, defaulting to 0 when unset.
func (c ConfigV2) SeedOrZero() uint64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// Validate checks the invariants spec §7 requires before a multi-asset
// simulation can run: at least 2 assets, a valid numeraire index, a
// non-empty pool list, and every pool referencing distinct in-range
// tokens with positive initial reserves.
func (c ConfigV2) Validate() error {
	nAssets := len(c.InitialPrices)
	if nAssets < 2 {
		return fmt.Errorf("%w: requires at least 2 assets, got %d", ErrInvalidConfig, nAssets)
	}
	if c.NumeraireToken < 0 || c.NumeraireToken >= nAssets {
		return fmt.Errorf("%w: numeraire_token %d out of bounds for %d assets", ErrInvalidConfig, c.NumeraireToken, nAssets)
	}
	if len(c.Pools) == 0 {
		return fmt.Errorf("%w: requires at least 1 pool", ErrInvalidConfig)
	}
	for i, pool := range c.Pools {
		if pool.TokenA == pool.TokenB || pool.TokenA < 0 || pool.TokenA >= nAssets || pool.TokenB < 0 || pool.TokenB >= nAssets {
			return fmt.Errorf("%w: pool %d has invalid token indices (%d, %d)", ErrInvalidConfig, i, pool.TokenA, pool.TokenB)
		}
		if pool.InitialA <= 0 || pool.InitialB <= 0 {
			return fmt.Errorf("%w: pool %d has non-positive reserves (%g, %g)", ErrInvalidConfig, i, pool.InitialA, pool.InitialB)
		}
	}
	return nil
}
