// Package wad provides an 18-decimal fixed-point scalar used to carry fee
// values across the boundary between the simulation engine and the
// embedded fee-strategy VM. It is never used for reserve arithmetic: the
// CFMM pool keeps reserves as float64, per the reference model's numeric
// rules.
package wad

import (
	"errors"
	"fmt"

	"github.com/daoleno/uniswapv3-sdk/constants"
	"github.com/shopspring/decimal"
)

// Decimals is the fixed scale of a Wad: 18 decimal places.
const Decimals = 18

// Epsilon is the clamp margin keeping gamma = 1 - fee strictly positive.
const Epsilon = 1e-12

var (
	// ErrNegative indicates a Wad was constructed from a negative value.
	ErrNegative = errors.New("wad: value cannot be negative")
	// ErrInvalidTier indicates an unrecognized Uniswap fee tier.
	ErrInvalidTier = errors.New("wad: unrecognized fee tier")
)

// Wad is a non-negative fixed-point scalar with 18 decimal places.
type Wad struct {
	value decimal.Decimal
}

// Zero returns the Wad value 0.
func Zero() Wad {
	return Wad{value: decimal.Zero}
}

// FromFloat constructs a Wad from a float64. Negative inputs return
// ErrNegative.
func FromFloat(f float64) (Wad, error) {
	if f < 0 {
		return Wad{}, fmt.Errorf("%w: %g", ErrNegative, f)
	}
	return Wad{value: decimal.NewFromFloat(f)}, nil
}

// MustFromFloat is FromFloat, panicking on error. Intended for constants.
func MustFromFloat(f float64) Wad {
	w, err := FromFloat(f)
	if err != nil {
		panic(err)
	}
	return w
}

// FromBps constructs a fee Wad from basis points: fee = bps / 10000.
func FromBps(bps int64) (Wad, error) {
	if bps < 0 {
		return Wad{}, fmt.Errorf("%w: %d bps", ErrNegative, bps)
	}
	return Wad{value: decimal.NewFromInt(bps).Div(decimal.NewFromInt(10000))}, nil
}

// tierFees maps Uniswap V3 canonical fee tiers to basis points.
// constants.FeeAmount values are denominated in pips (1e-6); dividing by
// 100 converts pips to bps (1e-4) before FromBps divides again by 10000.
var tierFees = map[constants.FeeAmount]int64{
	constants.FeeLow:    5,
	constants.FeeMedium: 30,
	constants.FeeHigh:   100,
}

// FromTier constructs a fee Wad from a canonical Uniswap V3 fee tier, for
// callers configuring a baseline/normalizer strategy at a standard rate
// instead of an arbitrary bps value.
func FromTier(tier constants.FeeAmount) (Wad, error) {
	bps, ok := tierFees[tier]
	if !ok {
		return Wad{}, fmt.Errorf("%w: %d", ErrInvalidTier, tier)
	}
	return FromBps(bps)
}

// Float64 returns the value as a float64, the representation used on the
// reserve-math hot path once a fee crosses out of the VM boundary.
func (w Wad) Float64() float64 {
	f, _ := w.value.Float64()
	return f
}

// String renders the Wad at full 18-decimal precision.
func (w Wad) String() string {
	return w.value.StringFixed(Decimals)
}

// Clamp saturates the Wad into the closed interval [0, 1-ε], preserving
// the invariant gamma = 1 - fee > 0 required for a trade to be
// executable. Values already within range are returned unchanged.
func (w Wad) Clamp() Wad {
	upper := decimal.NewFromFloat(1 - Epsilon)
	v := w.value
	if v.IsNegative() {
		v = decimal.Zero
	}
	if v.GreaterThan(upper) {
		v = upper
	}
	return Wad{value: v}
}

// Gamma returns 1 - w as a float64, clamping first so the result is
// always in (0, 1].
func (w Wad) Gamma() float64 {
	return 1 - w.Clamp().Float64()
}
