// Package priceprocess implements the fair-price process driving each
// simulation step: single-asset geometric Brownian motion and its
// multi-asset extension with a pinned numeraire coordinate (spec §4.3).
package priceprocess

import (
	"math"

	"github.com/parkercole/feesim/rng"
)

// floorPrice is the clamp applied when a price would fall to or below
// zero, a numerical pathology guard from spec §4.3.
const floorPrice = 1e-9

// GBM is the single-asset fair-price process:
//
//	p_{t+1} = p_t * exp((mu - 0.5*sigma^2)*dt + sigma*sqrt(dt)*Z_t)
type GBM struct {
	price     float64
	driftTerm float64
	volTerm   float64
	stream    *rng.Stream
}

// NewGBM constructs a single-asset GBM process seeded deterministically
// from seed.
func NewGBM(initialPrice, mu, sigma, dt float64, seed uint64) *GBM {
	return &GBM{
		price:     initialPrice,
		driftTerm: (mu - 0.5*sigma*sigma) * dt,
		volTerm:   sigma * math.Sqrt(dt),
		stream:    rng.NewStream(seed),
	}
}

// Price returns the current fair price without advancing the process.
func (g *GBM) Price() float64 {
	return g.price
}

// Step advances the process by one Z_t draw and returns the new price.
func (g *GBM) Step() float64 {
	z := g.stream.NormFloat64()
	g.price *= math.Exp(g.driftTerm + g.volTerm*z)
	if g.price <= 0 {
		g.price = floorPrice
	}
	return g.price
}

// MultiAssetGBM runs N independent GBM coordinates sharing one drift/vol
// pair, with the numeraire coordinate pinned to 1.0 at construction and
// after every step (spec §4.3).
type MultiAssetGBM struct {
	prices    []float64
	numeraire int
	driftTerm float64
	volTerm   float64
	stream    *rng.Stream
}

// NewMultiAssetGBM constructs a multi-asset GBM process. initialPrices is
// copied; numeraire must index a valid coordinate, which is pinned to
// 1.0 immediately.
func NewMultiAssetGBM(initialPrices []float64, numeraire int, mu, sigma, dt float64, seed uint64) *MultiAssetGBM {
	prices := append([]float64(nil), initialPrices...)
	if numeraire >= 0 && numeraire < len(prices) {
		prices[numeraire] = 1.0
	}
	return &MultiAssetGBM{
		prices:    prices,
		numeraire: numeraire,
		driftTerm: (mu - 0.5*sigma*sigma) * dt,
		volTerm:   sigma * math.Sqrt(dt),
		stream:    rng.NewStream(seed),
	}
}

// CurrentPrices returns the current price vector without advancing the
// process. The returned slice must not be mutated by the caller.
func (m *MultiAssetGBM) CurrentPrices() []float64 {
	return m.prices
}

// Step advances every non-numeraire coordinate by an independent Z_t
// draw (drawn in index order), re-pins the numeraire, and returns the
// updated price vector.
func (m *MultiAssetGBM) Step() []float64 {
	for i := range m.prices {
		if i == m.numeraire {
			continue
		}
		z := m.stream.NormFloat64()
		m.prices[i] *= math.Exp(m.driftTerm + m.volTerm*z)
		if m.prices[i] <= 0 {
			m.prices[i] = floorPrice
		}
	}
	m.prices[m.numeraire] = 1.0
	return m.prices
}
