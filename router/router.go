// Package router implements the multi-asset order router (spec §4.6):
// given a retail order, it selects the best direct pool by strictly
// greatest output amount and executes against it.
package router

import "math"

// minAmountIn is the router-stage floor on converted base-token input,
// per spec §4.2's "floor of ε = 1e-12 at the router stage".
const minAmountIn = 1e-12

// Pool is the subset of cfmm.Pool the router depends on.
type Pool interface {
	SupportsPair(tokenIn, tokenOut int) bool
	QuoteExactIn(tokenIn, tokenOut int, amount float64) (out, fee float64, ok bool)
	ExecuteExactIn(tokenIn, tokenOut int, amount float64, timestamp uint64) (amountOut float64, isBuy, ok bool)
}

// Router selects and executes retail orders against the best of a set
// of pools.
type Router struct{}

// New returns a Router.
func New() *Router {
	return &Router{}
}

// AmountIn converts a numeraire-denominated order size into base-token
// units of tokenIn, per spec §4.6 step 1.
func AmountIn(sizeNumeraire, priceTokenIn float64) float64 {
	in := sizeNumeraire / math.Max(priceTokenIn, 1e-9)
	if in < minAmountIn {
		return minAmountIn
	}
	return in
}

// Route picks, among pools, the one with strictly greatest amount_out
// for the given exact-input order, ties won by first-seen (construction
// order). It returns ok=false if no pool supports the pair.
func Route(pools []Pool, tokenIn, tokenOut int, amountIn float64) (bestIdx int, bestOut float64, ok bool) {
	bestIdx = -1
	for idx, p := range pools {
		out, _, quoted := p.QuoteExactIn(tokenIn, tokenOut, amountIn)
		if quoted && out > bestOut {
			bestOut = out
			bestIdx = idx
			ok = true
		}
	}
	return bestIdx, bestOut, ok
}

// Execute routes and executes the order in one step, silently returning
// ok=false if no pool supports the pair (spec §4.6 step 4).
func (r *Router) Execute(pools []Pool, tokenIn, tokenOut int, amountIn float64, timestamp uint64) (poolIdx int, amountOut float64, isBuy, ok bool) {
	idx, _, found := Route(pools, tokenIn, tokenOut, amountIn)
	if !found {
		return -1, 0, false, false
	}
	out, buy, executed := pools[idx].ExecuteExactIn(tokenIn, tokenOut, amountIn, timestamp)
	if !executed {
		return -1, 0, false, false
	}
	return idx, out, buy, true
}
