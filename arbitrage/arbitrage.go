// Package arbitrage implements the closed-form arbitrageur (spec §4.5):
// given a pool and a target fair cross-rate, it computes and executes
// the single trade that moves the pool's effective marginal price to
// that target, accounting for the pool's asymmetric bid/ask fees.
package arbitrage

import "math"

// Pool is the subset of cfmm.Pool the arbitrageur depends on. Depending
// on an interface rather than the concrete type keeps this package
// testable against a minimal fake pool.
type Pool interface {
	Reserves() (float64, float64)
	FeeRates() (bid, ask float64)
	ExecuteBuyX(amountX float64, timestamp uint64) (yOut, feeInX float64, ok bool)
	ExecuteSellX(amountX float64, timestamp uint64) (yInTotal, feeInY float64, ok bool)
}

// Side identifies which direction the arbitrageur traded.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Result is the record the engine uses for edge accounting (spec §4.5
// point 3).
type Result struct {
	Side     Side
	AmountX  float64
	AmountY  float64
}

// Arbitrageur is deterministic and stateless (spec §9: "The arbitrageur
// is deterministic").
type Arbitrageur struct{}

// New returns an Arbitrageur.
func New() *Arbitrageur {
	return &Arbitrageur{}
}

// ExecuteArb computes the fee-aware trade that would move pool's
// marginal price to fairPrice (price of token B per token A) and
// executes it via the pool's normal execute path. It returns nil if no
// trade is warranted (the required delta is non-positive, would drain a
// reserve, or neither direction validates).
func (a *Arbitrageur) ExecuteArb(pool Pool, fairPrice float64, timestamp uint64) *Result {
	rx, ry := pool.Reserves()
	if rx <= 0 || ry <= 0 || fairPrice <= 0 {
		return nil
	}
	bid, ask := pool.FeeRates()
	k := rx * ry

	buyDx, buyOK := buyDelta(rx, ry, k, bid, fairPrice)
	sellDx, sellOK := sellDelta(rx, ry, k, ask, fairPrice)

	switch {
	case buyOK && sellOK:
		// Should not occur under a positive bid/ask spread, but guard
		// against numerical noise by preferring the larger-magnitude edge.
		buyEdge := buyDx*fairPrice - (ry - k/(rx+(1-bid)*buyDx))
		sellEdge := (k/(rx-sellDx)-ry)/(1-ask) - sellDx*fairPrice
		if math.Abs(buyEdge) >= math.Abs(sellEdge) {
			return a.executeBuy(pool, buyDx, fairPrice, timestamp)
		}
		return a.executeSell(pool, sellDx, fairPrice, timestamp)
	case buyOK:
		return a.executeBuy(pool, buyDx, fairPrice, timestamp)
	case sellOK:
		return a.executeSell(pool, sellDx, fairPrice, timestamp)
	default:
		return nil
	}
}

// buyDelta solves for Δx under direction BUY (AMM buys X): with
// γ=1-bid, X'=X+γΔx, Y'=k/X', requiring γY'/X'=fairPrice.
func buyDelta(rx, ry, k, bid, fairPrice float64) (float64, bool) {
	gamma := 1 - bid
	if gamma <= 0 {
		return 0, false
	}
	newRX := math.Sqrt(gamma * k / fairPrice)
	dx := (newRX - rx) / gamma
	if dx <= 0 {
		return 0, false
	}
	newRY := k / newRX
	if newRY >= ry || newRY <= 0 {
		return 0, false
	}
	return dx, true
}

// sellDelta solves for Δx under direction SELL (AMM sells X): X'=X-Δx,
// Y'=k/X', requiring Y'/X' = fairPrice*(1-ask).
func sellDelta(rx, ry, k, ask, fairPrice float64) (float64, bool) {
	gamma := 1 - ask
	if gamma <= 0 {
		return 0, false
	}
	newRX := math.Sqrt(k / (fairPrice * gamma))
	dx := rx - newRX
	if dx <= 0 || dx >= rx {
		return 0, false
	}
	return dx, true
}

func (a *Arbitrageur) executeBuy(pool Pool, dx, fairPrice float64, timestamp uint64) *Result {
	yOut, _, ok := pool.ExecuteBuyX(dx, timestamp)
	if !ok {
		return nil
	}
	return &Result{Side: SideBuy, AmountX: dx, AmountY: yOut}
}

func (a *Arbitrageur) executeSell(pool Pool, dx, fairPrice float64, timestamp uint64) *Result {
	yIn, _, ok := pool.ExecuteSellX(dx, timestamp)
	if !ok {
		return nil
	}
	return &Result{Side: SideSell, AmountX: dx, AmountY: yIn}
}
