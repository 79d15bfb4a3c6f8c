// Package cfmm implements the constant-product AMM pool: exact-input
// swaps on x*y=k with fees taken out-of-pool (Uniswap V3/V4 convention),
// and the V1/V2 fee-strategy callback lifecycle described in spec §4.1
// and §4.2.
package cfmm

import (
	"errors"
	"fmt"

	"github.com/parkercole/feesim/feestrategy"
	"github.com/parkercole/feesim/trade"
	"github.com/parkercole/feesim/wad"
)

var (
	// ErrInvalidPoolParams indicates non-positive initial reserves.
	ErrInvalidPoolParams = errors.New("cfmm: reserves must be positive")
	// ErrInitializeFailed indicates the V1 initialize callback failed
	// (after the V2 callback also failed, on the InitializeV2OrFallback
	// path); unlike a soft mid-run failure this is fatal to the
	// simulation per spec §7.
	ErrInitializeFailed = errors.New("cfmm: strategy failed to initialize")
)

// Pool is a single two-token constant-product AMM instance, owning
// exactly one fee-strategy instance for its lifetime (spec §3, §9).
type Pool struct {
	PoolID int
	TokenA int
	TokenB int
	Name   string

	strategy feestrategy.Strategy

	reserveX float64
	reserveY float64

	currentFees feestrategy.FeeQuote

	initialized    bool
	useV2Callbacks bool

	accFeeX float64
	accFeeY float64
}

// New creates a single-pair pool (token X = index 0, token Y = index 1,
// pool id 0), the shape the single-asset engine (C9) uses.
func New(strategy feestrategy.Strategy, initialX, initialY float64) (*Pool, error) {
	return NewWithPair(strategy, initialX, initialY, 0, 1, 0)
}

// NewWithPair creates a pool trading tokenA/tokenB (by token-universe
// index) with the given pool id, the shape the multi-asset engine (C10)
// uses: one pool struct per (strategy, pair) combination.
func NewWithPair(strategy feestrategy.Strategy, initialA, initialB float64, tokenA, tokenB, poolID int) (*Pool, error) {
	if initialA <= 0 || initialB <= 0 {
		return nil, fmt.Errorf("%w: got (%g, %g)", ErrInvalidPoolParams, initialA, initialB)
	}
	return &Pool{
		PoolID:   poolID,
		TokenA:   tokenA,
		TokenB:   tokenB,
		strategy: strategy,
		reserveX: initialA,
		reserveY: initialB,
	}, nil
}

// Reserves returns the current (X, Y) reserves.
func (p *Pool) Reserves() (float64, float64) {
	return p.reserveX, p.reserveY
}

// AccumulatedFees returns the out-of-pool fee accumulators (X, Y).
func (p *Pool) AccumulatedFees() (float64, float64) {
	return p.accFeeX, p.accFeeY
}

// CurrentFees returns the active (bid, ask) fee quote.
func (p *Pool) CurrentFees() feestrategy.FeeQuote {
	return p.currentFees
}

// FeeRates returns the active (bid, ask) fee quote as plain floats, the
// shape package arbitrage depends on.
func (p *Pool) FeeRates() (bid, ask float64) {
	return p.currentFees.Bid, p.currentFees.Ask
}

// Initialized reports whether the pool has completed its first
// successful strategy callback.
func (p *Pool) Initialized() bool {
	return p.initialized
}

// Initialize runs the V1 initialize callback only, the path the
// single-asset engine uses (spec §4.7).
func (p *Pool) Initialize() error {
	q, err := p.strategy.AfterInitialize(p.reserveX, p.reserveY)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitializeFailed, err)
	}
	p.currentFees = clampQuote(q)
	p.initialized = true
	p.useV2Callbacks = false
	return nil
}

// InitializeV2OrFallback attempts the V2 initialize callback first,
// falling back to V1 on failure, the path the multi-asset engine uses
// (spec §4.1).
func (p *Pool) InitializeV2OrFallback() error {
	q, err := p.strategy.AfterInitializeV2(p.reserveX, p.reserveY, p.PoolID, p.TokenA, p.TokenB)
	if err == nil {
		p.currentFees = clampQuote(q)
		p.initialized = true
		p.useV2Callbacks = true
		return nil
	}
	return p.Initialize()
}

// Reset leaves reserves untouched (they belong to the engine's pool
// lifecycle, not the strategy's); it only zeroes the accumulators and
// the current fee quote, clears the initialized/useV2Callbacks flags,
// and delegates to the strategy's own Reset.
func (p *Pool) Reset() {
	p.accFeeX = 0
	p.accFeeY = 0
	p.initialized = false
	p.useV2Callbacks = false
	p.currentFees = feestrategy.FeeQuote{}
	p.strategy.Reset()
}

// clampQuote passes a raw strategy quote through the fee clamp (spec
// §4.1: "Values returned are always passed through the fee clamp before
// use").
func clampQuote(q feestrategy.FeeQuote) feestrategy.FeeQuote {
	return feestrategy.FeeQuote{Bid: clampFee(q.Bid), Ask: clampFee(q.Ask)}
}

func clampFee(f float64) float64 {
	w, err := wad.FromFloat(f)
	if err != nil {
		return 0
	}
	return w.Clamp().Float64()
}

// QuoteBuyX quotes the AMM receiving amountX of token X and paying out Y,
// charging the bid fee. Returns (0, 0) on any rejection per spec §4.2.
func (p *Pool) QuoteBuyX(amountX float64) (yOut, feeInX float64) {
	if amountX <= 0 {
		return 0, 0
	}
	gamma := clampGamma(p.currentFees.Bid)
	if gamma <= 0 {
		return 0, 0
	}
	netX := amountX * gamma
	k := p.reserveX * p.reserveY
	newRX := p.reserveX + netX
	newRY := k / newRX
	y := p.reserveY - newRY
	if y > 0 {
		return y, amountX * (1 - gamma)
	}
	return 0, 0
}

// QuoteSellX quotes the AMM giving up amountX of token X and receiving Y,
// charging the ask fee on the Y leg.
func (p *Pool) QuoteSellX(amountX float64) (yInTotal, feeInY float64) {
	if amountX <= 0 || amountX >= p.reserveX {
		return 0, 0
	}
	k := p.reserveX * p.reserveY
	gamma := clampGamma(p.currentFees.Ask)
	if gamma <= 0 {
		return 0, 0
	}
	newRX := p.reserveX - amountX
	newRY := k / newRX
	netY := newRY - p.reserveY
	if netY <= 0 {
		return 0, 0
	}
	totalY := netY / gamma
	return totalY, totalY - netY
}

// QuoteXForY quotes a trader paying amountY of token Y in exchange for X,
// charging the ask fee on the Y input.
func (p *Pool) QuoteXForY(amountY float64) (xOut, feeInY float64) {
	if amountY <= 0 {
		return 0, 0
	}
	k := p.reserveX * p.reserveY
	gamma := clampGamma(p.currentFees.Ask)
	if gamma <= 0 {
		return 0, 0
	}
	netY := amountY * gamma
	newRY := p.reserveY + netY
	newRX := k / newRY
	x := p.reserveX - newRX
	if x > 0 {
		return x, amountY * (1 - gamma)
	}
	return 0, 0
}

// SupportsPair reports whether this pool trades the given unordered
// token pair.
func (p *Pool) SupportsPair(tokenIn, tokenOut int) bool {
	return (tokenIn == p.TokenA && tokenOut == p.TokenB) || (tokenIn == p.TokenB && tokenOut == p.TokenA)
}

// QuoteExactIn dispatches by token identity: TokenA in goes to QuoteBuyX,
// TokenB in goes to QuoteXForY. ok is false if this pool doesn't support
// the pair or the quote was rejected.
func (p *Pool) QuoteExactIn(tokenIn, tokenOut int, amount float64) (out, fee float64, ok bool) {
	switch {
	case tokenIn == p.TokenA && tokenOut == p.TokenB:
		out, fee = p.QuoteBuyX(amount)
	case tokenIn == p.TokenB && tokenOut == p.TokenA:
		out, fee = p.QuoteXForY(amount)
	default:
		return 0, 0, false
	}
	return out, fee, out > 0
}

// ExecuteBuyX executes the QuoteBuyX trade, mutating reserves, crediting
// the X fee accumulator, and refreshing the fee quote via the strategy.
func (p *Pool) ExecuteBuyX(amountX float64, timestamp uint64) (yOut, feeInX float64, ok bool) {
	yOut, feeInX = p.QuoteBuyX(amountX)
	if yOut <= 0 {
		return 0, 0, false
	}
	netX := amountX - feeInX
	p.reserveX += netX
	p.reserveY -= yOut
	p.accFeeX += feeInX

	p.refresh(trade.Info{
		AmmBuysX:  true,
		AmountIn:  amountX,
		AmountOut: yOut,
		Timestamp: timestamp,
		ReserveX:  p.reserveX,
		ReserveY:  p.reserveY,
	}, trade.InfoV2{
		PoolID: p.PoolID, TokenA: p.TokenA, TokenB: p.TokenB,
		AmmBuysA: true, AmountIn: amountX, AmountOut: yOut,
		Timestamp: timestamp, ReserveA: p.reserveX, ReserveB: p.reserveY,
	})
	return yOut, feeInX, true
}

// ExecuteSellX executes the QuoteSellX trade: the AMM gives up X and
// receives totalY, of which feeInY is credited to the Y accumulator.
func (p *Pool) ExecuteSellX(amountX float64, timestamp uint64) (yInTotal, feeInY float64, ok bool) {
	yInTotal, feeInY = p.QuoteSellX(amountX)
	if yInTotal <= 0 {
		return 0, 0, false
	}
	p.reserveX -= amountX
	p.reserveY += yInTotal - feeInY
	p.accFeeY += feeInY

	p.refresh(trade.Info{
		AmmBuysX:  false,
		AmountIn:  yInTotal,
		AmountOut: amountX,
		Timestamp: timestamp,
		ReserveX:  p.reserveX,
		ReserveY:  p.reserveY,
	}, trade.InfoV2{
		PoolID: p.PoolID, TokenA: p.TokenA, TokenB: p.TokenB,
		AmmBuysA: false, AmountIn: yInTotal, AmountOut: amountX,
		Timestamp: timestamp, ReserveA: p.reserveX, ReserveB: p.reserveY,
	})
	return yInTotal, feeInY, true
}

// ExecuteXForY executes the QuoteXForY trade: a trader pays amountY and
// receives xOut of X.
func (p *Pool) ExecuteXForY(amountY float64, timestamp uint64) (xOut, feeInY float64, ok bool) {
	xOut, feeInY = p.QuoteXForY(amountY)
	if xOut <= 0 {
		return 0, 0, false
	}
	netY := amountY - feeInY
	p.reserveY += netY
	p.reserveX -= xOut
	p.accFeeY += feeInY

	p.refresh(trade.Info{
		AmmBuysX:  false,
		AmountIn:  amountY,
		AmountOut: xOut,
		Timestamp: timestamp,
		ReserveX:  p.reserveX,
		ReserveY:  p.reserveY,
	}, trade.InfoV2{
		PoolID: p.PoolID, TokenA: p.TokenA, TokenB: p.TokenB,
		AmmBuysA: false, AmountIn: amountY, AmountOut: xOut,
		Timestamp: timestamp, ReserveA: p.reserveX, ReserveB: p.reserveY,
	})
	return xOut, feeInY, true
}

// ExecuteExactIn dispatches to ExecuteBuyX/ExecuteXForY by token
// identity, the shape the multi-asset engine and router use.
func (p *Pool) ExecuteExactIn(tokenIn, tokenOut int, amount float64, timestamp uint64) (amountOut float64, isBuy, ok bool) {
	switch {
	case tokenIn == p.TokenA && tokenOut == p.TokenB:
		out, _, executed := p.ExecuteBuyX(amount, timestamp)
		return out, true, executed
	case tokenIn == p.TokenB && tokenOut == p.TokenA:
		out, _, executed := p.ExecuteXForY(amount, timestamp)
		return out, false, executed
	default:
		return 0, false, false
	}
}

// refresh updates the pool's current fee quote after a trade, following
// the V2-first-fallback-to-V1-then-sticky policy of spec §4.1. When V2
// is active, the V2 callback fails and the V1 fallback succeeds, the
// pool demotes to V1-only for the remainder of its life, mirroring the
// reference implementation.
func (p *Pool) refresh(v1 trade.Info, v2 trade.InfoV2) {
	if p.useV2Callbacks {
		if q, err := p.strategy.AfterSwapV2(v2); err == nil {
			p.currentFees = clampQuote(q)
			return
		}
		if q, err := p.strategy.AfterSwap(v1); err == nil {
			p.currentFees = clampQuote(q)
			p.useV2Callbacks = false
		}
		// V1 also failed: stay on V2 and leave fees sticky, so a later
		// V2 callback that recovers is still used.
		return
	}
	if q, err := p.strategy.AfterSwap(v1); err == nil {
		p.currentFees = clampQuote(q)
	}
	// V1-only pool whose V1 callback failed: fees stay sticky.
}

func clampGamma(fee float64) float64 {
	w, err := wad.FromFloat(fee)
	if err != nil {
		return 0
	}
	return w.Gamma()
}
