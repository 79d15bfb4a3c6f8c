// Package feestrategy defines the contract the embedded fee-strategy VM
// must expose to a CFMM pool. The real VM is out of scope for this
// module (spec §1); this package specifies only the callback interface
// and ships two concrete mock strategies so the rest of the engine can
// be exercised and tested without an interpreter.
package feestrategy

import (
	"errors"

	"github.com/parkercole/feesim/trade"
)

// ErrVMFailure is returned by a Strategy callback when the underlying VM
// rejects the call. Mid-run it never aborts a simulation: the pool
// treats the failure as "soft" after a swap and as fatal only at
// initialize time, per spec §7.
var ErrVMFailure = errors.New("feestrategy: vm callback failed")

// FeeQuote is the pair of fees a strategy returns: Bid is charged when
// the AMM buys the base token X (or A in V2), Ask when it sells.
// Components are expected in [0, 1) before the pool's fee clamp runs;
// the clamp itself lives in package wad.
type FeeQuote struct {
	Bid float64
	Ask float64
}

// Strategy is the abstraction the CFMM pool depends on in place of a
// concrete VM type, so unit tests and demos can supply a mock strategy
// (constant fees, feedback controller, ...) per spec §9.
type Strategy interface {
	// AfterInitialize is the V1 initialization callback.
	AfterInitialize(reserveX, reserveY float64) (FeeQuote, error)
	// AfterSwap is the V1 post-trade callback.
	AfterSwap(info trade.Info) (FeeQuote, error)
	// AfterInitializeV2 is the multi-asset initialization callback.
	AfterInitializeV2(reserveA, reserveB float64, poolID, tokenA, tokenB int) (FeeQuote, error)
	// AfterSwapV2 is the multi-asset post-trade callback.
	AfterSwapV2(info trade.InfoV2) (FeeQuote, error)
	// Reset clears any VM-side persistent state, restoring the strategy
	// to its post-deployment behavior.
	Reset()
}
