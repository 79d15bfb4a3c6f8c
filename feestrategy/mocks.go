package feestrategy

import "github.com/parkercole/feesim/trade"

// ConstantFeeStrategy always returns the same fee quote, never fails,
// and ignores Reset. It stands in for a trivial, deployed-once baseline
// strategy in tests and demos.
type ConstantFeeStrategy struct {
	Bid float64
	Ask float64
}

// NewConstantFeeStrategy returns a ConstantFeeStrategy quoting the same
// bid/ask on every callback.
func NewConstantFeeStrategy(bid, ask float64) *ConstantFeeStrategy {
	return &ConstantFeeStrategy{Bid: bid, Ask: ask}
}

func (s *ConstantFeeStrategy) quote() (FeeQuote, error) {
	return FeeQuote{Bid: s.Bid, Ask: s.Ask}, nil
}

func (s *ConstantFeeStrategy) AfterInitialize(reserveX, reserveY float64) (FeeQuote, error) {
	return s.quote()
}

func (s *ConstantFeeStrategy) AfterSwap(info trade.Info) (FeeQuote, error) {
	return s.quote()
}

func (s *ConstantFeeStrategy) AfterInitializeV2(reserveA, reserveB float64, poolID, tokenA, tokenB int) (FeeQuote, error) {
	return s.quote()
}

func (s *ConstantFeeStrategy) AfterSwapV2(info trade.InfoV2) (FeeQuote, error) {
	return s.quote()
}

func (s *ConstantFeeStrategy) Reset() {}

// FeedbackFeeStrategy widens its fee quote after large trades and decays
// back toward its base rate over time, a minimal stand-in for a
// dynamic-fee submission exercising the engine's soft-failure and
// sticky-fee handling in tests.
type FeedbackFeeStrategy struct {
	BaseBid     float64
	BaseAsk     float64
	Sensitivity float64
	// FailAfterCount, when positive, makes every AfterSwap/AfterSwapV2
	// call fail once swapsSeen exceeds it (0 never fails) — used to exercise the
	// engine's soft-VM-failure tolerance (spec §8 boundary scenario 6).
	FailAfterCount int

	level     float64
	swapsSeen int
}

// NewFeedbackFeeStrategy returns a FeedbackFeeStrategy with the given
// base rates and impact sensitivity.
func NewFeedbackFeeStrategy(baseBid, baseAsk, sensitivity float64) *FeedbackFeeStrategy {
	return &FeedbackFeeStrategy{BaseBid: baseBid, BaseAsk: baseAsk, Sensitivity: sensitivity}
}

func (s *FeedbackFeeStrategy) AfterInitialize(reserveX, reserveY float64) (FeeQuote, error) {
	return FeeQuote{Bid: s.BaseBid, Ask: s.BaseAsk}, nil
}

func (s *FeedbackFeeStrategy) AfterInitializeV2(reserveA, reserveB float64, poolID, tokenA, tokenB int) (FeeQuote, error) {
	return FeeQuote{Bid: s.BaseBid, Ask: s.BaseAsk}, nil
}

func (s *FeedbackFeeStrategy) AfterSwap(info trade.Info) (FeeQuote, error) {
	return s.afterSwap(info.AmountIn, info.ReserveX)
}

func (s *FeedbackFeeStrategy) AfterSwapV2(info trade.InfoV2) (FeeQuote, error) {
	return s.afterSwap(info.AmountIn, info.ReserveA)
}

func (s *FeedbackFeeStrategy) afterSwap(amountIn, reserve float64) (FeeQuote, error) {
	s.swapsSeen++
	if s.FailAfterCount > 0 && s.swapsSeen > s.FailAfterCount {
		return FeeQuote{}, ErrVMFailure
	}
	impact := 0.0
	if reserve+amountIn > 0 {
		impact = amountIn / (reserve + amountIn)
	}
	s.level = s.level*0.9 + impact
	return FeeQuote{
		Bid: s.BaseBid + s.Sensitivity*s.level,
		Ask: s.BaseAsk + s.Sensitivity*s.level,
	}, nil
}

func (s *FeedbackFeeStrategy) Reset() {
	s.level = 0
	s.swapsSeen = 0
}
