// Package trade holds the immutable post-trade records passed from the
// CFMM pool into the fee-strategy VM after every executed swap.
package trade

// Info is the V1 (single-pair) post-trade snapshot.
type Info struct {
	// AmmBuysX is true when the AMM received token X and paid out Y.
	AmmBuysX bool
	// AmountIn is the gross amount of the input token, before fees.
	AmountIn float64
	// AmountOut is the gross amount of the output token delivered.
	AmountOut float64
	// Timestamp is the simulation step index at which the trade executed.
	Timestamp uint64
	// ReserveX and ReserveY are the pool's reserves immediately after the
	// trade settled.
	ReserveX float64
	ReserveY float64
}

// InfoV2 is the multi-asset variant: it additionally carries pool and
// token identity since a V2 strategy instance may in principle serve
// more than one pool.
type InfoV2 struct {
	PoolID  int
	TokenA  int
	TokenB  int
	// AmmBuysA is true when the AMM received token A and paid out B.
	AmmBuysA  bool
	AmountIn  float64
	AmountOut float64
	Timestamp uint64
	ReserveA  float64
	ReserveB  float64
}
