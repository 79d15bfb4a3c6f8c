// Package retail implements the retail order flow: Poisson arrivals,
// lognormal sizes, and directional bias, for both the single-asset pair
// (X/Y) and the multi-asset token universe (spec §4.4).
package retail

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/parkercole/feesim/rng"
)

// floor values for degenerate parameters, keeping distribution
// constructors total per spec §4.4.
const (
	minArrivalRate = 0.01
	minMeanSize    = 0.01
	minSizeSigma   = 0.01
)

// Order is one single-asset retail order. Buy is true when the trader
// buys X paying Y (routed to Pool.ExecuteXForY); false when the trader
// sells X for Y (routed to Pool.ExecuteBuyX). AmountIn is already
// denominated in the input token's own units.
type Order struct {
	Buy      bool
	AmountIn float64
}

// Generator produces single-asset retail order flow for one simulation
// step at a time.
type Generator struct {
	buyProb float64
	stream  *rng.Stream
	poisson distuv.Poisson
	size    distuv.LogNormal
}

// NewGenerator constructs a single-asset retail generator seeded
// deterministically from seed. Degenerate parameters are bumped to safe
// floors per spec §4.4.
func NewGenerator(arrivalRate, meanSize, sizeSigma, buyProb float64, seed uint64) *Generator {
	arrivalRate = math.Max(arrivalRate, minArrivalRate)
	meanSize = math.Max(meanSize, minMeanSize)
	sizeSigma = math.Max(sizeSigma, minSizeSigma)

	stream := rng.NewStream(seed)
	src := stream.Source()
	mu := math.Log(meanSize) - 0.5*sizeSigma*sizeSigma

	return &Generator{
		buyProb: buyProb,
		stream:  stream,
		poisson: distuv.Poisson{Lambda: arrivalRate, Src: src},
		size:    distuv.LogNormal{Mu: mu, Sigma: sizeSigma, Src: src},
	}
}

// GenerateOrders draws this step's arrival count and produces one Order
// per arrival, each with an independent direction and size draw.
func (g *Generator) GenerateOrders(fairPrice float64) []Order {
	n := int(math.Round(g.poisson.Rand()))
	if n <= 0 {
		return nil
	}
	orders := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		sizeNumeraire := g.size.Rand()
		buy := g.stream.Float64() < g.buyProb
		var amountIn float64
		if buy {
			// token_in = Y (the numeraire), priced at 1.
			amountIn = sizeNumeraire
		} else {
			// token_in = X, priced at fairPrice in Y units.
			amountIn = sizeNumeraire / math.Max(fairPrice, 1e-9)
			if amountIn < 1e-12 {
				amountIn = 1e-12
			}
		}
		orders = append(orders, Order{Buy: buy, AmountIn: amountIn})
	}
	return orders
}
