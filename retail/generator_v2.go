package retail

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/parkercole/feesim/rng"
)

// OrderV2 is one multi-asset retail order: an exact quantity of
// TokenIn, sized in numeraire terms, to be routed by package router.
type OrderV2 struct {
	TokenIn       int
	TokenOut      int
	SizeNumeraire float64
}

// GeneratorV2 produces multi-asset retail order flow across an n-asset
// token universe.
type GeneratorV2 struct {
	nAssets int
	buyProb float64
	stream  *rng.Stream
	poisson distuv.Poisson
	size    distuv.LogNormal
}

// NewGeneratorV2 constructs a multi-asset retail generator over nAssets
// tokens, seeded deterministically from seed.
func NewGeneratorV2(nAssets int, arrivalRate, meanSize, sizeSigma, buyProb float64, seed uint64) *GeneratorV2 {
	arrivalRate = math.Max(arrivalRate, minArrivalRate)
	meanSize = math.Max(meanSize, minMeanSize)
	sizeSigma = math.Max(sizeSigma, minSizeSigma)

	stream := rng.NewStream(seed)
	src := stream.Source()
	mu := math.Log(meanSize) - 0.5*sizeSigma*sizeSigma

	return &GeneratorV2{
		nAssets: nAssets,
		buyProb: buyProb,
		stream:  stream,
		poisson: distuv.Poisson{Lambda: arrivalRate, Src: src},
		size:    distuv.LogNormal{Mu: mu, Sigma: sizeSigma, Src: src},
	}
}

// GenerateOrders draws this step's arrival count and produces one
// OrderV2 per arrival: a pair of distinct token indices, a direction,
// and a lognormal size.
func (g *GeneratorV2) GenerateOrders() []OrderV2 {
	n := int(math.Round(g.poisson.Rand()))
	if n <= 0 {
		return nil
	}
	orders := make([]OrderV2, 0, n)
	for i := 0; i < n; i++ {
		a := g.stream.IntN(g.nAssets)
		b := g.stream.IntN(g.nAssets - 1)
		if b >= a {
			b++
		}
		size := g.size.Rand()

		var tokenIn, tokenOut int
		if g.stream.Float64() < g.buyProb {
			tokenIn, tokenOut = b, a
		} else {
			tokenIn, tokenOut = a, b
		}
		orders = append(orders, OrderV2{TokenIn: tokenIn, TokenOut: tokenOut, SizeNumeraire: size})
	}
	return orders
}
