package simtypes

// StepResult is one step's worth of chart-ready data for the
// single-asset engine — a supplemented feature (see SPEC_FULL.md) absent
// from the distilled spec.md but present in the original reference
// implementation's single-asset result type, and absent from the
// multi-asset variant in both.
type StepResult struct {
	Timestamp  uint32
	FairPrice  float64
	SpotPrices map[string]float64
	PnLs       map[string]float64
	Fees       map[string][2]float64 // name -> (bid, ask)
}

// Result is the single-asset simulation's aggregated output.
type Result struct {
	Seed       uint64
	Strategies []string
	PnL        map[string]float64
	Edges      map[string]float64
	FinalPrice float64

	// Supplemented fields (see SPEC_FULL.md): present only for the
	// single-asset engine.
	InitialFairPrice float64
	InitialReserves  map[string][2]float64
	Steps            []StepResult
	ArbVolumeY       map[string]float64
	RetailVolumeY    map[string]float64
	AverageFees      map[string][2]float64
}

// Winner returns the strategy name with the strictly greatest edge, or
// "" if there is a tie or no strategies recorded.
func (r Result) Winner() string {
	best := ""
	bestEdge := 0.0
	tie := false
	for i, name := range r.Strategies {
		e := r.Edges[name]
		if i == 0 || e > bestEdge {
			best, bestEdge, tie = name, e, false
		} else if e == bestEdge {
			tie = true
		}
	}
	if tie {
		return ""
	}
	return best
}

// PoolStateV2 is a final pool snapshot: identity plus final reserves.
type PoolStateV2 struct {
	PoolID   int
	TokenA   int
	TokenB   int
	ReserveA float64
	ReserveB float64
}

// ResultV2 is the multi-asset simulation's aggregated output (spec §3,
// §6). It deliberately does not carry the single-asset Result's
// supplemented step-history fields, matching the reference
// implementation's V2 result shape.
type ResultV2 struct {
	Seed        uint64
	Strategies  []string
	PnL         map[string]float64
	Edges       map[string]float64
	FinalPrices []float64
	Pools       []PoolStateV2
}

// BatchResult aggregates many single-asset Results from one batch run.
type BatchResult struct {
	RunID      string
	Results    []Result
	Strategies []string
}

// WinCounts compares the two named strategies' edges across every
// simulation in the batch. Per spec's Open Questions resolution, edge is
// the strict definition (zero when no trades occurred); it is never
// imputed from PnL.
func (b BatchResult) WinCounts(nameA, nameB string) (winsA, winsB, draws uint32) {
	for _, r := range b.Results {
		edgeA, edgeB := r.Edges[nameA], r.Edges[nameB]
		switch {
		case edgeA > edgeB:
			winsA++
		case edgeB > edgeA:
			winsB++
		default:
			draws++
		}
	}
	return winsA, winsB, draws
}

// TotalPnL sums PnL for the two named strategies across the batch.
func (b BatchResult) TotalPnL(nameA, nameB string) (totalA, totalB float64) {
	for _, r := range b.Results {
		totalA += r.PnL[nameA]
		totalB += r.PnL[nameB]
	}
	return totalA, totalB
}

// OverallWinner returns the strategy name with more wins, or "" on a tie
// or if fewer than two strategies are recorded.
func (b BatchResult) OverallWinner() string {
	if len(b.Strategies) < 2 {
		return ""
	}
	a, bName := b.Strategies[0], b.Strategies[1]
	winsA, winsB, _ := b.WinCounts(a, bName)
	switch {
	case winsA > winsB:
		return a
	case winsB > winsA:
		return bName
	default:
		return ""
	}
}

// BatchResultV2 aggregates many multi-asset ResultV2s from one batch run.
type BatchResultV2 struct {
	RunID      string
	Results    []ResultV2
	Strategies []string
}

// WinCounts mirrors BatchResult.WinCounts for multi-asset results.
func (b BatchResultV2) WinCounts(nameA, nameB string) (winsA, winsB, draws uint32) {
	for _, r := range b.Results {
		edgeA, edgeB := r.Edges[nameA], r.Edges[nameB]
		switch {
		case edgeA > edgeB:
			winsA++
		case edgeB > edgeA:
			winsB++
		default:
			draws++
		}
	}
	return winsA, winsB, draws
}

// TotalPnL mirrors BatchResult.TotalPnL for multi-asset results.
func (b BatchResultV2) TotalPnL(nameA, nameB string) (totalA, totalB float64) {
	for _, r := range b.Results {
		totalA += r.PnL[nameA]
		totalB += r.PnL[nameB]
	}
	return totalA, totalB
}
