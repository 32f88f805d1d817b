package model

import "math"

// BarEstimate holds the results of a stock bar purchasing calculation.
type BarEstimate struct {
	TotalCutLength  float64 `json:"total_cut_length"`  // Summed cut length incl. kerf (mm)
	TotalMeters     float64 `json:"total_meters"`      // Same in metres
	StockLength     float64 `json:"stock_length"`      // Length of one bar (mm)
	BarsNeededExact float64 `json:"bars_needed_exact"` // Exact fractional number of bars
	BarsNeededMin   int     `json:"bars_needed_min"`   // Minimum bars (ceiling of exact)
	BarsWithWaste   int     `json:"bars_with_waste"`   // Recommended bars including waste factor
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g., 10 for 10%)
	EstimatedCost   float64 `json:"estimated_cost"`    // Total cost if pricing available
	PricePerBar     float64 `json:"price_per_bar"`     // Price used for estimation
	KerfWidth       float64 `json:"kerf_width"`        // Kerf width used in calculation
}

// CalculateBarEstimate computes how many bars to buy for a cut list without
// running the optimizer. Each cut is charged one kerf, like the packer does.
func CalculateBarEstimate(cuts []CutRequest, stockLength, kerfWidth, wastePercent, pricePerBar float64) BarEstimate {
	var total float64
	for _, c := range cuts {
		total += c.Length + kerfWidth
	}

	if stockLength <= 0 {
		return BarEstimate{
			TotalCutLength: total,
			TotalMeters:    total / 1000.0,
			WastePercent:   wastePercent,
			KerfWidth:      kerfWidth,
		}
	}

	exact := total / stockLength
	minBars := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minBars {
		withWaste = minBars
	}

	return BarEstimate{
		TotalCutLength:  total,
		TotalMeters:     total / 1000.0,
		StockLength:     stockLength,
		BarsNeededExact: exact,
		BarsNeededMin:   minBars,
		BarsWithWaste:   withWaste,
		WastePercent:    wastePercent,
		EstimatedCost:   float64(withWaste) * pricePerBar,
		PricePerBar:     pricePerBar,
		KerfWidth:       kerfWidth,
	}
}
