package model

import (
	"sort"

	"github.com/google/uuid"
)

// Remnant is a bar end left over after cutting that is long enough to stock.
type Remnant struct {
	ID          string  `json:"id"`
	BarID       int     `json:"bar_id"`       // Bar the remnant comes from
	Length      float64 `json:"length"`       // Usable length mm
	StockLength float64 `json:"stock_length"` // Original bar length mm
}

// DefaultMinRemnantLength is used when settings carry no positive minimum.
const DefaultMinRemnantLength = 300.0

// DetectRemnants returns the bar ends at least minLength long, longest first.
// Infeasible bars never produce remnants.
func DetectRemnants(result PackResult, minLength float64) []Remnant {
	if minLength <= 0 {
		minLength = DefaultMinRemnantLength
	}

	var remnants []Remnant
	for _, b := range result.Bars {
		if !b.Feasible() || b.Waste < minLength {
			continue
		}
		remnants = append(remnants, Remnant{
			ID:          uuid.New().String()[:8],
			BarID:       b.ID,
			Length:      b.Waste,
			StockLength: b.StockLength,
		})
	}

	sort.SliceStable(remnants, func(i, j int) bool {
		return remnants[i].Length > remnants[j].Length
	})
	return remnants
}

// TotalRemnantLength returns the summed length of all remnants in mm.
func TotalRemnantLength(remnants []Remnant) float64 {
	var total float64
	for _, r := range remnants {
		total += r.Length
	}
	return total
}
