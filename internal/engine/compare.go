package engine

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.CutSettings
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario        ComparisonScenario
	Result          model.PackResult
	BarsUsed        int
	TotalWaste      float64
	WastePercent    float64
	InfeasibleCount int
	LargestOffcut   float64 // longest end left on a feasible bar, mm
}

// CompareScenarios packs the same cut list under each scenario, in scenario
// order, so stock lengths and blade widths can be compared side by side.
func CompareScenarios(scenarios []ComparisonScenario, cuts []model.CutRequest) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result := New(scenario.Settings).Pack(cuts)

		wastePercent := 0.0
		if len(result.Bars) > 0 {
			wastePercent = 100.0 - result.TotalEfficiency()
		}

		var offcuts []float64
		for _, b := range result.Bars {
			if b.Feasible() {
				offcuts = append(offcuts, b.Waste)
			}
		}
		largest := 0.0
		if len(offcuts) > 0 {
			largest = floats.Max(offcuts)
		}

		results = append(results, ComparisonResult{
			Scenario:        scenario,
			Result:          result,
			BarsUsed:        len(result.Bars),
			TotalWaste:      result.TotalWaste(),
			WastePercent:    wastePercent,
			InfeasibleCount: len(result.InfeasibleBars()),
			LargestOffcut:   largest,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives around the current
// settings: a thinner blade and the other common mill length.
func BuildDefaultScenarios(baseSettings model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	if baseSettings.KerfWidth > 1.0 {
		thin := baseSettings
		thin.KerfWidth = baseSettings.KerfWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", thin.KerfWidth),
			Settings: thin,
		})
	}

	alt := baseSettings
	if baseSettings.StockLength == 12000 {
		alt.StockLength = 6000
	} else {
		alt.StockLength = 12000
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Stock %.0fmm", alt.StockLength),
		Settings: alt,
	})

	return scenarios
}
