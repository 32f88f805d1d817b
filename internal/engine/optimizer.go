package engine

import (
	"sort"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// Optimizer runs the 1D First-Fit-Decreasing bar packing.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Pack assigns cuts to bars of the configured stock length and kerf.
func (o *Optimizer) Pack(cuts []model.CutRequest) model.PackResult {
	return model.PackResult{
		Bars:        Pack(cuts, o.Settings.StockLength, o.Settings.KerfWidth),
		StockLength: o.Settings.StockLength,
		KerfWidth:   o.Settings.KerfWidth,
	}
}

// used is the stock already committed to a bar: cut lengths plus one kerf
// per cut.
func used(b *model.StockBar, kerf float64) float64 {
	return b.CutLength() + float64(len(b.Cuts))*kerf
}

// add places c on b and recomputes the waste from the bar's own totals, so
// cut lengths, kerf and waste always add back up to the stock length.
func add(b *model.StockBar, c model.CutRequest, kerf float64) {
	b.Cuts = append(b.Cuts, c)
	b.Waste = b.StockLength - used(b, kerf)
}

// Pack assigns cuts to bars with First-Fit-Decreasing.
//
// Cuts are taken longest first; equal lengths keep their input order. Each
// cut goes into the first bar, in creation order, with room for the cut
// plus one kerf. Every cut is charged a kerf, the first one in a bar
// included. A cut longer than the stock still gets its own bar, with
// negative waste, for the caller to flag.
func Pack(cuts []model.CutRequest, stockLength, kerf float64) []model.StockBar {
	sorted := make([]model.CutRequest, len(cuts))
	copy(sorted, cuts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length > sorted[j].Length
	})

	var bars []model.StockBar
	for _, c := range sorted {
		placed := false
		for i := range bars {
			if stockLength-used(&bars[i], kerf) >= c.Length+kerf {
				add(&bars[i], c, kerf)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		bar := model.StockBar{ID: len(bars) + 1, StockLength: stockLength}
		add(&bar, c, kerf)
		bars = append(bars, bar)
	}
	return bars
}
