// Package export writes packing plans and fabrication templates to PDF,
// Excel, DXF and PNG.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// cutColor represents an RGB color for a cut segment.
type cutColor struct {
	R, G, B int
}

var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	barsPerPage  = 8
	barHeight    = 10.0
	barPitch     = 19.0
)

// ExportPDF writes the packing plan: pages of up to eight bars drawn as
// scaled strips, followed by a summary page.
func ExportPDF(path string, result model.PackResult, settings model.CutSettings) error {
	if len(result.Bars) == 0 {
		return fmt.Errorf("no bars to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	scale := (pageWidth - marginLeft - marginRight) / longestBar(result)
	pages := (len(result.Bars) + barsPerPage - 1) / barsPerPage

	for page := 0; page < pages; page++ {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetXY(marginLeft, marginTop)
		title := fmt.Sprintf("Cut Plan %d/%d: %.0f mm stock, %.1f mm kerf", page+1, pages, result.StockLength, result.KerfWidth)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

		end := min((page+1)*barsPerPage, len(result.Bars))
		for i, bar := range result.Bars[page*barsPerPage : end] {
			renderBar(pdf, bar, result.KerfWidth, scale, drawAreaTop+float64(i)*barPitch)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// longestBar returns the drawing length of the widest strip. Overfull bars
// are wider than the stock.
func longestBar(result model.PackResult) float64 {
	longest := result.StockLength
	for _, b := range result.Bars {
		used := b.CutLength() + float64(len(b.Cuts))*result.KerfWidth
		longest = math.Max(longest, used)
	}
	if longest <= 0 {
		return 1
	}
	return longest
}

// renderBar draws one bar: cut segments, kerf slivers, then waste.
func renderBar(pdf *fpdf.Fpdf, bar model.StockBar, kerf, scale, y float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	heading := fmt.Sprintf("Bar %d  |  %d cuts  |  waste %.1f mm  |  %.1f%%", bar.ID, len(bar.Cuts), bar.Waste, bar.Efficiency())
	if !bar.Feasible() {
		pdf.SetTextColor(200, 0, 0)
		heading += "  |  CUT EXCEEDS STOCK"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, heading, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	top := y + 5

	// Stock outline
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, top, bar.StockLength*scale, barHeight, "FD")

	x := marginLeft
	for i, c := range bar.Cuts {
		col := cutColors[i%len(cutColors)]
		w := c.Length * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, top, w, barHeight, "FD")

		if w > 14 {
			pdf.SetFont("Helvetica", "", 6)
			text := fmt.Sprintf("%s %.0f", c.Label, c.Length)
			for len(text) > 0 && pdf.GetStringWidth(text) > w-2 {
				text = text[:len(text)-1]
			}
			pdf.SetXY(x+1, top+barHeight/2-2)
			pdf.CellFormat(w-2, 4, text, "", 0, "C", false, 0, "")
		}
		x += w

		kw := kerf * scale
		if kw > 0 {
			pdf.SetFillColor(60, 60, 60)
			pdf.Rect(x, top, kw, barHeight, "F")
			x += kw
		}
	}

	if bar.Feasible() {
		if bar.Waste > 0 {
			pdf.SetFont("Helvetica", "I", 6)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetXY(x, top+barHeight/2-2)
			pdf.CellFormat(bar.Waste*scale, 4, "waste", "", 0, "C", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		return
	}

	// Mark the overflow past the stock end.
	stockEnd := marginLeft + bar.StockLength*scale
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.6)
	pdf.Line(stockEnd, top-1, stockEnd, top+barHeight+1)
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, settings model.CutSettings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	remnants := model.DetectRemnants(result, settings.MinRemnantLength)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Bars Used", fmt.Sprintf("%d", len(result.Bars))},
		{"Cuts", fmt.Sprintf("%d", result.CutCount())},
		{"Total Cut Length", fmt.Sprintf("%.0f mm", result.TotalCutLength())},
		{"Total Waste", fmt.Sprintf("%.0f mm", result.TotalWaste())},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency())},
		{"Reusable Remnants", fmt.Sprintf("%d (%.0f mm)", len(remnants), model.TotalRemnantLength(remnants))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if infeasible := result.InfeasibleBars(); len(infeasible) > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Cuts longer than the stock", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, bar := range infeasible {
			for _, c := range bar.Cuts {
				pdf.SetXY(marginLeft+5, y)
				text := fmt.Sprintf("- Bar %d: %s, %.0f mm", bar.ID, c.Label, c.Length)
				pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
				y += 5
			}
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cut Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Stock Length", fmt.Sprintf("%.0f mm", result.StockLength)},
		{"Kerf Width", fmt.Sprintf("%.1f mm", result.KerfWidth)},
		{"Pressure Class", string(settings.PressureClass)},
		{"Weld Gap", fmt.Sprintf("%.1f mm", settings.WeldGap)},
		{"Min Remnant", fmt.Sprintf("%.0f mm", settings.MinRemnantLength)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by SpoolCut - Pipe Spool Cut Planner", "", 0, "C", false, 0, "")
}
