package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/piwi3910/SpoolCut/internal/geometry"
	"github.com/piwi3910/SpoolCut/internal/wedge"
)

const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

var (
	curveColor   = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	stationColor = color.RGBA{R: 244, G: 67, B: 54, A: 255}
)

// PlotWedgeProfile charts the cut depth around the pipe end, with the
// profile stations marked.
func PlotWedgeProfile(path string, result wedge.Result) error {
	if result.MaxGap == 0 {
		return fmt.Errorf("face is square, nothing to plot")
	}

	curve := make(plotter.XYs, 0, 73)
	for deg := 0.0; deg <= 360; deg += 5 {
		curve = append(curve, plotter.XY{X: deg, Y: result.CutAt(deg)})
	}

	stations := make(plotter.XYs, len(result.CutProfile))
	for i, cp := range result.CutProfile {
		stations[i] = plotter.XY{X: cp.PositionDegrees, Y: cp.Cut}
	}

	title := fmt.Sprintf("Wedge cut: %.2f° tilt, max %.1f mm at %s", result.AngleDegrees, result.MaxGap, result.Orientation)
	return saveChart(path, title, "Position (° clockwise from 12:00)", "Cut (mm)", curve, stations)
}

// PlotBranchProfile charts saddle cut depth against developed circumference.
func PlotBranchProfile(path string, profile []geometry.ProfilePoint) error {
	if len(profile) == 0 {
		return fmt.Errorf("empty branch profile")
	}

	stations := make(plotter.XYs, len(profile))
	for i, p := range profile {
		stations[i] = plotter.XY{X: p.Circumference, Y: p.Depth}
	}

	return saveChart(path, "Branch saddle profile", "Circumference (mm)", "Depth (mm)", stations, stations)
}

func saveChart(path, title, xLabel, yLabel string, curve, stations plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(curve)
	if err != nil {
		return fmt.Errorf("failed to build curve: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = curveColor
	p.Add(line)

	if len(stations) > 0 {
		scatter, err := plotter.NewScatter(stations)
		if err != nil {
			return fmt.Errorf("failed to build stations: %w", err)
		}
		scatter.GlyphStyle.Color = stationColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
	}

	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}
