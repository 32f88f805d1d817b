package export

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/SpoolCut/internal/geometry"
)

// DXF layer names.
const (
	layerOutline   = "OUTLINE"
	layerReference = "REFERENCE"
)

// templateStep is the station spacing (degrees) of the segment wrap-around.
const templateStep = 22.5

// ExportBranchTemplateDXF writes the saddle wrap-around for a branch: the
// cut line unrolled over the full branch circumference (x) against cut
// depth (y), with the 180° to 360° half mirrored from the profile.
func ExportBranchTemplateDXF(path string, profile []geometry.ProfilePoint) error {
	if len(profile) < 2 {
		return fmt.Errorf("branch profile needs at least 2 stations, got %d", len(profile))
	}

	pts := unrollProfile(profile)
	width := pts[len(pts)-1][0]

	d := dxf.NewDrawing()
	if err := addLayers(d); err != nil {
		return err
	}

	if err := d.ChangeLayer(layerReference); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if _, err := d.Line(0, 0, 0, width, 0, 0); err != nil {
		return fmt.Errorf("failed to draw baseline: %w", err)
	}

	if err := d.ChangeLayer(layerOutline); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if err := polyline(d, pts); err != nil {
		return err
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// unrollProfile mirrors the 0° to 180° stations onto 180° to 360°. The
// saddle is symmetric about the main pipe axis.
func unrollProfile(profile []geometry.ProfilePoint) [][2]float64 {
	last := profile[len(profile)-1].Circumference
	pts := make([][2]float64, 0, 2*len(profile)-1)
	for _, p := range profile {
		pts = append(pts, [2]float64{p.Circumference, p.Depth})
	}
	for i := len(profile) - 2; i >= 0; i-- {
		p := profile[i]
		pts = append(pts, [2]float64{2*last - p.Circumference, p.Depth})
	}
	return pts
}

// ExportSegmentedBendDXF writes the wrap-around of one full segment of a
// segmented bend. The outline is centred on y = 0: at each station around
// the pipe the segment is 2·(R + r·cos φ)·tan(miter) long, φ = 0 on the back.
func ExportSegmentedBendDXF(path string, bend geometry.SegmentedBend) error {
	if bend.Segments < 2 {
		return fmt.Errorf("segmented bend needs at least 2 segments, got %d", bend.Segments)
	}

	top, bottom := segmentOutline(bend)
	circumference := top[len(top)-1][0]

	d := dxf.NewDrawing()
	if err := addLayers(d); err != nil {
		return err
	}

	if err := d.ChangeLayer(layerReference); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if _, err := d.Line(0, 0, 0, circumference, 0, 0); err != nil {
		return fmt.Errorf("failed to draw centerline: %w", err)
	}

	if err := d.ChangeLayer(layerOutline); err != nil {
		return fmt.Errorf("failed to select layer: %w", err)
	}
	if err := polyline(d, top); err != nil {
		return err
	}
	if err := polyline(d, bottom); err != nil {
		return err
	}
	first, last := 0, len(top)-1
	if _, err := d.Line(top[first][0], top[first][1], 0, bottom[first][0], bottom[first][1], 0); err != nil {
		return fmt.Errorf("failed to close outline: %w", err)
	}
	if _, err := d.Line(top[last][0], top[last][1], 0, bottom[last][0], bottom[last][1], 0); err != nil {
		return fmt.Errorf("failed to close outline: %w", err)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// segmentOutline returns the top and bottom edges of the unrolled segment.
func segmentOutline(bend geometry.SegmentedBend) (top, bottom [][2]float64) {
	ro := bend.OuterDiameter / 2
	t := math.Tan(bend.MiterAngle * math.Pi / 180)
	n := int(360/templateStep) + 1
	for i := 0; i < n; i++ {
		phi := float64(i) * templateStep * math.Pi / 180
		half := (bend.Radius + ro*math.Cos(phi)) * t
		x := ro * phi
		top = append(top, [2]float64{x, half})
		bottom = append(bottom, [2]float64{x, -half})
	}
	return top, bottom
}

func addLayers(d *drawing.Drawing) error {
	if _, err := d.AddLayer(layerReference, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerReference, err)
	}
	if _, err := d.AddLayer(layerOutline, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerOutline, err)
	}
	return nil
}

func polyline(d *drawing.Drawing, pts [][2]float64) error {
	for i := 1; i < len(pts); i++ {
		if _, err := d.Line(pts[i-1][0], pts[i-1][1], 0, pts[i][0], pts[i][1], 0); err != nil {
			return fmt.Errorf("failed to draw segment %d: %w", i, err)
		}
	}
	return nil
}
