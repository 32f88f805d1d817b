// Package wedge turns four face-gap measurements into the tilt of a pipe end
// and the cut needed around the circumference to square it.
package wedge

import (
	"fmt"
	"math"

	"github.com/piwi3910/SpoolCut/internal/dimtable"
)

// Gaps are the gap readings (mm) at the four clock positions.
type Gaps struct {
	At12 float64 `json:"12"`
	At3  float64 `json:"3"`
	At6  float64 `json:"6"`
	At9  float64 `json:"9"`
}

// CutPoint is the cut depth at one clock position.
type CutPoint struct {
	PositionDegrees float64 `json:"position_degrees"` // clockwise from 12:00
	Clock           string  `json:"clock"`
	Cut             float64 `json:"cut_mm"`
}

// Result describes the misalignment. A square face yields a zero result
// with Orientation "N/A" and no profile.
type Result struct {
	AngleDegrees       float64    `json:"angle_degrees"`
	MaxGap             float64    `json:"max_gap_mm"`
	OrientationDegrees float64    `json:"orientation_degrees"`
	Orientation        string     `json:"orientation_clockface"`
	CutProfile         []CutPoint `json:"cut_profile"`
}

// NotApplicable is the orientation reported for a square face.
const NotApplicable = "N/A"

// profilePositions is the number of evenly spaced profile stations.
const profilePositions = 8

// CutAt returns the cut depth at phiDeg (clockwise from 12:00). The cosine
// law gives MaxGap at the orientation and zero diametrically opposite it.
func (r Result) CutAt(phiDeg float64) float64 {
	if r.MaxGap == 0 {
		return 0
	}
	return (r.MaxGap / 2) * (1 + math.Cos((phiDeg-r.OrientationDegrees)*math.Pi/180))
}

// Solve computes tilt, orientation and cut profile for the pipe at dn.
func Solve(table *dimtable.Table, dn int, g Gaps) Result {
	dv := g.At12 - g.At6
	dh := g.At3 - g.At9
	maxDiff := math.Hypot(dv, dh)
	if maxDiff == 0 {
		return Result{Orientation: NotApplicable, CutProfile: []CutPoint{}}
	}

	od := table.Lookup(dn).OuterDiameter
	orientation := math.Atan2(dh, dv) * 180 / math.Pi
	orientation = math.Mod(orientation+360, 360)

	res := Result{
		AngleDegrees:       math.Atan(maxDiff/od) * 180 / math.Pi,
		MaxGap:             maxDiff,
		OrientationDegrees: orientation,
		Orientation:        ClockFace(orientation),
	}

	step := 360.0 / profilePositions
	res.CutProfile = make([]CutPoint, profilePositions)
	for i := range res.CutProfile {
		phi := float64(i) * step
		res.CutProfile[i] = CutPoint{
			PositionDegrees: phi,
			Clock:           ClockFace(phi),
			Cut:             res.CutAt(phi),
		}
	}
	return res
}

// ClockFace renders an angle clockwise from 12:00 as a clock reading,
// e.g. 0 → "12:00", 45 → "1:30", 100 → "3:20".
func ClockFace(deg float64) string {
	minutes := int(math.Round(math.Mod(math.Mod(deg, 360)+360, 360) * 2)) // 0.5° per minute
	minutes %= 12 * 60
	h := minutes / 60
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d", h, minutes%60)
}
