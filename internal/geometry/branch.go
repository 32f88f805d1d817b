package geometry

import "math"

// ProfilePoint is one station of a branch (saddle) cut profile.
type ProfilePoint struct {
	AngleDegrees  float64 `json:"angle_degrees"`
	Depth         float64 `json:"depth_mm"`
	Circumference float64 `json:"circumference_mm"`
}

// branchStep is the angular spacing of profile stations.
const branchStep = 22.5

// BranchProfile returns the cut depth of a set-on branch at stations from
// 0° to 180°, with the developed circumference for marking a wrap-around.
func (e *Engine) BranchProfile(mainDN, branchDN int) ([]ProfilePoint, error) {
	main := e.table.Lookup(mainDN)
	branch := e.table.Lookup(branchDN)
	rm := main.OuterRadius()
	rb := branch.OuterRadius()
	if rb > rm {
		return nil, newError(BranchTooLarge, "branch DN%d (OD %.1f) is larger than main DN%d (OD %.1f)",
			branch.NominalDiameter, branch.OuterDiameter, main.NominalDiameter, main.OuterDiameter)
	}

	n := int(180/branchStep) + 1
	points := make([]ProfilePoint, 0, n)
	for i := 0; i < n; i++ {
		a := float64(i) * branchStep
		term := rb * math.Sin(radians(a))
		radicand := rm*rm - term*term
		depth := 0.0
		if radicand >= 0 {
			depth = rm - math.Sqrt(radicand)
		}
		points = append(points, ProfilePoint{
			AngleDegrees:  a,
			Depth:         depth,
			Circumference: (2 * math.Pi * rb) * (a / 360),
		})
	}
	return points, nil
}
