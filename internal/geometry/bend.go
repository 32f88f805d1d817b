package geometry

import "math"

// BendLayout holds the marking lengths of a pipe bend.
type BendLayout struct {
	Tangent       float64 `json:"tangent_length"`
	BackArc       float64 `json:"back_arc_length"`
	CenterlineArc float64 `json:"centerline_arc_length"`
	BellyArc      float64 `json:"belly_arc_length"`
}

// Feasible reports whether the inside of the bend has a non-negative length.
func (b BendLayout) Feasible() bool {
	return b.BellyArc >= 0
}

// BendLayout computes the layout of a bend of angleDeg at the table radius.
// A negative belly arc is reported unchanged for the caller to reject.
func (e *Engine) BendLayout(dn int, angleDeg float64) BendLayout {
	row := e.table.Lookup(dn)
	r := row.BendRadius
	half := row.OuterRadius()
	theta := radians(angleDeg)
	return BendLayout{
		Tangent:       r * math.Tan(theta/2),
		BackArc:       (r + half) * theta,
		CenterlineArc: r * theta,
		BellyArc:      (r - half) * theta,
	}
}

// SegmentedBend is the cut layout of a lobster-back bend.
// Segment lengths are for full (double miter) segments; End* are the half
// segments welded to the straight pipe at each end.
type SegmentedBend struct {
	NominalDiameter  int     `json:"dn"`
	Radius           float64 `json:"radius"`
	OuterDiameter    float64 `json:"outer_diameter"`
	Segments         int     `json:"segments"`
	TotalAngle       float64 `json:"total_angle"`
	MiterAngle       float64 `json:"miter_angle"`
	CenterlineLength float64 `json:"centerline_segment_length"`
	BackLength       float64 `json:"back_segment_length"`
	BellyLength      float64 `json:"belly_segment_length"`
	EndBack          float64 `json:"end_back"`
	EndBelly         float64 `json:"end_belly"`
	EndCenter        float64 `json:"end_center"`
}

// SegmentedBend splits totalAngleDeg into segments pieces. Each of the
// 2·(segments−1) cut faces is turned by the miter angle.
func (e *Engine) SegmentedBend(dn int, radius float64, segments int, totalAngleDeg float64) (SegmentedBend, error) {
	if segments < 2 {
		return SegmentedBend{}, newError(TooFewSegments, "a segmented bend needs at least 2 segments, got %d", segments)
	}
	row := e.table.Lookup(dn)
	ro := row.OuterRadius()

	miter := totalAngleDeg / float64(2*(segments-1))
	t := math.Tan(radians(miter))

	return SegmentedBend{
		NominalDiameter:  row.NominalDiameter,
		Radius:           radius,
		OuterDiameter:    row.OuterDiameter,
		Segments:         segments,
		TotalAngle:       totalAngleDeg,
		MiterAngle:       miter,
		CenterlineLength: 2 * radius * t,
		BackLength:       2 * (radius + ro) * t,
		BellyLength:      2 * (radius - ro) * t,
		EndBack:          (radius + ro) * t,
		EndBelly:         (radius - ro) * t,
		EndCenter:        radius * t,
	}, nil
}
