package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// TwoPlaneOffset is a simple offset made with two equal fittings.
type TwoPlaneOffset struct {
	Hypotenuse float64 `json:"hypotenuse"`
	Run        float64 `json:"run"`
	Deduction  float64 `json:"deduction"` // takeout of one fitting
	CutLength  float64 `json:"cut_length"`
}

// TwoPlaneOffset returns travel, run and pipe cut length for an offset made
// with two fittings of angleDeg. A zero (or straight, 180°) angle has no
// offset geometry and is rejected before any trigonometry is evaluated, as
// is a NaN or infinite angle.
func (e *Engine) TwoPlaneOffset(dn int, offset, angleDeg float64) (TwoPlaneOffset, error) {
	if math.IsNaN(angleDeg) || math.IsInf(angleDeg, 0) || math.Mod(angleDeg, 180) == 0 {
		return TwoPlaneOffset{}, newError(DegenerateAngle, "an offset angle of %g° has no travel", angleDeg)
	}
	row := e.table.Lookup(dn)
	theta := radians(angleDeg)
	hyp := offset / math.Sin(theta)
	z := row.BendRadius * math.Tan(theta/2)
	return TwoPlaneOffset{
		Hypotenuse: hyp,
		Run:        offset / math.Tan(theta),
		Deduction:  z,
		CutLength:  hyp - 2*z,
	}, nil
}

// RollingOffset is an offset that moves in two planes at once.
type RollingOffset struct {
	DiagonalBase  float64 `json:"diagonal_base"`
	Travel        float64 `json:"travel"`
	RequiredAngle float64 `json:"required_angle_degrees"`
}

// RollingOffset combines roll and set into the true (diagonal) offset and
// the travel over height. The angle is taken from roll against travel;
// a ratio pushed outside [-1, 1] by rounding, or zero travel, yields 0.
func (e *Engine) RollingOffset(roll, set, height float64) RollingOffset {
	diag := r2.Norm(r2.Vec{X: roll, Y: set})
	travel := r3.Norm(r3.Vec{X: roll, Y: set, Z: height})

	angle := 0.0
	if travel != 0 {
		ratio := roll / travel
		if ratio >= -1 && ratio <= 1 {
			angle = degrees(math.Acos(ratio))
		}
	}
	return RollingOffset{
		DiagonalBase:  diag,
		Travel:        travel,
		RequiredAngle: angle,
	}
}

// Waypoint is a point of a multi-point run in the roll/set plane.
type Waypoint struct {
	Roll float64 `json:"roll"`
	Set  float64 `json:"set"`
}

// OffsetSegment is the leg between two consecutive waypoints.
type OffsetSegment struct {
	From         int     `json:"from"`
	To           int     `json:"to"`
	DeltaRoll    float64 `json:"delta_roll"`
	DeltaSet     float64 `json:"delta_set"`
	Travel       float64 `json:"travel"`
	AngleDegrees float64 `json:"angle_degrees"`
}

// MultiPointOffset holds every leg of a run and their summed travel.
type MultiPointOffset struct {
	Segments    []OffsetSegment `json:"segments"`
	TotalTravel float64         `json:"total_travel"`
}

// MultiPointOffset walks the waypoints pairwise in input order.
//
// The segment angle is a quick orientation estimate for the fitter, scaling
// the dominant component against planar travel to 90°. It is not a bearing
// and deliberately differs from RollingOffset.
func (e *Engine) MultiPointOffset(waypoints []Waypoint) (MultiPointOffset, error) {
	if len(waypoints) < 2 {
		return MultiPointOffset{}, newError(InsufficientWaypoints, "need at least 2 waypoints, got %d", len(waypoints))
	}

	var out MultiPointOffset
	out.Segments = make([]OffsetSegment, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		prev := r2.Vec{X: waypoints[i-1].Roll, Y: waypoints[i-1].Set}
		cur := r2.Vec{X: waypoints[i].Roll, Y: waypoints[i].Set}
		d := r2.Sub(cur, prev)
		travel := r2.Norm(d)

		angle := 0.0
		if travel != 0 {
			dr, ds := math.Abs(d.X), math.Abs(d.Y)
			if dr > ds {
				angle = 90 * dr / travel
			} else {
				angle = 90 * ds / travel
			}
		}

		out.Segments = append(out.Segments, OffsetSegment{
			From:         i - 1,
			To:           i,
			DeltaRoll:    d.X,
			DeltaSet:     d.Y,
			Travel:       travel,
			AngleDegrees: angle,
		})
		out.TotalTravel += travel
	}
	return out, nil
}
