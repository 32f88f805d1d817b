// Package geometry computes pipe fabrication takeouts and layouts from the
// dimension table. Every method is a pure function of its inputs and the
// table, so an Engine can be shared between goroutines.
package geometry

import (
	"math"

	"github.com/piwi3910/SpoolCut/internal/dimtable"
	"github.com/piwi3910/SpoolCut/internal/model"
)

// Engine runs geometry calculations against one dimension table.
type Engine struct {
	table *dimtable.Table
}

func New(table *dimtable.Table) *Engine {
	return &Engine{table: table}
}

// Table returns the dimension table the engine reads from.
func (e *Engine) Table() *dimtable.Table {
	return e.table
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Deduction returns the length a fitting takes out of a straight run.
// An unknown family deducts nothing; callers depend on the zero default.
func (e *Engine) Deduction(req model.FittingRequest) float64 {
	row := e.table.Lookup(req.NominalDiameter)
	switch req.Family {
	case model.FittingBend90:
		return row.BendRadius
	case model.FittingMiterCut:
		return row.BendRadius * math.Tan(radians(req.AngleDegrees)/2)
	case model.FittingFlange:
		return row.Flange(req.PressureClass).FaceWidth
	case model.FittingTee:
		return row.TeeHeight
	case model.FittingReducer:
		return row.ReducerLength
	default:
		return 0.0
	}
}

// SpoolPiece is the straight pipe between two fittings.
type SpoolPiece struct {
	CenterToCenter float64 `json:"center_to_center"`
	StartDeduction float64 `json:"start_deduction"`
	EndDeduction   float64 `json:"end_deduction"`
	WeldGaps       float64 `json:"weld_gaps"`
	CutLength      float64 `json:"cut_length"`
}

// SpoolCutLength subtracts both fitting takeouts and one root gap per weld
// from a centre-to-centre dimension. A negative cut length means the
// fittings overlap and is returned as-is.
func (e *Engine) SpoolCutLength(centerToCenter float64, start, end model.FittingRequest, weldGap float64) SpoolPiece {
	sd := e.Deduction(start)
	ed := e.Deduction(end)
	gaps := 2 * weldGap
	return SpoolPiece{
		CenterToCenter: centerToCenter,
		StartDeduction: sd,
		EndDeduction:   ed,
		WeldGaps:       gaps,
		CutLength:      centerToCenter - sd - ed - gaps,
	}
}

// BoltHole is one hole position on the bolt circle, measured clockwise from 12 o'clock.
type BoltHole struct {
	AngleDegrees float64 `json:"angle_degrees"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// BoltPattern is the drilling of a flange.
type BoltPattern struct {
	BoltCircle float64    `json:"bolt_circle"`
	BoltSize   string     `json:"bolt_size"`
	HoleCount  int        `json:"hole_count"`
	Holes      []BoltHole `json:"holes"`
}

// BoltPattern lays the holes out two-holed: no hole sits on the vertical
// centreline, the first one is half a pitch clockwise from 12 o'clock.
func (e *Engine) BoltPattern(dn int, pc model.PressureClass) BoltPattern {
	f := e.table.Lookup(dn).Flange(pc)
	bp := BoltPattern{
		BoltCircle: f.BoltCircle,
		BoltSize:   f.BoltSize,
		HoleCount:  f.HoleCount,
	}
	if f.HoleCount <= 0 {
		return bp
	}
	r := f.BoltCircle / 2
	pitch := 360.0 / float64(f.HoleCount)
	bp.Holes = make([]BoltHole, f.HoleCount)
	for i := range bp.Holes {
		a := pitch * (float64(i) + 0.5)
		bp.Holes[i] = BoltHole{
			AngleDegrees: a,
			X:            r * math.Sin(radians(a)),
			Y:            r * math.Cos(radians(a)),
		}
	}
	return bp
}
