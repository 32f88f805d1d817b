package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PressureClass is a flange pressure rating. The set of valid classes is closed.
type PressureClass string

const (
	PN6  PressureClass = "PN 6"
	PN10 PressureClass = "PN 10"
	PN16 PressureClass = "PN 16"
	PN25 PressureClass = "PN 25"
	PN40 PressureClass = "PN 40"
)

// PressureClasses lists every supported class in ascending order.
var PressureClasses = []PressureClass{PN6, PN10, PN16, PN25, PN40}

// FlangeFamily is the physical flange series a pressure class maps to.
type FlangeFamily string

const (
	Family10 FlangeFamily = "_10" // PN 6, PN 10
	Family16 FlangeFamily = "_16" // PN 16, PN 25, PN 40
)

// Family returns the flange series used for the class.
func (pc PressureClass) Family() FlangeFamily {
	switch pc {
	case PN16, PN25, PN40:
		return Family16
	default:
		return Family10
	}
}

// ParsePressureClass accepts "PN 16", "PN16" or "pn 16" style input.
func ParsePressureClass(s string) (PressureClass, error) {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, pc := range PressureClasses {
		if strings.ReplaceAll(string(pc), " ", "") == norm {
			return pc, nil
		}
	}
	return "", fmt.Errorf("unknown pressure class %q", s)
}

// FittingFamily identifies the fitting whose takeout is being deducted.
type FittingFamily int

const (
	FittingUnknown FittingFamily = iota
	FittingBend90
	FittingMiterCut
	FittingFlange
	FittingTee
	FittingReducer
)

func (f FittingFamily) String() string {
	switch f {
	case FittingBend90:
		return "Bend90"
	case FittingMiterCut:
		return "MiterCut"
	case FittingFlange:
		return "Flange"
	case FittingTee:
		return "Tee"
	case FittingReducer:
		return "Reducer"
	default:
		return "Unknown"
	}
}

// ParseFittingFamily maps a name to a family. Unrecognised names return
// FittingUnknown, whose deduction is zero.
func ParseFittingFamily(s string) FittingFamily {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bend90", "bend", "elbow", "90":
		return FittingBend90
	case "mitercut", "miter", "mitre":
		return FittingMiterCut
	case "flange":
		return FittingFlange
	case "tee":
		return FittingTee
	case "reducer":
		return FittingReducer
	default:
		return FittingUnknown
	}
}

// FlangeDims holds the dimensions of one flange series at a given DN.
type FlangeDims struct {
	FaceWidth  float64 `json:"face_width" toml:"face_width"`   // mm, weld neck to sealing face
	BoltCircle float64 `json:"bolt_circle" toml:"bolt_circle"` // mm, pitch circle diameter
	BoltSize   string  `json:"bolt_size" toml:"bolt_size"`     // e.g. "M16"
	HoleCount  int     `json:"hole_count" toml:"hole_count"`
}

// DimensionRow is the reference data for one nominal diameter.
type DimensionRow struct {
	NominalDiameter int        `json:"dn" toml:"dn"`
	OuterDiameter   float64    `json:"outer_diameter" toml:"outer_diameter"` // mm
	BendRadius      float64    `json:"bend_radius" toml:"bend_radius"`       // mm, 90° elbow centre-to-face
	TeeHeight       float64    `json:"tee_height" toml:"tee_height"`         // mm, centre-to-end
	ReducerLength   float64    `json:"reducer_length" toml:"reducer_length"` // mm, end-to-end
	Flange10        FlangeDims `json:"flange_10" toml:"flange_10"`
	Flange16        FlangeDims `json:"flange_16" toml:"flange_16"`
}

// Flange returns the flange dimensions for the class's family.
func (r DimensionRow) Flange(pc PressureClass) FlangeDims {
	if pc.Family() == Family16 {
		return r.Flange16
	}
	return r.Flange10
}

// OuterRadius returns half the outer diameter.
func (r DimensionRow) OuterRadius() float64 {
	return r.OuterDiameter / 2
}

// FittingRequest describes one fitting takeout calculation.
type FittingRequest struct {
	Family          FittingFamily `json:"family"`
	NominalDiameter int           `json:"dn"`
	PressureClass   PressureClass `json:"pressure_class"`
	AngleDegrees    float64       `json:"angle_degrees"` // MiterCut only
}

// NewFittingRequest returns a request with the default 90° angle.
func NewFittingRequest(family FittingFamily, dn int, pc PressureClass) FittingRequest {
	return FittingRequest{
		Family:          family,
		NominalDiameter: dn,
		PressureClass:   pc,
		AngleDegrees:    90,
	}
}

// CutRequest is one piece the saw must produce.
type CutRequest struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Length float64 `json:"length"` // mm
}

func NewCutRequest(label string, length float64) CutRequest {
	return CutRequest{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Length: length,
	}
}

// StockBar is one physical bar consumed by the optimizer.
type StockBar struct {
	ID          int          `json:"id"`
	StockLength float64      `json:"stock_length"` // mm
	Cuts        []CutRequest `json:"cuts"`
	Waste       float64      `json:"waste"` // mm, negative when a cut does not fit
}

// CutLength returns the summed length of the assigned cuts.
func (b StockBar) CutLength() float64 {
	var total float64
	for _, c := range b.Cuts {
		total += c.Length
	}
	return total
}

// Feasible reports whether every cut on the bar actually fits.
func (b StockBar) Feasible() bool {
	return b.Waste >= 0
}

// Efficiency returns the usage percentage of the bar.
func (b StockBar) Efficiency() float64 {
	if b.StockLength == 0 {
		return 0
	}
	return (b.CutLength() / b.StockLength) * 100.0
}

// PackResult holds the full packing plan.
type PackResult struct {
	Bars        []StockBar `json:"bars"`
	StockLength float64    `json:"stock_length"`
	KerfWidth   float64    `json:"kerf_width"`
}

// TotalCutLength returns the summed cut length across all bars.
func (pr PackResult) TotalCutLength() float64 {
	var total float64
	for _, b := range pr.Bars {
		total += b.CutLength()
	}
	return total
}

// TotalWaste returns the summed waste across all bars.
func (pr PackResult) TotalWaste() float64 {
	var total float64
	for _, b := range pr.Bars {
		total += b.Waste
	}
	return total
}

// CutCount returns the number of cuts placed.
func (pr PackResult) CutCount() int {
	n := 0
	for _, b := range pr.Bars {
		n += len(b.Cuts)
	}
	return n
}

// TotalEfficiency returns overall material usage percentage.
func (pr PackResult) TotalEfficiency() float64 {
	total := pr.StockLength * float64(len(pr.Bars))
	if total == 0 {
		return 0
	}
	return (pr.TotalCutLength() / total) * 100.0
}

// InfeasibleBars returns the bars holding a cut longer than the stock.
func (pr PackResult) InfeasibleBars() []StockBar {
	var out []StockBar
	for _, b := range pr.Bars {
		if !b.Feasible() {
			out = append(out, b)
		}
	}
	return out
}

// CutSettings holds the packing and fabrication defaults of a project.
type CutSettings struct {
	StockLength      float64       `json:"stock_length"`       // Bar length mm
	KerfWidth        float64       `json:"kerf_width"`         // Blade width mm, charged per cut
	PressureClass    PressureClass `json:"pressure_class"`     // Default flange rating
	WeldGap          float64       `json:"weld_gap"`           // Root gap per weld mm
	MinRemnantLength float64       `json:"min_remnant_length"` // Shortest waste worth keeping mm
}

func DefaultSettings() CutSettings {
	return CutSettings{
		StockLength:      6000.0,
		KerfWidth:        3.0,
		PressureClass:    PN16,
		WeldGap:          0,
		MinRemnantLength: 300.0,
	}
}

// Project ties a cut list, its settings and the last plan together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Cuts     []CutRequest `json:"cuts"`
	Settings CutSettings  `json:"settings"`
	Result   *PackResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Cuts:     []CutRequest{},
		Settings: DefaultSettings(),
	}
}
