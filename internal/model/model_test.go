package model

import "testing"

func TestPressureClassFamily(t *testing.T) {
	cases := map[PressureClass]FlangeFamily{
		PN6:  Family10,
		PN10: Family10,
		PN16: Family16,
		PN25: Family16,
		PN40: Family16,
	}
	for pc, want := range cases {
		if got := pc.Family(); got != want {
			t.Errorf("%s: expected family %s, got %s", pc, want, got)
		}
	}
}

func TestParsePressureClass(t *testing.T) {
	for _, in := range []string{"PN 16", "PN16", "pn 16", " pn16 "} {
		pc, err := ParsePressureClass(in)
		if err != nil {
			t.Errorf("%q: unexpected error %v", in, err)
			continue
		}
		if pc != PN16 {
			t.Errorf("%q: expected PN 16, got %s", in, pc)
		}
	}
	if _, err := ParsePressureClass("PN 63"); err == nil {
		t.Error("expected error for PN 63")
	}
}

func TestParseFittingFamily(t *testing.T) {
	cases := map[string]FittingFamily{
		"Bend90":  FittingBend90,
		"elbow":   FittingBend90,
		"miter":   FittingMiterCut,
		"FLANGE":  FittingFlange,
		"tee":     FittingTee,
		"reducer": FittingReducer,
		"cap":     FittingUnknown,
		"":        FittingUnknown,
	}
	for in, want := range cases {
		if got := ParseFittingFamily(in); got != want {
			t.Errorf("%q: expected %s, got %s", in, want, got)
		}
	}
}

func TestDimensionRowFlange(t *testing.T) {
	row := DimensionRow{
		NominalDiameter: 200,
		OuterDiameter:   219.1,
		Flange10:        FlangeDims{FaceWidth: 62, HoleCount: 8},
		Flange16:        FlangeDims{FaceWidth: 62, HoleCount: 12},
	}
	if row.Flange(PN6).HoleCount != 8 || row.Flange(PN10).HoleCount != 8 {
		t.Error("PN 6 / PN 10 should use the _10 series")
	}
	if row.Flange(PN25).HoleCount != 12 {
		t.Error("PN 25 should use the _16 series")
	}
	if row.OuterRadius() != 109.55 {
		t.Errorf("expected outer radius 109.55, got %f", row.OuterRadius())
	}
}

func TestNewCutRequest(t *testing.T) {
	c := NewCutRequest("S1-01", 1250)
	if len(c.ID) != 8 {
		t.Errorf("expected 8 character ID, got %q", c.ID)
	}
	if c.Label != "S1-01" || c.Length != 1250 {
		t.Errorf("unexpected cut %+v", c)
	}
}

func TestPackResultStatistics(t *testing.T) {
	pr := PackResult{
		StockLength: 6000,
		KerfWidth:   3,
		Bars: []StockBar{
			{ID: 1, StockLength: 6000, Cuts: []CutRequest{{Length: 4000}, {Length: 1000}}, Waste: 994},
			{ID: 2, StockLength: 6000, Cuts: []CutRequest{{Length: 3000}, {Length: 2000}}, Waste: 994},
		},
	}
	if pr.TotalCutLength() != 10000 {
		t.Errorf("expected 10000 mm cut, got %.1f", pr.TotalCutLength())
	}
	if pr.TotalWaste() != 1988 {
		t.Errorf("expected 1988 mm waste, got %.1f", pr.TotalWaste())
	}
	if pr.CutCount() != 4 {
		t.Errorf("expected 4 cuts, got %d", pr.CutCount())
	}
	if len(pr.InfeasibleBars()) != 0 {
		t.Error("expected no infeasible bars")
	}
	want := 10000.0 / 12000.0 * 100
	if pr.TotalEfficiency() != want {
		t.Errorf("expected efficiency %.3f, got %.3f", want, pr.TotalEfficiency())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.KerfWidth != 3.0 {
		t.Errorf("expected default kerf 3.0, got %f", s.KerfWidth)
	}
	if s.StockLength != 6000 {
		t.Errorf("expected default stock 6000, got %f", s.StockLength)
	}
	if s.PressureClass != PN16 {
		t.Errorf("expected default PN 16, got %s", s.PressureClass)
	}
}
