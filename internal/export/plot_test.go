package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/SpoolCut/internal/dimtable"
	"github.com/piwi3910/SpoolCut/internal/wedge"
)

func TestPlotWedgeProfile(t *testing.T) {
	result := wedge.Solve(dimtable.Default(), 100, wedge.Gaps{At12: 4, At3: 1})
	path := filepath.Join(t.TempDir(), "wedge.png")

	if err := PlotWedgeProfile(path, result); err != nil {
		t.Fatalf("PlotWedgeProfile returned error: %v", err)
	}
	requireFile(t, path)
}

func TestPlotWedgeProfile_SquareFace(t *testing.T) {
	result := wedge.Solve(dimtable.Default(), 100, wedge.Gaps{})
	path := filepath.Join(t.TempDir(), "wedge.png")

	if err := PlotWedgeProfile(path, result); err == nil {
		t.Fatal("expected error for square face")
	}
}

func TestPlotBranchProfile(t *testing.T) {
	profile, err := testEngine().BranchProfile(200, 100)
	if err != nil {
		t.Fatalf("BranchProfile returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "branch.png")

	if err := PlotBranchProfile(path, profile); err != nil {
		t.Fatalf("PlotBranchProfile returned error: %v", err)
	}
	requireFile(t, path)

	if err := PlotBranchProfile(path, nil); err == nil {
		t.Fatal("expected error for empty profile")
	}
}
