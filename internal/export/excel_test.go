package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpoolCut/internal/model"
)

func TestExportExcel_WritesPlanAndBars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	if err := ExportExcel(path, buildTestResult()); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer f.Close()

	plan, err := f.GetRows(planSheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", planSheet, err)
	}
	if len(plan) != 5 {
		t.Fatalf("expected header + 4 cut rows, got %d", len(plan))
	}
	// Second cut on bar 1 starts after 4000 mm and one kerf.
	if plan[2][3] != "S2-B" || plan[2][5] != "4003" {
		t.Errorf("unexpected row %v", plan[2])
	}

	bars, err := f.GetRows(barsSheet)
	if err != nil {
		t.Fatalf("failed to read %s: %v", barsSheet, err)
	}
	if len(bars) != 3 {
		t.Fatalf("expected header + 2 bar rows, got %d", len(bars))
	}
	if bars[1][2] != "5006" || bars[1][3] != "994" {
		t.Errorf("unexpected bar row %v", bars[1])
	}
}

func TestExportExcel_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportExcel(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestRound1(t *testing.T) {
	if got := round1(83.3333); got != 83.3 {
		t.Errorf("round1(83.3333) = %v, want 83.3", got)
	}
	if got := round1(66.66); got != 66.7 {
		t.Errorf("round1(66.66) = %v, want 66.7", got)
	}
}
