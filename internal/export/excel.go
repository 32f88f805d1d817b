package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SpoolCut/internal/model"
)

const (
	planSheet = "Cut Plan"
	barsSheet = "Bars"
)

// ExportExcel writes the packing plan as a workbook. The "Cut Plan" sheet
// lists every cut with its offset from the bar start; "Bars" has one row
// per bar.
func ExportExcel(path string, result model.PackResult) error {
	if len(result.Bars) == 0 {
		return fmt.Errorf("no bars to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), planSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(barsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	planHeader := []interface{}{"Bar", "Position", "ID", "Label", "Length (mm)", "Offset (mm)"}
	if err := writeRow(f, planSheet, 1, planHeader); err != nil {
		return err
	}
	barsHeader := []interface{}{"Bar", "Cuts", "Used (mm)", "Waste (mm)", "Efficiency (%)"}
	if err := writeRow(f, barsSheet, 1, barsHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(planSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetCellStyle(barsSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for i, bar := range result.Bars {
		offset := 0.0
		for pos, c := range bar.Cuts {
			if err := writeRow(f, planSheet, row, []interface{}{bar.ID, pos + 1, c.ID, c.Label, c.Length, offset}); err != nil {
				return err
			}
			offset += c.Length + result.KerfWidth
			row++
		}

		used := bar.CutLength() + float64(len(bar.Cuts))*result.KerfWidth
		if err := writeRow(f, barsSheet, i+2, []interface{}{bar.ID, len(bar.Cuts), used, bar.Waste, round1(bar.Efficiency())}); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
