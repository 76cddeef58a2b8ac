package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// Sheet names of a seating chart workbook.
const (
	SheetSummary = "Summary"
	SheetTables  = "Tables"
	SheetChairs  = "Chairs"
)

var unitHeader = []any{"#", "ID", "X", "Y", "Rotation", "Column", "Row"}

// ExportSeatingChart writes the placements to an XLSX workbook with a
// summary sheet and one sheet each for tables and chairs.
func ExportSeatingChart(path, event string, result model.SeatingResult, table model.TableSpec, target int) error {
	if len(result.Tables) == 0 && len(result.Chairs) == 0 {
		return fmt.Errorf("%w: no units placed", ErrNothingToExport)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	summary := [][]any{
		{"Event", event},
		{"Mode", string(result.Mode)},
		{"Requested", target},
		{"Seated", result.ActualGuestsSeated},
		{"Shortfall", result.Shortfall(target)},
		{"Tables", len(result.Tables)},
		{"Seats per table", table.ChairsPerTable},
		{"Chairs", len(result.Chairs)},
		{"Table columns", result.ColumnCount(model.KindTable)},
		{"Chair columns", result.ColumnCount(model.KindChair)},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	for _, s := range []struct {
		name  string
		units []model.PlacedUnit
	}{
		{SheetTables, result.Tables},
		{SheetChairs, result.Chairs},
	} {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("add sheet %s: %w", s.name, err)
		}
		rows := [][]any{unitHeader}
		for i, u := range s.units {
			rows = append(rows, []any{i + 1, u.ID, u.X, u.Y, u.Rotation, u.Column + 1, u.Row + 1})
		}
		if err := writeRows(f, s.name, rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
