package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Width,Height,Seats\nRound,180,180,8\nBanquet,244,76,8\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Width;Height;Seats\nRound;180;180;8\nBanquet;244;76;8\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tWidth\tHeight\tSeats\nRound\t180\t180\t8\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Name", "Kind", "Width", "Height", "Spacing", "Seats"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Kind: 1, Width: 2, Height: 3, Spacing: 4, Seats: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Covers", "DIAMETER", "Depth", "Item"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Seats != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Name != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Kind != -1 || mapping.Spacing != -1 {
		t.Errorf("expected kind and spacing unmapped, got %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Round", "table", "180", "180", "150", "8"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Width != 2 || mapping.Seats != 5 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── Furniture import Tests ────────────────────────────────

func TestImportCSVFromReader_TablesAndChairs(t *testing.T) {
	data := "Name,Kind,Width,Height,Spacing,Seats\n" +
		"Round 180,table,180,180,150,8\n" +
		"Chiavari,chair,40,40,45,12\n" +
		"Folding chair,,44,47,40,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tables) != 1 || len(result.Chairs) != 2 {
		t.Fatalf("expected 1 table and 2 chairs, got %d and %d", len(result.Tables), len(result.Chairs))
	}
	tbl := result.Tables[0]
	if tbl.Name != "Round 180" || tbl.Width != 180 || tbl.Spacing != 150 || tbl.ChairsPerTable != 8 {
		t.Errorf("unexpected table %+v", tbl)
	}
	if result.Chairs[0].ChairsPerRow != 12 {
		t.Errorf("expected 12 chairs per row, got %d", result.Chairs[0].ChairsPerRow)
	}
	if result.Chairs[1].Name != "Folding chair" || result.Chairs[1].ChairsPerRow != 0 {
		t.Errorf("expected kind inferred from name, got %+v", result.Chairs[1])
	}
	if result.Tables[0].ID == "" {
		t.Error("expected generated preset ID")
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Round,table,180,180,150,8\nCocktail,table,76,76,120,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(result.Tables))
	}
}

func TestImportCSVFromReader_TableNeedsSeats(t *testing.T) {
	data := "Name,Width,Height,Seats\nRound,180,180,\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "seat count") {
		t.Errorf("expected a seat count error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	data := "Name,Width,Height,Seats\n" +
		"A,abc,100,4\n" +
		"B,100,-5,4\n" +
		"C,100,100,x\n" +
		"D,100,100,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", result.Errors)
	}
	if len(result.Tables) != 1 || result.Tables[0].Name != "D" {
		t.Errorf("expected only D to import, got %+v", result.Tables)
	}
}

func TestImportCSVFromReader_UnknownKindWarns(t *testing.T) {
	data := "Name,Kind,Width,Height,Seats\nBar,stool,60,60,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Tables) != 1 {
		t.Fatalf("expected fallback to table, got %+v", result)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown kind") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown kind warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Name,Width,Seats\nRound,180,8\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected an error for empty input")
	}
}

func TestImportCSV_FileSemicolon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furniture.csv")
	data := "Name;Width;Height;Seats\nRound;180;180;8\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(result.Tables))
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furniture.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Name", "Kind", "Width", "Height", "Spacing", "Seats"},
		{"Round 152", "table", 152, 152, 150, 8},
		{"Banquet chair", "chair", 45, 45, 45, 10},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result := ImportFile(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Tables) != 1 || len(result.Chairs) != 1 {
		t.Fatalf("expected 1 table and 1 chair, got %+v", result)
	}
	if result.Chairs[0].Width != 45 {
		t.Errorf("expected chair width 45, got %v", result.Chairs[0].Width)
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for a missing file")
	}
}

func TestMergeIntoSkipsExistingNames(t *testing.T) {
	inv := model.Inventory{Tables: []model.TablePreset{model.NewTablePreset("Round", 180, 180, 150, 8)}}
	result := ImportResult{
		Tables: []model.TablePreset{model.NewTablePreset("Round", 150, 150, 150, 6), model.NewTablePreset("Square", 90, 90, 120, 4)},
		Chairs: []model.ChairPreset{model.NewChairPreset("Chiavari", 40, 40, 45, 12)},
	}

	if added := result.MergeInto(&inv); added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if inv.FindTableByName("Round").Width != 180 {
		t.Error("existing preset must not be replaced")
	}
	if inv.FindChairByName("Chiavari") == nil {
		t.Error("expected chair to be merged")
	}
}
