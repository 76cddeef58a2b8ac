// Package importer turns external files into the layout engine's inputs:
// CAD drawings into drawing.Document values and furniture lists (CSV or
// Excel) into table and chair presets. Furniture import supports automatic
// delimiter detection, flexible column mapping and case-insensitive headers.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/SeatPlan/internal/model"
)

// ImportResult holds the results of a furniture import.
type ImportResult struct {
	Tables   []model.TablePreset
	Chairs   []model.ChairPreset
	Errors   []string
	Warnings []string
}

// Count returns the number of presets imported.
func (r ImportResult) Count() int {
	return len(r.Tables) + len(r.Chairs)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name    int
	Kind    int
	Width   int
	Height  int
	Spacing int
	Seats   int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":    {"name", "label", "item", "description", "desc", "model"},
	"kind":    {"kind", "type", "category"},
	"width":   {"width", "w", "length", "len", "diameter"},
	"height":  {"height", "h", "depth", "d"},
	"spacing": {"spacing", "gap", "clearance", "space"},
	"seats":   {"seats", "chairs", "chairs per table", "chairs per row", "per row", "capacity", "covers"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (name, kind, width, height, spacing, seats) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Name: -1, Kind: -1, Width: -1, Height: -1, Spacing: -1, Seats: -1}
	slots := map[string]*int{
		"name":    &mapping.Name,
		"kind":    &mapping.Kind,
		"width":   &mapping.Width,
		"height":  &mapping.Height,
		"spacing": &mapping.Spacing,
		"seats":   &mapping.Seats,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if slot := slots[role]; *slot == -1 {
					*slot = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Name: 0, Kind: 1, Width: 2, Height: 3, Spacing: 4, Seats: 5}, false
	}
	return mapping, true
}

// parseKind reads a kind cell. An empty cell falls back to the name: anything
// mentioning "chair" or "seat" is a chair.
func parseKind(s, name string) (model.UnitKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "t", "tables":
		return model.KindTable, true
	case "chair", "c", "chairs", "seat":
		return model.KindChair, true
	case "":
		lower := strings.ToLower(name)
		if strings.Contains(lower, "chair") || strings.Contains(lower, "seat") {
			return model.KindChair, true
		}
		return model.KindTable, true
	default:
		return model.KindTable, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDimension(row []string, idx int, rowLabel, what string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, what)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, what)
	}
	return v, ""
}

// parsedRow is one successfully read furniture row.
type parsedRow struct {
	kind    model.UnitKind
	name    string
	width   float64
	height  float64
	spacing float64
	seats   int
}

// parseRow extracts a furniture row using the given column mapping.
// Returns the row, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, count int) (parsedRow, string, string) {
	var warning string
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Item %d", count+1)
	}

	kindStr := getCell(row, mapping.Kind)
	kind, ok := parseKind(kindStr, name)
	if !ok {
		warning = fmt.Sprintf("%s: Unknown kind '%s', defaulting to table", rowLabel, kindStr)
	}

	width, errMsg := parseDimension(row, mapping.Width, rowLabel, "width")
	if errMsg != "" {
		return parsedRow{}, errMsg, ""
	}
	height, errMsg := parseDimension(row, mapping.Height, rowLabel, "height")
	if errMsg != "" {
		return parsedRow{}, errMsg, ""
	}

	var spacing float64
	if s := getCell(row, mapping.Spacing); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return parsedRow{}, fmt.Sprintf("%s: Invalid spacing '%s'", rowLabel, s), ""
		}
		spacing = v
	}

	var seats int
	if s := getCell(row, mapping.Seats); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return parsedRow{}, fmt.Sprintf("%s: Invalid seats '%s'", rowLabel, s), ""
		}
		seats = v
	}
	if kind == model.KindTable && seats == 0 {
		return parsedRow{}, fmt.Sprintf("%s: Tables need a seat count", rowLabel), ""
	}

	return parsedRow{kind: kind, name: name, width: width, height: height, spacing: spacing, seats: seats}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports furniture presets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports furniture presets from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports furniture presets from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the CSV or Excel reader by file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") || strings.HasSuffix(lower, ".xls") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		p, errMsg, warning := parseRow(row, mapping, rowLabel, result.Count())
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		switch p.kind {
		case model.KindChair:
			result.Chairs = append(result.Chairs, model.NewChairPreset(p.name, p.width, p.height, p.spacing, p.seats))
		default:
			result.Tables = append(result.Tables, model.NewTablePreset(p.name, p.width, p.height, p.spacing, p.seats))
		}
	}

	return result
}

// MergeInto appends the imported presets to inv, skipping names that are
// already present. It returns how many presets were added.
func (r ImportResult) MergeInto(inv *model.Inventory) int {
	added := 0
	for _, t := range r.Tables {
		if inv.FindTableByName(t.Name) == nil {
			inv.Tables = append(inv.Tables, t)
			added++
		}
	}
	for _, c := range r.Chairs {
		if inv.FindChairByName(c.Name) == nil {
			inv.Chairs = append(inv.Chairs, c)
			added++
		}
	}
	return added
}
