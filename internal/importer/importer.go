// Package importer reads panel schedules from CSV and Excel files into
// batch-create inputs for the layout store. It supports automatic delimiter
// detection, flexible column mapping and case-insensitive header aliases.
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

	"github.com/dtaplin21/panelgrid/internal/store"
)

// ImportResult holds the outcome of one schedule import.
type ImportResult struct {
	Items    []store.PanelInput
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// An index of -1 means the column is absent.
type ColumnMapping struct {
	Panel     int
	Roll      int
	Width     int
	Height    int
	Quantity  int
	Material  int
	Thickness int
	X         int
	Y         int
}

// headerAliases maps canonical column roles to accepted header spellings
// (all lowercase).
var headerAliases = map[string][]string{
	"panel":     {"panel", "panel number", "panel #", "panel no", "number", "label", "name"},
	"roll":      {"roll", "roll number", "roll #", "roll no"},
	"width":     {"width", "w"},
	"height":    {"height", "h", "length", "len"},
	"quantity":  {"quantity", "qty", "count", "num", "pcs"},
	"material":  {"material", "mat", "liner"},
	"thickness": {"thickness", "thick", "mil", "gauge"},
	"x":         {"x", "x (ft)", "easting"},
	"y":         {"y", "y (ft)", "northing"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab and pipe; the one producing the most consistent
// multi-column row shape wins.
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

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive against the known aliases. When no header is found, a
// positional mapping (panel, width, height, roll) is returned with false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Panel: -1, Roll: -1, Width: -1, Height: -1, Quantity: -1,
		Material: -1, Thickness: -1, X: -1, Y: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "panel":
			if mapping.Panel == -1 {
				mapping.Panel = i
			}
		case "roll":
			if mapping.Roll == -1 {
				mapping.Roll = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "height":
			if mapping.Height == -1 {
				mapping.Height = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "material":
			if mapping.Material == -1 {
				mapping.Material = i
			}
		case "thickness":
			if mapping.Thickness == -1 {
				mapping.Thickness = i
			}
		case "x":
			if mapping.X == -1 {
				mapping.X = i
			}
		case "y":
			if mapping.Y == -1 {
				mapping.Y = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Panel: 0, Width: 1, Height: 2, Roll: 3,
			Quantity: -1, Material: -1, Thickness: -1, X: -1, Y: -1,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a trimmed cell value by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts panel inputs from one row. A quantity column expands
// the row into multiple items with ordinal panel-number suffixes.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) ([]store.PanelInput, string, string) {
	panelNumber := getCell(row, mapping.Panel)
	if panelNumber == "" {
		panelNumber = fmt.Sprintf("P-%d", itemCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: missing width value", rowLabel), ""
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: invalid width %q", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return nil, fmt.Sprintf("%s: missing height value", rowLabel), ""
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return nil, fmt.Sprintf("%s: invalid height %q", rowLabel, heightStr), ""
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Sprintf("%s: width and height must be positive", rowLabel), ""
	}

	qty := 1
	var warning string
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		q, err := strconv.Atoi(qtyStr)
		if err != nil || q <= 0 {
			warning = fmt.Sprintf("%s: invalid quantity %q, assuming 1", rowLabel, qtyStr)
		} else {
			qty = q
		}
	}

	var x, y float64
	if xStr := getCell(row, mapping.X); xStr != "" {
		if x, err = strconv.ParseFloat(xStr, 64); err != nil {
			return nil, fmt.Sprintf("%s: invalid x %q", rowLabel, xStr), ""
		}
	}
	if yStr := getCell(row, mapping.Y); yStr != "" {
		if y, err = strconv.ParseFloat(yStr, 64); err != nil {
			return nil, fmt.Sprintf("%s: invalid y %q", rowLabel, yStr), ""
		}
	}

	base := store.PanelInput{
		PanelNumber: panelNumber,
		RollNumber:  getCell(row, mapping.Roll),
		Width:       width,
		Height:      height,
		X:           x,
		Y:           y,
		Material:    getCell(row, mapping.Material),
		Thickness:   getCell(row, mapping.Thickness),
	}

	items := make([]store.PanelInput, qty)
	for i := range items {
		items[i] = base
		if qty > 1 {
			items[i].PanelNumber = fmt.Sprintf("%s-%d", panelNumber, i+1)
		}
	}
	return items, "", warning
}

// isEmptyRow reports whether a row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports panel inputs from a CSV file, auto-detecting the
// delimiter and mapping columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	return importFromRows(records, "line", result.Warnings)
}

// ImportCSVFromReader imports panel inputs from a reader with a known
// delimiter. Useful for tests and piped input.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "file is empty")
		return result
	}

	return importFromRows(records, "line", nil)
}

// ImportExcel imports panel inputs from the first sheet of an Excel file.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cannot open Excel file: %v", err))
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
		result.Errors = append(result.Errors, fmt.Sprintf("cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "sheet is empty")
		return result
	}

	return importFromRows(rows, "row", nil)
}

// importFromRows is the shared parsing path for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "no data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the width column of the first row is not
		// numeric, treat it as an unknown header and keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		items, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Items))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Items = append(result.Items, items...)
	}

	return result
}
