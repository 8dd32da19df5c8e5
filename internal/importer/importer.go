// Package importer reads material stock tables from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/slabcut/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Materials []model.MaterialEntry
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name              int
	DisplayName       int
	Type              int
	LengthIncrease    int
	WidthIncrease     int
	ThicknessIncrease int
	StdThicknesses    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":               {"name", "material", "material name", "id"},
	"display_name":       {"display name", "display", "label", "description", "desc"},
	"type":               {"type", "material type", "kind", "category"},
	"length_increase":    {"length increase", "length allowance", "length margin", "l+"},
	"width_increase":     {"width increase", "width allowance", "width margin", "w+"},
	"thickness_increase": {"thickness increase", "thickness allowance", "thickness margin", "t+"},
	"std_thicknesses":    {"std thicknesses", "standard thicknesses", "thicknesses", "stock thicknesses", "std thickness"},
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
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:              -1,
		DisplayName:       -1,
		Type:              -1,
		LengthIncrease:    -1,
		WidthIncrease:     -1,
		ThicknessIncrease: -1,
		StdThicknesses:    -1,
	}
	slots := map[string]*int{
		"name":               &mapping.Name,
		"display_name":       &mapping.DisplayName,
		"type":               &mapping.Type,
		"length_increase":    &mapping.LengthIncrease,
		"width_increase":     &mapping.WidthIncrease,
		"thickness_increase": &mapping.ThicknessIncrease,
		"std_thicknesses":    &mapping.StdThicknesses,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if slot := slots[role]; *slot == -1 {
						*slot = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Positional: Name, Display name, Type, Length+, Width+, Thickness+, Std thicknesses
		return ColumnMapping{
			Name:              0,
			DisplayName:       1,
			Type:              2,
			LengthIncrease:    3,
			WidthIncrease:     4,
			ThicknessIncrease: 5,
			StdThicknesses:    6,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseThicknessList splits a cell such as "18 27 35" or "18/27/35" into
// ascending, de-duplicated values.
func parseThicknessList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '/', ';', '|', ',':
			return true
		}
		return false
	})
	values := make([]float64, 0, len(fields))
	seen := make(map[float64]bool)
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid thickness '%s'", f)
		}
		if v <= 0 {
			return nil, fmt.Errorf("thickness '%s' must be positive", f)
		}
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values, nil
}

// parseIncrease reads an optional allowance column. Empty cells keep fallback.
func parseIncrease(row []string, idx int, column, rowLabel string, fallback float64) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return fallback, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	if v < 0 {
		return 0, fmt.Sprintf("%s: %s must not be negative", rowLabel, strings.ToUpper(column[:1])+column[1:])
	}
	return v, ""
}

// parseRow extracts a material entry from a row using the given column mapping.
// Empty allowance and thickness cells take the defaults of the material type.
// Returns the entry, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.MaterialEntry, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		return model.MaterialEntry{}, fmt.Sprintf("%s: Missing material name", rowLabel), ""
	}

	var warning string
	typeStr := getCell(row, mapping.Type)
	materialType, err := model.ParseMaterialType(typeStr)
	if err != nil {
		warning = fmt.Sprintf("%s: Unknown material type '%s', defaulting to unknown", rowLabel, typeStr)
	}
	defaults := model.DefaultMaterialAttributes(materialType)

	attrs := model.MaterialAttributes{Type: materialType}
	var errMsg string
	if attrs.LengthIncrease, errMsg = parseIncrease(row, mapping.LengthIncrease, "length increase", rowLabel, defaults.LengthIncrease); errMsg != "" {
		return model.MaterialEntry{}, errMsg, ""
	}
	if attrs.WidthIncrease, errMsg = parseIncrease(row, mapping.WidthIncrease, "width increase", rowLabel, defaults.WidthIncrease); errMsg != "" {
		return model.MaterialEntry{}, errMsg, ""
	}
	if attrs.ThicknessIncrease, errMsg = parseIncrease(row, mapping.ThicknessIncrease, "thickness increase", rowLabel, defaults.ThicknessIncrease); errMsg != "" {
		return model.MaterialEntry{}, errMsg, ""
	}

	attrs.StdThicknesses = defaults.StdThicknesses
	if s := getCell(row, mapping.StdThicknesses); s != "" {
		list, err := parseThicknessList(s)
		if err != nil {
			return model.MaterialEntry{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
		}
		attrs.StdThicknesses = list
	}
	if attrs.StdThicknesses == nil {
		attrs.StdThicknesses = []float64{}
	}

	return model.MaterialEntry{
		Name:        name,
		DisplayName: getCell(row, mapping.DisplayName),
		Attributes:  attrs,
	}, "", warning
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

// ImportCSV imports materials from a CSV file.
// The delimiter is detected and columns are mapped by header names.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	records, errMsg := readRecords(bytes.NewReader(data), delimiter)
	if errMsg != "" {
		return ImportResult{Errors: []string{errMsg}, Warnings: warnings}
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports materials from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, errMsg := readRecords(reader, delimiter)
	if errMsg != "" {
		return ImportResult{Errors: []string{errMsg}}
	}
	return importFromRows(records, "Line", nil)
}

// readRecords reads every CSV record, tolerating stray quotes and ragged rows.
func readRecords(r io.Reader, delimiter rune) ([][]string, string) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Sprintf("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, "File is empty"
	}
	return records, ""
}

// ImportExcel imports materials from an Excel workbook. A sheet named
// "Materials" is preferred, so workbooks written by the xlsx export can be
// read back; otherwise the first sheet is used.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	sheet := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Materials") {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{fmt.Sprintf("Sheet %s is empty", sheet)}}
	}
	return importFromRows(rows, "Row", nil)
}

// ImportFile picks the CSV or Excel importer from the file extension.
func ImportFile(path string) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path)
	}
	return ImportCSV(path)
}

// Library collects the imported materials into a library.
func (r ImportResult) Library() model.MaterialLibrary {
	lib := model.NewMaterialLibrary()
	for _, m := range r.Materials {
		lib.Upsert(m)
	}
	return lib
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Name == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Name")
			return result
		}
		if mapping.Type == -1 {
			result.Warnings = append(result.Warnings, "No type column, materials imported as unknown")
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-type word in the type column.
		if _, err := model.ParseMaterialType(rows[0][2]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		entry, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		key := strings.ToLower(entry.Name)
		if seen[key] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate material '%s' ignored", rowLabel, entry.Name))
			continue
		}
		seen[key] = true
		result.Materials = append(result.Materials, entry)
	}

	return result
}
