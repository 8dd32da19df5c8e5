package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/slabcut/internal/model"
)

const (
	cutlistSheet   = "Cutlist"
	materialsSheet = "Materials"
)

var xlsxPartHeader = []interface{}{
	"Number", "Name", "Count", "Length", "Width", "Thickness", "Raw length", "Raw width", "Raw thickness",
}

// buildWorkbook lays the report out on two sheets: the cutlist, with a
// heading row and a summary row per group, and the material usages.
func buildWorkbook(report model.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), cutlistSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	heading, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E6E6E6"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	setRow := func(sheet string, r int, values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}
	styleRow := func(sheet string, r, cols, style int) error {
		first, _ := excelize.CoordinatesToCellName(1, r)
		last, _ := excelize.CoordinatesToCellName(cols, r)
		return f.SetCellStyle(sheet, first, last, style)
	}

	title := report.Filename
	if report.PageLabel != "" {
		title += " / " + report.PageLabel
	}
	if err := setRow(cutlistSheet, row, []interface{}{title}); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}
	if err := styleRow(cutlistSheet, row, 1, bold); err != nil {
		return nil, fmt.Errorf("failed to style title: %w", err)
	}
	row += 2

	for _, g := range report.Groups {
		if err := setRow(cutlistSheet, row, []interface{}{groupTitle(g)}); err != nil {
			return nil, fmt.Errorf("failed to write group: %w", err)
		}
		if err := styleRow(cutlistSheet, row, len(xlsxPartHeader), heading); err != nil {
			return nil, fmt.Errorf("failed to style group: %w", err)
		}
		row++
		if err := setRow(cutlistSheet, row, xlsxPartHeader); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		if err := styleRow(cutlistSheet, row, len(xlsxPartHeader), bold); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		row++
		for _, p := range g.Parts {
			values := []interface{}{
				p.Number, p.Name, p.Count,
				p.Length, p.Width, p.Thickness,
				p.RawLength, p.RawWidth, p.RawThickness,
			}
			if err := setRow(cutlistSheet, row, values); err != nil {
				return nil, fmt.Errorf("failed to write part: %w", err)
			}
			row++
		}
		summary := []interface{}{"Total", "", g.PartCount}
		switch g.MaterialType {
		case model.MaterialTypeSolidWood:
			summary = append(summary, "Volume (m3)", g.RawVolumeM3)
		case model.MaterialTypeSheetGood:
			summary = append(summary, "Area (m2)", g.RawAreaM2)
		}
		if err := setRow(cutlistSheet, row, summary); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
		if err := styleRow(cutlistSheet, row, len(summary), bold); err != nil {
			return nil, fmt.Errorf("failed to style summary: %w", err)
		}
		row += 2
	}
	if err := f.SetColWidth(cutlistSheet, "B", "B", 28); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := f.NewSheet(materialsSheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := setRow(materialsSheet, 1, []interface{}{"Name", "Display name", "Type", "Uses"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := styleRow(materialsSheet, 1, 4, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	for i, u := range report.MaterialUsages {
		if err := setRow(materialsSheet, i+2, []interface{}{u.Name, u.DisplayName, u.Type.String(), u.UseCount}); err != nil {
			return nil, fmt.Errorf("failed to write material: %w", err)
		}
	}

	return f, nil
}

// WriteXLSX writes the report as an Excel workbook.
func WriteXLSX(w io.Writer, report model.Report) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportXLSX writes the report to an Excel file.
func ExportXLSX(path string, report model.Report) error {
	f, err := buildWorkbook(report)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
