// Package export writes cutlist reports to files: JSON, CSV, Excel,
// a printable PDF cutlist, QR-coded part labels and DXF stock outlines.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/slabcut/internal/model"
)

// Format names an output format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatPDF    Format = "pdf"
	FormatLabels Format = "labels"
	FormatDXF    Format = "dxf"
)

// AllFormats lists every supported format in export order.
var AllFormats = []Format{FormatJSON, FormatCSV, FormatXLSX, FormatPDF, FormatLabels, FormatDXF}

// Extension returns the file suffix written for the format.
func (f Format) Extension() string {
	switch f {
	case FormatLabels:
		return "-labels.pdf"
	default:
		return "." + string(f)
	}
}

// ParseFormats splits a comma separated list such as "json,pdf".
// Duplicates are dropped; unknown names are an error.
func ParseFormats(list string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		f := Format(name)
		known := false
		for _, k := range AllFormats {
			if k == f {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown export format %q", name)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no export format given")
	}
	return formats, nil
}

// Write exports the report once per format into dir, naming each file
// base plus the format extension. It returns the written paths.
func Write(dir, base string, report model.Report, formats []Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	var written []string
	for _, f := range formats {
		path := filepath.Join(dir, base+f.Extension())
		var err error
		switch f {
		case FormatJSON:
			err = ExportJSON(path, report)
		case FormatCSV:
			err = ExportCSV(path, report)
		case FormatXLSX:
			err = ExportXLSX(path, report)
		case FormatPDF:
			err = ExportPDF(path, report)
		case FormatLabels:
			err = ExportLabels(path, report)
		case FormatDXF:
			err = ExportDXF(path, report)
		default:
			err = fmt.Errorf("unknown export format %q", f)
		}
		if err != nil {
			return written, fmt.Errorf("failed to export %s: %w", f, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// ExportJSON writes the report as indented JSON.
func ExportJSON(path string, report model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// BaseName derives an output name from a scene file name.
func BaseName(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "cutlist"
	}
	return base
}

// groupTitle is the heading used for a group in every human-readable format.
func groupTitle(g model.Group) string {
	name := materialLabel(g.MaterialName)
	if g.MaterialType == model.MaterialTypeUnknown {
		return name
	}
	title := fmt.Sprintf("%s %s mm", name, formatMM(g.RawThickness))
	if !g.RawThicknessAvailable {
		title += " (not in stock)"
	}
	return title
}

func materialLabel(name string) string {
	if name == "" {
		return "No material"
	}
	return name
}

// formatMM prints a length without trailing zeros.
func formatMM(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
