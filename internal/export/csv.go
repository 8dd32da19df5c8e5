package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/slabcut/internal/model"
)

// csvHeader lists the columns of the flat CSV cutlist, one row per part.
var csvHeader = []string{
	"Group", "Material", "Type", "Raw thickness", "In stock",
	"Number", "Name", "Count",
	"Length", "Width", "Thickness",
	"Raw length", "Raw width", "Material origins",
}

// WriteCSV writes the report as a flat table with one row per part.
func WriteCSV(w io.Writer, report model.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, g := range report.Groups {
		for _, p := range g.Parts {
			row := []string{
				groupTitle(g),
				g.MaterialName,
				g.MaterialType.String(),
				num(g.RawThickness),
				strconv.FormatBool(g.RawThicknessAvailable),
				p.Number,
				p.Name,
				strconv.Itoa(p.Count),
				num(p.Length),
				num(p.Width),
				num(p.Thickness),
				num(p.RawLength),
				num(p.RawWidth),
				origins(p.MaterialOrigins),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the report to a CSV file.
func ExportCSV(path string, report model.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func origins(list []model.MaterialOrigin) string {
	names := make([]string, len(list))
	for i, o := range list {
		names[i] = o.String()
	}
	return strings.Join(names, " ")
}
