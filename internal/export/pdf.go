package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/slabcut/internal/model"
)

// groupColor is the heading fill of a group table.
type groupColor struct {
	R, G, B int
}

// groupColors by material type: solid wood, sheet goods, unknown.
var groupColors = map[model.MaterialType]groupColor{
	model.MaterialTypeSolidWood: {R: 222, G: 196, B: 160},
	model.MaterialTypeSheetGood: {R: 190, G: 215, B: 235},
	model.MaterialTypeUnknown:   {R: 225, G: 225, B: 225},
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
	contentWidth = pageWidth - marginLeft - marginRight
)

var (
	partColWidths = []float64{18, 77, 15, 25, 25, 25, 27, 27, 28}
	partHeaders   = []string{"#", "Name", "Count", "Length", "Width", "Thickness", "Raw length", "Raw width", "Raw thickness"}
)

// newCutlistPDF renders the report: a summary page, then one table per group.
func newCutlistPDF(report model.Report) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	if len(report.Groups) > 0 {
		pdf.AddPage()
		y := marginTop
		for _, g := range report.Groups {
			y = renderGroup(pdf, g, y)
		}
	}
	return pdf
}

// ExportPDF writes a printable cutlist.
func ExportPDF(path string, report model.Report) error {
	return newCutlistPDF(report).OutputFileAndClose(path)
}

// WritePDF writes the printable cutlist to w.
func WritePDF(w io.Writer, report model.Report) error {
	return newCutlistPDF(report).Output(w)
}

// ensureSpace starts a new page when fewer than need mm are left and
// returns the y to continue at.
func ensureSpace(pdf *fpdf.Fpdf, y, need float64) float64 {
	if y+need > pageHeight-marginBottom {
		pdf.AddPage()
		return marginTop
	}
	return y
}

// renderGroup draws one group heading, its part table and its totals.
func renderGroup(pdf *fpdf.Fpdf, g model.Group, y float64) float64 {
	y = ensureSpace(pdf, y, 3*rowHeight+8)

	col := groupColors[g.MaterialType]
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	heading := fmt.Sprintf("%s  (%d parts)", groupTitle(g), g.PartCount)
	pdf.CellFormat(contentWidth, 8, tr(pdf, heading), "", 0, "L", true, 0, "")
	y += 9

	y = renderPartHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range g.Parts {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderPartHeader(pdf, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		cells := []string{
			p.Number,
			p.Name,
			fmt.Sprintf("%d", p.Count),
			formatMM(p.Length),
			formatMM(p.Width),
			formatMM(p.Thickness),
			formatMM(p.RawLength),
			formatMM(p.RawWidth),
			formatMM(p.RawThickness),
		}
		x := marginLeft
		for j, cell := range cells {
			align := "C"
			if j == 1 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(partColWidths[j], rowHeight, tr(pdf, truncate(pdf, cell, partColWidths[j]-2)), "1", 0, align, true, 0, "")
			x += partColWidths[j]
		}
		y += rowHeight
	}

	var total string
	switch g.MaterialType {
	case model.MaterialTypeSolidWood:
		total = fmt.Sprintf("Raw volume: %.3f m3", g.RawVolumeM3)
	case model.MaterialTypeSheetGood:
		total = fmt.Sprintf("Raw area: %.2f m2", g.RawAreaM2)
	}
	if total != "" {
		y = ensureSpace(pdf, y, rowHeight)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(contentWidth, rowHeight, total, "", 0, "R", false, 0, "")
		y += rowHeight
	}
	return y + 6
}

func renderPartHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range partHeaders {
		pdf.SetXY(x, y)
		pdf.CellFormat(partColWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		x += partColWidths[i]
	}
	return y + rowHeight
}

// renderSummaryPage lists the file, the diagnostics and the material usages.
func renderSummaryPage(pdf *fpdf.Fpdf, report model.Report) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth, 10, "Cutlist", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"File", report.Filename},
		{"Page", report.PageLabel},
		{"Groups", fmt.Sprintf("%d", len(report.Groups))},
		{"Parts", fmt.Sprintf("%d", report.InstanceCount())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		if item.value == "" {
			continue
		}
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(150, 6, tr(pdf, item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y = renderMessages(pdf, y, "Errors", report.Errors, 200, 0, 0)
	y = renderMessages(pdf, y, "Warnings", report.Warnings, 180, 110, 0)
	y = renderMessages(pdf, y, "Tips", report.Tips, 60, 60, 60)

	if len(report.MaterialUsages) > 0 {
		y += 5
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Materials", "", 0, "L", false, 0, "")
		y += 9

		colWidths := []float64{70, 70, 40, 30}
		headers := []string{"Name", "Display name", "Type", "Uses"}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, header := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += rowHeight

		pdf.SetFont("Helvetica", "", 9)
		for _, u := range report.MaterialUsages {
			y = ensureSpace(pdf, y, rowHeight)
			x = marginLeft
			for i, cell := range []string{u.Name, u.DisplayName, u.Type.String(), fmt.Sprintf("%d", u.UseCount)} {
				pdf.SetXY(x, y)
				pdf.CellFormat(colWidths[i], rowHeight, tr(pdf, cell), "1", 0, "C", false, 0, "")
				x += colWidths[i]
			}
			y += rowHeight
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(contentWidth, 4, "Generated by SlabCut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderMessages(pdf *fpdf.Fpdf, y float64, title string, messages []string, r, g, b int) float64 {
	if len(messages) == 0 {
		return y
	}
	y += 4
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(r, g, b)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, m := range messages {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(contentWidth-5, 5, "- "+m, "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

// tr converts UTF-8 text to the code page of the core fonts.
func tr(pdf *fpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

// truncate shortens s with an ellipsis until it fits in width mm.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
