package export

import (
	"fmt"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/slabcut/internal/model"
)

// DXF layout spacing in mm.
const (
	dxfPartGap  = 20.0
	dxfGroupGap = 100.0
	dxfTextSize = 10.0
)

// layerName returns a DXF-safe layer name for a group.
func layerName(g model.Group) string {
	name := groupTitle(g)
	name = strings.TrimSuffix(name, " (not in stock)")
	r := strings.NewReplacer(" ", "_", "<", "_", ">", "_", "/", "_", "\\", "_", "\"", "_", ":", "_", ";", "_", "?", "_", "*", "_", "|", "_", "=", "_", "`", "_", ",", "_")
	return r.Replace(name)
}

// ExportDXF draws the raw stock rectangle of every part instance, one row
// and one layer per group, with the part number written inside.
func ExportDXF(path string, report model.Report) error {
	if report.InstanceCount() == 0 {
		return fmt.Errorf("no parts to export")
	}

	d := dxf.NewDrawing()
	y := 0.0
	seen := make(map[string]int)
	for gi, g := range report.Groups {
		if g.PartCount == 0 {
			continue
		}
		name := layerName(g)
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s_%d", name, n+1)
		}
		seen[layerName(g)]++

		if _, err := d.AddLayer(name, color.ColorNumber(gi%7+1), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", name, err)
		}
		if _, err := d.Text(groupTitle(g), 0, y, 0, dxfTextSize); err != nil {
			return fmt.Errorf("failed to write group title: %w", err)
		}
		y += 2 * dxfTextSize

		x, rowHeight := 0.0, 0.0
		for _, p := range g.Parts {
			for range p.Count {
				if err := rectangle(d, x, y, p.RawLength, p.RawWidth); err != nil {
					return err
				}
				if _, err := d.Text(p.Number, x+dxfTextSize/2, y+dxfTextSize/2, 0, dxfTextSize); err != nil {
					return fmt.Errorf("failed to write part number: %w", err)
				}
				x += p.RawLength + dxfPartGap
				rowHeight = max(rowHeight, p.RawWidth)
			}
		}
		y += rowHeight + dxfGroupGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dxf: %w", err)
	}
	return nil
}

func rectangle(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i, c := range corners {
		n := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, n[0], n[1], 0); err != nil {
			return fmt.Errorf("failed to draw outline: %w", err)
		}
	}
	return nil
}
