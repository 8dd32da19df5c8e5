// Package engine computes cutlists from a scene and applies the part and
// group update commands back to it.
package engine

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/logging"
	"github.com/piwi3910/slabcut/internal/metrics"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// Engine generates cutlists with fixed settings.
type Engine struct {
	Settings model.Settings
	logger   *zap.Logger
	metrics  *metrics.Recorder
}

// New creates an engine. A nil logger or recorder disables logging or metrics.
func New(settings model.Settings, logger *zap.Logger, rec *metrics.Recorder) *Engine {
	if settings.PartOrderStrategy == "" {
		settings.PartOrderStrategy = model.DefaultPartOrderStrategy
	}
	return &Engine{
		Settings: settings,
		logger:   logging.OrNop(logger),
		metrics:  rec,
	}
}

// Generate computes the cutlist of the selection, or of the active context
// when nothing is selected. Missing data never fails a generation: it ends
// up as diagnostics in the report.
func (e *Engine) Generate(s scene.Scene) model.Report {
	timer := metrics.NewTimer()

	entities := s.Selection()
	useSelection := len(entities) > 0
	if !useSelection {
		entities = s.ActiveEntities()
	}
	scope := "model"
	if useSelection {
		scope = "selection"
	}

	paths := Discover(entities, s.ActivePath())
	e.logger.Debug("discovered components",
		zap.String("scope", scope),
		zap.Int("entities", len(entities)),
		zap.Int("paths", len(paths)),
	)

	cutlist := model.NewCutlist(filename(s.Path()), s.PageLabel())

	if len(paths) == 0 {
		switch {
		case len(s.Entities()) == 0:
			cutlist.AddError(model.ErrorNoEntities)
		case useSelection:
			cutlist.AddError(model.ErrorNoComponentInSelection)
			cutlist.AddTip(model.TipNoComponent)
		default:
			cutlist.AddError(model.ErrorNoComponentInModel)
			cutlist.AddTip(model.TipNoComponent)
		}
	}

	for _, mat := range s.Materials() {
		cutlist.SetMaterialUsage(mat.Name, &model.MaterialUsage{
			Name:        mat.Name,
			DisplayName: mat.DisplayName,
			Type:        mat.Attributes.Type,
		})
	}

	for _, path := range paths {
		e.addPart(cutlist, path)
	}

	if len(paths) > 0 {
		if useSelection {
			cutlist.AddWarning(model.WarningPartialCutlist)
		}
		typed := 0
		for _, u := range cutlist.MaterialUsages {
			if u.Type == model.MaterialTypeSolidWood || u.Type == model.MaterialTypeSheetGood {
				typed += u.UseCount
			}
		}
		if typed == 0 {
			if useSelection {
				cutlist.AddWarning(model.WarningNoTypedMaterialsSelection)
			} else {
				cutlist.AddWarning(model.WarningNoTypedMaterialsModel)
			}
			cutlist.AddTip(model.TipNoTypedMaterials)
		}
	}

	report := e.report(cutlist)

	e.record(report, scope, timer)
	e.logger.Debug("generated cutlist",
		zap.String("file", report.Filename),
		zap.Int("groups", len(report.Groups)),
		zap.Int("instances", report.InstanceCount()),
		zap.Strings("errors", report.Errors),
		zap.Strings("warnings", report.Warnings),
	)
	return report
}

func (e *Engine) addPart(cutlist *model.Cutlist, path scene.Path) {
	inst := path.Last()
	def := inst.Definition()

	mat, origin := ResolveMaterial(path, e.Settings.SmartMaterial)
	var (
		materialName string
		attrs        model.MaterialAttributes
	)
	if mat != nil {
		materialName = mat.Name
		attrs = mat.Attributes
		if u := cutlist.MaterialUsage(mat.Name); u != nil {
			u.UseCount++
		}
	}

	size := SizeFromBounds(ComputeBounds(def), e.Settings.AutoOrient)
	raw, std := RawSize(size, attrs)

	key := model.NewGroupKey(materialName, attrs.Type, raw.Thickness)
	group := cutlist.GroupDef(key)
	if group == nil {
		group = model.NewGroupDef(key, raw.Thickness, std.Available)
		cutlist.SetGroupDef(group)
	}

	part := group.PartDef(def.Name)
	if part == nil {
		part = &model.PartDef{
			DefinitionID: def.Name,
			Name:         def.Name,
			Size:         size,
			RawSize:      raw,
			MaterialName: materialName,
		}
		group.SetPartDef(def.Name, part)
	}
	part.AddInstance(inst.ID(), origin)
	group.PartCount++
}

// report sorts and numbers the cutlist.
func (e *Engine) report(cutlist *model.Cutlist) model.Report {
	report := model.Report{
		Errors:         cutlist.Errors,
		Warnings:       cutlist.Warnings,
		Tips:           cutlist.Tips,
		Filename:       cutlist.Filename,
		PageLabel:      cutlist.PageLabel,
		MaterialUsages: make([]model.MaterialUsage, 0, len(cutlist.MaterialUsages)),
		Groups:         make([]model.Group, 0, len(cutlist.GroupDefs)),
	}

	for _, u := range cutlist.MaterialUsages {
		report.MaterialUsages = append(report.MaterialUsages, *u)
	}
	slices.SortFunc(report.MaterialUsages, func(a, b model.MaterialUsage) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.DisplayName), strings.ToLower(b.DisplayName)),
			cmp.Compare(a.Name, b.Name),
		)
	})

	groups := make([]*model.GroupDef, 0, len(cutlist.GroupDefs))
	for _, g := range cutlist.GroupDefs {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, compareGroups)

	order := model.ParsePartOrder(e.Settings.PartOrderStrategy)
	number := model.FirstPartNumber(e.Settings.PartNumberWithLetters)

	for _, g := range groups {
		if e.Settings.PartNumberSequenceByGroup {
			number = model.FirstPartNumber(e.Settings.PartNumberWithLetters)
		}

		group := model.Group{
			ID:                    g.ID,
			MaterialName:          g.MaterialName,
			MaterialType:          g.MaterialType,
			PartCount:             g.PartCount,
			RawThickness:          g.RawThickness,
			RawThicknessAvailable: g.RawThicknessAvailable,
			Parts:                 make([]model.Part, 0, len(g.PartDefs)),
		}

		defs := make([]*model.PartDef, 0, len(g.PartDefs))
		for _, p := range g.PartDefs {
			defs = append(defs, p)
		}
		order.Sort(defs)

		for _, p := range defs {
			if g.MaterialType != model.MaterialTypeUnknown {
				group.RawArea += p.RawSize.Area() * float64(p.Count)
			}
			if g.MaterialType == model.MaterialTypeSolidWood {
				group.RawVolume += p.RawSize.Volume() * float64(p.Count)
			}
			group.Parts = append(group.Parts, model.Part{
				ID:              p.ID,
				DefinitionID:    p.DefinitionID,
				Name:            p.Name,
				Length:          p.Size.Length,
				Width:           p.Size.Width,
				Thickness:       p.Size.Thickness,
				Count:           p.Count,
				RawLength:       p.RawSize.Length,
				RawWidth:        p.RawSize.Width,
				RawThickness:    p.RawSize.Thickness,
				Number:          number,
				MaterialName:    p.MaterialName,
				MaterialOrigins: slices.Clone(p.MaterialOrigins),
				EntityIDs:       slices.Clone(p.EntityIDs),
			})
			number = model.NextPartNumber(number)
		}
		group.RawAreaM2 = group.RawArea / 1e6
		group.RawVolumeM3 = group.RawVolume / 1e9

		report.Groups = append(report.Groups, group)
	}
	return report
}

// compareGroups orders solid wood before sheet goods before everything
// else, then by material name, then thickest first.
func compareGroups(a, b *model.GroupDef) int {
	return cmp.Or(
		cmp.Compare(a.MaterialType.TypeOrder(), b.MaterialType.TypeOrder()),
		cmp.Compare(strings.ToLower(a.MaterialName), strings.ToLower(b.MaterialName)),
		cmp.Compare(b.RawThickness, a.RawThickness),
		cmp.Compare(a.MaterialName, b.MaterialName),
		cmp.Compare(a.ID, b.ID),
	)
}

func (e *Engine) record(report model.Report, scope string, timer *metrics.Timer) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordGeneration(scope, timer.Duration())
	for _, g := range report.Groups {
		e.metrics.RecordParts(g.MaterialType.String(), g.PartCount)
	}
	for _, key := range report.Errors {
		e.metrics.RecordDiagnostic("error", key)
	}
	for _, key := range report.Warnings {
		e.metrics.RecordDiagnostic("warning", key)
	}
	for _, key := range report.Tips {
		e.metrics.RecordDiagnostic("tip", key)
	}
}

func filename(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
