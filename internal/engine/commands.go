package engine

import (
	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// UpdatePart renames the definition of a part and repaints its instances.
// Definitions and entities that cannot be found are skipped. The material
// is left untouched when the requested one does not exist.
func (e *Engine) UpdatePart(s scene.Scene, u model.PartUpdate) model.UpdateResult {
	var result model.UpdateResult

	if def := s.FindDefinition(u.DefinitionID); def != nil && u.Name != "" && def.Name != u.Name {
		result.Renamed = s.RenameDefinition(u.DefinitionID, u.Name)
	}
	paint(s, u.MaterialName, u.EntityIDs, &result)

	e.logger.Info("updated part",
		zap.String("definition", u.DefinitionID),
		zap.Bool("renamed", result.Renamed),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Bool("material_missing", result.MaterialMissing),
	)
	e.metrics.RecordCommand("update_part", status(result))
	return result
}

// UpdateGroup paints every instance of every part of a group with one material.
func (e *Engine) UpdateGroup(s scene.Scene, u model.GroupUpdate) model.UpdateResult {
	var result model.UpdateResult

	var ids []int64
	for _, p := range u.Parts {
		ids = append(ids, p.EntityIDs...)
	}
	paint(s, u.MaterialName, ids, &result)

	e.logger.Info("updated group",
		zap.String("group", u.ID),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Bool("material_missing", result.MaterialMissing),
	)
	e.metrics.RecordCommand("update_group", status(result))
	return result
}

// paint assigns the named material to entities, or clears it when name is empty.
func paint(s scene.Scene, name string, ids []int64, result *model.UpdateResult) {
	var mat *scene.Material
	if name != "" {
		mat = s.FindMaterial(name)
		if mat == nil {
			result.MaterialMissing = true
			return
		}
	}
	for _, id := range ids {
		ent := s.FindEntity(id)
		if ent == nil || !ent.Drawable() {
			result.Skipped++
			continue
		}
		if ent.Material() == mat {
			continue
		}
		ent.SetMaterial(mat)
		result.Updated++
	}
}

func status(r model.UpdateResult) string {
	if r.Renamed || r.Updated > 0 {
		return "applied"
	}
	return "noop"
}
