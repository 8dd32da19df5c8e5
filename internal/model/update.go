package model

// PartUpdate renames a part's definition and repaints its instances.
// An empty MaterialName clears the material.
type PartUpdate struct {
	DefinitionID string  `json:"definition_id"`
	Name         string  `json:"name"`
	MaterialName string  `json:"material_name"`
	EntityIDs    []int64 `json:"entity_ids"`
}

// GroupUpdate repaints every instance of every part of a group.
type GroupUpdate struct {
	ID           string       `json:"id"`
	MaterialName string       `json:"material_name"`
	Parts        []PartUpdate `json:"parts"`
}

// UpdateResult summarizes what an update command changed.
type UpdateResult struct {
	Renamed         bool `json:"renamed"`
	Updated         int  `json:"updated"`          // entities whose material changed
	Skipped         int  `json:"skipped"`          // entity ids not found or without a material slot
	MaterialMissing bool `json:"material_missing"` // requested material does not exist, nothing was painted
}
