package model

import (
	"strconv"

	"github.com/google/uuid"
)

// Diagnostic message keys attached to a report.
const (
	ErrorNoEntities             = "tab.cutlist.error.no_entities"
	ErrorNoComponentInSelection = "tab.cutlist.error.no_component_in_selection"
	ErrorNoComponentInModel     = "tab.cutlist.error.no_component_in_model"

	WarningPartialCutlist            = "tab.cutlist.warning.partial_cutlist"
	WarningNoTypedMaterialsSelection = "tab.cutlist.warning.no_typed_materials_in_selection"
	WarningNoTypedMaterialsModel     = "tab.cutlist.warning.no_typed_materials_in_model"

	TipNoComponent      = "tab.cutlist.tip.no_component"
	TipNoTypedMaterials = "tab.cutlist.tip.no_typed_materials"
)

// groupNamespace seeds the name-based UUIDs of groups and parts so that
// identical inputs always produce identical ids.
var groupNamespace = uuid.MustParse("6f1c2a5e-3c0b-4f7e-9d2a-52c1b7e4a9d0")

// GroupKey identifies a group of parts cut from the same stock.
// Unknown materials are not split by thickness.
type GroupKey struct {
	MaterialName string
	MaterialType MaterialType
	Thickness    float64
	HasThickness bool
}

// NewGroupKey builds the key for a material and a standardized thickness.
func NewGroupKey(materialName string, materialType MaterialType, thickness float64) GroupKey {
	if materialType == MaterialTypeUnknown {
		return GroupKey{MaterialName: materialName, MaterialType: materialType}
	}
	return GroupKey{
		MaterialName: materialName,
		MaterialType: materialType,
		Thickness:    thickness,
		HasThickness: true,
	}
}

// ID returns the stable public identifier of the group.
func (k GroupKey) ID() string {
	name := k.MaterialName
	if k.HasThickness {
		name += ":" + strconv.FormatFloat(k.Thickness, 'f', -1, 64)
	}
	return uuid.NewSHA1(groupNamespace, []byte(name)).String()
}

// PartDef accumulates every instance of one component definition in a group.
type PartDef struct {
	ID              string
	DefinitionID    string
	Name            string
	Size            Size
	RawSize         Size
	MaterialName    string
	Count           int
	MaterialOrigins []MaterialOrigin
	EntityIDs       []int64
}

// AddMaterialOrigin records an origin if it was not seen yet.
func (p *PartDef) AddMaterialOrigin(origin MaterialOrigin) {
	for _, o := range p.MaterialOrigins {
		if o == origin {
			return
		}
	}
	p.MaterialOrigins = append(p.MaterialOrigins, origin)
}

// AddInstance counts one more placed instance of the part.
func (p *PartDef) AddInstance(entityID int64, origin MaterialOrigin) {
	p.AddMaterialOrigin(origin)
	p.EntityIDs = append(p.EntityIDs, entityID)
	p.Count++
}

// GroupDef collects the parts sharing a material and a raw thickness.
type GroupDef struct {
	Key                   GroupKey
	ID                    string
	MaterialName          string
	MaterialType          MaterialType
	RawThickness          float64
	RawThicknessAvailable bool
	PartCount             int
	PartDefs              map[string]*PartDef
}

// NewGroupDef creates an empty group for the given key.
func NewGroupDef(key GroupKey, rawThickness float64, available bool) *GroupDef {
	return &GroupDef{
		Key:                   key,
		ID:                    key.ID(),
		MaterialName:          key.MaterialName,
		MaterialType:          key.MaterialType,
		RawThickness:          rawThickness,
		RawThicknessAvailable: available,
		PartDefs:              make(map[string]*PartDef),
	}
}

// PartDef returns the part for a definition, or nil.
func (g *GroupDef) PartDef(definitionID string) *PartDef {
	return g.PartDefs[definitionID]
}

// SetPartDef stores a part under its definition id and assigns its id.
func (g *GroupDef) SetPartDef(definitionID string, p *PartDef) {
	if p.ID == "" {
		p.ID = uuid.NewSHA1(uuid.MustParse(g.ID), []byte(definitionID)).String()
	}
	g.PartDefs[definitionID] = p
}

// Cutlist is the mutable state of one generation.
type Cutlist struct {
	Filename       string
	PageLabel      string
	Errors         []string
	Warnings       []string
	Tips           []string
	MaterialUsages map[string]*MaterialUsage
	GroupDefs      map[GroupKey]*GroupDef
}

// NewCutlist creates an empty cutlist for a file and page.
func NewCutlist(filename, pageLabel string) *Cutlist {
	return &Cutlist{
		Filename:       filename,
		PageLabel:      pageLabel,
		Errors:         []string{},
		Warnings:       []string{},
		Tips:           []string{},
		MaterialUsages: make(map[string]*MaterialUsage),
		GroupDefs:      make(map[GroupKey]*GroupDef),
	}
}

func (c *Cutlist) AddError(key string)   { c.Errors = append(c.Errors, key) }
func (c *Cutlist) AddWarning(key string) { c.Warnings = append(c.Warnings, key) }
func (c *Cutlist) AddTip(key string)     { c.Tips = append(c.Tips, key) }

// MaterialUsage returns the usage entry for a material name, or nil.
func (c *Cutlist) MaterialUsage(name string) *MaterialUsage {
	return c.MaterialUsages[name]
}

// SetMaterialUsage registers a usage entry.
func (c *Cutlist) SetMaterialUsage(name string, u *MaterialUsage) {
	c.MaterialUsages[name] = u
}

// GroupDef returns the group for a key, or nil.
func (c *Cutlist) GroupDef(key GroupKey) *GroupDef {
	return c.GroupDefs[key]
}

// SetGroupDef registers a group.
func (c *Cutlist) SetGroupDef(g *GroupDef) {
	c.GroupDefs[g.Key] = g
}

// Part is one numbered line of a report group.
type Part struct {
	ID              string           `json:"id"`
	DefinitionID    string           `json:"definition_id"`
	Name            string           `json:"name"`
	Length          float64          `json:"length"`
	Width           float64          `json:"width"`
	Thickness       float64          `json:"thickness"`
	Count           int              `json:"count"`
	RawLength       float64          `json:"raw_length"`
	RawWidth        float64          `json:"raw_width"`
	RawThickness    float64          `json:"raw_thickness"`
	Number          string           `json:"number"`
	MaterialName    string           `json:"material_name"`
	MaterialOrigins []MaterialOrigin `json:"material_origins"`
	EntityIDs       []int64          `json:"entity_ids"`
}

// Size returns the finished size of the part.
func (p Part) Size() Size {
	return Size{Length: p.Length, Width: p.Width, Thickness: p.Thickness}
}

// RawSize returns the stock size of the part.
func (p Part) RawSize() Size {
	return Size{Length: p.RawLength, Width: p.RawWidth, Thickness: p.RawThickness}
}

// Group is one material/thickness section of a report.
type Group struct {
	ID                    string       `json:"id"`
	MaterialName          string       `json:"material_name"`
	MaterialType          MaterialType `json:"material_type"`
	PartCount             int          `json:"part_count"`
	RawThickness          float64      `json:"raw_thickness"`
	RawThicknessAvailable bool         `json:"raw_thickness_available"`
	RawArea               float64      `json:"raw_area"`   // sq mm
	RawVolume             float64      `json:"raw_volume"` // cubic mm
	RawAreaM2             float64      `json:"raw_area_m2"`
	RawVolumeM3           float64      `json:"raw_volume_m3"`
	Parts                 []Part       `json:"parts"`
}

// Report is the sorted, numbered result of a cutlist generation.
type Report struct {
	Errors         []string        `json:"errors"`
	Warnings       []string        `json:"warnings"`
	Tips           []string        `json:"tips"`
	Filename       string          `json:"filename"`
	PageLabel      string          `json:"page_label"`
	MaterialUsages []MaterialUsage `json:"material_usages"`
	Groups         []Group         `json:"groups"`
}

// InstanceCount returns the number of part instances across all groups.
func (r Report) InstanceCount() int {
	total := 0
	for _, g := range r.Groups {
		total += g.PartCount
	}
	return total
}

// FindGroup returns the group with the given id, or nil.
func (r *Report) FindGroup(id string) *Group {
	for i := range r.Groups {
		if r.Groups[i].ID == id {
			return &r.Groups[i]
		}
	}
	return nil
}
