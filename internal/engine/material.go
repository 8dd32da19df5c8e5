package engine

import (
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/scene"
)

// ResolveMaterial determines the material of the last entity of path and
// how it was found.
//
// The entity's own material always wins. With smart resolution enabled an
// unpainted entity takes the dominant material of its content, then the
// material of the nearest painted ancestor.
func ResolveMaterial(path scene.Path, smart bool) (*scene.Material, model.MaterialOrigin) {
	e := path.Last()
	if e == nil || !e.Drawable() {
		return nil, model.MaterialOriginUnknown
	}
	if mat := e.Material(); mat != nil {
		return mat, model.MaterialOriginOwned
	}
	if !smart {
		return nil, model.MaterialOriginUnknown
	}
	if mat := dominantChildMaterial(e, 0); mat != nil {
		return mat, model.MaterialOriginChild
	}
	if mat := inheritedMaterial(path); mat != nil {
		return mat, model.MaterialOriginInherited
	}
	return nil, model.MaterialOriginUnknown
}

// dominantChildMaterial votes among the children of a group, or of the
// component being resolved, one vote per child. Nested components keep their
// own material out of the vote. Ties go to the smallest material name.
func dominantChildMaterial(e scene.Entity, level int) *scene.Material {
	switch e.Kind() {
	case scene.KindFace:
		return e.Material()

	case scene.KindGroup, scene.KindInstance:
		var children []scene.Entity
		if e.Kind() == scene.KindInstance {
			if level > 0 || e.Definition() == nil {
				return nil
			}
			children = e.Definition().Entities
		} else {
			children = e.Entities()
		}

		counts := make(map[string]int)
		materials := make(map[string]*scene.Material)
		for _, child := range children {
			mat := dominantChildMaterial(child, level+1)
			if mat == nil {
				continue
			}
			counts[mat.Name]++
			materials[mat.Name] = mat
		}
		if len(counts) == 0 {
			return e.Material()
		}

		var best string
		bestCount := 0
		for name, count := range counts {
			if count > bestCount || (count == bestCount && name < best) {
				best, bestCount = name, count
			}
		}
		return materials[best]
	}
	return nil
}

// inheritedMaterial returns the material of the deepest painted entity of
// path, stopping at the first entity without a material slot.
func inheritedMaterial(path scene.Path) *scene.Material {
	for i := len(path) - 1; i >= 0; i-- {
		e := path[i]
		if !e.Drawable() {
			return nil
		}
		if mat := e.Material(); mat != nil {
			return mat
		}
	}
	return nil
}
