package engine

import "github.com/piwi3910/slabcut/internal/scene"

// ComputeBounds returns the box enclosing the faces of a definition,
// including faces inside nested groups. Nested instances are parts of their
// own and do not contribute.
func ComputeBounds(def *scene.Definition) scene.Box {
	if def == nil {
		return scene.Box{}
	}
	return entitiesBounds(def.Entities)
}

func entitiesBounds(entities []scene.Entity) scene.Box {
	var box scene.Box
	for _, e := range entities {
		switch e.Kind() {
		case scene.KindFace:
			box = box.Add(e.Bounds())
		case scene.KindGroup:
			box = box.Add(entitiesBounds(e.Entities()))
		}
	}
	return box
}
