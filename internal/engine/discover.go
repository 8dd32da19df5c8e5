package engine

import "github.com/piwi3910/slabcut/internal/scene"

// Discover walks entities depth first and returns the paths of the
// components that bound solid geometry. A component claims the faces below
// it, so an enclosing component is only listed when it adds faces of its own.
func Discover(entities []scene.Entity, base scene.Path) []scene.Path {
	var paths []scene.Path
	for _, e := range entities {
		_, found := discover(e, base)
		paths = append(paths, found...)
	}
	return paths
}

// discover returns the number of unclaimed faces under e and the component
// paths found there.
func discover(e scene.Entity, path scene.Path) (int, []scene.Path) {
	if !e.Visible() || !e.LayerVisible() {
		return 0, nil
	}

	switch e.Kind() {
	case scene.KindFace:
		return 1, nil

	case scene.KindGroup:
		return discoverChildren(e.Entities(), path.Extend(e))

	case scene.KindInstance:
		def := e.Definition()
		if def == nil {
			return 0, nil
		}
		own := path.Extend(e)
		faces, paths := discoverChildren(def.Entities, own)
		if faces > 0 && ComputeBounds(def).Solid() {
			return 0, append(paths, own)
		}
		return faces, paths
	}
	return 0, nil
}

func discoverChildren(children []scene.Entity, path scene.Path) (int, []scene.Path) {
	total := 0
	var paths []scene.Path
	for _, child := range children {
		faces, found := discover(child, path)
		total += faces
		paths = append(paths, found...)
	}
	return total, paths
}
