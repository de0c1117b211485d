package terrain

import (
	"github.com/Faultbox/ironvale/internal/engine/geometry"
)

// BuildTreeMesh builds a trunk cylinder topped with a foliage cone.
// The trunk base sits at y=0.
func BuildTreeMesh(cfg TreeConfig) *geometry.Mesh {
	trunk := geometry.NewCylinder(cfg.TrunkRadius, cfg.TrunkRadius, cfg.TrunkHeight, cfg.RadialSegments)
	trunk.Translate(0, cfg.TrunkHeight/2, 0)
	trunk.SetColor(opaque(cfg.TrunkColor))

	foliage := geometry.NewCone(cfg.FoliageRadius, cfg.FoliageHeight, cfg.RadialSegments)
	foliage.Translate(0, cfg.TrunkHeight+cfg.FoliageHeight/2, 0)
	foliage.SetColor(opaque(cfg.FoliageColor))

	return geometry.Merge(trunk, foliage)
}

func opaque(c [3]float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], 1}
}
