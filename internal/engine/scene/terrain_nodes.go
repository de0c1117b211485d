package scene

import (
	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Node names used for terrain content.
const (
	SurfaceNodeName = "terrain.surface"
	TreesNodeName   = "terrain.trees"
)

// TerrainNodes converts a terrain group into a surface node and an
// instanced tree node.
func TerrainNodes(g *terrain.Group) (surface, trees *Node) {
	surface = &Node{
		Name:          SurfaceNodeName,
		Mesh:          g.Surface.Mesh,
		ReceiveShadow: true,
		CastShadow:    true,
	}

	positions := make([]math.Vec3, len(g.Trees))
	for i, t := range g.Trees {
		positions[i] = t.Position
	}
	trees = &Node{
		Name:          TreesNodeName,
		Mesh:          g.TreeMesh,
		Instances:     positions,
		CastShadow:    true,
		ReceiveShadow: true,
	}

	return surface, trees
}

// SetTerrain replaces any terrain nodes with g and refits the sun's shadow
// frustum to the new content.
func (s *Scene) SetTerrain(g *terrain.Group) {
	for _, name := range []string{SurfaceNodeName, TreesNodeName} {
		if n := s.graph.Find(name); n != nil {
			s.graph.Remove(n)
		}
	}

	surface, trees := TerrainNodes(g)
	s.graph.Add(surface)
	s.graph.Add(trees)

	s.shadowTarget = s.lights.FitShadowToBounds(g.Bounds())
}
