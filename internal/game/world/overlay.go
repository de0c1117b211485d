package world

import "github.com/Faultbox/ironvale/internal/engine/geometry"

// overlayColors tint each cell type in the debug overlay. Grass is left out.
var overlayColors = map[CellType][4]float32{
	CellForest:   {0.0, 0.35, 0.0, 1},
	CellSteep:    {0.9, 0.55, 0.1, 1},
	CellMountain: {0.45, 0.4, 0.35, 1},
	CellWater:    {0.1, 0.3, 0.8, 1},
	CellBlocked:  {0.6, 0.0, 0.0, 1},
}

// OverlayMesh builds a quad per non-grass cell, draped over ground and
// lifted by lift. Returns nil when every cell is grass.
func OverlayMesh(g *NavGrid, ground Ground, lift float32) *geometry.Mesh {
	m := &geometry.Mesh{}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			color, ok := overlayColors[g.Cell(x, y)]
			if !ok {
				continue
			}
			center := g.CellToWorld(x, y).Y

			x0 := g.OriginX + float32(x)*g.CellSize
			z0 := g.OriginZ + float32(y)*g.CellSize
			x1, z1 := x0+g.CellSize, z0+g.CellSize

			corner := func(px, pz float32) geometry.Vertex {
				h, ok := ground.HeightAt(px, pz)
				if !ok {
					h = center
				}
				return geometry.Vertex{Position: [3]float32{px, h + lift, pz}, Color: color}
			}

			base := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices,
				corner(x0, z0),
				corner(x1, z0),
				corner(x1, z1),
				corner(x0, z1),
			)
			// Counter-clockwise seen from above (+Y).
			m.Indices = append(m.Indices,
				base, base+3, base+2,
				base, base+2, base+1,
			)
		}
	}
	if len(m.Vertices) == 0 {
		return nil
	}
	m.ComputeNormals()
	m.ComputeBounds()
	return m
}

// waterColor is the translucent tint of the water plane.
var waterColor = [4]float32{0.15, 0.35, 0.75, 0.7}

// WaterMesh builds one upward-facing quad at the grid's water height
// spanning the whole grid. Returns nil when the grid has no water.
func WaterMesh(g *NavGrid) *geometry.Mesh {
	if !g.HasWater || g.Width == 0 || g.Height == 0 {
		return nil
	}
	x0, z0 := g.OriginX, g.OriginZ
	x1 := x0 + float32(g.Width)*g.CellSize
	z1 := z0 + float32(g.Height)*g.CellSize
	y := g.WaterHeight

	vertex := func(x, z float32) geometry.Vertex {
		return geometry.Vertex{
			Position: [3]float32{x, y, z},
			Normal:   [3]float32{0, 1, 0},
			Color:    waterColor,
		}
	}
	m := &geometry.Mesh{
		Vertices: []geometry.Vertex{vertex(x0, z0), vertex(x1, z0), vertex(x1, z1), vertex(x0, z1)},
		Indices:  []uint32{0, 3, 2, 0, 2, 1},
	}
	m.ComputeBounds()
	return m
}
