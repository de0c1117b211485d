package terrain

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/picking"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/noise"
)

// Height tint endpoints: lowland grass to highland earth.
var (
	lowColor  = [4]float32{0.24, 0.49, 0.27, 1}
	highColor = [4]float32{0.55, 0.47, 0.36, 1}
)

// Surface is a displaced grid mesh lying in the world XZ plane with Y up.
type Surface struct {
	Mesh *geometry.Mesh

	config Config
	seed   int
	segW   float32
	segH   float32
}

// BuildSurface generates the height-field for cfg using the given noise seed.
//
// The grid is built in the XY plane and each vertex at plane coordinates
// (vx, vy) is raised along +Z by fractal noise sampled at (vx/scale, vy/scale).
// The plane is then rotated -90 degrees about X, mapping (x, y, e) to
// (x, e, -y), so elevation reads as world Y. Normals are recomputed after
// displacement.
func BuildSurface(cfg Config, seed int) *Surface {
	cfg = cfg.normalized()

	mesh := geometry.NewGrid(cfg.Width, cfg.Height, cfg.WidthSegments, cfg.HeightSegments)
	scale := float64(cfg.Scale)

	for i := range mesh.Vertices {
		v := &mesh.Vertices[i]
		vx, vy := v.Position[0], v.Position[1]

		n := noise.Fractal2D(float64(vx)/scale, float64(vy)/scale, cfg.Noise, seed)
		elevation := float32(n) * cfg.MaxHeight

		// RotateX(-90deg), applied exactly.
		v.Position = [3]float32{vx, elevation, -vy}
		v.Color = tint(float32(n))
	}

	mesh.ComputeNormals()
	mesh.ComputeBounds()

	s := &Surface{
		Mesh:   mesh,
		config: cfg,
		seed:   seed,
		segW:   cfg.Width / float32(cfg.WidthSegments),
		segH:   cfg.Height / float32(cfg.HeightSegments),
	}

	logger.Named("terrain").Debug("surface built",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Int("seed", seed),
		zap.Float32("minY", mesh.Bounds.Min[1]),
		zap.Float32("maxY", mesh.Bounds.Max[1]),
	)

	return s
}

func tint(t float32) [4]float32 {
	var c [4]float32
	for i := range c {
		c[i] = lowColor[i] + (highColor[i]-lowColor[i])*t
	}
	return c
}

// Config returns the normalized configuration the surface was built from.
func (s *Surface) Config() Config {
	return s.config
}

// Seed returns the noise seed the surface was built with.
func (s *Surface) Seed() int {
	return s.seed
}

// VertexCount returns the number of grid vertices.
func (s *Surface) VertexCount() int {
	return s.Mesh.VertexCount()
}

// Bounds returns the surface bounding box.
func (s *Surface) Bounds() geometry.Bounds {
	return s.Mesh.Bounds
}

// Raycast returns the nearest intersection of r with the surface.
// Vertical rays only test the grid cells around the ray; other rays test
// every triangle.
func (s *Surface) Raycast(r picking.Ray) (picking.Hit, bool) {
	b := s.Mesh.Bounds
	box := picking.NewAABB(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	if _, ok := r.IntersectAABB(box); !ok {
		return picking.Hit{}, false
	}

	if r.Direction[0] == 0 && r.Direction[2] == 0 {
		return s.raycastColumn(r)
	}

	best := picking.Hit{Distance: gomath.MaxFloat32}
	found := false
	for i := 0; i+2 < len(s.Mesh.Indices); i += 3 {
		if hit, ok := s.triangle(r, i); ok && hit.Distance < best.Distance {
			best, found = hit, true
		}
	}
	return best, found
}

// raycastColumn tests the cell under a vertical ray and its neighbours.
// Neighbours cover rounding at cell edges.
func (s *Surface) raycastColumn(r picking.Ray) (picking.Hit, bool) {
	segX, segY := s.config.WidthSegments, s.config.HeightSegments
	cx := int(gomath.Floor(float64((r.Origin[0] + s.config.Width/2) / s.segW)))
	cz := int(gomath.Floor(float64((r.Origin[2] + s.config.Height/2) / s.segH)))

	best := picking.Hit{Distance: gomath.MaxFloat32}
	found := false
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			ix, iz := cx+dx, cz+dz
			if ix < 0 || iz < 0 || ix >= segX || iz >= segY {
				continue
			}
			// Two triangles (6 indices) per cell, rows ordered by iz.
			base := (iz*segX + ix) * 6
			for _, tri := range [2]int{base, base + 3} {
				if hit, ok := s.triangle(r, tri); ok && hit.Distance < best.Distance {
					best, found = hit, true
				}
			}
		}
	}
	return best, found
}

func (s *Surface) triangle(r picking.Ray, i int) (picking.Hit, bool) {
	idx := s.Mesh.Indices
	v := s.Mesh.Vertices
	return r.IntersectTriangleHit(v[idx[i]].Position, v[idx[i+1]].Position, v[idx[i+2]].Position)
}

// HeightAt returns the surface elevation at world (x, z), or false outside the surface.
func (s *Surface) HeightAt(x, z float32) (float32, bool) {
	ray := picking.Ray{
		Origin:    [3]float32{x, s.Mesh.Bounds.Max[1] + rayHeadroom, z},
		Direction: picking.Down,
	}
	hit, ok := s.Raycast(ray)
	if !ok {
		return 0, false
	}
	return hit.Point[1], true
}
