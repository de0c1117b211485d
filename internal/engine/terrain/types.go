// Package terrain builds procedural height-field terrain and scatters trees on it.
package terrain

import (
	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/pkg/math"
	"github.com/Faultbox/ironvale/pkg/noise"
)

// Config describes the height-field surface.
type Config struct {
	Width          float32 `yaml:"width"`           // Extent along world X
	Height         float32 `yaml:"height"`          // Extent along world Z
	WidthSegments  int     `yaml:"width_segments"`  // Grid cells along X
	HeightSegments int     `yaml:"height_segments"` // Grid cells along Z
	Scale          float32 `yaml:"scale"`           // Horizontal noise stretch
	MaxHeight      float32 `yaml:"max_height"`      // Elevation ceiling (exclusive)
	Seed           int     `yaml:"seed"`            // Initial surface and placement seed

	Noise noise.Params `yaml:"noise"` // Surface octaves
}

// DefaultConfig returns a 100x100 terrain with 64x64 segments.
func DefaultConfig() Config {
	return Config{
		Width:          100,
		Height:         100,
		WidthSegments:  64,
		HeightSegments: 64,
		Scale:          15,
		MaxHeight:      15,
		Seed:           42,
		Noise:          noise.DefaultParams(),
	}
}

// normalized returns a copy with unusable values replaced.
func (c Config) normalized() Config {
	if c.WidthSegments < 1 {
		c.WidthSegments = 1
	}
	if c.HeightSegments < 1 {
		c.HeightSegments = 1
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.MaxHeight < 0 {
		c.MaxHeight = 0
	}
	if c.Noise.Octaves < 1 {
		c.Noise = noise.DefaultParams()
	}
	return c
}

// TreeConfig describes the shared tree model.
type TreeConfig struct {
	TrunkRadius    float32    `yaml:"trunk_radius"`
	TrunkHeight    float32    `yaml:"trunk_height"`
	FoliageRadius  float32    `yaml:"foliage_radius"`
	FoliageHeight  float32    `yaml:"foliage_height"`
	RadialSegments int        `yaml:"radial_segments"`
	TrunkColor     [3]float32 `yaml:"trunk_color"`
	FoliageColor   [3]float32 `yaml:"foliage_color"`
}

// DefaultTreeConfig returns the standard trunk-and-cone tree.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		TrunkRadius:    0.3,
		TrunkHeight:    2,
		FoliageRadius:  1.5,
		FoliageHeight:  2.5,
		RadialSegments: 8,
		TrunkColor:     [3]float32{0.55, 0.35, 0.17},
		FoliageColor:   [3]float32{0.13, 0.55, 0.13},
	}
}

// Tree is one placed tree instance.
type Tree struct {
	Position math.Vec3 // Base of the trunk
}

// Group is a renderable terrain: the surface plus its trees.
// All trees share TreeMesh and differ only by position.
type Group struct {
	Surface  *Surface
	Trees    []Tree
	TreeMesh *geometry.Mesh
}

// Bounds returns the box covering the surface and every tree.
func (g *Group) Bounds() geometry.Bounds {
	b := g.Surface.Bounds()
	if g.TreeMesh == nil {
		return b
	}
	for _, tree := range g.Trees {
		tb := g.TreeMesh.Bounds
		p := tree.Position
		b.Extend([3]float32{tb.Min[0] + p.X, tb.Min[1] + p.Y, tb.Min[2] + p.Z})
		b.Extend([3]float32{tb.Max[0] + p.X, tb.Max[1] + p.Y, tb.Max[2] + p.Z})
	}
	return b
}

// Stats is a read-only snapshot of the terrain.
type Stats struct {
	VertexCount   int
	TriangleCount int
	TreeCount     int
	Width         float32
	Height        float32
	SurfaceSeed   int
	PlacementSeed int
}
