package main

import "github.com/Faultbox/ironvale/internal/engine/terrain"

// dump is the YAML document written by the dump command.
type dump struct {
	Seed      int           `yaml:"seed"`
	Placement int           `yaml:"placement_seed"`
	Width     float32       `yaml:"width"`
	Height    float32       `yaml:"height"`
	Trees     [][3]float32  `yaml:"trees"`
	Heights   *heightSample `yaml:"heights,omitempty"`
}

// heightSample holds surface elevations at every n-th vertex, rows in mesh
// vertex order.
type heightSample struct {
	Every int         `yaml:"every"`
	Rows  [][]float32 `yaml:"rows"`
}

func buildDump(t *terrain.Terrain, every int) dump {
	s := t.Stats()
	d := dump{
		Seed:      s.SurfaceSeed,
		Placement: s.PlacementSeed,
		Width:     s.Width,
		Height:    s.Height,
		Trees:     make([][3]float32, 0, s.TreeCount),
	}
	for _, tree := range t.Trees() {
		d.Trees = append(d.Trees, tree.Position.Array())
	}
	if every <= 0 {
		return d
	}

	cfg := t.Surface().Config()
	cols := cfg.WidthSegments + 1
	verts := t.Surface().Mesh.Vertices
	h := &heightSample{Every: every}
	for iy := 0; iy <= cfg.HeightSegments; iy += every {
		row := make([]float32, 0, cols/every+1)
		for ix := 0; ix < cols; ix += every {
			row = append(row, verts[iy*cols+ix].Position[1])
		}
		h.Rows = append(h.Rows, row)
	}
	d.Heights = h
	return d
}
