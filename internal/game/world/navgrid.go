package world

import (
	gomath "math"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Ground is the surface a grid is sampled from.
type Ground interface {
	HeightAt(x, z float32) (float32, bool)
	Bounds() geometry.Bounds
}

// CellType classifies a grid cell. Later values take precedence when a
// cell qualifies for several.
type CellType uint8

const (
	CellGrass CellType = iota
	CellForest
	CellSteep
	CellMountain
	CellWater
	CellBlocked
)

// CellTypes lists every cell type in precedence order.
var CellTypes = []CellType{CellGrass, CellForest, CellSteep, CellMountain, CellWater, CellBlocked}

// Cost returns the movement cost multiplier for entering the cell.
func (c CellType) Cost() float32 {
	switch c {
	case CellGrass:
		return 1.0
	case CellForest:
		return 1.5
	case CellSteep, CellMountain:
		return 2.0
	default:
		return float32(gomath.Inf(1))
	}
}

// Walkable reports whether units can enter the cell at all.
func (c CellType) Walkable() bool {
	return c < CellWater
}

func (c CellType) String() string {
	switch c {
	case CellGrass:
		return "grass"
	case CellForest:
		return "forest"
	case CellSteep:
		return "steep"
	case CellMountain:
		return "mountain"
	case CellWater:
		return "water"
	case CellBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// GridConfig controls how a navigation grid is sampled.
// WaterLevel and MountainLevel are fractions of the ground's height range;
// zero disables the class.
type GridConfig struct {
	CellSize      float32 `yaml:"cell_size"`
	SteepSlope    float32 `yaml:"steep_slope"`    // rise over run marking a cell steep
	MaxSlope      float32 `yaml:"max_slope"`      // rise over run blocking a cell
	ForestRadius  float32 `yaml:"forest_radius"`  // distance from a trunk that counts as forest
	WaterLevel    float32 `yaml:"water_level"`    // cells below this are water
	MountainLevel float32 `yaml:"mountain_level"` // cells at or above this are mountain
}

// DefaultGridConfig returns the default sampling settings.
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellSize:      2,
		SteepSlope:    0.6,
		MaxSlope:      1.5,
		ForestRadius:  3,
		WaterLevel:    0.15,
		MountainLevel: 0.8,
	}
}

// NavGrid is a walkability grid laid over the XZ plane.
// Cell (x, y) spans world X [OriginX + x*CellSize, +CellSize) and world Z
// [OriginZ + y*CellSize, +CellSize).
type NavGrid struct {
	Width    int
	Height   int
	CellSize float32
	OriginX  float32
	OriginZ  float32

	// WaterHeight is the world Y of the water surface when HasWater is set.
	WaterHeight float32
	HasWater    bool

	cells   []CellType
	heights []float32
}

// NewNavGrid returns a flat grid of grass cells.
func NewNavGrid(width, height int, cellSize, originX, originZ float32) *NavGrid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	return &NavGrid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		OriginX:  originX,
		OriginZ:  originZ,
		cells:    make([]CellType, width*height),
		heights:  make([]float32, width*height),
	}
}

// BuildNavGrid samples ground and trees into a grid covering the ground's
// XZ bounds.
func BuildNavGrid(ground Ground, trees []terrain.Tree, cfg GridConfig) *NavGrid {
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultGridConfig().CellSize
	}
	b := ground.Bounds()
	cs := cfg.CellSize
	w := int(gomath.Ceil(float64((b.Max[0] - b.Min[0]) / cs)))
	h := int(gomath.Ceil(float64((b.Max[2] - b.Min[2]) / cs)))
	g := NewNavGrid(w, h, cs, b.Min[0], b.Min[2])

	clampX := func(x float32) float32 { return clamp(x, b.Min[0], b.Max[0]) }
	clampZ := func(z float32) float32 { return clamp(z, b.Min[2], b.Max[2]) }

	span := b.Max[1] - b.Min[1]
	classify := span > 0
	waterY := b.Min[1] + cfg.WaterLevel*span
	mountainY := b.Min[1] + cfg.MountainLevel*span
	if classify && cfg.WaterLevel > 0 {
		g.WaterHeight, g.HasWater = waterY, true
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.CellToWorld(x, y)
			cx, cz := clampX(c.X), clampZ(c.Z)
			center, ok := ground.HeightAt(cx, cz)
			if !ok {
				g.set(x, y, CellBlocked)
				continue
			}
			g.heights[g.index(x, y)] = center

			slope := float32(0)
			x0, x1 := clampX(cx-cs/2), clampX(cx+cs/2)
			z0, z1 := clampZ(cz-cs/2), clampZ(cz+cs/2)
			if s, ok := gradient(ground, x0, cz, x1, cz, center); ok && s > slope {
				slope = s
			}
			if s, ok := gradient(ground, cx, z0, cx, z1, center); ok && s > slope {
				slope = s
			}

			switch {
			case cfg.MaxSlope > 0 && slope > cfg.MaxSlope:
				g.set(x, y, CellBlocked)
			case cfg.SteepSlope > 0 && slope > cfg.SteepSlope:
				g.set(x, y, CellSteep)
			}
			if !classify {
				continue
			}
			switch {
			case cfg.WaterLevel > 0 && center < waterY:
				g.set(x, y, CellWater)
			case cfg.MountainLevel > 0 && center >= mountainY:
				g.set(x, y, CellMountain)
			}
		}
	}

	for _, t := range trees {
		g.markTree(t.Position, cfg.ForestRadius)
	}
	return g
}

// gradient returns |dh|/distance between two samples. Missing samples fall
// back to the center height.
func gradient(ground Ground, ax, az, bx, bz, center float32) (float32, bool) {
	dist := float32(gomath.Hypot(float64(bx-ax), float64(bz-az)))
	if dist == 0 {
		return 0, false
	}
	ha, ok := ground.HeightAt(ax, az)
	if !ok {
		ha = center
	}
	hb, ok := ground.HeightAt(bx, bz)
	if !ok {
		hb = center
	}
	return abs32(hb-ha) / dist, true
}

func (g *NavGrid) markTree(p math.Vec3, radius float32) {
	tx, ty, ok := g.WorldToCell(p.X, p.Z)
	if !ok {
		return
	}
	g.set(tx, ty, CellBlocked)

	reach := int(gomath.Ceil(float64(radius / g.CellSize)))
	for y := ty - reach; y <= ty+reach; y++ {
		for x := tx - reach; x <= tx+reach; x++ {
			if !g.InBounds(x, y) {
				continue
			}
			c := g.CellToWorld(x, y)
			dx, dz := c.X-p.X, c.Z-p.Z
			if dx*dx+dz*dz <= radius*radius {
				g.set(x, y, CellForest)
			}
		}
	}
}

// set raises the cell's type; it never downgrades.
func (g *NavGrid) set(x, y int, c CellType) {
	i := g.index(x, y)
	if c > g.cells[i] {
		g.cells[i] = c
	}
}

// SetCell overwrites the cell's type.
func (g *NavGrid) SetCell(x, y int, c CellType) {
	if g.InBounds(x, y) {
		g.cells[g.index(x, y)] = c
	}
}

// Cell returns the cell's type. Cells outside the grid are blocked.
func (g *NavGrid) Cell(x, y int) CellType {
	if !g.InBounds(x, y) {
		return CellBlocked
	}
	return g.cells[g.index(x, y)]
}

// InBounds reports whether (x, y) is a grid cell.
func (g *NavGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsWalkable reports whether the cell can be entered.
func (g *NavGrid) IsWalkable(x, y int) bool {
	return g.Cell(x, y).Walkable()
}

// Cost returns the cost multiplier for entering the cell.
func (g *NavGrid) Cost(x, y int) float32 {
	return g.Cell(x, y).Cost()
}

// WorldToCell returns the cell holding world (x, z).
func (g *NavGrid) WorldToCell(x, z float32) (int, int, bool) {
	cx := int(gomath.Floor(float64((x - g.OriginX) / g.CellSize)))
	cy := int(gomath.Floor(float64((z - g.OriginZ) / g.CellSize)))
	// The far edge belongs to the last cell.
	if cx == g.Width && x <= g.OriginX+float32(g.Width)*g.CellSize {
		cx--
	}
	if cy == g.Height && z <= g.OriginZ+float32(g.Height)*g.CellSize {
		cy--
	}
	return cx, cy, g.InBounds(cx, cy)
}

// CellToWorld returns the center of the cell at its sampled height.
func (g *NavGrid) CellToWorld(x, y int) math.Vec3 {
	p := math.Vec3{
		X: g.OriginX + (float32(x)+0.5)*g.CellSize,
		Z: g.OriginZ + (float32(y)+0.5)*g.CellSize,
	}
	if g.InBounds(x, y) {
		p.Y = g.heights[g.index(x, y)]
	}
	return p
}

// Counts returns how many cells hold each type.
func (g *NavGrid) Counts() map[CellType]int {
	counts := make(map[CellType]int, len(CellTypes))
	for _, c := range g.cells {
		counts[c]++
	}
	return counts
}

// VisibleCells returns the cells in the square of the given radius around
// (cx, cy), clipped to the grid, row by row.
func (g *NavGrid) VisibleCells(cx, cy, radius int) [][2]int {
	if radius < 0 {
		return nil
	}
	x0, x1 := max(0, cx-radius), min(g.Width-1, cx+radius)
	y0, y1 := max(0, cy-radius), min(g.Height-1, cy+radius)
	if x0 > x1 || y0 > y1 {
		return nil
	}
	cells := make([][2]int, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cells = append(cells, [2]int{x, y})
		}
	}
	return cells
}

func (g *NavGrid) index(x, y int) int {
	return y*g.Width + x
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
