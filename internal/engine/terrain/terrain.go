package terrain

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/logger"
)

// DefaultDensity is the tree density used when no tree count is requested.
const DefaultDensity = 0.1

// Terrain owns the current surface and the trees placed on it.
type Terrain struct {
	config     Config
	treeConfig TreeConfig

	surface  *Surface
	treeMesh *geometry.Mesh
	trees    []Tree

	placementSeed int
	density       float32

	log *zap.Logger
}

// New builds the initial surface from cfg. Trees are placed by Generate.
func New(cfg Config, trees TreeConfig) *Terrain {
	cfg = cfg.normalized()
	t := &Terrain{
		config:        cfg,
		treeConfig:    trees,
		treeMesh:      BuildTreeMesh(trees),
		placementSeed: cfg.Seed,
		density:       DefaultDensity,
		log:           logger.Named("terrain"),
	}
	t.surface = BuildSurface(cfg, cfg.Seed)
	return t
}

// Generate places trees on the current surface and returns the combined group.
// A positive treeCount sets the density to treeCount per unit area of the
// terrain; otherwise DefaultDensity is used. The placement mask decides the
// final count, so treeCount is a target rather than an exact number.
func (t *Terrain) Generate(treeCount int) *Group {
	if treeCount > 0 {
		t.density = float32(treeCount) / (t.config.Width * t.config.Height)
	} else {
		t.density = DefaultDensity
	}
	return t.place()
}

// Regenerate discards all trees, rebuilds the surface with seed and places
// trees again with the same seed and the last density.
func (t *Terrain) Regenerate(seed int) *Group {
	t.trees = nil
	t.surface = BuildSurface(t.config, seed)
	t.placementSeed = seed
	return t.place()
}

func (t *Terrain) place() *Group {
	region := t.config.Width
	if t.config.Height > region {
		region = t.config.Height
	}

	p := Place(t.surface, region, t.density, t.placementSeed)

	t.trees = make([]Tree, 0, len(p.Anchors))
	for _, a := range p.Anchors {
		t.trees = append(t.trees, Tree{Position: a})
	}

	t.log.Info("trees placed",
		zap.Int("trees", len(t.trees)),
		zap.Int("scanned", p.Scanned),
		zap.Int("dropped", p.Dropped),
		zap.Float32("density", t.density),
		zap.Int("seed", t.placementSeed),
	)

	return t.Group()
}

// Group returns the current surface and trees.
func (t *Terrain) Group() *Group {
	return &Group{
		Surface:  t.surface,
		Trees:    t.trees,
		TreeMesh: t.treeMesh,
	}
}

// Surface returns the current surface.
func (t *Terrain) Surface() *Surface {
	return t.surface
}

// Trees returns the current trees.
func (t *Terrain) Trees() []Tree {
	return t.trees
}

// Stats reports the current terrain.
func (t *Terrain) Stats() Stats {
	return Stats{
		VertexCount:   t.surface.VertexCount(),
		TriangleCount: t.surface.Mesh.TriangleCount(),
		TreeCount:     len(t.trees),
		Width:         t.config.Width,
		Height:        t.config.Height,
		SurfaceSeed:   t.surface.Seed(),
		PlacementSeed: t.placementSeed,
	}
}
