// Package world turns generated terrain into a navigable map.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

var (
	// ErrOffGrid is returned when an endpoint lies outside the grid.
	ErrOffGrid = errors.New("position outside navigation grid")
	// ErrNoPath is returned when the goal cannot be reached.
	ErrNoPath = errors.New("no path")
	// ErrNotBuilt is returned before the first Rebuild.
	ErrNotBuilt = errors.New("navigation grid not built")
)

// Map holds the navigation grid for the current terrain.
type Map struct {
	config GridConfig
	grid   *NavGrid
	finder *PathFinder
	log    *zap.Logger

	deposits map[[2]int]Deposit
}

// NewMap creates a map with no grid. Call Rebuild before planning.
func NewMap(cfg GridConfig) *Map {
	return &Map{
		config: cfg,
		log:    logger.Named("world"),
	}
}

// Rebuild samples a new grid from g. Call it after the terrain regenerates.
func (m *Map) Rebuild(g *terrain.Group) {
	if g == nil || g.Surface == nil {
		m.grid, m.finder, m.deposits = nil, nil, nil
		return
	}
	m.grid = BuildNavGrid(g.Surface, g.Trees, m.config)
	m.finder = NewPathFinder(m.grid)
	m.deposits = spawnDeposits(m.grid, g.Surface.Seed())

	counts := m.grid.Counts()
	m.log.Debug("navigation grid built",
		zap.Int("width", m.grid.Width),
		zap.Int("height", m.grid.Height),
		zap.Int("forest", counts[CellForest]),
		zap.Int("steep", counts[CellSteep]),
		zap.Int("mountain", counts[CellMountain]),
		zap.Int("water", counts[CellWater]),
		zap.Int("blocked", counts[CellBlocked]),
		zap.Int("deposits", len(m.deposits)),
	)
}

// Grid returns the current grid, or nil before Rebuild.
func (m *Map) Grid() *NavGrid {
	return m.grid
}

// Config returns the grid sampling settings.
func (m *Map) Config() GridConfig {
	return m.config
}

// WorldToCell converts a world position to grid coordinates.
func (m *Map) WorldToCell(pos math.Vec3) (int, int, bool) {
	if m.grid == nil {
		return 0, 0, false
	}
	return m.grid.WorldToCell(pos.X, pos.Z)
}

// CellToWorld converts grid coordinates to the cell center.
func (m *Map) CellToWorld(x, y int) math.Vec3 {
	if m.grid == nil {
		return math.Vec3{}
	}
	return m.grid.CellToWorld(x, y)
}

// Plan finds the cheapest route between two world positions.
func (m *Map) Plan(from, to math.Vec3) (Route, error) {
	if m.grid == nil {
		return Route{}, ErrNotBuilt
	}
	sx, sy, ok := m.grid.WorldToCell(from.X, from.Z)
	if !ok {
		return Route{}, fmt.Errorf("start (%.1f, %.1f): %w", from.X, from.Z, ErrOffGrid)
	}
	gx, gy, ok := m.grid.WorldToCell(to.X, to.Z)
	if !ok {
		return Route{}, fmt.Errorf("goal (%.1f, %.1f): %w", to.X, to.Z, ErrOffGrid)
	}

	cells, cost, ok := m.finder.Search(sx, sy, gx, gy)
	if !ok {
		return Route{}, fmt.Errorf("from cell (%d, %d) to (%d, %d): %w", sx, sy, gx, gy, ErrNoPath)
	}
	return newRoute(m.grid, cells, cost), nil
}
