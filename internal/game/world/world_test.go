package world

import (
	"errors"
	"testing"

	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/pkg/math"
)

func flatGroup(trees ...terrain.Tree) *terrain.Group {
	cfg := terrain.DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.WidthSegments, cfg.HeightSegments = 10, 10
	cfg.MaxHeight = 0
	return &terrain.Group{
		Surface: terrain.BuildSurface(cfg, 1),
		Trees:   trees,
	}
}

func TestMap_PlanBeforeRebuild(t *testing.T) {
	m := NewMap(DefaultGridConfig())

	_, err := m.Plan(math.Vec3{}, math.Vec3{X: 1})
	if !errors.Is(err, ErrNotBuilt) {
		t.Errorf("Plan() error = %v, want ErrNotBuilt", err)
	}
	if _, _, ok := m.WorldToCell(math.Vec3{}); ok {
		t.Error("WorldToCell() should fail before Rebuild")
	}
}

func TestMap_PlanDiagonal(t *testing.T) {
	m := NewMap(DefaultGridConfig())
	m.Rebuild(flatGroup())

	route, err := m.Plan(math.Vec3{X: -9, Z: -9}, math.Vec3{X: 9, Z: 9})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if route.Len() != 10 {
		t.Errorf("route.Len() = %d, want 10", route.Len())
	}
	// Nine diagonal steps of 2*sqrt(2).
	if l := route.Length(); abs32(l-25.456) > 0.01 {
		t.Errorf("route.Length() = %v, want ~25.456", l)
	}
	if abs32(route.Cost-9*1.414) > 1e-4 {
		t.Errorf("route.Cost = %v, want %v", route.Cost, 9*1.414)
	}
	goal, ok := route.Goal()
	if !ok || goal.X != 9 || goal.Z != 9 || goal.Y != 0 {
		t.Errorf("route.Goal() = %v, %v, want (9, 0, 9)", goal, ok)
	}
}

func TestMap_PlanErrors(t *testing.T) {
	m := NewMap(DefaultGridConfig())
	m.Rebuild(flatGroup(terrain.Tree{Position: math.Vec3{X: 1, Z: 1}}))
	m.Grid().SetCell(8, 1, CellWater)

	tests := []struct {
		name     string
		from, to math.Vec3
		want     error
	}{
		{"start off grid", math.Vec3{X: -50}, math.Vec3{}, ErrOffGrid},
		{"goal off grid", math.Vec3{}, math.Vec3{Z: 50}, ErrOffGrid},
		{"goal on a trunk", math.Vec3{X: -9, Z: -9}, math.Vec3{X: 1, Z: 1}, ErrNoPath},
		{"goal on water", math.Vec3{X: -9, Z: -9}, math.Vec3{X: 7, Z: -7}, ErrNoPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Plan(tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("Plan() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMap_RebuildNil(t *testing.T) {
	m := NewMap(DefaultGridConfig())
	m.Rebuild(flatGroup())
	m.Rebuild(nil)

	if m.Grid() != nil {
		t.Error("Rebuild(nil) should clear the grid")
	}
}

func TestRoute_Empty(t *testing.T) {
	var r Route
	if r.Len() != 0 || r.Length() != 0 {
		t.Errorf("empty route = %d cells, length %v", r.Len(), r.Length())
	}
	if _, ok := r.Goal(); ok {
		t.Error("empty route should have no goal")
	}
}
