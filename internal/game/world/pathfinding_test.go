package world

import "testing"

// mockGrid creates a grass grid with the given cells blocked.
func mockGrid(width, height int, blocked [][2]int) *NavGrid {
	g := NewNavGrid(width, height, 1, 0, 0)
	for _, b := range blocked {
		g.SetCell(b[0], b[1], CellBlocked)
	}
	return g
}

func TestPathFinder_FindPath_Simple(t *testing.T) {
	// 5x5 grid, no obstacles
	grid := mockGrid(5, 5, nil)
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 0, 4, 4)
	if path == nil {
		t.Fatal("expected path, got nil")
	}

	// Path should start at (0,0) and end at (4,4)
	if path[0][0] != 0 || path[0][1] != 0 {
		t.Errorf("path should start at (0,0), got (%d,%d)", path[0][0], path[0][1])
	}

	lastIdx := len(path) - 1
	if path[lastIdx][0] != 4 || path[lastIdx][1] != 4 {
		t.Errorf("path should end at (4,4), got (%d,%d)", path[lastIdx][0], path[lastIdx][1])
	}
}

func TestPathFinder_FindPath_WithObstacle(t *testing.T) {
	// 5x5 grid with wall in the middle
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3},
	}
	grid := mockGrid(5, 5, blocked)
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 2, 4, 2)
	if path == nil {
		t.Fatal("expected path around obstacle, got nil")
	}

	// Verify path doesn't go through blocked cells
	for _, p := range path {
		if p[0] == 2 && p[1] < 4 {
			t.Errorf("path went through blocked cell at (%d,%d)", p[0], p[1])
		}
	}
}

func TestPathFinder_FindPath_NoPath(t *testing.T) {
	// 5x5 grid with complete wall
	blocked := [][2]int{
		{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4},
	}
	grid := mockGrid(5, 5, blocked)
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 2, 4, 2)
	if path != nil {
		t.Errorf("expected no path, got %v", path)
	}
}

func TestPathFinder_FindPath_SameStartGoal(t *testing.T) {
	grid := mockGrid(5, 5, nil)
	pf := NewPathFinder(grid)

	path := pf.FindPath(2, 2, 2, 2)
	if path == nil || len(path) == 0 {
		t.Fatal("expected path with single node")
	}

	if len(path) != 1 {
		t.Errorf("expected path length 1, got %d", len(path))
	}
}

func TestPathFinder_FindPath_OutOfBounds(t *testing.T) {
	grid := mockGrid(5, 5, nil)
	pf := NewPathFinder(grid)

	// Start out of bounds
	path := pf.FindPath(-1, 0, 4, 4)
	if path != nil {
		t.Error("expected nil for out of bounds start")
	}

	// Goal out of bounds
	path = pf.FindPath(0, 0, 10, 10)
	if path != nil {
		t.Error("expected nil for out of bounds goal")
	}
}

func TestPathFinder_FindPath_BlockedGoal(t *testing.T) {
	blocked := [][2]int{{4, 4}}
	grid := mockGrid(5, 5, blocked)
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 0, 4, 4)
	if path != nil {
		t.Error("expected nil for blocked goal")
	}
}

func TestNavGrid_IsWalkable(t *testing.T) {
	grid := mockGrid(5, 5, [][2]int{{2, 2}})
	grid.SetCell(3, 3, CellWater)
	grid.SetCell(1, 1, CellMountain)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 2, false},
		{3, 3, false},
		{1, 1, true},
		{0, 0, true},
		{-1, 0, false},
	}
	for _, tt := range tests {
		if got := grid.IsWalkable(tt.x, tt.y); got != tt.want {
			t.Errorf("IsWalkable(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPathFinder_NilGrid(t *testing.T) {
	if pf := NewPathFinder(nil); pf != nil {
		t.Errorf("NewPathFinder(nil) = %v, want nil", pf)
	}
	var pf *PathFinder
	if path := pf.FindPath(0, 0, 1, 1); path != nil {
		t.Errorf("nil FindPath() = %v, want nil", path)
	}
	if _, _, ok := pf.Search(0, 0, 1, 1); ok {
		t.Error("nil Search() should fail")
	}
}

func TestPathFinder_NoCornerCutting(t *testing.T) {
	// Diagonal from (0,0) to (1,1) squeezes between two blocked cells.
	grid := mockGrid(2, 2, [][2]int{{1, 0}, {0, 1}})
	pf := NewPathFinder(grid)

	if path := pf.FindPath(0, 0, 1, 1); path != nil {
		t.Errorf("FindPath() = %v, want nil", path)
	}
}

func TestPathFinder_AvoidsExpensiveCells(t *testing.T) {
	// Going straight down enters a steep cell; the two diagonals through
	// the grass gap at (1,1) are cheaper.
	grid := mockGrid(3, 3, nil)
	grid.SetCell(0, 1, CellSteep)
	grid.SetCell(2, 1, CellSteep)
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 0, 0, 2)
	want := [][2]int{{0, 0}, {1, 1}, {0, 2}}
	if len(path) != len(want) {
		t.Fatalf("FindPath() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("FindPath()[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestPathFinder_PrefersGrassOverForest(t *testing.T) {
	// Row 0 is forest, row 1 is grass. Going along row 1 and stepping up
	// at the end beats walking the forest row.
	grid := mockGrid(6, 2, nil)
	for x := 1; x < 5; x++ {
		grid.SetCell(x, 0, CellForest)
	}
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 0, 5, 0)
	if path == nil {
		t.Fatal("expected path, got nil")
	}
	for _, p := range path[1 : len(path)-1] {
		if grid.Cell(p[0], p[1]) == CellForest {
			t.Errorf("path entered forest at %v: %v", p, path)
		}
	}
}

func TestPathFinder_SearchCost(t *testing.T) {
	grid := mockGrid(3, 3, [][2]int{{2, 2}})
	grid.SetCell(1, 0, CellForest)
	grid.SetCell(2, 1, CellSteep)
	pf := NewPathFinder(grid)

	tests := []struct {
		name           string
		sx, sy, gx, gy int
		want           float32
		ok             bool
	}{
		{"same cell", 0, 0, 0, 0, 0, true},
		{"straight into forest", 0, 0, 1, 0, 1.5, true},
		{"diagonal into steep", 1, 0, 2, 1, 1.414 * 2, true},
		{"two grass steps", 0, 0, 0, 2, 2, true},
		{"blocked goal", 0, 0, 2, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, got, ok := pf.Search(tt.sx, tt.sy, tt.gx, tt.gy)
			if ok != tt.ok {
				t.Fatalf("Search() ok = %v, want %v (path %v)", ok, tt.ok, path)
			}
			if d := got - tt.want; d > 1e-5 || d < -1e-5 {
				t.Errorf("Search() cost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPathFinder_AvoidsWater(t *testing.T) {
	// A water column with one ford at the bottom row.
	grid := mockGrid(5, 5, nil)
	for y := 0; y < 4; y++ {
		grid.SetCell(2, y, CellWater)
	}
	pf := NewPathFinder(grid)

	path := pf.FindPath(0, 0, 4, 0)
	if path == nil {
		t.Fatal("expected path through the ford, got nil")
	}
	crossed := false
	for _, p := range path {
		if grid.Cell(p[0], p[1]) == CellWater {
			t.Fatalf("path entered water at %v", p)
		}
		if p[0] == 2 && p[1] == 4 {
			crossed = true
		}
	}
	if !crossed {
		t.Errorf("path %v did not use the ford at (2,4)", path)
	}
}
