package world

import (
	"container/heap"
	gomath "math"
)

// Step lengths in cell units.
const (
	straightStep = float32(1.0)
	diagonalStep = float32(1.414)
)

// moves lists the eight neighbour offsets. Diagonals sit at odd indices.
var moves = [8][2]int{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

// frontierItem is a cell waiting in the A* open set.
type frontierItem struct {
	cell  int
	f     float32
	index int
}

// frontier is a min-heap of open cells ordered by estimated total cost.
type frontier []*frontierItem

func (q frontier) Len() int           { return len(q) }
func (q frontier) Less(i, j int) bool { return q[i].f < q[j].f }
func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// PathFinder plans routes across a navigation grid.
type PathFinder struct {
	grid *NavGrid
}

// NewPathFinder returns a pathfinder for grid, or nil for a nil grid.
func NewPathFinder(grid *NavGrid) *PathFinder {
	if grid == nil {
		return nil
	}
	return &PathFinder{grid: grid}
}

// Search runs A* from (sx, sy) to (gx, gy) and returns the cell path with
// its weighted cost. Entering a cell costs the move length times the cell's
// multiplier, and diagonal moves may not cut past an unwalkable corner.
func (pf *PathFinder) Search(sx, sy, gx, gy int) ([][2]int, float32, bool) {
	if pf == nil {
		return nil, 0, false
	}
	g := pf.grid
	if !g.InBounds(sx, sy) || !g.IsWalkable(gx, gy) {
		return nil, 0, false
	}

	n := g.Width * g.Height
	best := make([]float32, n)
	came := make([]int32, n)
	closed := make([]bool, n)
	open := make([]*frontierItem, n)
	inf := float32(gomath.Inf(1))
	for i := range best {
		best[i] = inf
		came[i] = -1
	}

	start, goal := g.index(sx, sy), g.index(gx, gy)
	best[start] = 0
	q := &frontier{}
	open[start] = &frontierItem{cell: start, f: octile(sx, sy, gx, gy)}
	heap.Push(q, open[start])

	for q.Len() > 0 {
		cur := heap.Pop(q).(*frontierItem).cell
		if cur == goal {
			return trace(g, came, goal), best[goal], true
		}
		closed[cur] = true
		open[cur] = nil

		cx, cy := cur%g.Width, cur/g.Width
		for i, m := range moves {
			nx, ny := cx+m[0], cy+m[1]
			if !g.IsWalkable(nx, ny) {
				continue
			}
			next := g.index(nx, ny)
			if closed[next] {
				continue
			}

			step := straightStep
			if i%2 == 1 {
				if !g.IsWalkable(nx, cy) || !g.IsWalkable(cx, ny) {
					continue
				}
				step = diagonalStep
			}

			cost := best[cur] + step*g.Cost(nx, ny)
			if cost >= best[next] {
				continue
			}
			best[next] = cost
			came[next] = int32(cur)

			f := cost + octile(nx, ny, gx, gy)
			if item := open[next]; item != nil {
				item.f = f
				heap.Fix(q, item.index)
			} else {
				open[next] = &frontierItem{cell: next, f: f}
				heap.Push(q, open[next])
			}
		}
	}
	return nil, 0, false
}

// FindPath returns the cheapest cell path from start to goal, or nil when
// the goal cannot be reached.
func (pf *PathFinder) FindPath(startX, startY, goalX, goalY int) [][2]int {
	path, _, _ := pf.Search(startX, startY, goalX, goalY)
	return path
}

// octile is the 8-way distance between two cells. The cheapest cell costs
// 1, so it never overestimates.
func octile(x1, y1, x2, y2 int) float32 {
	dx, dy := abs(x2-x1), abs(y2-y1)
	if dx < dy {
		dx, dy = dy, dx
	}
	return float32(dy)*diagonalStep + float32(dx-dy)
}

// trace walks the came-from links back from goal and returns the path in
// start-to-goal order.
func trace(g *NavGrid, came []int32, goal int) [][2]int {
	var path [][2]int
	for c := int32(goal); c >= 0; c = came[c] {
		path = append(path, [2]int{int(c) % g.Width, int(c) / g.Width})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
