package world

import (
	gomath "math"

	"github.com/Faultbox/ironvale/pkg/math"
)

// Route is a planned path across the grid.
type Route struct {
	Cells  [][2]int    // Grid cells from start to goal
	Points []math.Vec3 // Cell centers on the ground
	Cost   float32     // Weighted cost in cell units
}

// Len returns the number of waypoints.
func (r Route) Len() int {
	return len(r.Cells)
}

// Length returns the world-space length of the route polyline.
func (r Route) Length() float32 {
	var total float64
	for i := 1; i < len(r.Points); i++ {
		a, b := r.Points[i-1], r.Points[i]
		dx, dy, dz := float64(b.X-a.X), float64(b.Y-a.Y), float64(b.Z-a.Z)
		total += gomath.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	return float32(total)
}

// Goal returns the last waypoint, or false for an empty route.
func (r Route) Goal() (math.Vec3, bool) {
	if len(r.Points) == 0 {
		return math.Vec3{}, false
	}
	return r.Points[len(r.Points)-1], true
}

func newRoute(g *NavGrid, cells [][2]int, cost float32) Route {
	points := make([]math.Vec3, len(cells))
	for i, c := range cells {
		points[i] = g.CellToWorld(c[0], c[1])
	}
	return Route{
		Cells:  cells,
		Points: points,
		Cost:   cost,
	}
}
