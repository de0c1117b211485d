// Package lighting holds the scene light rig: ambient, sun and animated point lights.
package lighting

import "math"

// SunDirection converts a longitude (degrees around Y) and latitude
// (degrees above the horizon) to a unit vector pointing toward the sun.
func SunDirection(longitude, latitude float32) [3]float32 {
	lonRad := float64(longitude) * math.Pi / 180.0
	latRad := float64(latitude) * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}
