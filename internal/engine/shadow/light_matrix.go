package shadow

import (
	gomath "math"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/pkg/math"
)

// OrthoFrustum is the box a directional light renders into its shadow map,
// in light view space.
type OrthoFrustum struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// DefaultFrustum covers a 200x200 play area.
func DefaultFrustum() OrthoFrustum {
	return OrthoFrustum{
		Left: -100, Right: 100,
		Bottom: -100, Top: 100,
		Near: 0.5, Far: 500,
	}
}

// Projection returns the orthographic projection for the frustum.
func (f OrthoFrustum) Projection() math.Mat4 {
	return math.Ortho(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
}

// LightMatrix returns the light view-projection for a light at lightPos
// aimed at target.
func LightMatrix(lightPos, target math.Vec3, f OrthoFrustum) math.Mat4 {
	up := math.Vec3{Y: 1}
	// Nearly vertical light: Y up would be parallel to the view direction.
	dir := lightPos.Sub(target).Normalize()
	if abs32(dir.Y) > 0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(lightPos, target, up)
	return f.Projection().Mul(view)
}

// Radius returns the distance from the centre of b to a corner.
func Radius(b geometry.Bounds) float32 {
	dx := (b.Max[0] - b.Min[0]) / 2
	dy := (b.Max[1] - b.Min[1]) / 2
	dz := (b.Max[2] - b.Min[2]) / 2
	return sqrt32(dx*dx + dy*dy + dz*dz)
}

// FrustumForBounds returns a frustum enclosing b for a light lightDistance
// away from its centre, padded by a tenth of the radius.
func FrustumForBounds(b geometry.Bounds, lightDistance float32) OrthoFrustum {
	radius := Radius(b)
	half := radius + radius*0.1

	near := lightDistance - half
	if near < 0.5 {
		near = 0.5
	}

	return OrthoFrustum{
		Left: -half, Right: half,
		Bottom: -half, Top: half,
		Near: near, Far: lightDistance + half,
	}
}

func sqrt32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
