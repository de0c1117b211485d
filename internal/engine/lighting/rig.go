package lighting

import (
	gomath "math"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/shadow"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Ambient is uniform light applied to every surface.
type Ambient struct {
	Color     [3]float32
	Intensity float32
}

// Sun is the shadow-casting directional light.
type Sun struct {
	Direction  [3]float32 // Unit vector toward the light
	Color      [3]float32
	Intensity  float32
	CastShadow bool

	// Distance places the shadow camera along Direction from its target.
	Distance         float32
	Frustum          shadow.OrthoFrustum
	ShadowResolution int32
}

// Position returns where the shadow camera sits when aimed at target.
func (s Sun) Position(target math.Vec3) math.Vec3 {
	return target.Add(math.Vec3FromArray(s.Direction).Scale(s.Distance))
}

// LightViewProj returns the shadow camera view-projection aimed at target.
func (s Sun) LightViewProj(target math.Vec3) math.Mat4 {
	return shadow.LightMatrix(s.Position(target), target, s.Frustum)
}

// Pulse animates a point light's intensity as base + amplitude*sin(t*speed + phase).
type Pulse struct {
	Base      float32
	Amplitude float32
	Speed     float32
	Phase     float32
}

// At returns the intensity at elapsed seconds.
func (p Pulse) At(elapsed float32) float32 {
	return p.Base + p.Amplitude*float32(gomath.Sin(float64(elapsed*p.Speed+p.Phase)))
}

// Rig is the fixed scene lighting: one ambient light, one sun and four
// coloured point lights pulsing out of phase.
type Rig struct {
	Ambient Ambient
	Sun     Sun

	points  []PointLight
	pulses  []Pulse
	elapsed float32
	buffer  *PointLightBuffer
}

// Corner light layout.
const (
	cornerOffset = 40
	cornerHeight = 10
	cornerRange  = 60
)

var cornerColors = [4][3]float32{
	{1.0, 0.4, 0.3},
	{0.3, 0.6, 1.0},
	{0.4, 1.0, 0.5},
	{1.0, 0.9, 0.4},
}

// NewRig creates the default light rig.
func NewRig() *Rig {
	r := &Rig{
		Ambient: Ambient{Color: [3]float32{1, 1, 1}, Intensity: 0.4},
		Sun: Sun{
			Direction:        SunDirection(45, 60),
			Color:            [3]float32{1, 0.97, 0.9},
			Intensity:        0.9,
			CastShadow:       true,
			Distance:         150,
			Frustum:          shadow.DefaultFrustum(),
			ShadowResolution: shadow.DefaultResolution,
		},
		buffer: NewPointLightBuffer(),
	}

	corners := [4][2]float32{
		{-cornerOffset, -cornerOffset},
		{cornerOffset, -cornerOffset},
		{-cornerOffset, cornerOffset},
		{cornerOffset, cornerOffset},
	}
	for i, c := range corners {
		pulse := Pulse{Base: 1, Amplitude: 0.5, Speed: 2, Phase: float32(i)}
		r.pulses = append(r.pulses, pulse)
		r.points = append(r.points, PointLight{
			Position:  [3]float32{c[0], cornerHeight, c[1]},
			Color:     cornerColors[i],
			Range:     cornerRange,
			Intensity: pulse.At(0),
		})
	}
	r.buffer.SetLights(r.points)

	return r
}

// Update advances the point light animation by dt seconds.
func (r *Rig) Update(dt float32) {
	r.elapsed += dt
	for i := range r.points {
		r.points[i].Intensity = r.pulses[i].At(r.elapsed)
	}
	r.buffer.SetLights(r.points)
}

// Elapsed returns the animation time in seconds.
func (r *Rig) Elapsed() float32 {
	return r.elapsed
}

// Points returns the point lights with their current intensities.
func (r *Rig) Points() []PointLight {
	return r.points
}

// Buffer returns the point lights packed for GPU upload.
func (r *Rig) Buffer() *PointLightBuffer {
	return r.buffer
}

// FitShadowToArea sizes the sun frustum to a square play area of the given
// side centred on the shadow target.
func (r *Rig) FitShadowToArea(size float32) {
	half := size / 2
	r.Sun.Frustum.Left, r.Sun.Frustum.Right = -half, half
	r.Sun.Frustum.Bottom, r.Sun.Frustum.Top = -half, half
}

// FitShadowToBounds sizes the sun frustum and distance to enclose b.
// Returns the target the shadow camera should aim at.
func (r *Rig) FitShadowToBounds(b geometry.Bounds) math.Vec3 {
	r.Sun.Distance = shadow.Radius(b) * 2
	r.Sun.Frustum = shadow.FrustumForBounds(b, r.Sun.Distance)
	return math.Vec3FromArray(b.Center())
}
