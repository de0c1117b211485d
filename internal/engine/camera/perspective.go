package camera

import (
	"github.com/Faultbox/ironvale/pkg/math"
)

// Perspective is a perspective-projection camera with Y up.
type Perspective struct {
	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	position math.Vec3
	target   math.Vec3
}

// NewPerspective creates a camera at position looking at the origin.
func NewPerspective(fov, aspect, near, far float32, position math.Vec3) *Perspective {
	return &Perspective{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		position: position,
	}
}

// SetPosition moves the camera.
func (p *Perspective) SetPosition(pos math.Vec3) {
	p.position = pos
}

// Position returns the camera position.
func (p *Perspective) Position() math.Vec3 {
	return p.position
}

// LookAt points the camera at target.
func (p *Perspective) LookAt(target math.Vec3) {
	p.target = target
}

// Target returns the point the camera looks at.
func (p *Perspective) Target() math.Vec3 {
	return p.target
}

// SetAspect updates the aspect ratio, ignoring degenerate values.
func (p *Perspective) SetAspect(aspect float32) {
	if aspect > 0 {
		p.Aspect = aspect
	}
}

// ViewMatrix returns the world-to-camera transform.
func (p *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(p.position, p.target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the camera-to-clip transform.
func (p *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(p.FOV), p.Aspect, p.Near, p.Far)
}

// ViewProjection returns projection * view.
func (p *Perspective) ViewProjection() math.Mat4 {
	return p.ProjectionMatrix().Mul(p.ViewMatrix())
}
