// Package camera provides the strategy-view camera rig and a perspective camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/ironvale/internal/engine/input"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Tick is the assumed frame duration for keyboard movement.
const Tick = float32(1.0 / 60.0)

// Keyboard rates relative to the drag and wheel speeds.
const (
	KeyRotateRate = 100 // Q/E yaw: rotation speed x rate per second
	KeyZoomRate   = 10  // Z/X distance: zoom speed x rate per second
)

// Canonical pose restored by Reset.
const (
	DefaultDistance = 50
	DefaultPitch    = 45
	DefaultYaw      = 0
)

// Camera is the camera a Rig drives.
type Camera interface {
	SetPosition(p math.Vec3)
	LookAt(target math.Vec3)
}

// Constraints bound the rig pose. Pitch limits are in degrees.
type Constraints struct {
	MinZoom  float32 `yaml:"min_zoom"`
	MaxZoom  float32 `yaml:"max_zoom"`
	MinPitch float32 `yaml:"min_pitch"`
	MaxPitch float32 `yaml:"max_pitch"`
}

// DefaultConstraints returns zoom [10, 200] and pitch [15, 85].
func DefaultConstraints() Constraints {
	return Constraints{MinZoom: 10, MaxZoom: 200, MinPitch: 15, MaxPitch: 85}
}

// Speeds scale rig movement. Rotation is radians per dragged pixel.
type Speeds struct {
	Pan      float32 `yaml:"pan"`
	Zoom     float32 `yaml:"zoom"`
	Rotation float32 `yaml:"rotation"`
}

// DefaultSpeeds returns pan 30, zoom 5 and rotation 0.01.
func DefaultSpeeds() Speeds {
	return Speeds{Pan: 30, Zoom: 5, Rotation: 0.01}
}

// ConstraintsUpdate changes selected constraints. Nil fields keep their value.
type ConstraintsUpdate struct {
	MinZoom, MaxZoom   *float32
	MinPitch, MaxPitch *float32
}

// SpeedsUpdate changes selected speeds. Nil fields keep their value.
type SpeedsUpdate struct {
	Pan, Zoom, Rotation *float32
}

// Rig is an RTS orbit/pan camera controller.
//
// The pose is target, distance, pitch and yaw. The camera position is
// derived from the pose on every Update and is never stored.
// Input callbacks only record state; Update applies held keys and
// writes the camera.
type Rig struct {
	camera Camera
	source input.Source

	target   math.Vec3
	distance float32
	pitch    float32 // degrees
	yaw      float32 // radians

	constraints Constraints
	speeds      Speeds

	held        map[input.Key]bool
	pointerDown bool
	lastX       float32
	lastY       float32
}

// NewRig creates a rig focused on target and registers it with src.
// src may be nil for a rig driven only through its setters.
func NewRig(cam Camera, src input.Source, target math.Vec3) *Rig {
	r := &Rig{
		camera:      cam,
		source:      src,
		target:      target,
		distance:    DefaultDistance,
		pitch:       DefaultPitch,
		yaw:         DefaultYaw,
		constraints: DefaultConstraints(),
		speeds:      DefaultSpeeds(),
		held:        make(map[input.Key]bool),
	}
	if src != nil {
		src.AddListener(r)
	}
	r.Update()
	return r
}

// OnKeyDown records a held key.
func (r *Rig) OnKeyDown(key input.Key) {
	r.held[key] = true
}

// OnKeyUp releases a held key.
func (r *Rig) OnKeyUp(key input.Key) {
	delete(r.held, key)
}

// OnPointerDown starts a drag at the pointer position.
func (r *Rig) OnPointerDown(e input.PointerEvent) {
	r.pointerDown = true
	r.lastX, r.lastY = e.X, e.Y
}

// OnPointerUp ends the drag once no button is held.
func (r *Rig) OnPointerUp(e input.PointerEvent) {
	if e.Buttons == 0 {
		r.pointerDown = false
	}
	r.lastX, r.lastY = e.X, e.Y
}

// OnPointerMove rotates on a secondary-button drag and pans on a
// middle-button or shift+primary drag.
func (r *Rig) OnPointerMove(e input.PointerEvent) {
	dx, dy := e.X-r.lastX, e.Y-r.lastY
	r.lastX, r.lastY = e.X, e.Y

	if !r.pointerDown {
		return
	}

	switch {
	case e.Buttons.Has(input.MaskSecondary):
		r.yaw -= dx * r.speeds.Rotation
		r.pitch = r.clampPitch(r.pitch + math.Degrees(dy*r.speeds.Rotation))

	case e.Buttons.Has(input.MaskMiddle),
		e.Buttons.Has(input.MaskPrimary) && e.Mods.Has(input.ModShift):
		scale := (r.distance / 100) * r.speeds.Pan * 0.01
		forward, right := r.axes()
		r.target = r.target.
			Sub(right.Scale(dx * scale)).
			Sub(forward.Scale(dy * scale))
	}
}

// OnWheel zooms by one step per notch.
func (r *Rig) OnWheel(e input.WheelEvent) {
	switch {
	case e.DeltaY > 0:
		r.distance = r.clampDistance(r.distance + r.speeds.Zoom)
	case e.DeltaY < 0:
		r.distance = r.clampDistance(r.distance - r.speeds.Zoom)
	}
}

// Update applies held keys for one tick and positions the camera.
func (r *Rig) Update() {
	forward, right := r.axes()
	step := r.speeds.Pan * Tick

	if r.held[input.KeyW] {
		r.target = r.target.Sub(forward.Scale(step))
	}
	if r.held[input.KeyS] {
		r.target = r.target.Add(forward.Scale(step))
	}
	if r.held[input.KeyA] {
		r.target = r.target.Sub(right.Scale(step))
	}
	if r.held[input.KeyD] {
		r.target = r.target.Add(right.Scale(step))
	}
	if r.held[input.KeyQ] {
		r.yaw += r.speeds.Rotation * KeyRotateRate * Tick
	}
	if r.held[input.KeyE] {
		r.yaw -= r.speeds.Rotation * KeyRotateRate * Tick
	}
	if r.held[input.KeyZ] {
		r.distance = r.clampDistance(r.distance - r.speeds.Zoom*KeyZoomRate*Tick)
	}
	if r.held[input.KeyX] {
		r.distance = r.clampDistance(r.distance + r.speeds.Zoom*KeyZoomRate*Tick)
	}

	if r.camera != nil {
		r.camera.SetPosition(r.Position())
		r.camera.LookAt(r.target)
	}
}

// axes returns the ground-plane forward and right unit vectors for the
// current yaw. Forward points from the target toward the camera.
func (r *Rig) axes() (forward, right math.Vec3) {
	sin, cos := gomath.Sincos(float64(r.yaw))
	forward = math.Vec3{X: float32(sin), Z: float32(cos)}
	right = math.Vec3{X: float32(cos), Z: float32(-sin)}
	return forward, right
}

// Position returns the camera position derived from the current pose.
func (r *Rig) Position() math.Vec3 {
	pitch := float64(math.Radians(r.pitch))
	sinYaw, cosYaw := gomath.Sincos(float64(r.yaw))
	sinPitch, cosPitch := gomath.Sincos(pitch)

	offset := math.Vec3{
		X: float32(sinYaw * cosPitch),
		Y: float32(sinPitch),
		Z: float32(cosYaw * cosPitch),
	}
	return r.target.Add(offset.Scale(r.distance))
}

// Target returns the focus point.
func (r *Rig) Target() math.Vec3 {
	return r.target
}

// SetTarget moves the focus point.
func (r *Rig) SetTarget(t math.Vec3) {
	r.target = t
}

// Distance returns the camera distance from the target.
func (r *Rig) Distance() float32 {
	return r.distance
}

// Zoom returns the zoom level in [0, 1]; 0 is fully out, 1 fully in.
func (r *Rig) Zoom() float32 {
	span := r.constraints.MaxZoom - r.constraints.MinZoom
	if span <= 0 {
		return 1
	}
	return (r.constraints.MaxZoom - r.distance) / span
}

// SetZoom sets the zoom level, clamped to [0, 1].
func (r *Rig) SetZoom(z float32) {
	z = math.Clamp(z, 0, 1)
	span := r.constraints.MaxZoom - r.constraints.MinZoom
	r.distance = r.clampDistance(r.constraints.MaxZoom - z*span)
}

// Pitch returns the pitch in degrees.
func (r *Rig) Pitch() float32 {
	return r.pitch
}

// SetPitch sets the pitch in degrees, clamped to the constraints.
func (r *Rig) SetPitch(deg float32) {
	r.pitch = r.clampPitch(deg)
}

// Yaw returns the yaw in radians.
func (r *Rig) Yaw() float32 {
	return r.yaw
}

// SetYaw sets the yaw in radians. Yaw is not clamped.
func (r *Rig) SetYaw(rad float32) {
	r.yaw = rad
}

// Constraints returns the current pose limits.
func (r *Rig) Constraints() Constraints {
	return r.constraints
}

// SetConstraints applies the non-nil fields of u and re-clamps the pose.
func (r *Rig) SetConstraints(u ConstraintsUpdate) {
	if u.MinZoom != nil {
		r.constraints.MinZoom = *u.MinZoom
	}
	if u.MaxZoom != nil {
		r.constraints.MaxZoom = *u.MaxZoom
	}
	if u.MinPitch != nil {
		r.constraints.MinPitch = *u.MinPitch
	}
	if u.MaxPitch != nil {
		r.constraints.MaxPitch = *u.MaxPitch
	}
	r.distance = r.clampDistance(r.distance)
	r.pitch = r.clampPitch(r.pitch)
}

// Speeds returns the current movement speeds.
func (r *Rig) Speeds() Speeds {
	return r.speeds
}

// SetSpeeds applies the non-nil fields of u.
func (r *Rig) SetSpeeds(u SpeedsUpdate) {
	if u.Pan != nil {
		r.speeds.Pan = *u.Pan
	}
	if u.Zoom != nil {
		r.speeds.Zoom = *u.Zoom
	}
	if u.Rotation != nil {
		r.speeds.Rotation = *u.Rotation
	}
}

// Held reports whether key is currently held.
func (r *Rig) Held(key input.Key) bool {
	return r.held[key]
}

// HeldCount returns the number of held keys.
func (r *Rig) HeldCount() int {
	return len(r.held)
}

// Reset restores the canonical pose and clears held keys and drag state.
// The target is kept.
func (r *Rig) Reset() {
	r.distance = r.clampDistance(DefaultDistance)
	r.pitch = r.clampPitch(DefaultPitch)
	r.yaw = DefaultYaw
	clear(r.held)
	r.pointerDown = false
}

// Dispose detaches the rig from its input source.
func (r *Rig) Dispose() {
	if r.source != nil {
		r.source.RemoveListener(r)
		r.source = nil
	}
	clear(r.held)
	r.pointerDown = false
}

func (r *Rig) clampDistance(d float32) float32 {
	return math.Clamp(d, r.constraints.MinZoom, r.constraints.MaxZoom)
}

func (r *Rig) clampPitch(p float32) float32 {
	return math.Clamp(p, r.constraints.MinPitch, r.constraints.MaxPitch)
}
