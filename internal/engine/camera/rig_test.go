package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/ironvale/internal/engine/input"
	"github.com/Faultbox/ironvale/pkg/math"
)

// fakeCamera records what the rig writes.
type fakeCamera struct {
	position math.Vec3
	target   math.Vec3
	writes   int
}

func (c *fakeCamera) SetPosition(p math.Vec3) { c.position = p; c.writes++ }
func (c *fakeCamera) LookAt(t math.Vec3)      { c.target = t }

func newTestRig() (*Rig, *fakeCamera, *input.Dispatcher) {
	cam := &fakeCamera{}
	d := input.NewDispatcher()
	return NewRig(cam, d, math.Vec3{}), cam, d
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func nearVec(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestZoomRoundTrip(t *testing.T) {
	r, _, _ := newTestRig()

	tests := []struct {
		set      float32
		want     float32
		distance float32
	}{
		{0, 0, 200},
		{1, 1, 10},
		{0.5, 0.5, 105},
		{-3, 0, 200},
		{7, 1, 10},
	}

	for _, tt := range tests {
		r.SetZoom(tt.set)
		if got := r.Zoom(); !near(got, tt.want) {
			t.Errorf("SetZoom(%v); Zoom() = %v, want %v", tt.set, got, tt.want)
		}
		if !near(r.Distance(), tt.distance) {
			t.Errorf("SetZoom(%v); Distance() = %v, want %v", tt.set, r.Distance(), tt.distance)
		}

		// Setting the reported zoom again must not move the camera.
		d := r.Distance()
		r.SetZoom(r.Zoom())
		if !near(r.Distance(), d) {
			t.Errorf("SetZoom(Zoom()) moved distance %v -> %v", d, r.Distance())
		}
	}
}

func TestSetPitchClamps(t *testing.T) {
	r, _, _ := newTestRig()

	tests := []struct {
		set, want float32
	}{
		{200, 85},
		{-50, 15},
		{30, 30},
		{85, 85},
	}
	for _, tt := range tests {
		r.SetPitch(tt.set)
		if got := r.Pitch(); got != tt.want {
			t.Errorf("SetPitch(%v); Pitch() = %v, want %v", tt.set, got, tt.want)
		}
	}
}

func TestSetYawUnclamped(t *testing.T) {
	r, _, _ := newTestRig()
	r.SetYaw(100)
	if r.Yaw() != 100 {
		t.Errorf("Yaw() = %v, want 100", r.Yaw())
	}
}

func TestReset(t *testing.T) {
	r, _, d := newTestRig()
	d.KeyDown(input.KeyW)
	d.KeyDown(input.KeyQ)
	r.SetZoom(1)
	r.SetPitch(70)
	r.SetYaw(2)

	r.Reset()

	if r.Distance() != 50 || r.Pitch() != 45 || r.Yaw() != 0 {
		t.Errorf("after Reset() pose = (%v, %v, %v), want (50, 45, 0)", r.Distance(), r.Pitch(), r.Yaw())
	}
	if r.HeldCount() != 0 {
		t.Errorf("after Reset() HeldCount() = %d, want 0", r.HeldCount())
	}
}

func TestPositionDerivedFromPose(t *testing.T) {
	r, cam, _ := newTestRig()
	r.SetTarget(math.Vec3{X: 5, Y: 1, Z: -3})
	r.SetPitch(45)
	r.SetYaw(float32(gomath.Pi / 2))
	r.Update()

	h := float32(50 * gomath.Cos(gomath.Pi/4))
	want := math.Vec3{X: 5 + h, Y: 1 + h, Z: -3}
	if !nearVec(cam.position, want) {
		t.Errorf("camera position = %v, want %v", cam.position, want)
	}
	if cam.target != r.Target() {
		t.Errorf("camera target = %v, want %v", cam.target, r.Target())
	}
	if !nearVec(r.Position(), cam.position) {
		t.Errorf("Position() = %v, camera has %v", r.Position(), cam.position)
	}
}

func TestInputDefersCameraWrite(t *testing.T) {
	r, cam, d := newTestRig()
	writes := cam.writes

	d.KeyDown(input.KeyW)
	d.Wheel(input.WheelEvent{DeltaY: 1})
	if cam.writes != writes {
		t.Fatal("input handler wrote the camera before Update")
	}

	r.Update()
	if cam.writes != writes+1 {
		t.Errorf("Update() wrote camera %d times, want 1", cam.writes-writes)
	}
}

func TestKeyboardMovement(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math.Vec3
	}{
		{input.KeyW, math.Vec3{Z: -0.5}},
		{input.KeyS, math.Vec3{Z: 0.5}},
		{input.KeyA, math.Vec3{X: -0.5}},
		{input.KeyD, math.Vec3{X: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			r, _, d := newTestRig()
			d.KeyDown(tt.key)
			r.Update()
			if !nearVec(r.Target(), tt.want) {
				t.Errorf("Target() = %v, want %v", r.Target(), tt.want)
			}

			d.KeyUp(tt.key)
			r.Update()
			if !nearVec(r.Target(), tt.want) {
				t.Errorf("Target() moved after key release: %v", r.Target())
			}
		})
	}
}

func TestKeyboardRotateAndZoom(t *testing.T) {
	r, _, d := newTestRig()

	d.KeyDown(input.KeyQ)
	r.Update()
	if want := float32(0.01 * KeyRotateRate / 60.0); !near(r.Yaw(), want) {
		t.Errorf("Q: Yaw() = %v, want %v", r.Yaw(), want)
	}
	d.KeyUp(input.KeyQ)

	d.KeyDown(input.KeyZ)
	r.Update()
	if want := float32(50 - 5*KeyZoomRate/60.0); !near(r.Distance(), want) {
		t.Errorf("Z: Distance() = %v, want %v", r.Distance(), want)
	}
	d.KeyUp(input.KeyZ)

	d.KeyDown(input.KeyX)
	for i := 0; i < 10000; i++ {
		r.Update()
	}
	if r.Distance() != 200 {
		t.Errorf("X held: Distance() = %v, want clamp at 200", r.Distance())
	}
}

func TestRightDragRotates(t *testing.T) {
	r, _, d := newTestRig()

	d.PointerDown(input.PointerEvent{X: 100, Y: 100, Button: input.ButtonSecondary, Buttons: input.MaskSecondary})
	d.PointerMove(input.PointerEvent{X: 110, Y: 105, Buttons: input.MaskSecondary})

	if !near(r.Yaw(), -0.1) {
		t.Errorf("Yaw() = %v, want -0.1", r.Yaw())
	}
	if want := 45 + math.Degrees(0.05); !near(r.Pitch(), want) {
		t.Errorf("Pitch() = %v, want %v", r.Pitch(), want)
	}

	d.PointerMove(input.PointerEvent{X: 110, Y: 10000, Buttons: input.MaskSecondary})
	if r.Pitch() != 85 {
		t.Errorf("Pitch() = %v, want clamp at 85", r.Pitch())
	}
}

func TestPanDrag(t *testing.T) {
	tests := []struct {
		name    string
		buttons input.ButtonMask
		mods    input.Modifiers
		pans    bool
	}{
		{"middle", input.MaskMiddle, 0, true},
		{"shift primary", input.MaskPrimary, input.ModShift, true},
		{"plain primary", input.MaskPrimary, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, d := newTestRig()
			d.PointerDown(input.PointerEvent{X: 0, Y: 0, Buttons: tt.buttons, Mods: tt.mods})
			d.PointerMove(input.PointerEvent{X: 20, Y: 10, Buttons: tt.buttons, Mods: tt.mods})

			// distance 50: 0.5 * 30 * 0.01 = 0.15 per pixel, opposite to the drag.
			want := math.Vec3{}
			if tt.pans {
				want = math.Vec3{X: -3, Z: -1.5}
			}
			if !nearVec(r.Target(), want) {
				t.Errorf("Target() = %v, want %v", r.Target(), want)
			}
		})
	}
}

func TestMoveWithoutPressIgnored(t *testing.T) {
	r, _, d := newTestRig()
	d.PointerMove(input.PointerEvent{X: 50, Y: 50, Buttons: input.MaskSecondary})
	if r.Yaw() != 0 || r.Pitch() != 45 {
		t.Errorf("pose changed without pointer down: yaw %v pitch %v", r.Yaw(), r.Pitch())
	}

	d.PointerDown(input.PointerEvent{X: 0, Y: 0, Buttons: input.MaskSecondary})
	d.PointerUp(input.PointerEvent{X: 0, Y: 0})
	d.PointerMove(input.PointerEvent{X: 50, Y: 50, Buttons: input.MaskSecondary})
	if r.Yaw() != 0 {
		t.Errorf("pose changed after pointer up: yaw %v", r.Yaw())
	}
}

func TestWheelZoom(t *testing.T) {
	r, _, d := newTestRig()

	d.Wheel(input.WheelEvent{DeltaY: 3})
	if r.Distance() != 55 {
		t.Errorf("wheel toward user: Distance() = %v, want 55", r.Distance())
	}
	d.Wheel(input.WheelEvent{DeltaY: -1})
	d.Wheel(input.WheelEvent{DeltaY: -1})
	if r.Distance() != 45 {
		t.Errorf("wheel away: Distance() = %v, want 45", r.Distance())
	}
	for i := 0; i < 100; i++ {
		d.Wheel(input.WheelEvent{DeltaY: -1})
	}
	if r.Distance() != 10 {
		t.Errorf("Distance() = %v, want clamp at 10", r.Distance())
	}
}

func TestSetConstraintsPartial(t *testing.T) {
	r, _, _ := newTestRig()
	maxPitch := float32(40)
	minZoom := float32(60)

	r.SetConstraints(ConstraintsUpdate{MaxPitch: &maxPitch, MinZoom: &minZoom})

	c := r.Constraints()
	want := Constraints{MinZoom: 60, MaxZoom: 200, MinPitch: 15, MaxPitch: 40}
	if c != want {
		t.Errorf("Constraints() = %+v, want %+v", c, want)
	}
	if r.Pitch() != 40 || r.Distance() != 60 {
		t.Errorf("pose = (%v, %v), want re-clamped (60, 40)", r.Distance(), r.Pitch())
	}
}

func TestSetSpeedsPartial(t *testing.T) {
	r, _, _ := newTestRig()
	zoom := float32(12)
	r.SetSpeeds(SpeedsUpdate{Zoom: &zoom})

	want := Speeds{Pan: 30, Zoom: 12, Rotation: 0.01}
	if r.Speeds() != want {
		t.Errorf("Speeds() = %+v, want %+v", r.Speeds(), want)
	}
}

func TestDisposeDetaches(t *testing.T) {
	r, _, d := newTestRig()
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}

	r.Dispose()
	if d.Len() != 0 {
		t.Fatalf("after Dispose() Len() = %d, want 0", d.Len())
	}

	d.KeyDown(input.KeyW)
	r.Update()
	if r.Held(input.KeyW) || r.Target() != (math.Vec3{}) {
		t.Error("disposed rig still reacts to input")
	}
}

func TestPerspective(t *testing.T) {
	p := NewPerspective(60, 16.0/9.0, 0.1, 1000, math.Vec3{Y: 50, Z: 50})
	p.LookAt(math.Vec3{})

	// Target projects to the centre of the screen.
	clip := p.ViewProjection().MulVec4(math.Vec4{0, 0, 0, 1})
	if !near(clip[0]/clip[3], 0) || !near(clip[1]/clip[3], 0) {
		t.Errorf("target clip = (%v, %v), want (0, 0)", clip[0]/clip[3], clip[1]/clip[3])
	}

	p.SetAspect(0)
	if !near(p.Aspect, 16.0/9.0) {
		t.Errorf("SetAspect(0) changed aspect to %v", p.Aspect)
	}
	p.SetAspect(2)
	if p.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", p.Aspect)
	}
}
