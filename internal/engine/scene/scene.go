// Package scene assembles the camera, lights and node graph of a strategy
// map and hands each frame to a Renderer.
package scene

import (
	"errors"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/camera"
	"github.com/Faultbox/ironvale/internal/engine/lighting"
	"github.com/Faultbox/ironvale/internal/engine/shadow"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

// ErrDisposed is returned when rendering a disposed scene.
var ErrDisposed = errors.New("scene disposed")

// Default camera vantage and projection.
var (
	DefaultCameraPosition = math.Vec3{X: 0, Y: 50, Z: 50}
	SkyColor              = [3]float32{0.53, 0.81, 0.92}
)

const (
	DefaultFOV  = 60
	DefaultNear = 0.1
	DefaultFar  = 1000
)

// Options configure the scene and its renderer.
type Options struct {
	Width            int     `yaml:"width"`  // 0 uses the viewport width
	Height           int     `yaml:"height"` // 0 uses the viewport height
	PixelRatio       float32 `yaml:"pixel_ratio"`
	Antialias        bool    `yaml:"antialias"`
	Shadows          bool    `yaml:"shadows"`
	ShadowResolution int32   `yaml:"shadow_resolution"`
	PlayArea         float32 `yaml:"play_area"` // side of the area shadowed before terrain is set
}

// DefaultOptions enables antialiasing and 2048px shadows at the viewport size.
func DefaultOptions() Options {
	return Options{
		Antialias:        true,
		Shadows:          true,
		ShadowResolution: shadow.DefaultResolution,
	}
}

// Renderer draws frames. Implementations own all GPU resources.
type Renderer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	SetAntialias(enabled bool)
	SetShadows(enabled bool, resolution int32)
	Render(f *Frame) error
	Dispose()
}

// Viewport is the surface the scene is displayed on.
type Viewport interface {
	Size() (width, height int)
	PixelRatio() float32
}

// Fog is linear distance fog.
type Fog struct {
	Color     [3]float32
	Near, Far float32
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	View           math.Mat4
	Projection     math.Mat4
	ViewProj       math.Mat4
	CameraPosition math.Vec3

	Background [3]float32
	Fog        Fog

	Ambient       lighting.Ambient
	Sun           lighting.Sun
	PointLights   *lighting.PointLightBuffer
	Shadows       bool
	LightViewProj math.Mat4

	Nodes []*Node
}

// Scene owns the camera, lights and node graph.
type Scene struct {
	opts     Options
	renderer Renderer
	viewport Viewport

	graph  *Graph
	camera *camera.Perspective
	lights *lighting.Rig

	background   [3]float32
	fog          Fog
	shadowTarget math.Vec3

	width, height int
	disposed      bool
	log           *zap.Logger
}

// New creates a scene drawn by r on vp.
func New(opts Options, r Renderer, vp Viewport) (*Scene, error) {
	if r == nil {
		return nil, errors.New("scene: nil renderer")
	}
	if vp == nil {
		return nil, errors.New("scene: nil viewport")
	}

	s := &Scene{
		opts:       opts,
		renderer:   r,
		viewport:   vp,
		graph:      &Graph{},
		lights:     lighting.NewRig(),
		background: SkyColor,
		fog:        Fog{Color: SkyColor, Near: 100, Far: 500},
		log:        logger.Named("scene"),
	}

	s.width, s.height = opts.Width, opts.Height
	vw, vh := vp.Size()
	if s.width <= 0 {
		s.width = vw
	}
	if s.height <= 0 {
		s.height = vh
	}

	s.camera = camera.NewPerspective(DefaultFOV, aspect(s.width, s.height), DefaultNear, DefaultFar, DefaultCameraPosition)
	s.camera.LookAt(math.Vec3{})

	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = vp.PixelRatio()
	}

	if opts.ShadowResolution > 0 {
		s.lights.Sun.ShadowResolution = opts.ShadowResolution
	}
	if opts.PlayArea > 0 {
		s.lights.FitShadowToArea(opts.PlayArea)
	}

	r.SetPixelRatio(ratio)
	r.SetSize(s.width, s.height)
	r.SetAntialias(opts.Antialias)
	r.SetShadows(opts.Shadows, s.lights.Sun.ShadowResolution)

	s.log.Info("scene created",
		zap.Int("width", s.width),
		zap.Int("height", s.height),
		zap.Float32("pixelRatio", ratio),
		zap.Bool("antialias", opts.Antialias),
		zap.Bool("shadows", opts.Shadows),
	)

	return s, nil
}

func aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Perspective {
	return s.camera
}

// Graph returns the node graph.
func (s *Scene) Graph() *Graph {
	return s.graph
}

// Renderer returns the renderer the scene draws with.
func (s *Scene) Renderer() Renderer {
	return s.renderer
}

// Lights returns the lighting rig.
func (s *Scene) Lights() *lighting.Rig {
	return s.lights
}

// Fog returns the fog settings.
func (s *Scene) Fog() Fog {
	return s.fog
}

// Size returns the drawing size in window units.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Add inserts a node.
func (s *Scene) Add(n *Node) {
	s.graph.Add(n)
}

// Remove detaches a node.
func (s *Scene) Remove(n *Node) bool {
	return s.graph.Remove(n)
}

// ShadowsEnabled reports whether shadow mapping is on.
func (s *Scene) ShadowsEnabled() bool {
	return s.opts.Shadows
}

// SetShadowsEnabled toggles shadow mapping.
func (s *Scene) SetShadowsEnabled(enabled bool) {
	s.opts.Shadows = enabled
	s.renderer.SetShadows(enabled, s.lights.Sun.ShadowResolution)
}

// HandleResize resizes the camera and renderer to the viewport.
func (s *Scene) HandleResize() {
	w, h := s.viewport.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.width, s.height = w, h
	s.camera.SetAspect(aspect(w, h))
	s.renderer.SetPixelRatio(s.viewport.PixelRatio())
	s.renderer.SetSize(w, h)

	s.log.Debug("scene resized", zap.Int("width", w), zap.Int("height", h))
}

// SetIsometricView places the camera distance units out from the origin
// at the given height, rotated angleDeg around Y, looking at the origin.
func (s *Scene) SetIsometricView(distance, height, angleDeg float32) {
	sin, cos := gomath.Sincos(float64(math.Radians(angleDeg)))
	s.camera.SetPosition(math.Vec3{
		X: distance * float32(sin),
		Y: height,
		Z: distance * float32(cos),
	})
	s.camera.LookAt(math.Vec3{})
}

// Update advances time-based effects by dt seconds.
func (s *Scene) Update(dt float32) {
	s.lights.Update(dt)
}

// Frame builds the frame for the current state.
func (s *Scene) Frame() *Frame {
	view := s.camera.ViewMatrix()
	proj := s.camera.ProjectionMatrix()

	f := &Frame{
		View:           view,
		Projection:     proj,
		ViewProj:       proj.Mul(view),
		CameraPosition: s.camera.Position(),
		Background:     s.background,
		Fog:            s.fog,
		Ambient:        s.lights.Ambient,
		Sun:            s.lights.Sun,
		PointLights:    s.lights.Buffer(),
		Shadows:        s.opts.Shadows && s.lights.Sun.CastShadow,
	}
	if f.Shadows {
		f.LightViewProj = s.lights.Sun.LightViewProj(s.shadowTarget)
	}

	for _, n := range s.graph.Nodes() {
		if !n.Hidden && n.Mesh != nil {
			f.Nodes = append(f.Nodes, n)
		}
	}
	return f
}

// Render draws the current frame.
func (s *Scene) Render() error {
	if s.disposed {
		return ErrDisposed
	}
	return s.renderer.Render(s.Frame())
}

// Dispose releases the renderer and empties the graph.
// Calling Dispose more than once has no effect.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.renderer.Dispose()
	s.graph.Clear()
	s.log.Info("scene disposed")
}
