// Package renderer draws scene frames with OpenGL 4.1 core.
package renderer

import (
	"fmt"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/renderer/shaders"
	"github.com/Faultbox/ironvale/internal/engine/scene"
	"github.com/Faultbox/ironvale/internal/engine/shader"
	"github.com/Faultbox/ironvale/internal/engine/shadow"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

// gpuMesh is a mesh uploaded to GL buffers.
type gpuMesh struct {
	vao, vbo, ebo uint32
	instanceVBO   uint32
	indexCount    int32
	used          bool
}

// Renderer implements scene.Renderer.
type Renderer struct {
	width, height int
	pixelRatio    float32

	lit   *shader.Program
	depth *shader.Program

	shadowsEnabled bool
	shadowRes      int32
	shadowMap      *shadow.Map

	meshes map[*geometry.Mesh]*gpuMesh
	log    *zap.Logger
}

var _ scene.Renderer = (*Renderer)(nil)

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		pixelRatio: 1,
		meshes:     make(map[*geometry.Mesh]*gpuMesh),
		log:        logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.lit, err = shader.New("lit", shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, err
	}
	r.depth, err = shader.New("depth", shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		r.lit.Delete()
		return nil, err
	}

	return r, nil
}

// SetSize sets the drawing size in window units.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// SetPixelRatio sets drawable pixels per window unit.
func (r *Renderer) SetPixelRatio(ratio float32) {
	if ratio > 0 {
		r.pixelRatio = ratio
	}
}

// SetAntialias toggles multisample rasterization.
func (r *Renderer) SetAntialias(enabled bool) {
	if enabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}

// SetShadows toggles shadow mapping, (re)allocating the depth map when the
// resolution changes. Shadows stay off if the map cannot be created.
func (r *Renderer) SetShadows(enabled bool, resolution int32) {
	r.shadowsEnabled = enabled
	if !enabled {
		return
	}
	if r.shadowMap.IsValid() && r.shadowRes == resolution {
		return
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}

	sm, err := shadow.NewMap(resolution)
	if err != nil {
		r.log.Warn("shadows disabled", zap.Error(err))
		r.shadowsEnabled = false
		return
	}
	r.shadowMap = sm
	r.shadowRes = sm.Resolution
}

// Render draws a frame: a depth pass from the sun, then the lit pass.
func (r *Renderer) Render(f *scene.Frame) error {
	for _, m := range r.meshes {
		m.used = false
	}
	for _, n := range f.Nodes {
		r.upload(n.Mesh).used = true
	}

	shadows := f.Shadows && r.shadowsEnabled && r.shadowMap.IsValid()
	if shadows {
		r.shadowPass(f)
	}

	w, h := viewportPixels(r.width, r.height, r.pixelRatio)
	gl.Viewport(0, 0, w, h)
	gl.ClearColor(f.Background[0], f.Background[1], f.Background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	r.lit.Use()
	r.setLitUniforms(f, shadows)
	for _, n := range f.Nodes {
		gl.Uniform1i(r.lit.Uniform("uReceiveShadow"), boolInt(n.ReceiveShadow))
		r.draw(n)
	}
	gl.BindVertexArray(0)

	r.evict()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("render: gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) shadowPass(f *scene.Frame) {
	r.shadowMap.Bind()
	r.depth.Use()
	gl.UniformMatrix4fv(r.depth.Uniform("uLightViewProj"), 1, false, &f.LightViewProj[0])
	for _, n := range f.Nodes {
		if n.CastShadow {
			r.draw(n)
		}
	}
	gl.BindVertexArray(0)
	r.shadowMap.Unbind()
}

func (r *Renderer) setLitUniforms(f *scene.Frame, shadows bool) {
	p := r.lit
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, &f.ViewProj[0])
	gl.UniformMatrix4fv(p.Uniform("uLightViewProj"), 1, false, &f.LightViewProj[0])

	amb := scale3(f.Ambient.Color, f.Ambient.Intensity)
	gl.Uniform3f(p.Uniform("uAmbient"), amb[0], amb[1], amb[2])
	sun := scale3(f.Sun.Color, f.Sun.Intensity)
	gl.Uniform3f(p.Uniform("uSunColor"), sun[0], sun[1], sun[2])
	d := f.Sun.Direction
	gl.Uniform3f(p.Uniform("uSunDir"), d[0], d[1], d[2])

	gl.Uniform1i(p.Uniform("uShadowsEnabled"), boolInt(shadows))
	if shadows {
		r.shadowMap.BindTexture(gl.TEXTURE0)
		gl.Uniform1i(p.Uniform("uShadowMap"), 0)
		gl.Uniform1f(p.Uniform("uShadowTexel"), 1/float32(r.shadowMap.Resolution))
	}

	lights := f.PointLights
	count := int32(0)
	if lights != nil && lights.Count > 0 {
		count = int32(lights.Count)
		positions, colors := lights.Positions(), lights.Colors()
		ranges, intensities := lights.Ranges(), lights.Intensities()
		gl.Uniform3fv(p.Uniform("uPointLightPositions"), count, &positions[0])
		gl.Uniform3fv(p.Uniform("uPointLightColors"), count, &colors[0])
		gl.Uniform1fv(p.Uniform("uPointLightRanges"), count, &ranges[0])
		gl.Uniform1fv(p.Uniform("uPointLightIntensities"), count, &intensities[0])
	}
	gl.Uniform1i(p.Uniform("uPointLightCount"), count)

	c := f.CameraPosition
	gl.Uniform3f(p.Uniform("uCameraPos"), c.X, c.Y, c.Z)
	gl.Uniform3f(p.Uniform("uFogColor"), f.Fog.Color[0], f.Fog.Color[1], f.Fog.Color[2])
	gl.Uniform1f(p.Uniform("uFogNear"), f.Fog.Near)
	gl.Uniform1f(p.Uniform("uFogFar"), f.Fog.Far)
}

// draw uploads the node's instance offsets and issues an instanced draw.
func (r *Renderer) draw(n *scene.Node) {
	m := r.meshes[n.Mesh]
	if m == nil || m.indexCount == 0 {
		return
	}
	offsets := flattenOffsets(n.Instances)
	if len(offsets) == 0 {
		return
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(offsets)*4, gl.Ptr(offsets), gl.STREAM_DRAW)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil, int32(len(offsets)/3))
}

// upload returns the GPU copy of mesh, creating it on first use.
func (r *Renderer) upload(mesh *geometry.Mesh) *gpuMesh {
	if m, ok := r.meshes[mesh]; ok {
		return m
	}

	m := &gpuMesh{indexCount: int32(len(mesh.Indices))}
	r.meshes[mesh] = m
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return m
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	stride := int32(unsafe.Sizeof(geometry.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(shaders.AttribPosition, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(shaders.AttribPosition)
	gl.VertexAttribPointerWithOffset(shaders.AttribNormal, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(shaders.AttribNormal)
	gl.VertexAttribPointerWithOffset(shaders.AttribColor, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(shaders.AttribColor)

	gl.GenBuffers(1, &m.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	gl.VertexAttribPointerWithOffset(shaders.AttribOffset, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(shaders.AttribOffset)
	gl.VertexAttribDivisor(shaders.AttribOffset, 1)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("indices", len(mesh.Indices)),
	)
	return m
}

// evict frees meshes no node referenced this frame.
func (r *Renderer) evict() {
	for mesh, m := range r.meshes {
		if !m.used {
			m.release()
			delete(r.meshes, mesh)
		}
	}
}

func (m *gpuMesh) release() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, buf := range []*uint32{&m.vbo, &m.ebo, &m.instanceVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
}

// Dispose releases every GPU resource the renderer owns.
func (r *Renderer) Dispose() {
	r.log.Info("disposing renderer", zap.Int("meshes", len(r.meshes)))
	for mesh, m := range r.meshes {
		m.release()
		delete(r.meshes, mesh)
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
		r.shadowMap = nil
	}
	if r.lit != nil {
		r.lit.Delete()
	}
	if r.depth != nil {
		r.depth.Delete()
	}
}

// viewportPixels converts a window-unit size to drawable pixels.
func viewportPixels(width, height int, ratio float32) (int32, int32) {
	if ratio <= 0 {
		ratio = 1
	}
	w := int32(gomath.Round(float64(float32(width) * ratio)))
	h := int32(gomath.Round(float64(float32(height) * ratio)))
	return w, h
}

// flattenOffsets packs instance translations; nil means one instance at the origin.
func flattenOffsets(instances []math.Vec3) []float32 {
	if instances == nil {
		return []float32{0, 0, 0}
	}
	out := make([]float32, 0, len(instances)*3)
	for _, p := range instances {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

func scale3(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
