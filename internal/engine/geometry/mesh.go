// Package geometry provides CPU-side triangle meshes and primitive builders
// shared by terrain generation and the renderer.
package geometry

import gomath "math"

// Vertex is a mesh vertex with the attributes the lit shader consumes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBounds returns inverted bounds that any point will grow.
func EmptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Extend grows the bounds to include p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union returns bounds covering both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	out := b
	out.Extend(other.Min)
	out.Extend(other.Max)
	return out
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Mesh holds indexed triangle data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// ComputeBounds recalculates Bounds from the vertex positions.
func (m *Mesh) ComputeBounds() {
	b := EmptyBounds()
	for i := range m.Vertices {
		b.Extend(m.Vertices[i].Position)
	}
	if len(m.Vertices) == 0 {
		b = Bounds{}
	}
	m.Bounds = b
}

// ComputeNormals recomputes smooth vertex normals from the triangle faces.
// Face normals are accumulated unnormalized, so larger faces weigh more.
func (m *Mesh) ComputeNormals() {
	sums := make([][3]float32, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		a := m.Vertices[ia].Position
		b := m.Vertices[ib].Position
		c := m.Vertices[ic].Position

		n := cross(sub(b, a), sub(c, a))
		for _, idx := range [3]uint32{ia, ib, ic} {
			sums[idx][0] += n[0]
			sums[idx][1] += n[1]
			sums[idx][2] += n[2]
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(sums[i])
	}
}

// Translate offsets every vertex by (x, y, z).
func (m *Mesh) Translate(x, y, z float32) {
	for i := range m.Vertices {
		m.Vertices[i].Position[0] += x
		m.Vertices[i].Position[1] += y
		m.Vertices[i].Position[2] += z
	}
	m.Bounds.Min[0] += x
	m.Bounds.Min[1] += y
	m.Bounds.Min[2] += z
	m.Bounds.Max[0] += x
	m.Bounds.Max[1] += y
	m.Bounds.Max[2] += z
}

// SetColor paints every vertex with c.
func (m *Mesh) SetColor(c [4]float32) {
	for i := range m.Vertices {
		m.Vertices[i].Color = c
	}
}

// Merge combines meshes into one, rebasing indices.
func Merge(meshes ...*Mesh) *Mesh {
	out := &Mesh{}
	for _, src := range meshes {
		if src == nil {
			continue
		}
		base := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, src.Vertices...)
		for _, idx := range src.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	out.ComputeBounds()
	return out
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
