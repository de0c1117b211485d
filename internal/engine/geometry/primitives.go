package geometry

import gomath "math"

// NewGrid builds a flat grid in the XY plane centered on the origin, facing +Z.
//
// Vertices are laid out row by row from the top edge (y = height/2) down,
// left to right within a row, giving (segX+1)*(segY+1) vertices. Each cell
// is split into two triangles. Segment counts below 1 are treated as 1.
func NewGrid(width, height float32, segX, segY int) *Mesh {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}

	halfW := width / 2
	halfH := height / 2
	segW := width / float32(segX)
	segH := height / float32(segY)
	cols := segX + 1

	m := &Mesh{
		Vertices: make([]Vertex, 0, cols*(segY+1)),
		Indices:  make([]uint32, 0, segX*segY*6),
	}

	for iy := 0; iy <= segY; iy++ {
		y := float32(iy)*segH - halfH
		for ix := 0; ix <= segX; ix++ {
			x := float32(ix)*segW - halfW
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				Color:    [4]float32{1, 1, 1, 1},
			})
		}
	}

	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}

	m.ComputeBounds()
	return m
}

// NewCylinder builds a capped cylinder along Y, centered on the origin.
// A top radius of zero produces a cone.
func NewCylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	halfH := height / 2
	m := &Mesh{}
	white := [4]float32{1, 1, 1, 1}

	// Side slope for normals: the side leans by (rBottom-rTop) over height.
	slope := float32(0)
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	// Side ring pairs (bottom, top) per segment, seam duplicated.
	for i := 0; i <= radialSegments; i++ {
		theta := float64(i) / float64(radialSegments) * 2 * gomath.Pi
		sin := float32(gomath.Sin(theta))
		cos := float32(gomath.Cos(theta))
		n := normalize([3]float32{sin, slope, cos})

		m.Vertices = append(m.Vertices,
			Vertex{Position: [3]float32{radiusBottom * sin, -halfH, radiusBottom * cos}, Normal: n, Color: white},
			Vertex{Position: [3]float32{radiusTop * sin, halfH, radiusTop * cos}, Normal: n, Color: white},
		)
	}
	for i := 0; i < radialSegments; i++ {
		b0 := uint32(i * 2)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		m.Indices = append(m.Indices, b0, b1, t0, t0, b1, t1)
	}

	addCap(m, radiusBottom, -halfH, radialSegments, false)
	if radiusTop > 0 {
		addCap(m, radiusTop, halfH, radialSegments, true)
	}

	m.ComputeBounds()
	return m
}

// NewCone builds a cone along Y with its base centered below the origin.
func NewCone(radius, height float32, radialSegments int) *Mesh {
	return NewCylinder(0, radius, height, radialSegments)
}

func addCap(m *Mesh, radius, y float32, segments int, up bool) {
	normal := [3]float32{0, -1, 0}
	if up {
		normal = [3]float32{0, 1, 0}
	}
	white := [4]float32{1, 1, 1, 1}

	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{0, y, 0}, Normal: normal, Color: white})
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * gomath.Pi
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{radius * float32(gomath.Sin(theta)), y, radius * float32(gomath.Cos(theta))},
			Normal:   normal,
			Color:    white,
		})
	}
	for i := 0; i < segments; i++ {
		a := center + 1 + uint32(i)
		b := a + 1
		if up {
			m.Indices = append(m.Indices, center, a, b)
		} else {
			m.Indices = append(m.Indices, center, b, a)
		}
	}
}
