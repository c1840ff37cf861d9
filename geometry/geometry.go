// Package geometry builds the indexed meshes used to draw the ball.
package geometry

import "math"

// Topology is the primitive assembly used to draw a mesh's indices.
type Topology int

const (
	Triangles Topology = iota
	TriangleStrip
)

// Mesh is tightly packed xyz positions plus indices into them.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Topology Topology
}

// VertexCount returns the number of xyz positions in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

const (
	CubeHalfExtent = 0.1
	SphereRadius   = 0.1
	SphereSegments = 20
)

// Cube returns an axis-aligned cube of edge 2*CubeHalfExtent centred at the origin.
func Cube() *Mesh {
	const h = CubeHalfExtent
	return &Mesh{
		Vertices: []float32{
			-h, -h, h,
			h, -h, h,
			h, h, h,
			-h, h, h,
			-h, -h, -h,
			h, -h, -h,
			h, h, -h,
			-h, h, -h,
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0, // front
			1, 5, 6, 6, 2, 1, // right
			7, 6, 5, 5, 4, 7, // back
			4, 0, 3, 3, 7, 4, // left
			4, 5, 1, 1, 0, 4, // bottom
			3, 2, 6, 6, 7, 3, // top
		},
		Topology: Triangles,
	}
}

// Sphere returns a UV sphere of the given radius drawn as one triangle strip
// winding around each latitude band.
func Sphere(radius float32, xSegments, ySegments int) *Mesh {
	m := &Mesh{
		Vertices: make([]float32, 0, (xSegments+1)*(ySegments+1)*3),
		Indices:  make([]uint32, 0, ySegments*(xSegments+1)*2),
		Topology: TriangleStrip,
	}

	for y := 0; y <= ySegments; y++ {
		for x := 0; x <= xSegments; x++ {
			u := float64(x) / float64(xSegments)
			v := float64(y) / float64(ySegments)
			r := float64(radius)
			m.Vertices = append(m.Vertices,
				float32(r*math.Cos(u*2*math.Pi)*math.Sin(v*math.Pi)),
				float32(r*math.Cos(v*math.Pi)),
				float32(r*math.Sin(u*2*math.Pi)*math.Sin(v*math.Pi)),
			)
		}
	}

	stride := uint32(xSegments + 1)
	for y := uint32(0); y < uint32(ySegments); y++ {
		for x := uint32(0); x <= uint32(xSegments); x++ {
			m.Indices = append(m.Indices, y*stride+x, (y+1)*stride+x)
		}
	}
	return m
}

// DefaultSphere is the sphere drawn by the demo.
func DefaultSphere() *Mesh {
	return Sphere(SphereRadius, SphereSegments, SphereSegments)
}
