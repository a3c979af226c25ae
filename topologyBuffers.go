package halfedge

import "github.com/ungerik/go3d/float64/vec4"

// Buffers holds the render-ready arrays of a topology. Positions, Colors and
// Normals have four floats per vertex, Indices one entry per half-edge.
type Buffers struct {
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
}

// NumVertices returns the number of vertices in the buffers.
func (b *Buffers) NumVertices() int {
	return len(b.Positions) / 4
}

// NumTriangles returns the number of triangles to draw.
func (b *Buffers) NumTriangles() int {
	return len(b.Indices) / 3
}

// ExportBuffers flattens the topology into vertex attribute arrays (in
// vertex id order) and an index array (in half-edge order, so three entries
// per face). The topology is left untouched.
func (t *Topology) ExportBuffers() *Buffers {
	b := &Buffers{
		Positions: make([]float32, 0, 4*len(t.Vertices)),
		Colors:    make([]float32, 0, 4*len(t.Vertices)),
		Normals:   make([]float32, 0, 4*len(t.Vertices)),
		Indices:   make([]uint32, 0, len(t.HalfEdges)),
	}
	for i := range t.Vertices {
		v := &t.Vertices[i]
		b.Positions = appendVec4(b.Positions, v.Position)
		b.Colors = appendVec4(b.Colors, v.Color)
		b.Normals = appendVec4(b.Normals, v.Normal)
	}
	for h := range t.HalfEdges {
		b.Indices = append(b.Indices, uint32(t.HalfEdges[h].Origin))
	}
	return b
}

// IndexCount returns the number of indices a draw call of the topology uses.
func (t *Topology) IndexCount() int {
	return 3 * len(t.Faces)
}

func appendVec4(dst []float32, v vec4.T) []float32 {
	return append(dst, float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3]))
}
