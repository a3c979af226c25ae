// Package halfedge builds a half-edge topology from flat triangle arrays and
// answers adjacency queries on it, most importantly the ordered one-ring
// ("star") around a vertex, which can be turned into a small mesh of its own.
//
// The topology is an arena: vertices, half-edges and faces live in slices and
// reference each other by index. It is built once and never modified, so any
// number of goroutines may query it concurrently.
package halfedge

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec4"
)

// none marks an unset opposite or incident half-edge.
const none = -1

// Vertex is a corner of the mesh.
type Vertex struct {
	ID       int
	Position vec4.T // Homogeneous position, w = 1
	Normal   vec4.T // Direction, w = 0
	Color    vec4.T // RGBA
	halfEdge int    // Incident (outgoing) half-edge or none
}

// HalfEdge is one directed, face-oriented edge.
type HalfEdge struct {
	Origin   int // Vertex the half-edge starts at
	Next     int // Next half-edge around the face
	Face     int
	opposite int // Twin in the adjacent face or none on the boundary
}

// Face is a triangle, represented by its first half-edge.
type Face struct {
	HalfEdge int
}

// Topology is the half-edge structure of a triangle mesh.
type Topology struct {
	Vertices  []Vertex
	HalfEdges []HalfEdge
	Faces     []Face

	nonManifold []EdgeKey // Edges seen more than twice during pairing
	cfg         *Config
}

// Build creates the topology of the triangle mesh given by one position and
// one normal per vertex and a flat list of vertex index triples. Every vertex
// gets the same color.
//
// If cfg is nil, the default configuration is used.
func Build(positions, normals []vec4.T, triangles []int, color vec4.T, cfg *Config) (*Topology, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if err := validateGeometry(positions, normals, triangles); err != nil {
		return nil, err
	}

	t := &Topology{
		Vertices:  make([]Vertex, len(positions)),
		HalfEdges: make([]HalfEdge, len(triangles)),
		Faces:     make([]Face, len(triangles)/3),
		cfg:       cfg,
	}

	// One vertex per input row, ids match the row order.
	for i := range positions {
		t.Vertices[i] = Vertex{
			ID:       i,
			Position: positions[i],
			Normal:   normals[i],
			Color:    color,
			halfEdge: none,
		}
	}

	// Three half-edges per triangle, linked into a cycle.
	for f := range t.Faces {
		for i := 0; i < 3; i++ {
			h := 3*f + i
			t.HalfEdges[h] = HalfEdge{
				Origin:   triangles[h],
				Next:     nextHalfEdge(h),
				Face:     f,
				opposite: none,
			}
		}
		t.Faces[f] = Face{HalfEdge: 3 * f}
	}

	if err := t.computeOpposites(); err != nil {
		return nil, err
	}
	t.computeIncidence()
	return t, nil
}

func validateGeometry(positions, normals []vec4.T, triangles []int) error {
	if len(normals) != len(positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidGeometry, len(normals), len(positions))
	}
	if len(triangles)%3 != 0 {
		return fmt.Errorf("%w: %d triangle indices is not a multiple of 3", ErrInvalidGeometry, len(triangles))
	}
	for i, v := range triangles {
		if v < 0 || v >= len(positions) {
			return fmt.Errorf("%w: triangle index %d at %d out of range [0, %d)", ErrInvalidGeometry, v, i, len(positions))
		}
	}
	return nil
}

// nextHalfEdge returns the half-edge following h in its face. Half-edges of
// face f are 3f, 3f+1 and 3f+2.
func nextHalfEdge(h int) int {
	if h%3 == 2 {
		return h - 2
	}
	return h + 1
}

// prevHalfEdge returns the half-edge preceding h in its face.
func prevHalfEdge(h int) int {
	if h%3 == 0 {
		return h + 2
	}
	return h - 1
}

// NumVertices returns the number of vertices.
func (t *Topology) NumVertices() int {
	return len(t.Vertices)
}

// NumFaces returns the number of triangles.
func (t *Topology) NumFaces() int {
	return len(t.Faces)
}

// Opposite returns the twin of half-edge h. The second return value is false
// if h lies on the boundary.
func (t *Topology) Opposite(h int) (int, bool) {
	o := t.HalfEdges[h].opposite
	return o, o != none
}

// Incident returns the canonical outgoing half-edge of vertex v. If any
// boundary half-edge starts at v, one of those is returned.
func (t *Topology) Incident(v int) (int, bool) {
	h := t.Vertices[v].halfEdge
	return h, h != none
}

// Dest returns the vertex half-edge h points to.
func (t *Topology) Dest(h int) int {
	return t.HalfEdges[t.HalfEdges[h].Next].Origin
}

// IsBoundary returns true if half-edge h has no twin.
func (t *Topology) IsBoundary(h int) bool {
	return t.HalfEdges[h].opposite == none
}

// FaceVertices returns the three vertex ids of face f in winding order.
func (t *Topology) FaceVertices(f int) [3]int {
	h := t.Faces[f].HalfEdge
	var vs [3]int
	for i := range vs {
		vs[i] = t.HalfEdges[h].Origin
		h = t.HalfEdges[h].Next
	}
	return vs
}

// Config returns the configuration the topology was built with.
func (t *Topology) Config() *Config {
	return t.cfg
}
