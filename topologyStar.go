package halfedge

import (
	"fmt"
	"log"

	"github.com/ungerik/go3d/float64/vec4"
)

// Star is the one-ring of a vertex, packaged as a triangle fan.
type Star struct {
	Center    int      // Vertex the star was extracted for
	Vertices  []int    // Center first, then the neighbors in walk order
	Closed    bool     // False if the ring is an open arc along the boundary
	Positions []vec4.T // One entry per element of Vertices
	Normals   []vec4.T // One entry per element of Vertices
	Triangles []int    // Fan triangles, indices into Vertices
}

// NumNeighbors returns the number of ring vertices around the center.
func (s *Star) NumNeighbors() int {
	return len(s.Vertices) - 1
}

// Star returns the ordered neighborhood of vertex v and its fan
// triangulation.
//
// For an interior vertex the ring is closed and follows the orientation of
// the faces. For a boundary vertex the ring is the open arc from one
// boundary edge to the other.
func (t *Topology) Star(v int) (*Star, error) {
	if v < 0 || v >= len(t.Vertices) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidVertex, v, len(t.Vertices))
	}
	h0, ok := t.Incident(v)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnresolvedVertex, v)
	}

	ring, closed := t.circulate(h0)
	s := &Star{
		Center:    v,
		Vertices:  make([]int, 0, len(ring)+1),
		Closed:    closed,
		Positions: make([]vec4.T, 0, len(ring)+1),
		Normals:   make([]vec4.T, 0, len(ring)+1),
	}
	s.Vertices = append(s.Vertices, v)
	s.Vertices = append(s.Vertices, ring...)
	for _, r := range s.Vertices {
		s.Positions = append(s.Positions, t.Vertices[r].Position)
		s.Normals = append(s.Normals, t.Vertices[r].Normal)
	}
	s.Triangles = fanTriangles(len(ring), closed, t.cfg.CloseOpenFans)
	return s, nil
}

// circulate walks around the origin of h0 and returns the neighbor ids.
//
// The walk goes opposite→next, which rotates from face to face around the
// center. If it comes back to h0 the ring is closed. If it hits a half-edge
// without twin, that half-edge is the start of the open arc and the arc is
// collected by rotating the other way (prev→opposite) until the second
// boundary edge is reached.
func (t *Topology) circulate(h0 int) ([]int, bool) {
	maxSteps := len(t.HalfEdges)
	var ring []int
	h := h0
	for step := 0; ; step++ {
		if step > maxSteps {
			log.Printf("ring around vertex %d does not close, giving up after %d steps", t.HalfEdges[h0].Origin, step)
			return ring, false
		}
		ring = append(ring, t.Dest(h))
		op, ok := t.Opposite(h)
		if !ok {
			break
		}
		h = t.HalfEdges[op].Next
		if h == h0 {
			return ring, true
		}
	}

	// h has no twin, so the arc starts with its destination.
	ring = append(ring[:0], t.Dest(h))
	for step := 0; ; step++ {
		if step > maxSteps {
			log.Printf("arc around vertex %d does not end, giving up after %d steps", t.HalfEdges[h0].Origin, step)
			break
		}
		prev := prevHalfEdge(h)
		ring = append(ring, t.HalfEdges[prev].Origin)
		op, ok := t.Opposite(prev)
		if !ok {
			break
		}
		h = op
	}
	return ring, false
}

// fanTriangles triangulates a ring of n neighbors around index 0.
//
// Closed rings get one triangle per neighbor, (0, i, i-1), with the
// predecessor of the first neighbor wrapping to the last one. Open arcs are
// collected the other way round and get the n-1 triangles (0, i-1, i)
// between consecutive neighbors, wound like the faces they replace. With
// bridge set, open arcs also get (0, n, 1) across the open side, wound like
// the rest of the fan.
func fanTriangles(n int, closed, bridge bool) []int {
	if n == 0 {
		return nil
	}
	if closed {
		tris := make([]int, 0, 3*n)
		for i := 1; i <= n; i++ {
			prev := i - 1
			if i == 1 {
				prev = n
			}
			tris = append(tris, 0, i, prev)
		}
		return tris
	}
	var tris []int
	for i := 2; i <= n; i++ {
		tris = append(tris, 0, i-1, i)
	}
	if bridge && n > 1 {
		tris = append(tris, 0, n, 1)
	}
	return tris
}
