package halfedge

// computeIncidence assigns every vertex an outgoing half-edge.
//
// A boundary half-edge wins over an interior one, so a star walk starting
// there runs into the open side of the ring instead of silently wrapping.
func (t *Topology) computeIncidence() {
	for h := range t.HalfEdges {
		v := t.HalfEdges[h].Origin
		if t.Vertices[v].halfEdge == none || t.HalfEdges[h].opposite == none {
			t.Vertices[v].halfEdge = h
		}
	}
}
