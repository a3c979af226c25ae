package halfedge

import (
	"log"

	"github.com/Flokey82/halfedge/various"
)

// Degrees returns the number of ring neighbors of every vertex, or -1 for
// vertices that aren't part of any face. The rings are walked in parallel.
func (t *Topology) Degrees() []int {
	deg := make([]int, len(t.Vertices))
	various.KickOffChunkWorkers(len(t.Vertices), func(start, end int) {
		for v := start; v < end; v++ {
			h0, ok := t.Incident(v)
			if !ok {
				deg[v] = -1
				continue
			}
			ring, _ := t.circulate(h0)
			deg[v] = len(ring)
		}
	})
	return deg
}

// LogStats logs the size of the topology and how much of it is boundary.
func (t *Topology) LogStats() {
	var isolated, boundary int
	for v := range t.Vertices {
		h, ok := t.Incident(v)
		if !ok {
			isolated++
		} else if t.IsBoundary(h) {
			boundary++
		}
	}
	log.Printf("%d vertices, %d faces, %d half-edges", len(t.Vertices), len(t.Faces), len(t.HalfEdges))
	log.Printf("  %d boundary half-edges, %d boundary vertices, %d isolated vertices",
		t.NumBoundaryHalfEdges(), boundary, isolated)
	if len(t.nonManifold) > 0 {
		log.Printf("  %d non-manifold edges", len(t.nonManifold))
	}
}
