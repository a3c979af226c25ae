package halfedge

import (
	"fmt"
	"log"
	"sort"
)

// EdgeKey identifies an undirected edge by its vertex ids, smaller id first.
type EdgeKey struct {
	A, B int
}

func newEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// edgeKey returns the undirected key of half-edge h.
func (t *Topology) edgeKey(h int) EdgeKey {
	return newEdgeKey(t.HalfEdges[h].Origin, t.Dest(h))
}

// computeOpposites pairs up the half-edges sharing an undirected edge.
//
// The first half-edge of an edge waits in the pending map until the second
// one shows up. Whatever is still pending at the end lies on the boundary.
// A third half-edge of the same edge starts a new pair, so on non-manifold
// input the pairing depends on the face order. Such edges are counted and
// handled according to the configured policy.
func (t *Topology) computeOpposites() error {
	pending := make(map[EdgeKey]int)
	seen := make(map[EdgeKey]int)
	for h := range t.HalfEdges {
		k := t.edgeKey(h)
		seen[k]++
		if op, ok := pending[k]; ok {
			t.HalfEdges[op].opposite = h
			t.HalfEdges[h].opposite = op
			delete(pending, k)
		} else {
			pending[k] = h
		}
	}

	t.nonManifold = t.nonManifold[:0]
	for k, n := range seen {
		if n > 2 {
			t.nonManifold = append(t.nonManifold, k)
		}
	}
	if len(t.nonManifold) == 0 {
		return nil
	}
	sort.Slice(t.nonManifold, func(i, j int) bool {
		if t.nonManifold[i].A != t.nonManifold[j].A {
			return t.nonManifold[i].A < t.nonManifold[j].A
		}
		return t.nonManifold[i].B < t.nonManifold[j].B
	})

	switch t.cfg.NonManifold {
	case NonManifoldReject:
		k := t.nonManifold[0]
		return fmt.Errorf("%w: %d edges shared by more than two faces, first (%d, %d) used %d times",
			ErrNonManifoldEdge, len(t.nonManifold), k.A, k.B, seen[k])
	case NonManifoldWarn:
		log.Printf("%d non-manifold edges, adjacency around them is unreliable", len(t.nonManifold))
		for _, k := range t.nonManifold {
			log.Printf("  edge (%d, %d): %d half-edges", k.A, k.B, seen[k])
		}
	}
	return nil
}

// NonManifoldEdges returns the edges that more than two half-edges share,
// sorted by vertex ids.
func (t *Topology) NonManifoldEdges() []EdgeKey {
	return append([]EdgeKey(nil), t.nonManifold...)
}

// NumBoundaryHalfEdges returns the number of half-edges without twin.
func (t *Topology) NumBoundaryHalfEdges() int {
	var n int
	for h := range t.HalfEdges {
		if t.HalfEdges[h].opposite == none {
			n++
		}
	}
	return n
}
