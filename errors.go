package halfedge

import "errors"

var (
	// ErrInvalidGeometry is returned when the input arrays can't describe a
	// triangle mesh (length mismatch, dangling index, truncated stream).
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidVertex is returned for a vertex id outside of the topology.
	ErrInvalidVertex = errors.New("vertex out of range")

	// ErrUnresolvedVertex is returned by Star if the vertex has no incident
	// half-edge. Callers usually just skip the request.
	ErrUnresolvedVertex = errors.New("vertex has no incident half-edge")

	// ErrNonManifoldEdge is returned by Build if more than two half-edges
	// share one undirected edge and the config rejects such input.
	ErrNonManifoldEdge = errors.New("non-manifold edge")

	// ErrUnknownMesh is returned by the Scene for names it doesn't hold.
	ErrUnknownMesh = errors.New("unknown mesh")
)
