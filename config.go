package halfedge

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec4"
)

// Colors used for loaded models and for derived star meshes.
var (
	MeshColor = vec4.T{0.0, 0.7, 1.0, 1.0}
	StarColor = vec4.T{1.0, 0.0, 0.0, 1.0}
)

// NonManifoldPolicy decides what Build does when an undirected edge is
// shared by more than two half-edges.
type NonManifoldPolicy int

const (
	NonManifoldWarn   NonManifoldPolicy = iota // Log the edges and keep the pairing.
	NonManifoldIgnore                          // Keep the pairing without a word.
	NonManifoldReject                          // Fail with ErrNonManifoldEdge.
)

// String returns the flag name of the policy.
func (p NonManifoldPolicy) String() string {
	switch p {
	case NonManifoldWarn:
		return "warn"
	case NonManifoldIgnore:
		return "ignore"
	case NonManifoldReject:
		return "reject"
	}
	return fmt.Sprintf("NonManifoldPolicy(%d)", int(p))
}

// ParseNonManifoldPolicy is the inverse of NonManifoldPolicy.String.
func ParseNonManifoldPolicy(s string) (NonManifoldPolicy, error) {
	switch s {
	case "warn":
		return NonManifoldWarn, nil
	case "ignore":
		return NonManifoldIgnore, nil
	case "reject":
		return NonManifoldReject, nil
	}
	return 0, fmt.Errorf("unknown non-manifold policy %q", s)
}

// Config is a struct that holds all options for topology construction and
// star extraction.
type Config struct {
	NonManifold   NonManifoldPolicy // Handling of edges shared by more than two faces
	CloseOpenFans bool              // Bridge the gap of open stars with a closing triangle
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		NonManifold:   NonManifoldWarn,
		CloseOpenFans: false,
	}
}
