package halfedge

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Flokey82/halfedge/various"
	"github.com/ungerik/go3d/float64/vec4"
)

var byteorder = binary.LittleEndian

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo writes the topology to the given writer. The arena is stored as is,
// so reading it back doesn't redo the pairing.
func (t *Topology) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := t.writeTo(cw)
	return cw.n, err
}

func (t *Topology) writeTo(w io.Writer) error {
	// Write the configuration.
	if err := binary.Write(w, byteorder, int64(t.cfg.NonManifold)); err != nil {
		return err
	}
	if err := binary.Write(w, byteorder, t.cfg.CloseOpenFans); err != nil {
		return err
	}

	// Write the vertex attributes and incident half-edges.
	positions := make([]vec4.T, len(t.Vertices))
	normals := make([]vec4.T, len(t.Vertices))
	colors := make([]vec4.T, len(t.Vertices))
	incident := make([]int, len(t.Vertices))
	for i, v := range t.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		colors[i] = v.Color
		incident[i] = v.halfEdge
	}
	if err := various.WriteVec4Slice(w, positions); err != nil {
		return err
	}
	if err := various.WriteVec4Slice(w, normals); err != nil {
		return err
	}
	if err := various.WriteVec4Slice(w, colors); err != nil {
		return err
	}
	if err := various.WriteIntSlice(w, incident); err != nil {
		return err
	}

	// Write the half-edge origins and opposites. Next and face follow from
	// the half-edge index.
	origins := make([]int, len(t.HalfEdges))
	opposites := make([]int, len(t.HalfEdges))
	for h, he := range t.HalfEdges {
		origins[h] = he.Origin
		opposites[h] = he.opposite
	}
	if err := various.WriteIntSlice(w, origins); err != nil {
		return err
	}
	if err := various.WriteIntSlice(w, opposites); err != nil {
		return err
	}

	// Write the non-manifold diagnostics.
	nm := make([]int, 0, 2*len(t.nonManifold))
	for _, k := range t.nonManifold {
		nm = append(nm, k.A, k.B)
	}
	return various.WriteIntSlice(w, nm)
}

// ReadTopology reads a topology written by WriteTo. All indices are checked,
// a corrupt or truncated stream yields ErrInvalidGeometry.
func ReadTopology(r io.Reader) (*Topology, error) {
	t, err := readTopology(r)
	if err != nil && !errors.Is(err, ErrInvalidGeometry) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}
	return t, err
}

func readTopology(r io.Reader) (*Topology, error) {
	cfg := NewConfig()

	// Read the configuration.
	var policy int64
	if err := binary.Read(r, byteorder, &policy); err != nil {
		return nil, err
	}
	cfg.NonManifold = NonManifoldPolicy(policy)
	if err := binary.Read(r, byteorder, &cfg.CloseOpenFans); err != nil {
		return nil, err
	}

	// Read the vertex attributes.
	positions, err := various.ReadVec4Slice(r)
	if err != nil {
		return nil, err
	}
	normals, err := various.ReadVec4Slice(r)
	if err != nil {
		return nil, err
	}
	colors, err := various.ReadVec4Slice(r)
	if err != nil {
		return nil, err
	}
	incident, err := various.ReadIntSlice(r)
	if err != nil {
		return nil, err
	}

	// Read the half-edges.
	origins, err := various.ReadIntSlice(r)
	if err != nil {
		return nil, err
	}
	opposites, err := various.ReadIntSlice(r)
	if err != nil {
		return nil, err
	}

	// Read the non-manifold diagnostics.
	nm, err := various.ReadIntSlice(r)
	if err != nil {
		return nil, err
	}

	numVertices := len(positions)
	if len(normals) != numVertices || len(colors) != numVertices || len(incident) != numVertices {
		return nil, fmt.Errorf("%w: vertex attribute lengths differ", ErrInvalidGeometry)
	}
	if len(origins)%3 != 0 || len(opposites) != len(origins) || len(nm)%2 != 0 {
		return nil, fmt.Errorf("%w: half-edge table lengths don't match", ErrInvalidGeometry)
	}
	if err := validateGeometry(positions, normals, origins); err != nil {
		return nil, err
	}

	t := &Topology{
		Vertices:  make([]Vertex, numVertices),
		HalfEdges: make([]HalfEdge, len(origins)),
		Faces:     make([]Face, len(origins)/3),
		cfg:       cfg,
	}
	for i := range t.Vertices {
		if h := incident[i]; h != none && (h < 0 || h >= len(origins) || origins[h] != i) {
			return nil, fmt.Errorf("%w: bad incident half-edge %d for vertex %d", ErrInvalidGeometry, h, i)
		}
		t.Vertices[i] = Vertex{
			ID:       i,
			Position: positions[i],
			Normal:   normals[i],
			Color:    colors[i],
			halfEdge: incident[i],
		}
	}
	for h := range t.HalfEdges {
		op := opposites[h]
		if op != none && (op < 0 || op >= len(opposites) || op == h || opposites[op] != h) {
			return nil, fmt.Errorf("%w: half-edge %d has a bad twin %d", ErrInvalidGeometry, h, op)
		}
		t.HalfEdges[h] = HalfEdge{
			Origin:   origins[h],
			Next:     nextHalfEdge(h),
			Face:     h / 3,
			opposite: op,
		}
	}
	for h := range t.HalfEdges {
		if op, ok := t.Opposite(h); ok && t.edgeKey(h) != t.edgeKey(op) {
			return nil, fmt.Errorf("%w: half-edge %d and its twin %d span different edges", ErrInvalidGeometry, h, op)
		}
	}
	for f := range t.Faces {
		t.Faces[f] = Face{HalfEdge: 3 * f}
	}
	for i := 0; i < len(nm); i += 2 {
		t.nonManifold = append(t.nonManifold, EdgeKey{A: nm[i], B: nm[i+1]})
	}
	return t, nil
}
