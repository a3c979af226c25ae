package halfedge

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Flokey82/halfedge/various"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec4"
)

func requireSameTopology(t *testing.T, want, got *Topology) {
	t.Helper()
	require.Equal(t, want.Vertices, got.Vertices)
	require.Equal(t, want.HalfEdges, got.HalfEdges)
	require.Equal(t, want.Faces, got.Faces)
	require.Equal(t, want.NonManifoldEdges(), got.NonManifoldEdges())
	require.Equal(t, want.Config(), got.Config())
}

func TestTopologyRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.CloseOpenFans = true
	finTopo, err := fin(t, cfg)
	require.NoError(t, err)

	for name, topo := range map[string]*Topology{
		"triangle":    singleTriangle(t, nil),
		"tetrahedron": tetrahedron(t),
		"square":      square(t),
		"fin":         finTopo,
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := topo.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, int64(buf.Len()), n)

			got, err := ReadTopology(&buf)
			require.NoError(t, err)
			requireSameTopology(t, topo, got)
			requireInvariants(t, got)

			// Stars of the restored topology are the same.
			for v := 0; v < topo.NumVertices(); v++ {
				want, err := topo.Star(v)
				require.NoError(t, err)
				s, err := got.Star(v)
				require.NoError(t, err)
				require.Equal(t, want, s)
			}
		})
	}
}

func TestReadTopologyTruncated(t *testing.T) {
	var buf bytes.Buffer
	_, err := tetrahedron(t).WriteTo(&buf)
	require.NoError(t, err)

	data := buf.Bytes()
	for _, n := range []int{0, 5, 9, len(data) / 2, len(data) - 1} {
		_, err := ReadTopology(bytes.NewReader(data[:n]))
		require.ErrorIs(t, err, ErrInvalidGeometry, "truncated to %d bytes", n)
	}
}

func TestReadTopologyBadLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(NonManifoldWarn)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, false))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(various.MaxSliceLen+1)))

	_, err := ReadTopology(&buf)
	require.ErrorIs(t, err, ErrInvalidGeometry)
	require.ErrorIs(t, err, various.ErrSliceTooLong)
}

// writeRaw writes a topology stream from its parts.
func writeRaw(t *testing.T, positions []vec4.T, incident, origins, opposites []int) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(NonManifoldWarn)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, false))
	for i := 0; i < 3; i++ {
		require.NoError(t, various.WriteVec4Slice(&buf, positions))
	}
	require.NoError(t, various.WriteIntSlice(&buf, incident))
	require.NoError(t, various.WriteIntSlice(&buf, origins))
	require.NoError(t, various.WriteIntSlice(&buf, opposites))
	require.NoError(t, various.WriteIntSlice(&buf, nil))
	return &buf
}

func TestReadTopologyCorrupt(t *testing.T) {
	positions := []vec4.T{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}}

	// A valid stream reads fine.
	topo, err := ReadTopology(writeRaw(t, positions, []int{0, 1, 2}, []int{0, 1, 2}, []int{-1, -1, -1}))
	require.NoError(t, err)
	require.Equal(t, 1, topo.NumFaces())

	for name, tc := range map[string]struct {
		incident, origins, opposites []int
	}{
		"incident count":     {[]int{0, 1}, []int{0, 1, 2}, []int{-1, -1, -1}},
		"incident origin":    {[]int{1, 1, 2}, []int{0, 1, 2}, []int{-1, -1, -1}},
		"incident range":     {[]int{0, 1, 7}, []int{0, 1, 2}, []int{-1, -1, -1}},
		"origin range":       {[]int{0, 1, 2}, []int{0, 1, 3}, []int{-1, -1, -1}},
		"not triples":        {[]int{0, 1, 2}, []int{0, 1}, []int{-1, -1}},
		"opposite count":     {[]int{0, 1, 2}, []int{0, 1, 2}, []int{-1, -1}},
		"opposite not twins": {[]int{0, 1, 2}, []int{0, 1, 2}, []int{1, -1, -1}},
		"opposite range":     {[]int{0, 1, 2}, []int{0, 1, 2}, []int{-1, 3, -1}},
		"own twin":           {[]int{0, 1, 2}, []int{0, 1, 2}, []int{-1, -1, 2}},
		"twins apart":        {[]int{0, 1, 2}, []int{0, 1, 2}, []int{1, 0, -1}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadTopology(writeRaw(t, positions, tc.incident, tc.origins, tc.opposites))
			require.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}
