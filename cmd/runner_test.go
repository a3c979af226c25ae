package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Flokey82/halfedge"
	"github.com/Flokey82/halfedge/obj"
	"github.com/stretchr/testify/require"
)

// looseOBJ is a single triangle plus a vertex that isn't part of any face.
const looseOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
v 5 5 5
f 1 2 3
`

// setFlags points the command line flags at dir for the duration of the test.
func setFlags(t *testing.T, dir string, v int) {
	t.Helper()
	path := filepath.Join(dir, "loose.obj")
	require.NoError(t, os.WriteFile(path, []byte(looseOBJ), 0o644))

	old := []string{*input, *exportOBJ, *exportTopology, *exportPNG}
	oldVertex := *vertex
	t.Cleanup(func() {
		*input, *exportOBJ, *exportTopology, *exportPNG = old[0], old[1], old[2], old[3]
		*vertex = oldVertex
	})
	*input = path
	*exportOBJ = filepath.Join(dir, "star.obj")
	*exportTopology = filepath.Join(dir, "mesh.topo")
	*exportPNG = filepath.Join(dir, "star.png")
	*vertex = v
}

func TestRunExportsStar(t *testing.T) {
	dir := t.TempDir()
	setFlags(t, dir, 0)
	require.NoError(t, run())

	g, err := obj.Load(filepath.Join(dir, "star.obj"))
	require.NoError(t, err)
	require.Len(t, g.Positions, 3)
	require.Equal(t, []int{0, 1, 2}, g.Triangles)

	f, err := os.Open(filepath.Join(dir, "mesh.topo"))
	require.NoError(t, err)
	defer f.Close()
	topo, err := halfedge.ReadTopology(f)
	require.NoError(t, err)
	require.Equal(t, 4, topo.NumVertices())

	require.FileExists(t, filepath.Join(dir, "star.png"))
}

func TestRunSkipsUnresolvedVertex(t *testing.T) {
	dir := t.TempDir()
	setFlags(t, dir, 3)
	require.NoError(t, run())

	// The topology is still written, the star isn't.
	require.FileExists(t, filepath.Join(dir, "mesh.topo"))
	require.NoFileExists(t, filepath.Join(dir, "star.obj"))
	require.NoFileExists(t, filepath.Join(dir, "star.png"))
}

func TestRunInvalidVertex(t *testing.T) {
	setFlags(t, t.TempDir(), 9)
	require.ErrorIs(t, run(), halfedge.ErrInvalidVertex)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "out.txt")
	require.NoError(t, writeFile(name, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	errBroken := errors.New("broken")
	require.ErrorIs(t, writeFile(name, func(w io.Writer) error { return errBroken }), errBroken)
	require.Error(t, writeFile(filepath.Join(dir, "missing", "out.txt"), func(w io.Writer) error { return nil }))
}
