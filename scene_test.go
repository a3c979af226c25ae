package halfedge

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec4"
)

func TestScene(t *testing.T) {
	s := NewScene()
	s.AddMesh("tetra", NewMesh(tetrahedron(t), NewPlacement()))
	s.AddMesh("square", NewMesh(square(t), NewPlacement()))
	require.Equal(t, []string{"square", "tetra"}, s.Names())

	_, err := s.Mesh("bunny")
	require.ErrorIs(t, err, ErrUnknownMesh)
	_, err = s.AddStar("bunny", 0)
	require.ErrorIs(t, err, ErrUnknownMesh)

	star, err := s.AddStar("tetra", 1)
	require.NoError(t, err)
	require.Equal(t, 4, star.NumVertices())
	require.Equal(t, StarColor, star.Vertices[0].Color)

	_, err = s.AddStar("square", 5)
	require.ErrorIs(t, err, ErrInvalidVertex)
	require.Len(t, s.Stars(), 1)

	s.Spin(0.25)
	m, err := s.Mesh("tetra")
	require.NoError(t, err)
	require.Equal(t, 0.25, m.Angle)
	require.Equal(t, 0.25, s.Stars()[0].Angle)

	// Snapshots don't write back.
	m.Angle = 3
	m, err = s.Mesh("tetra")
	require.NoError(t, err)
	require.Equal(t, 0.25, m.Angle)

	// A star added now starts at the current angle of its mesh.
	star, err = s.AddStar("tetra", 2)
	require.NoError(t, err)
	require.Equal(t, 0.25, star.Angle)
	require.Len(t, s.Stars(), 2)

	s.ClearStars()
	require.Empty(t, s.Stars())
	require.Len(t, s.Names(), 2)
}

func TestSceneUnresolvedStar(t *testing.T) {
	positions := []vec4.T{{0, 0, 0, 1}, {1, 0, 0, 1}, {0, 1, 0, 1}, {5, 5, 5, 1}}
	topo, err := Build(positions, normalsFor(positions), []int{0, 1, 2}, red, nil)
	require.NoError(t, err)

	s := NewScene()
	s.AddMesh("loose", NewMesh(topo, NewPlacement()))
	_, err = s.AddStar("loose", 3)
	require.ErrorIs(t, err, ErrUnresolvedVertex)
	require.Empty(t, s.Stars())
}

func TestSceneConcurrentSpin(t *testing.T) {
	s := NewScene()
	s.AddMesh("tetra", NewMesh(tetrahedron(t), NewPlacement()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			s.Spin(0.01)
		}
	}()
	for i := 0; i < 100; i++ {
		_, err := s.AddStar("tetra", i%4)
		require.NoError(t, err)
	}
	<-done
	require.Len(t, s.Stars(), 100)
}
