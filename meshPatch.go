package halfedge

import (
	"math/rand"

	"github.com/Flokey82/halfedge/obj"
	"github.com/fogleman/delaunay"
	"github.com/ungerik/go3d/float64/vec4"
)

// patchGeometry returns a Delaunay triangulation of the unit square corners
// and numPoints random points inside of it, lying in the z = 0 plane.
func patchGeometry(seed int64, numPoints int) (*obj.Geometry, *delaunay.Triangulation, error) {
	rnd := rand.New(rand.NewSource(seed))
	pts := []delaunay.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for i := 0; i < numPoints; i++ {
		pts = append(pts, delaunay.Point{X: rnd.Float64(), Y: rnd.Float64()})
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, nil, err
	}

	g := &obj.Geometry{
		Positions: make([]vec4.T, len(pts)),
		Normals:   make([]vec4.T, len(pts)),
		Triangles: tri.Triangles,
	}
	for i, p := range pts {
		g.Positions[i] = vec4.T{p.X, p.Y, 0, 1}
		g.Normals[i] = vec4.T{0, 0, 1, 0}
	}
	return g, tri, nil
}

// MakePatch generates a flat, open mesh over the unit square in MeshColor.
// Vertices 0 to 3 are the corners of the square.
func MakePatch(seed int64, numPoints int, cfg *Config) (*Mesh, error) {
	g, _, err := patchGeometry(seed, numPoints)
	if err != nil {
		return nil, err
	}
	t, err := Build(g.Positions, g.Normals, g.Triangles, MeshColor, cfg)
	if err != nil {
		return nil, err
	}
	return NewMesh(t, NewPlacement()), nil
}
