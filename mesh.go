package halfedge

import (
	"math"

	"github.com/Flokey82/halfedge/obj"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Placement positions an object in the world. The model matrix rotates
// (about Y or Z) the translated, scaled object.
type Placement struct {
	Translation vec3.T
	Scale       vec3.T
	Angle       float64 // Rotation angle in radians
	RotateY     bool    // Rotate about the Y axis instead of Z
}

// NewPlacement returns the identity placement.
func NewPlacement() Placement {
	return Placement{Scale: vec3.T{1, 1, 1}}
}

// ModelMatrix returns rotation * translation * scale.
func (p *Placement) ModelMatrix() mat4.T {
	c, s := math.Cos(p.Angle), math.Sin(p.Angle)
	var r [3][3]float64 // [row][col]
	if p.RotateY {
		r = [3][3]float64{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
	} else {
		r = [3][3]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
	}

	// go3d stores matrices by column.
	m := mat4.Ident
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col][row] = r[row][col] * p.Scale[col]
		}
	}
	var rt vec3.T
	for row := 0; row < 3; row++ {
		rt[row] = r[row][0]*p.Translation[0] + r[row][1]*p.Translation[1] + r[row][2]*p.Translation[2]
	}
	m.SetTranslation(&rt)
	return m
}

// ModelArray returns the model matrix as 16 floats, column by column, the
// way WebGL's uniformMatrix4fv expects it.
func (p *Placement) ModelArray() [16]float32 {
	m := p.ModelMatrix()
	var a [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			a[4*col+row] = float32(m[col][row])
		}
	}
	return a
}

// Apply transforms the point p from object to world space.
func (p *Placement) Apply(v vec3.T) vec3.T {
	m := p.ModelMatrix()
	return m.MulVec3(&v)
}

// Limits is the axis aligned bounding box of a mesh.
type Limits struct {
	Min, Max vec3.T
}

// Center returns the midpoint of the box.
func (l Limits) Center() vec3.T {
	return vec3.T{
		(l.Min[0] + l.Max[0]) / 2,
		(l.Min[1] + l.Max[1]) / 2,
		(l.Min[2] + l.Max[2]) / 2,
	}
}

// Size returns the extent of the box along each axis.
func (l Limits) Size() vec3.T {
	return vec3.Sub(&l.Max, &l.Min)
}

// Mesh is a topology placed in the world.
type Mesh struct {
	*Topology
	Placement
	Limits Limits
}

// NewMesh wraps the topology t with placement p.
func NewMesh(t *Topology, p Placement) *Mesh {
	return &Mesh{
		Topology:  t,
		Placement: p,
		Limits:    computeLimits(t),
	}
}

func computeLimits(t *Topology) Limits {
	var l Limits
	for i, v := range t.Vertices {
		for j := 0; j < 3; j++ {
			if i == 0 || v.Position[j] < l.Min[j] {
				l.Min[j] = v.Position[j]
			}
			if i == 0 || v.Position[j] > l.Max[j] {
				l.Max[j] = v.Position[j]
			}
		}
	}
	return l
}

// NewMeshFromGeometry builds a mesh from loaded geometry in MeshColor and
// centers it on position.
func NewMeshFromGeometry(g *obj.Geometry, position vec3.T, cfg *Config) (*Mesh, error) {
	t, err := Build(g.Positions, g.Normals, g.Triangles, MeshColor, cfg)
	if err != nil {
		return nil, err
	}
	m := NewMesh(t, NewPlacement())

	// Translation: new midpoint - old midpoint.
	c := m.Limits.Center()
	m.Translation = vec3.Sub(&position, &c)
	return m, nil
}

// NewStarMesh builds the star s as a mesh of its own in StarColor, with the
// given placement.
func NewStarMesh(s *Star, p Placement, cfg *Config) (*Mesh, error) {
	t, err := Build(s.Positions, s.Normals, s.Triangles, StarColor, cfg)
	if err != nil {
		return nil, err
	}
	return NewMesh(t, p), nil
}

// StarMesh extracts the star of vertex v and builds it with the current
// placement of m, so it is drawn on top of the vertex.
func (m *Mesh) StarMesh(v int) (*Mesh, error) {
	s, err := m.Star(v)
	if err != nil {
		return nil, err
	}
	return NewStarMesh(s, m.Placement, m.Config())
}

// ScaleRelative sets the uniform scale of reference to base and scales model
// so that its X extent is value times that of reference.
func ScaleRelative(model, reference *Mesh, base, value float64) {
	refSize := reference.Limits.Size()
	modelSize := model.Limits.Size()
	reference.Scale = vec3.T{base, base, base}
	if modelSize[0] == 0 {
		model.Scale = vec3.T{base, base, base}
		return
	}
	s := base * refSize[0] / modelSize[0] * value
	model.Scale = vec3.T{s, s, s}
}
