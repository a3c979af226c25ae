package halfedge

import (
	"math"
	"math/rand"

	"github.com/Flokey82/geoquad"
	"github.com/Flokey82/halfedge/noise"
	"github.com/Flokey82/halfedge/obj"
	"github.com/Flokey82/halfedge/various"
	"github.com/fogleman/delaunay"
	"github.com/ungerik/go3d/float64/vec3"
	"github.com/ungerik/go3d/float64/vec4"
)

// fibonacciLatLon spreads numPoints points over the sphere along a golden
// angle spiral, north to south. With jitter > 0 every point moves by up to
// that fraction of the mean point spacing.
func fibonacciLatLon(seed int64, numPoints int, jitter float64) [][2]float64 {
	rnd := rand.New(rand.NewSource(seed))
	golden := math.Pi * (3 - math.Sqrt(5))
	spacing := various.RadToDeg(math.Sqrt(4 * math.Pi / float64(numPoints)))

	latLon := make([][2]float64, numPoints)
	for i := range latLon {
		z := 1 - (2*float64(i)+1)/float64(numPoints)
		lat := various.RadToDeg(math.Asin(z))
		lon := various.RadToDeg(math.Mod(float64(i)*golden, 2*math.Pi))
		if jitter > 0 {
			lat += jitter * spacing * (rnd.Float64() - 0.5)
			lon += jitter * spacing * (rnd.Float64() - 0.5) / math.Max(math.Cos(various.DegToRad(lat)), 0.1)
		}

		// Keep clear of the north pole, it is added separately.
		latLon[i] = [2]float64{math.Max(-90, math.Min(89.9, lat)), lon}
	}
	return latLon
}

// projectFromPole maps points of the unit sphere onto the plane z = 0 as
// seen from the north pole.
func projectFromPole(points []vec3.T) []delaunay.Point {
	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0] / (1 - p[2]), Y: p[1] / (1 - p[2])}
	}
	return pts
}

// closeHull returns the triangles of d plus one triangle per hull edge that
// connects it to vertex pole. Hull edges are the sides without twin, the new
// triangle runs along them the other way so all faces keep their winding.
func closeHull(d *delaunay.Triangulation, pole int) []int {
	triangles := append([]int(nil), d.Triangles...)
	for s, twin := range d.Halfedges {
		if twin != -1 {
			continue
		}
		a, b := d.Triangles[s], d.Triangles[nextHalfEdge(s)]
		triangles = append(triangles, b, a, pole)
	}
	return triangles
}

// SphereConfig holds the options of MakeSphere.
type SphereConfig struct {
	Seed        int64
	NumPoints   int     // Number of vertices before closing the hull
	Jitter      float64 // Randomness of the point distribution
	Roughness   float64 // Maximum radial displacement by noise
	Octaves     int     // Noise octaves
	Persistence float64 // Noise persistence
}

// NewSphereConfig returns a new SphereConfig with default values.
func NewSphereConfig() *SphereConfig {
	return &SphereConfig{
		Seed:        12345,
		NumPoints:   2000,
		Jitter:      0.0,
		Roughness:   0.0,
		Octaves:     5,
		Persistence: 0.5,
	}
}

// Sphere is a closed triangle mesh of a (possibly roughened) unit sphere.
type Sphere struct {
	*Mesh
	LatLon         [][2]float64      // Vertex latitude and longitude
	vertexQuadTree *geoquad.QuadTree // Quadtree for vertex lookup
}

// sphereGeometry returns the sphere geometry, the lat/lon of each vertex and
// the planar triangulation it was made from. The last vertex is the north
// pole, which closes the triangulation.
func sphereGeometry(sc *SphereConfig) (*obj.Geometry, [][2]float64, *delaunay.Triangulation, error) {
	latLon := fibonacciLatLon(sc.Seed, sc.NumPoints, sc.Jitter)
	points := make([]vec3.T, 0, len(latLon)+1)
	for i, ll := range latLon {
		v := various.ConvToVec3(various.LatLonToCartesian(ll[0], ll[1])).Normalize()
		latLon[i][0], latLon[i][1] = various.LatLonFromVec3(v, 1.0)
		points = append(points, vec3.T{v.X, v.Y, v.Z})
	}

	tri, err := delaunay.Triangulate(projectFromPole(points))
	if err != nil {
		return nil, nil, nil, err
	}
	pole := len(points)
	points = append(points, vec3.T{0, 0, 1})
	latLon = append(latLon, [2]float64{90, 0})

	g := &obj.Geometry{
		Positions: make([]vec4.T, len(points)),
		Normals:   make([]vec4.T, len(points)),
		Triangles: closeHull(tri, pole),
	}
	var n *noise.Noise
	if sc.Roughness > 0 {
		n = noise.NewNoise(sc.Octaves, sc.Persistence, sc.Seed)
	}
	for i, p := range points {
		g.Normals[i] = vec4.T{p[0], p[1], p[2], 0}
		if n != nil {
			p.Scale(1 + n.Displacement(p[0], p[1], p[2], sc.Roughness))
		}
		g.Positions[i] = vec4.T{p[0], p[1], p[2], 1}
	}
	if n != nil {
		g.Normals = obj.ComputeNormals(g.Positions, g.Triangles)
	}
	return g, latLon, tri, nil
}

// MakeSphere generates a closed sphere mesh in MeshColor.
func MakeSphere(sc *SphereConfig, cfg *Config) (*Sphere, error) {
	if sc == nil {
		sc = NewSphereConfig()
	}
	g, latLon, _, err := sphereGeometry(sc)
	if err != nil {
		return nil, err
	}
	t, err := Build(g.Positions, g.Normals, g.Triangles, MeshColor, cfg)
	if err != nil {
		return nil, err
	}
	return &Sphere{
		Mesh:           NewMesh(t, NewPlacement()),
		LatLon:         latLon,
		vertexQuadTree: newVertexQuadTree(latLon),
	}, nil
}

// newVertexQuadTree indexes the vertices by lat/lon, the point data is the
// vertex id.
func newVertexQuadTree(latLon [][2]float64) *geoquad.QuadTree {
	points := make([]geoquad.Point, len(latLon))
	for v, ll := range latLon {
		points[v] = geoquad.Point{Lat: ll[0], Lon: ll[1], Data: v}
	}
	return geoquad.NewQuadTree(points)
}

// NearestVertex returns the vertex closest to the given latitude and
// longitude in degrees.
func (s *Sphere) NearestVertex(lat, lon float64) int {
	if res, ok := s.vertexQuadTree.FindNearestNeighbor(geoquad.Point{Lat: lat, Lon: lon}); ok {
		return res.Data.(int)
	}

	// The quadtree doesn't wrap around the date line, so fall back to a
	// linear search.
	best := -1
	var bestDist float64
	for i, ll := range s.LatLon {
		d := various.Haversine(lat, lon, ll[0], ll[1])
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
