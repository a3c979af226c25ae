// Package obj reads triangle meshes from Wavefront OBJ files into the flat
// arrays the topology builder consumes.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ungerik/go3d/float64/vec3"
	"github.com/ungerik/go3d/float64/vec4"
)

var (
	ErrSyntax      = errors.New("obj: syntax error")
	ErrNotTriangle = errors.New("obj: face is not a triangle")
	ErrIndex       = errors.New("obj: vertex index out of range")
)

// Geometry is the flat form of a triangle mesh. Positions have w = 1,
// normals w = 0, and Triangles holds 0-based vertex index triples.
type Geometry struct {
	Positions []vec4.T
	Normals   []vec4.T
	Triangles []int
}

// NumTriangles returns the number of triangles.
func (g *Geometry) NumTriangles() int {
	return len(g.Triangles) / 3
}

// Load reads the OBJ file at path.
func Load(path string) (*Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads OBJ data. Only "v", "vn" and "f" records are used; vertex order
// is kept and face indices are converted to 0-based. Normals are taken per
// vertex in declaration order if there is exactly one per position, and
// recomputed from the faces otherwise.
func Parse(r io.Reader) (*Geometry, error) {
	g := &Geometry{}
	var normals []vec4.T

	scanner := bufio.NewScanner(r)
	var lineNo int
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			xyz, err := parseFloats(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			g.Positions = append(g.Positions, vec4.T{xyz[0], xyz[1], xyz[2], 1})
		case "vn":
			xyz, err := parseFloats(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			normals = append(normals, vec4.T{xyz[0], xyz[1], xyz[2], 0})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: %w: %d vertices", lineNo, ErrNotTriangle, len(fields)-1)
			}
			for _, f := range fields[1:] {
				idx, err := parseIndex(f, len(g.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				g.Triangles = append(g.Triangles, idx)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(normals) == len(g.Positions) {
		g.Normals = normals
	} else {
		g.Normals = ComputeNormals(g.Positions, g.Triangles)
	}
	return g, nil
}

func parseFloats(fields []string) ([3]float64, error) {
	var xyz [3]float64
	if len(fields) < 3 {
		return xyz, fmt.Errorf("%w: want 3 coordinates, got %d", ErrSyntax, len(fields))
	}
	for i := range xyz {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return xyz, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		xyz[i] = v
	}
	return xyz, nil
}

// parseIndex returns the 0-based position index of a face vertex given as
// "v", "v/t", "v//n" or "v/t/n". Negative indices count back from the last
// position read so far.
func parseIndex(s string, numPositions int) (int, error) {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	switch {
	case v > 0:
		v--
	case v < 0:
		v += numPositions
	default:
		return 0, fmt.Errorf("%w: index 0, indices start with 1", ErrIndex)
	}
	if v < 0 || v >= numPositions {
		return 0, fmt.Errorf("%w: %s with %d positions", ErrIndex, s, numPositions)
	}
	return v, nil
}

// ComputeNormals returns area weighted vertex normals.
func ComputeNormals(positions []vec4.T, triangles []int) []vec4.T {
	acc := make([]vec3.T, len(positions))
	for i := 0; i+2 < len(triangles); i += 3 {
		a := xyz(positions[triangles[i]])
		b := xyz(positions[triangles[i+1]])
		c := xyz(positions[triangles[i+2]])
		ab := vec3.Sub(&b, &a)
		ac := vec3.Sub(&c, &a)
		n := vec3.Cross(&ab, &ac) // Length is twice the triangle area.
		for _, v := range triangles[i : i+3] {
			acc[v].Add(&n)
		}
	}
	normals := make([]vec4.T, len(positions))
	for i := range acc {
		if l := acc[i].Length(); l > 0 {
			acc[i].Scale(1 / l)
		}
		normals[i] = vec4.T{acc[i][0], acc[i][1], acc[i][2], 0}
	}
	return normals
}

func xyz(v vec4.T) vec3.T {
	return vec3.T{v[0], v[1], v[2]}
}

// Write encodes the geometry as OBJ text with 1-based "v//vn" faces.
func Write(w io.Writer, g *Geometry) error {
	bw := bufio.NewWriter(w)
	for _, p := range g.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, n := range g.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}
	for i := 0; i+2 < len(g.Triangles); i += 3 {
		a, b, c := g.Triangles[i]+1, g.Triangles[i+1]+1, g.Triangles[i+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}
