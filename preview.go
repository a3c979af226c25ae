package halfedge

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"
	"github.com/ungerik/go3d/float64/vec3"
)

// project returns the positions of the star in the plane orthogonal to the
// center normal, relative to the center.
func (s *Star) project() [][2]float64 {
	n := vec3.T{s.Normals[0][0], s.Normals[0][1], s.Normals[0][2]}
	if n.Length() == 0 {
		n = vec3.T{0, 0, 1}
	}
	n.Normalize()

	// Pick the axis least aligned with the normal to build the plane basis.
	axis := vec3.T{1, 0, 0}
	if math.Abs(n[0]) > math.Abs(n[1]) {
		axis = vec3.T{0, 1, 0}
	}
	u := vec3.Cross(&n, &axis)
	u.Normalize()
	w := vec3.Cross(&n, &u)

	c := vec3.T{s.Positions[0][0], s.Positions[0][1], s.Positions[0][2]}
	pts := make([][2]float64, len(s.Positions))
	for i, p := range s.Positions {
		d := vec3.T{p[0], p[1], p[2]}
		d = vec3.Sub(&d, &c)
		pts[i] = [2]float64{vec3.Dot(&d, &u), vec3.Dot(&d, &w)}
	}
	return pts
}

// Preview draws the fan of the star into a size x size image: each triangle
// gets its own color, edges are stroked in black.
func (s *Star) Preview(size int) *image.RGBA {
	dest := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dest, dest.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if len(s.Triangles) == 0 {
		return dest
	}

	// Fit the projected ring into the image.
	pts := s.project()
	var maxAbs float64
	for _, p := range pts {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p[0]), math.Abs(p[1])))
	}
	half := float64(size) / 2
	scale := 1.0
	if maxAbs > 0 {
		scale = (half - 4) / maxAbs
	}
	toPixel := func(i int) (float64, float64) {
		return half + pts[i][0]*scale, half - pts[i][1]*scale
	}

	// Sample one color more than needed, the gradient needs two stops.
	numTris := len(s.Triangles) / 3
	colorGrad := colorgrad.Rainbow()
	cols := colorGrad.Colors(uint(numTris + 1))

	gc := draw2dimg.NewGraphicContext(dest)
	gc.SetLineWidth(1)
	gc.SetStrokeColor(color.Black)
	for t := 0; t < numTris; t++ {
		gc.SetFillColor(cols[t])
		gc.MoveTo(toPixel(s.Triangles[3*t]))
		gc.LineTo(toPixel(s.Triangles[3*t+1]))
		gc.LineTo(toPixel(s.Triangles[3*t+2]))
		gc.Close()
		gc.FillStroke()
	}
	return dest
}
