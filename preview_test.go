package halfedge

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStarPreview(t *testing.T) {
	s, err := singleTriangle(t, nil).Star(0)
	require.NoError(t, err)

	img := s.Preview(64)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	// The corner opposite the fan stays white, the inside of the triangle
	// is filled.
	white := color.RGBAModel.Convert(color.White)
	require.Equal(t, white, img.At(2, 2))
	require.NotEqual(t, white, img.At(40, 40))
}

func TestStarPreviewEmpty(t *testing.T) {
	s := &Star{}
	img := s.Preview(8)
	white := color.RGBAModel.Convert(color.White)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, white, img.At(x, y))
		}
	}
}

func TestStarProject(t *testing.T) {
	s, err := square(t).Star(0)
	require.NoError(t, err)
	pts := s.project()
	require.Len(t, pts, len(s.Vertices))
	require.Equal(t, [2]float64{0, 0}, pts[0])

	// The square lies in the plane of the normal, so distances are kept.
	require.InDelta(t, 1, pts[1][0]*pts[1][0]+pts[1][1]*pts[1][1], 1e-9)
	require.InDelta(t, 2, pts[2][0]*pts[2][0]+pts[2][1]*pts[2][1], 1e-9)
}
