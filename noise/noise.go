// Package noise wraps opensimplex noise into a fractal (octave) noise used to
// roughen generated surfaces.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Noise is a wrapper for opensimplex.Noise, initialized with
// a given seed, persistence, and number of octaves.
type Noise struct {
	Octaves     int
	Persistence float64
	Amplitudes  []float64
	Seed        int64
	OS          opensimplex.Noise
}

// NewNoise returns a new Noise.
func NewNoise(octaves int, persistence float64, seed int64) *Noise {
	if octaves < 1 {
		octaves = 1
	}
	n := &Noise{
		Octaves:     octaves,
		Persistence: persistence,
		Amplitudes:  make([]float64, octaves),
		Seed:        seed,
		OS:          opensimplex.NewNormalized(seed),
	}

	// Initialize the amplitudes.
	for i := range n.Amplitudes {
		n.Amplitudes[i] = math.Pow(persistence, float64(i))
	}
	return n
}

// Eval3 returns the noise value at the given point, in [0, 1].
func (n *Noise) Eval3(x, y, z float64) float64 {
	var sum, sumOfAmplitudes float64
	for octave := 0; octave < n.Octaves; octave++ {
		fFreq := float64(int(1) << octave)
		sum += n.Amplitudes[octave] * n.OS.Eval3(x*fFreq, y*fFreq, z*fFreq)
		sumOfAmplitudes += n.Amplitudes[octave]
	}
	return sum / sumOfAmplitudes
}

// Displacement returns a radial offset in [-amount, amount] for the point.
func (n *Noise) Displacement(x, y, z, amount float64) float64 {
	return (2*n.Eval3(x, y, z) - 1) * amount
}
