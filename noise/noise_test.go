package noise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEval3Range(t *testing.T) {
	n := NewNoise(4, 0.5, 1234)
	require.Len(t, n.Amplitudes, 4)
	require.Equal(t, 1.0, n.Amplitudes[0])
	require.Equal(t, 0.125, n.Amplitudes[3])

	for i := 0; i < 100; i++ {
		f := float64(i) * 0.173
		v := n.Eval3(f, -f, 2*f)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)

		d := n.Displacement(f, -f, 2*f, 0.1)
		require.GreaterOrEqual(t, d, -0.1)
		require.LessOrEqual(t, d, 0.1)
	}
}

func TestEval3Deterministic(t *testing.T) {
	a := NewNoise(3, 0.6, 42)
	b := NewNoise(3, 0.6, 42)
	require.Equal(t, a.Eval3(0.3, 0.2, 0.1), b.Eval3(0.3, 0.2, 0.1))
}
