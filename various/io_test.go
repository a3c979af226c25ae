package various

import (
	"bytes"
	"encoding/binary"
	"io"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec4"
)

func TestIntSlice(t *testing.T) {
	var buf bytes.Buffer
	in := []int{0, -1, 42, 1 << 40}
	require.NoError(t, WriteIntSlice(&buf, in))
	require.Equal(t, 8*(len(in)+1), buf.Len())

	out, err := ReadIntSlice(&buf)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestFloatAndVec4Slice(t *testing.T) {
	var buf bytes.Buffer
	floats := []float64{0.5, -3, 1e-9}
	vecs := []vec4.T{{1, 2, 3, 1}, {0, 0, 1, 0}}
	require.NoError(t, WriteFloatSlice(&buf, floats))
	require.NoError(t, WriteVec4Slice(&buf, vecs))

	gotFloats, err := ReadFloatSlice(&buf)
	require.NoError(t, err)
	require.Equal(t, floats, gotFloats)
	gotVecs, err := ReadVec4Slice(&buf)
	require.NoError(t, err)
	require.Equal(t, vecs, gotVecs)
	require.Zero(t, buf.Len())
}

func TestReadSliceBadLength(t *testing.T) {
	for _, n := range []int64{-1, MaxSliceLen + 1} {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, n))
		_, err := ReadIntSlice(&buf)
		require.ErrorIs(t, err, ErrSliceTooLong)
	}

	// The length promises more than there is.
	var buf bytes.Buffer
	require.NoError(t, WriteIntSlice(&buf, []int{1, 2, 3}))
	_, err := ReadIntSlice(bytes.NewReader(buf.Bytes()[:20]))
	require.Error(t, err)
}

func TestReadSliceHugeLengthAllocatesLittle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int64(MaxSliceLen)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, [4]float64{1, 2, 3, 4}))
	data := buf.Bytes()

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, vecErr := ReadVec4Slice(bytes.NewReader(data))
	_, intErr := ReadIntSlice(bytes.NewReader(data))
	_, floatErr := ReadFloatSlice(bytes.NewReader(data))
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, vecErr, io.EOF)
	require.ErrorIs(t, intErr, io.EOF)
	require.ErrorIs(t, floatErr, io.EOF)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}
