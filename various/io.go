package various

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ungerik/go3d/float64/vec4"
)

var byteorder = binary.LittleEndian

// MaxSliceLen caps the length prefix accepted by the Read functions.
const MaxSliceLen = 1 << 28

// readChunk bounds the capacity reserved ahead of the data actually read,
// a length prefix alone never allocates more than this many elements.
const readChunk = 1 << 12

// ErrSliceTooLong is returned if a length prefix exceeds MaxSliceLen.
var ErrSliceTooLong = errors.New("slice length out of range")

func readLen(r io.Reader) (int, error) {
	var num int64
	if err := binary.Read(r, byteorder, &num); err != nil {
		return 0, err
	}
	if num < 0 || num > MaxSliceLen {
		return 0, ErrSliceTooLong
	}
	return int(num), nil
}

func initialCap(num int) int {
	if num > readChunk {
		return readChunk
	}
	return num
}

func WriteIntSlice(w io.Writer, s []int) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := binary.Write(w, byteorder, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func ReadIntSlice(r io.Reader) ([]int, error) {
	num, err := readLen(r)
	if err != nil {
		return nil, err
	}
	s := make([]int, 0, initialCap(num))
	for i := 0; i < num; i++ {
		var v int64
		if err := binary.Read(r, byteorder, &v); err != nil {
			return nil, err
		}
		s = append(s, int(v))
	}
	return s, nil
}

func WriteFloatSlice(w io.Writer, s []float64) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := binary.Write(w, byteorder, v); err != nil {
			return err
		}
	}
	return nil
}

func ReadFloatSlice(r io.Reader) ([]float64, error) {
	num, err := readLen(r)
	if err != nil {
		return nil, err
	}
	s := make([]float64, 0, initialCap(num))
	for i := 0; i < num; i++ {
		var v float64
		if err := binary.Read(r, byteorder, &v); err != nil {
			return nil, err
		}
		s = append(s, v)
	}
	return s, nil
}

// WriteVec4Slice writes a length prefix followed by four float64 per entry.
func WriteVec4Slice(w io.Writer, s []vec4.T) error {
	if err := binary.Write(w, byteorder, int64(len(s))); err != nil {
		return err
	}
	for _, v := range s {
		if err := binary.Write(w, byteorder, [4]float64(v)); err != nil {
			return err
		}
	}
	return nil
}

func ReadVec4Slice(r io.Reader) ([]vec4.T, error) {
	num, err := readLen(r)
	if err != nil {
		return nil, err
	}
	s := make([]vec4.T, 0, initialCap(num))
	for i := 0; i < num; i++ {
		var v [4]float64
		if err := binary.Read(r, byteorder, &v); err != nil {
			return nil, err
		}
		s = append(s, vec4.T(v))
	}
	return s, nil
}
