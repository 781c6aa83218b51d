// Package bitstream converts between bytes and the 2-bit indices consumed by
// the QAM mapper. The canonical order is most-significant pair first: the byte
// 0b11_01_10_00 unpacks to [3 1 2 0].
package bitstream

import (
	"errors"
	"fmt"
	"os"

	mat "github.com/nathanhack/sparsemat"
)

var (
	// ErrPartialByte is returned when the index count is not a multiple of IndicesPerByte.
	ErrPartialByte = errors.New("bitstream: index count is not a whole number of bytes")

	// ErrInvalidIndex is returned when an index is outside [0,3].
	ErrInvalidIndex = errors.New("bitstream: index outside [0,3]")
)

// IndicesPerByte is the number of 2-bit indices in one byte.
const IndicesPerByte = 4

// Unpack splits each byte into four 2-bit indices, most-significant pair first.
func Unpack(data []byte) []int {
	indices := make([]int, 0, len(data)*IndicesPerByte)
	for _, b := range data {
		indices = append(indices,
			int(b>>6)&0x03,
			int(b>>4)&0x03,
			int(b>>2)&0x03,
			int(b)&0x03,
		)
	}
	return indices
}

// Pack is the inverse of Unpack.
func Pack(indices []int) ([]byte, error) {
	if len(indices)%IndicesPerByte != 0 {
		return nil, fmt.Errorf("bitstream: pack %v indices: %w", len(indices), ErrPartialByte)
	}
	data := make([]byte, len(indices)/IndicesPerByte)
	for i, idx := range indices {
		if idx < 0 || idx > 3 {
			return nil, fmt.Errorf("bitstream: index %v has value %v: %w", i, idx, ErrInvalidIndex)
		}
		shift := uint(6 - 2*(i%IndicesPerByte))
		data[i/IndicesPerByte] |= byte(idx) << shift
	}
	return data, nil
}

// Bits returns the payload bits, most-significant bit first, as a sparse vector.
func Bits(data []byte) mat.SparseVector {
	bits := mat.CSRVec(len(data) * 8)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			if b&(0x80>>uint(j)) != 0 {
				bits.Set(i*8+j, 1)
			}
		}
	}
	return bits
}

// BitErrors counts the differing bits between a and b. Bytes missing from
// the shorter slice count as 8 errors each.
func BitErrors(a, b []byte) int {
	shortest := len(a)
	if len(b) < shortest {
		shortest = len(b)
	}
	extra := (len(a) + len(b) - 2*shortest) * 8
	if shortest == 0 {
		return extra
	}
	return Bits(a[:shortest]).HammingDistance(Bits(b[:shortest])) + extra
}

// ReadFile reads the file at path and unpacks it into indices.
func ReadFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bitstream: reading %v: %w", path, err)
	}
	return Unpack(data), nil
}

// WriteFile packs the indices back into bytes and writes them to path.
func WriteFile(path string, indices []int) error {
	data, err := Pack(indices)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("bitstream: writing %v: %w", path, err)
	}
	return nil
}
