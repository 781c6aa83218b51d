// Package qam maps 2-bit indices onto a 4-point QAM constellation and spreads
// the resulting symbols across parallel transmission streams.
package qam

import (
	"errors"
	"fmt"

	"github.com/nathanhack/mimo/cmatrix"
)

var (
	// ErrUnevenLayerSplit is returned when the symbol count is not a multiple of the stream count.
	ErrUnevenLayerSplit = errors.New("qam: symbols do not split evenly across streams")

	// ErrInvalidStreams is returned when the requested stream count is not positive.
	ErrInvalidStreams = errors.New("qam: number of streams must be > 0")
)

// BitsPerSymbol is the number of payload bits carried by one symbol.
const BitsPerSymbol = 2

// Constellation is indexed by the 2-bit value it encodes.
var Constellation = [4]complex128{
	complex(-1, 1),  // 00
	complex(-1, -1), // 01
	complex(1, 1),   // 10
	complex(1, -1),  // 11
}

// Point returns the constellation point for index. Indices outside
// [0,3] map to 0+0i so the mapping stays total.
func Point(index int) complex128 {
	if index < 0 || index >= len(Constellation) {
		return 0
	}
	return Constellation[index]
}

// Index returns the index of the constellation point nearest to s.
// The decision regions are the four quadrants; points on an axis
// are resolved toward positive.
func Index(s complex128) int {
	index := 0
	if real(s) >= 0 {
		index |= 2
	}
	if imag(s) < 0 {
		index |= 1
	}
	return index
}

// MapToSymbols maps each index to its constellation point.
func MapToSymbols(indices []int) []complex128 {
	symbols := make([]complex128, len(indices))
	for i, idx := range indices {
		symbols[i] = Point(idx)
	}
	return symbols
}

// Demap makes a hard decision on each symbol and returns the indices.
func Demap(symbols []complex128) []int {
	indices := make([]int, len(symbols))
	for i, s := range symbols {
		indices[i] = Index(s)
	}
	return indices
}

// LayerMap distributes symbols round robin across numStreams streams:
// symbol i goes to stream i%numStreams, in order.
func LayerMap(symbols []complex128, numStreams int) ([][]complex128, error) {
	if numStreams <= 0 {
		return nil, fmt.Errorf("qam: layer map %v streams: %w", numStreams, ErrInvalidStreams)
	}
	if len(symbols)%numStreams != 0 {
		return nil, fmt.Errorf("qam: layer map %v symbols into %v streams: %w", len(symbols), numStreams, ErrUnevenLayerSplit)
	}

	perStream := len(symbols) / numStreams
	streams := make([][]complex128, numStreams)
	for s := range streams {
		streams[s] = make([]complex128, 0, perStream)
	}
	for i, symbol := range symbols {
		s := i % numStreams
		streams[s] = append(streams[s], symbol)
	}
	return streams, nil
}

// LayerDemap interleaves the streams back into a single symbol sequence.
func LayerDemap(streams [][]complex128) ([]complex128, error) {
	if len(streams) == 0 {
		return nil, fmt.Errorf("qam: layer demap: %w", ErrInvalidStreams)
	}
	perStream := len(streams[0])
	for s, stream := range streams {
		if len(stream) != perStream {
			return nil, fmt.Errorf("qam: layer demap stream %v has %v symbols, expected %v: %w", s, len(stream), perStream, ErrUnevenLayerSplit)
		}
	}

	symbols := make([]complex128, 0, perStream*len(streams))
	for i := 0; i < perStream; i++ {
		for _, stream := range streams {
			symbols = append(symbols, stream[i])
		}
	}
	return symbols, nil
}

// LayersToMatrix returns the streams as a streams×symbolsPerStream matrix,
// one row per stream. This is the transmit block for a MIMO channel.
func LayersToMatrix(streams [][]complex128) (*cmatrix.Matrix, error) {
	m, err := cmatrix.FromRows(streams)
	if errors.Is(err, cmatrix.ErrBadShape) {
		return nil, fmt.Errorf("qam: layers to matrix: %w", ErrUnevenLayerSplit)
	}
	return m, err
}

// MatrixToLayers is the inverse of LayersToMatrix.
func MatrixToLayers(m *cmatrix.Matrix) [][]complex128 {
	rows, _ := m.Dims()
	streams := make([][]complex128, rows)
	for r := range streams {
		streams[r] = m.Row(r)
	}
	return streams
}
