package link

import (
	"encoding/json"
	"fmt"

	"github.com/nathanhack/mimo/cmatrix"
)

// Frame is one transmitted block together with what the receiver needs to
// undo the mapping.
type Frame struct {
	Streams      int
	Padding      int // zero indices appended so the symbols split evenly
	DataShards   int // 0 when the payload was not FEC encoded
	ParityShards int
	Block        *cmatrix.Matrix // Streams × symbols per stream
}

// Encoded reports whether the frame carries an FEC block.
func (f *Frame) Encoded() bool {
	return f.DataShards > 0
}

// SymbolsPerStream is the number of columns of the block.
func (f *Frame) SymbolsPerStream() int {
	if f.Block == nil {
		return 0
	}
	_, c := f.Block.Dims()
	return c
}

// withBlock returns a copy of f carrying block.
func (f *Frame) withBlock(block *cmatrix.Matrix) *Frame {
	tmp := *f
	tmp.Block = block
	return &tmp
}

type frameJSON struct {
	Streams      int
	Padding      int
	DataShards   int
	ParityShards int
	Real         [][]float64
	Imag         [][]float64
}

func (f *Frame) MarshalJSON() ([]byte, error) {
	tmp := frameJSON{
		Streams:      f.Streams,
		Padding:      f.Padding,
		DataShards:   f.DataShards,
		ParityShards: f.ParityShards,
		Real:         make([][]float64, 0),
		Imag:         make([][]float64, 0),
	}
	if f.Block != nil {
		rows, _ := f.Block.Dims()
		for i := 0; i < rows; i++ {
			row := f.Block.Row(i)
			re := make([]float64, len(row))
			im := make([]float64, len(row))
			for j, v := range row {
				re[j] = real(v)
				im[j] = imag(v)
			}
			tmp.Real = append(tmp.Real, re)
			tmp.Imag = append(tmp.Imag, im)
		}
	}
	return json.Marshal(tmp)
}

func (f *Frame) UnmarshalJSON(bytes []byte) error {
	var tmp frameJSON
	if err := json.Unmarshal(bytes, &tmp); err != nil {
		return err
	}
	if len(tmp.Real) != len(tmp.Imag) {
		return fmt.Errorf("frame has %v real rows and %v imaginary rows", len(tmp.Real), len(tmp.Imag))
	}

	rows := make([][]complex128, len(tmp.Real))
	for i := range tmp.Real {
		if len(tmp.Real[i]) != len(tmp.Imag[i]) {
			return fmt.Errorf("frame row %v has %v real and %v imaginary parts", i, len(tmp.Real[i]), len(tmp.Imag[i]))
		}
		rows[i] = make([]complex128, len(tmp.Real[i]))
		for j := range tmp.Real[i] {
			rows[i][j] = complex(tmp.Real[i][j], tmp.Imag[i][j])
		}
	}
	block, err := cmatrix.FromRows(rows)
	if err != nil {
		return err
	}
	if r, _ := block.Dims(); r != tmp.Streams {
		return fmt.Errorf("frame claims %v streams but carries %v rows", tmp.Streams, r)
	}

	f.Streams = tmp.Streams
	f.Padding = tmp.Padding
	f.DataShards = tmp.DataShards
	f.ParityShards = tmp.ParityShards
	f.Block = block
	return nil
}
