// Package link chains the outer code, the symbol mapper, the layer mapper and
// the MIMO channel into a transmit and receive path for byte payloads.
package link

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/nathanhack/mimo/bitstream"
	"github.com/nathanhack/mimo/channel"
	"github.com/nathanhack/mimo/cmatrix"
	"github.com/nathanhack/mimo/fec"
	"github.com/nathanhack/mimo/qam"
	"github.com/sirupsen/logrus"
)

// ErrBadFrame is returned when a frame is inconsistent with its block.
var ErrBadFrame = errors.New("link: malformed frame")

// erasureThreshold is the distance from the decision axes below which a
// symbol is treated as unreliable when choosing shards to erase.
const erasureThreshold = 0.5

// Transmit encodes payload according to p and maps it onto a Streams-row block.
func Transmit(payload []byte, p Profile) (*Frame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	data := payload
	if p.UsesFEC() {
		codec, err := fec.New(p.DataShards, p.ParityShards)
		if err != nil {
			return nil, err
		}
		data, err = codec.Encode(payload)
		if err != nil {
			return nil, err
		}
	}

	f, err := TransmitIndices(bitstream.Unpack(data), p)
	if err != nil {
		return nil, err
	}
	if p.UsesFEC() {
		f.DataShards = p.DataShards
		f.ParityShards = p.ParityShards
	}
	logrus.Debugf("Transmit %v bytes on %v streams", len(payload), p.Streams)
	return f, nil
}

// TransmitIndices maps constellation indices straight onto a Streams-row
// block, padding the last column with index 0. The outer code is not applied.
func TransmitIndices(indices []int, p Profile) (*Frame, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	padding := (p.Streams - len(indices)%p.Streams) % p.Streams
	padded := make([]int, len(indices)+padding)
	copy(padded, indices)

	streams, err := qam.LayerMap(qam.MapToSymbols(padded), p.Streams)
	if err != nil {
		return nil, err
	}
	block, err := qam.LayersToMatrix(streams)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Mapped %v symbols on %v streams (padding %v)", len(indices), p.Streams, padding)
	return &Frame{
		Streams: p.Streams,
		Padding: padding,
		Block:   block,
	}, nil
}

// Equalize applies a zero forcing equalizer for h to the received block y and
// returns a copy of f carrying the estimate.
func Equalize(f *Frame, h, y *cmatrix.Matrix) (*Frame, error) {
	w, err := channel.ZeroForcing(h)
	if err != nil {
		return nil, err
	}
	x, err := channel.Equalize(w, y)
	if err != nil {
		return nil, err
	}
	if r, c := x.Dims(); r != f.Streams || c != f.SymbolsPerStream() {
		return nil, fmt.Errorf("link: equalized block is %vx%v but frame is %vx%v: %w", r, c, f.Streams, f.SymbolsPerStream(), ErrBadFrame)
	}
	return f.withBlock(x), nil
}

// symbols returns the interleaved symbol sequence of f without padding.
func symbols(f *Frame) ([]complex128, error) {
	if f == nil || f.Block == nil {
		return nil, fmt.Errorf("link: %w", ErrBadFrame)
	}
	s, err := qam.LayerDemap(qam.MatrixToLayers(f.Block))
	if err != nil {
		return nil, err
	}
	if f.Padding < 0 || f.Padding > len(s) {
		return nil, fmt.Errorf("link: padding %v with %v symbols: %w", f.Padding, len(s), ErrBadFrame)
	}
	return s[:len(s)-f.Padding], nil
}

// Detect makes hard decisions on the frame's block and returns the
// constellation indices without padding.
func Detect(f *Frame) ([]int, error) {
	s, err := symbols(f)
	if err != nil {
		return nil, err
	}
	return qam.Demap(s), nil
}

// Decode makes hard decisions on the frame's block and recovers the payload.
func Decode(f *Frame) ([]byte, error) {
	s, err := symbols(f)
	if err != nil {
		return nil, err
	}
	data, err := bitstream.Pack(qam.Demap(s))
	if err != nil {
		return nil, err
	}
	if !f.Encoded() {
		return data, nil
	}

	codec, err := fec.New(f.DataShards, f.ParityShards)
	if err != nil {
		return nil, err
	}
	erased := unreliableShards(s, len(data), codec)
	if len(erased) > 0 {
		logrus.Debugf("Erasing shards %v", erased)
	}
	return codec.Decode(data, erased)
}

// Receive equalizes y and decodes the payload.
func Receive(f *Frame, h, y *cmatrix.Matrix) ([]byte, error) {
	estimate, err := Equalize(f, h, y)
	if err != nil {
		return nil, err
	}
	return Decode(estimate)
}

// unreliableShards picks up to ParityShards shards holding the symbols closest
// to the decision axes.
func unreliableShards(s []complex128, blockLen int, codec *fec.Codec) []int {
	total := codec.TotalShards()
	if blockLen == 0 || blockLen%total != 0 {
		return nil
	}
	size := blockLen / total

	reliability := make([]float64, total)
	for i := range reliability {
		reliability[i] = math.Inf(1)
	}
	for i, v := range s {
		shard := i / bitstream.IndicesPerByte / size
		if shard >= total {
			break
		}
		r := math.Min(math.Abs(real(v)), math.Abs(imag(v)))
		if r < reliability[shard] {
			reliability[shard] = r
		}
	}

	erased := make([]int, 0)
	for shard, r := range reliability {
		if r < erasureThreshold {
			erased = append(erased, shard)
		}
	}
	sort.SliceStable(erased, func(i, j int) bool {
		return reliability[erased[i]] < reliability[erased[j]]
	})
	if len(erased) > codec.ParityShards {
		erased = erased[:codec.ParityShards]
	}
	sort.Ints(erased)
	return erased
}

// SymbolErrors counts the hard decisions of received that differ from sent.
func SymbolErrors(sent, received *Frame) (int, error) {
	a, err := qam.LayerDemap(qam.MatrixToLayers(sent.Block))
	if err != nil {
		return 0, err
	}
	b, err := qam.LayerDemap(qam.MatrixToLayers(received.Block))
	if err != nil {
		return 0, err
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("link: %v sent and %v received symbols: %w", len(a), len(b), ErrBadFrame)
	}

	errs := 0
	da, db := qam.Demap(a), qam.Demap(b)
	for i := range da {
		if da[i] != db[i] {
			errs++
		}
	}
	return errs, nil
}

// Result summarizes one simulated transmission.
type Result struct {
	Sent      *Frame
	Received  *Frame // equalized estimate of Sent
	Decoded   []byte // nil when DecodeErr is set
	DecodeErr error

	Symbols      int
	SymbolErrors int
	Bits         int
	BitErrors    int
}

// SymbolErrorRate is SymbolErrors/Symbols, 0 for an empty frame.
func (r Result) SymbolErrorRate() float64 {
	if r.Symbols == 0 {
		return 0
	}
	return float64(r.SymbolErrors) / float64(r.Symbols)
}

// BitErrorRate is BitErrors/Bits, 0 for an empty payload.
func (r Result) BitErrorRate() float64 {
	if r.Bits == 0 {
		return 0
	}
	return float64(r.BitErrors) / float64(r.Bits)
}

// Simulate sends payload over a Rayleigh channel with p.ReceiveAntennas
// receive antennas and AWGN at p.SNRDb, seeded with p.Seed. A payload that
// fails to decode counts every bit as an error.
func Simulate(payload []byte, p Profile) (*Result, error) {
	sent, err := Transmit(payload, p)
	if err != nil {
		return nil, err
	}

	ray := channel.NewRayleigh(p.ReceiveAntennas, p.Streams, p.Seed)
	h, err := ray.Generate()
	if err != nil {
		return nil, err
	}
	y, err := channel.Apply(h, sent.Block, p.SNRDb, ray.Src)
	if err != nil {
		return nil, err
	}
	received, err := Equalize(sent, h, y)
	if err != nil {
		return nil, err
	}

	symErrs, err := SymbolErrors(sent, received)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Sent:         sent,
		Received:     received,
		Symbols:      sent.Block.Len(),
		SymbolErrors: symErrs,
		Bits:         len(payload) * 8,
	}

	result.Decoded, result.DecodeErr = Decode(received)
	if result.DecodeErr != nil {
		result.Decoded = nil
		result.BitErrors = result.Bits
	} else {
		result.BitErrors = bitstream.BitErrors(payload, result.Decoded)
	}
	logrus.Debugf("Simulated %v symbols: %v symbol errors, %v bit errors", result.Symbols, result.SymbolErrors, result.BitErrors)
	return result, nil
}
