package benchmarking

import (
	"github.com/nathanhack/mimo/bitstream"
	"github.com/nathanhack/mimo/channel"
	"github.com/nathanhack/mimo/cmatrix"
	"github.com/nathanhack/mimo/link"
	"golang.org/x/exp/rand"
)

// RandomPayload creates a random payload of len bytes.
func RandomPayload(len int, src rand.Source) []byte {
	r := rand.New(src)
	payload := make([]byte, len)
	for i := range payload {
		payload[i] = byte(r.Intn(256))
	}
	return payload
}

// RandomIndices creates len random constellation indices.
func RandomIndices(len int, src rand.Source) []int {
	r := rand.New(src)
	indices := make([]int, len)
	for i := range indices {
		indices[i] = r.Intn(bitstream.IndicesPerByte)
	}
	return indices
}

// RandomRayleighChannel returns a MIMOChannel drawing a fresh Rayleigh channel
// and noise for every trial. Trial i is seeded with p.Seed+i so runs repeat.
func RandomRayleighChannel(p link.Profile) MIMOChannel {
	return func(trial int, frame *link.Frame) (h, y *cmatrix.Matrix, err error) {
		ray := channel.NewRayleigh(p.ReceiveAntennas, frame.Streams, p.Seed+uint64(trial))
		h, err = ray.Generate()
		if err != nil {
			return nil, nil, err
		}
		y, err = channel.Apply(h, frame.Block, p.SNRDb, ray.Src)
		if err != nil {
			return nil, nil, err
		}
		return h, y, nil
	}
}
