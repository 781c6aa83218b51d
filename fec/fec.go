// Package fec protects a payload with a Reed-Solomon erasure code before it is
// mapped onto symbols.
package fec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
	"github.com/sirupsen/logrus"
)

// ErrShortBlock is returned when a block cannot hold the shards it claims.
var ErrShortBlock = errors.New("fec: block too short")

const headerSize = 8

// Codec splits a payload into DataShards data shards and adds ParityShards
// parity shards. Up to ParityShards missing shards can be rebuilt.
type Codec struct {
	DataShards   int
	ParityShards int
	enc          reedsolomon.Encoder
}

// New creates a codec.
func New(dataShards, parityShards int) (*Codec, error) {
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, fmt.Errorf("fec: %v+%v shards: %w", dataShards, parityShards, err)
	}
	return &Codec{
		DataShards:   dataShards,
		ParityShards: parityShards,
		enc:          enc,
	}, nil
}

// TotalShards is DataShards+ParityShards.
func (c *Codec) TotalShards() int {
	return c.DataShards + c.ParityShards
}

// Encode prefixes payload with its length, splits it into shards, computes the
// parity and returns all shards concatenated.
func (c *Codec) Encode(payload []byte) ([]byte, error) {
	framed := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint64(framed, uint64(len(payload)))
	copy(framed[headerSize:], payload)

	shards, err := c.enc.Split(framed)
	if err != nil {
		return nil, fmt.Errorf("fec: split: %w", err)
	}
	if err := c.enc.Encode(shards); err != nil {
		return nil, fmt.Errorf("fec: encode: %w", err)
	}

	block := make([]byte, 0, len(shards)*len(shards[0]))
	for _, s := range shards {
		block = append(block, s...)
	}
	logrus.Debugf("FEC encoded %v bytes into %v shards of %v bytes", len(payload), len(shards), len(shards[0]))
	return block, nil
}

// Decode rebuilds the shards listed in erased, verifies the parity and
// returns the original payload.
func (c *Codec) Decode(block []byte, erased []int) ([]byte, error) {
	total := c.TotalShards()
	if len(block) == 0 || len(block)%total != 0 {
		return nil, fmt.Errorf("fec: block of %v bytes for %v shards: %w", len(block), total, ErrShortBlock)
	}
	size := len(block) / total

	shards := make([][]byte, total)
	for i := range shards {
		shards[i] = make([]byte, size)
		copy(shards[i], block[i*size:(i+1)*size])
	}
	for _, e := range erased {
		if e >= 0 && e < total {
			shards[e] = nil
		}
	}

	if len(erased) > 0 {
		if err := c.enc.Reconstruct(shards); err != nil {
			return nil, fmt.Errorf("fec: reconstruct: %w", err)
		}
	}
	ok, err := c.enc.Verify(shards)
	if err != nil {
		return nil, fmt.Errorf("fec: verify: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("fec: verify: parity mismatch")
	}

	var buf bytes.Buffer
	if err := c.enc.Join(&buf, shards, c.DataShards*size); err != nil {
		return nil, fmt.Errorf("fec: join: %w", err)
	}
	framed := buf.Bytes()
	if len(framed) < headerSize {
		return nil, ErrShortBlock
	}
	n := binary.BigEndian.Uint64(framed)
	if n > uint64(len(framed)-headerSize) {
		return nil, fmt.Errorf("fec: header claims %v bytes: %w", n, ErrShortBlock)
	}
	return framed[headerSize : headerSize+int(n)], nil
}
