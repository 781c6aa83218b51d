package rx

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nathanhack/mimo/cmd/internal/transceiver/tx"
	"github.com/nathanhack/mimo/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitReceive(t *testing.T) {
	tests := []struct {
		payload []byte
		profile link.Profile
	}{
		{[]byte("layered payload"), link.Profile{Streams: 2}},
		{[]byte("odd"), link.Profile{Streams: 3}},
		{[]byte{}, link.Profile{Streams: 1}},
		{[]byte("shards and parity"), link.Profile{Streams: 4, DataShards: 3, ParityShards: 2}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in.bin")
			frame := filepath.Join(dir, "frame.json")
			out := filepath.Join(dir, "out.bin")
			require.NoError(t, os.WriteFile(in, test.payload, 0644))

			require.NoError(t, tx.Transmit(in, frame, test.profile))
			require.NoError(t, Receive(frame, out))

			actual, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, test.payload, actual)
		})
	}
}

func TestTransmitMissingInput(t *testing.T) {
	dir := t.TempDir()
	tests := []link.Profile{
		{Streams: 2},
		{Streams: 2, DataShards: 2, ParityShards: 1},
	}
	for i, profile := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			err := tx.Transmit(filepath.Join(dir, "missing.bin"), filepath.Join(dir, "frame.json"), profile)
			assert.Error(t, err)
		})
	}
}

func TestReceiveErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Receive(filepath.Join(dir, "missing.json"), filepath.Join(dir, "out")))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	assert.Error(t, Receive(bad, filepath.Join(dir, "out")))
}
