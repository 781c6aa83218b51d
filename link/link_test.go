package link

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/nathanhack/mimo/cmatrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransmitDecode(t *testing.T) {
	tests := []struct {
		payload []byte
		streams int
		data    int
		parity  int
		padding int
	}{
		{[]byte("hi"), 1, 0, 0, 0},
		{[]byte("hi"), 2, 0, 0, 0},
		{[]byte("hi"), 3, 0, 0, 1},
		{[]byte{0xff}, 3, 0, 0, 2},
		{[]byte{}, 2, 0, 0, 0},
		{[]byte("layered payload"), 2, 4, 2, 0},
		{[]byte("layered payload"), 3, 5, 3, 2},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			p := Profile{
				Streams:         test.streams,
				ReceiveAntennas: test.streams,
				DataShards:      test.data,
				ParityShards:    test.parity,
			}
			f, err := Transmit(test.payload, p)
			require.NoError(t, err)
			assert.Equal(t, test.streams, f.Streams)
			assert.Equal(t, test.padding, f.Padding)
			assert.Equal(t, test.data > 0, f.Encoded())
			r, _ := f.Block.Dims()
			assert.Equal(t, test.streams, r)

			actual, err := Decode(f)
			require.NoError(t, err)
			assert.Equal(t, test.payload, actual)
		})
	}
}

func TestTransmitLayout(t *testing.T) {
	// 0x1B -> indices 0,1,2,3 -> -1+1i, -1-1i, 1+1i, 1-1i
	f, err := Transmit([]byte{0x1B}, Profile{Streams: 2, ReceiveAntennas: 2})
	require.NoError(t, err)

	expected := cmatrix.New(2, 2,
		-1+1i, 1+1i,
		-1-1i, 1-1i,
	)
	if !expected.Equals(f.Block) {
		t.Fatalf("expected \n%v\n but found \n%v\n", expected, f.Block)
	}
}

func TestTransmitIndicesDetect(t *testing.T) {
	tests := []struct {
		indices []int
		streams int
		padding int
	}{
		{[]int{0, 1, 2, 3}, 2, 0},
		{[]int{3, 2, 1, 0, 3}, 2, 1},
		{[]int{1, 1, 2, 2, 3}, 3, 1},
		{[]int{}, 1, 0},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			f, err := TransmitIndices(test.indices, Profile{Streams: test.streams, ReceiveAntennas: test.streams})
			require.NoError(t, err)
			if f.Padding != test.padding {
				t.Fatalf("expected %v but found %v", test.padding, f.Padding)
			}
			assert.False(t, f.Encoded())

			actual, err := Detect(f)
			require.NoError(t, err)
			if len(test.indices) != len(actual) {
				t.Fatalf("expected %v but found %v", test.indices, actual)
			}
			for j := range actual {
				if actual[j] != test.indices[j] {
					t.Fatalf("expected %v but found %v", test.indices, actual)
				}
			}
		})
	}
}

func TestTransmitIndicesMatchesTransmit(t *testing.T) {
	p := Profile{Streams: 2, ReceiveAntennas: 2}
	a, err := Transmit([]byte{0x1B, 0xE4}, p)
	require.NoError(t, err)
	b, err := TransmitIndices([]int{0, 1, 2, 3, 3, 2, 1, 0}, p)
	require.NoError(t, err)
	assert.True(t, a.Block.Equals(b.Block))
	assert.Equal(t, a.Padding, b.Padding)
}

func TestTransmitInvalidProfile(t *testing.T) {
	_, err := Transmit([]byte("x"), Profile{Streams: 0, ReceiveAntennas: 2})
	require.ErrorIs(t, err, ErrBadProfile)
}

func TestReceiveNoiseless(t *testing.T) {
	p := DefaultProfile()
	p.Streams = 2
	p.ReceiveAntennas = 4
	p.SNRDb = math.Inf(1)

	payload := []byte("the quick brown fox")
	result, err := Simulate(payload, p)
	require.NoError(t, err)
	require.NoError(t, result.DecodeErr)
	assert.Equal(t, payload, result.Decoded)
	assert.Equal(t, 0, result.SymbolErrors)
	assert.Equal(t, 0, result.BitErrors)
	assert.Equal(t, len(payload)*8, result.Bits)
	assert.Equal(t, len(payload)*4, result.Symbols)
	assert.Equal(t, 0.0, result.BitErrorRate())
}

func TestSimulateLowSNR(t *testing.T) {
	p := DefaultProfile()
	p.SNRDb = -10

	payload := make([]byte, 256)
	result, err := Simulate(payload, p)
	require.NoError(t, err)
	assert.Greater(t, result.SymbolErrors, 0)
	assert.Greater(t, result.BitErrorRate(), 0.0)
	assert.LessOrEqual(t, result.SymbolErrorRate(), 1.0)
}

func TestSimulateDeterministic(t *testing.T) {
	p := DefaultProfile()
	p.SNRDb = 5
	p.Seed = 99

	payload := []byte("same seed same result")
	a, err := Simulate(payload, p)
	require.NoError(t, err)
	b, err := Simulate(payload, p)
	require.NoError(t, err)
	assert.True(t, a.Received.Block.Equals(b.Received.Block))
	assert.Equal(t, a.BitErrors, b.BitErrors)
}

func TestDecodeErasesUnreliableShards(t *testing.T) {
	p := Profile{Streams: 1, ReceiveAntennas: 1, DataShards: 4, ParityShards: 2}
	payload := []byte("recover me please")
	f, err := Transmit(payload, p)
	require.NoError(t, err)

	// flip every symbol of the first shard with a weak decision
	block := f.Block.Copy()
	s, err := symbols(f)
	require.NoError(t, err)
	shardSymbols := len(s) / 6
	for j := 0; j < shardSymbols; j++ {
		block.Set(0, j, -0.1*block.At(0, j))
	}
	actual, err := Decode(f.withBlock(block))
	require.NoError(t, err)
	assert.Equal(t, payload, actual)
}

func TestDecodeBadFrame(t *testing.T) {
	_, err := Decode(&Frame{Streams: 1, Padding: 5, Block: cmatrix.New(1, 2)})
	require.ErrorIs(t, err, ErrBadFrame)

	_, err = Decode(&Frame{Streams: 1})
	require.ErrorIs(t, err, ErrBadFrame)
}

func TestFrameJSON(t *testing.T) {
	tests := []*Frame{
		{Streams: 2, Padding: 1, Block: cmatrix.New(2, 2, 1+1i, -1+1i, 1-1i, -1-1i)},
		{Streams: 3, DataShards: 4, ParityShards: 2, Block: cmatrix.New(3, 0)},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			bs, err := json.Marshal(test)
			require.NoError(t, err)

			var actual Frame
			require.NoError(t, json.Unmarshal(bs, &actual))
			assert.Equal(t, test.Streams, actual.Streams)
			assert.Equal(t, test.Padding, actual.Padding)
			assert.Equal(t, test.DataShards, actual.DataShards)
			assert.Equal(t, test.ParityShards, actual.ParityShards)
			if !test.Block.Equals(actual.Block) {
				t.Fatalf("expected %v but found %v", test.Block, actual.Block)
			}
		})
	}

	var f Frame
	assert.Error(t, json.Unmarshal([]byte(`{"Streams":2,"Real":[[1]],"Imag":[[1]]}`), &f))
	assert.Error(t, json.Unmarshal([]byte(`{"Streams":1,"Real":[[1,2]],"Imag":[[1]]}`), &f))
}

func TestDecodeProfile(t *testing.T) {
	p, err := DecodeProfile(map[string]interface{}{
		"streams":          "4",
		"receive_antennas": 4,
		"snr_db":           12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, p.Streams)
	assert.Equal(t, 4, p.ReceiveAntennas)
	assert.Equal(t, 12.5, p.SNRDb)
	assert.Equal(t, DefaultProfile().Seed, p.Seed)

	_, err = DecodeProfile(map[string]interface{}{"antennas": 4})
	require.ErrorIs(t, err, ErrBadProfile)

	_, err = DecodeProfile(map[string]interface{}{"streams": 4})
	require.ErrorIs(t, err, ErrBadProfile)

	_, err = DecodeProfile(map[string]interface{}{"data_shards": 4})
	require.ErrorIs(t, err, ErrBadProfile)
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"streams": 2, "receive_antennas": 3, "data_shards": 6, "parity_shards": 2}`), 0644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ReceiveAntennas)
	assert.True(t, p.UsesFEC())

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
