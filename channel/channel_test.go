package channel

import (
	"math"
	"strconv"
	"testing"

	"github.com/nathanhack/mimo/cmatrix"
	"github.com/nathanhack/mimo/qam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		receive, transmit int
	}{
		{1, 1},
		{2, 2},
		{4, 2},
		{8, 4},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			h, err := NewRayleigh(test.receive, test.transmit, 1).Generate()
			require.NoError(t, err)
			r, c := h.Dims()
			if r != test.receive || c != test.transmit {
				t.Fatalf("expected %vx%v but found %vx%v", test.receive, test.transmit, r, c)
			}
		})
	}

	_, err := NewRayleigh(0, 2, 1).Generate()
	require.ErrorIs(t, err, ErrBadAntennas)
}

func TestGenerateSeeded(t *testing.T) {
	a, err := NewRayleigh(3, 2, 42).Generate()
	require.NoError(t, err)
	b, err := NewRayleigh(3, 2, 42).Generate()
	require.NoError(t, err)
	assert.True(t, a.Equals(b))

	c, err := NewRayleigh(3, 2, 43).Generate()
	require.NoError(t, err)
	assert.False(t, a.Equals(c))
}

func TestGenerateUnitPower(t *testing.T) {
	h, err := NewRayleigh(200, 50, 7).Generate()
	require.NoError(t, err)

	power := 0.0
	for _, v := range h.Data() {
		power += real(v)*real(v) + imag(v)*imag(v)
	}
	power /= float64(h.Len())
	assert.InDelta(t, 1.0, power, 0.05)
}

func TestAWGN(t *testing.T) {
	x := cmatrix.New(1, 4, 1+1i, -1+1i, 1-1i, -1-1i)

	clean, err := AWGN(x, math.Inf(1), nil)
	require.NoError(t, err)
	assert.True(t, x.Equals(clean))

	noisy, err := AWGN(x, 10, rand.NewSource(3))
	require.NoError(t, err)
	assert.False(t, x.Equals(noisy))
	// x is untouched
	assert.Equal(t, complex(1, 1), x.At(0, 0))

	assert.InDelta(t, 1.0, NoiseSigma(0), 1e-12)
	assert.InDelta(t, math.Sqrt(0.1), NoiseSigma(10), 1e-12)
}

func TestZeroForcing(t *testing.T) {
	tests := []struct {
		receive, transmit int
	}{
		{2, 2},
		{4, 2},
		{3, 3},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			h, err := NewRayleigh(test.receive, test.transmit, uint64(10+i)).Generate()
			require.NoError(t, err)

			w, err := ZeroForcing(h)
			require.NoError(t, err)

			// W·H == I
			wh, err := cmatrix.Multiply(w, h)
			require.NoError(t, err)
			ident, _ := cmatrix.Identity(test.transmit)
			if !ident.EqualApprox(wh, 1e-9) {
				t.Fatalf("expected identity but found \n%v\n", wh)
			}
		})
	}

	h, _ := NewRayleigh(1, 2, 1).Generate()
	_, err := ZeroForcing(h)
	require.ErrorIs(t, err, ErrUnderdetermined)
}

func TestApplyEqualizeNoiseless(t *testing.T) {
	indices := []int{0, 1, 2, 3, 3, 2, 1, 0}
	streams, err := qam.LayerMap(qam.MapToSymbols(indices), 2)
	require.NoError(t, err)
	x, err := qam.LayersToMatrix(streams)
	require.NoError(t, err)

	h, err := NewRayleigh(4, 2, 5).Generate()
	require.NoError(t, err)
	y, err := Apply(h, x, math.Inf(1), nil)
	require.NoError(t, err)

	w, err := ZeroForcing(h)
	require.NoError(t, err)
	xHat, err := Equalize(w, y)
	require.NoError(t, err)
	assert.True(t, x.EqualApprox(xHat, 1e-9))

	symbols, err := qam.LayerDemap(qam.MatrixToLayers(xHat))
	require.NoError(t, err)
	assert.Equal(t, indices, qam.Demap(symbols))

	_, err = Apply(h, cmatrix.New(3, 1), 10, nil)
	require.ErrorIs(t, err, cmatrix.ErrDimensionMismatch)
}
