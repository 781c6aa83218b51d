// Package channel generates random flat-fading MIMO channels and applies them
// to blocks of transmitted symbols.
package channel

import (
	"errors"
	"fmt"
	"math"

	"github.com/nathanhack/mimo/cmatrix"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrBadAntennas is returned when an antenna count is not positive.
	ErrBadAntennas = errors.New("channel: antenna counts must be > 0")

	// ErrUnderdetermined is returned when there are fewer receive than transmit antennas.
	ErrUnderdetermined = errors.New("channel: fewer receive antennas than transmit streams")
)

// SymbolEnergy is the average energy of the 4-point constellation (|±1±1i|²).
const SymbolEnergy = 2.0

// Rayleigh describes an i.i.d. Rayleigh flat-fading channel with Receive
// antennas and Transmit streams. A nil Src uses the global source.
type Rayleigh struct {
	Receive  int
	Transmit int
	Src      rand.Source
}

// NewRayleigh returns a Rayleigh channel seeded with seed.
func NewRayleigh(receive, transmit int, seed uint64) Rayleigh {
	return Rayleigh{
		Receive:  receive,
		Transmit: transmit,
		Src:      rand.NewSource(seed),
	}
}

// Generate returns a Receive×Transmit matrix with CN(0,1) entries.
func (r Rayleigh) Generate() (*cmatrix.Matrix, error) {
	if r.Receive <= 0 || r.Transmit <= 0 {
		return nil, fmt.Errorf("channel: %vx%v: %w", r.Receive, r.Transmit, ErrBadAntennas)
	}
	h, err := cmatrix.Allocate(r.Receive, r.Transmit)
	if err != nil {
		return nil, err
	}

	// each component carries half of the unit power
	n := distuv.Normal{Mu: 0, Sigma: math.Sqrt(0.5), Src: r.Src}
	for i := 0; i < r.Receive; i++ {
		for j := 0; j < r.Transmit; j++ {
			h.Set(i, j, complex(n.Rand(), n.Rand()))
		}
	}
	logrus.Debugf("Generated %vx%v Rayleigh channel", r.Receive, r.Transmit)
	return h, nil
}

// NoiseSigma returns the per-component noise standard deviation for an Es/N0 of snrDb.
func NoiseSigma(snrDb float64) float64 {
	n0 := SymbolEnergy / math.Pow(10, snrDb/10)
	return math.Sqrt(n0 / 2)
}

// AWGN returns a copy of x with complex white Gaussian noise added at an
// Es/N0 of snrDb. An infinite snrDb returns an exact copy.
func AWGN(x *cmatrix.Matrix, snrDb float64, src rand.Source) (*cmatrix.Matrix, error) {
	if x == nil {
		return nil, cmatrix.ErrNilMatrix
	}
	result := x.Copy()
	if math.IsInf(snrDb, 1) {
		return result, nil
	}

	n := distuv.Normal{Mu: 0, Sigma: NoiseSigma(snrDb), Src: src}
	rows, cols := result.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			result.Set(i, j, result.At(i, j)+complex(n.Rand(), n.Rand()))
		}
	}
	return result, nil
}

// Apply returns Y = H·X + N.
func Apply(h, x *cmatrix.Matrix, snrDb float64, src rand.Source) (*cmatrix.Matrix, error) {
	hx, err := cmatrix.Multiply(h, x)
	if err != nil {
		return nil, fmt.Errorf("channel: apply: %w", err)
	}
	return AWGN(hx, snrDb, src)
}

// ZeroForcing returns the equalizer W = (Hᴴ·H)⁻¹·Hᴴ.
func ZeroForcing(h *cmatrix.Matrix) (*cmatrix.Matrix, error) {
	if h == nil {
		return nil, cmatrix.ErrNilMatrix
	}
	receive, transmit := h.Dims()
	if receive < transmit {
		return nil, fmt.Errorf("channel: zero forcing %vx%v: %w", receive, transmit, ErrUnderdetermined)
	}

	ht, err := cmatrix.Transpose(h)
	if err != nil {
		return nil, err
	}
	hh, err := cmatrix.Hermitian(ht)
	if err != nil {
		return nil, err
	}
	gram, err := cmatrix.Multiply(hh, h)
	if err != nil {
		return nil, err
	}
	inv, err := cmatrix.Inverse(gram)
	if err != nil {
		return nil, fmt.Errorf("channel: zero forcing: %w", err)
	}
	return cmatrix.Multiply(inv, hh)
}

// Equalize returns the estimate W·Y of the transmitted block.
func Equalize(w, y *cmatrix.Matrix) (*cmatrix.Matrix, error) {
	x, err := cmatrix.Multiply(w, y)
	if err != nil {
		return nil, fmt.Errorf("channel: equalize: %w", err)
	}
	return x, nil
}
