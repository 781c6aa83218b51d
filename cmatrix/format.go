package cmatrix

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FormatComplex renders c as "<real> + <imag>i" with two decimals.
func FormatComplex(c complex128) string {
	return fmt.Sprintf("%.2f + %.2fi", real(c), imag(c))
}

// Format writes m one row per line with tab separated elements. With markers
// set, the first column is prefixed and the last column suffixed with '|'.
// The output is for humans and is not meant to be parsed.
func Format(w io.Writer, m *Matrix, markers bool) error {
	if m == nil {
		return ErrNilMatrix
	}
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString("\t")
			}
			if markers && j == 0 {
				sb.WriteString("|")
			}
			sb.WriteString(FormatComplex(m.data[i*m.cols+j]))
			if markers && j == m.cols-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (m *Matrix) String() string {
	var sb strings.Builder
	Format(&sb, m, true)
	return sb.String()
}

// ToCDense copies m into a gonum CDense. gonum has no empty matrices so an
// empty m returns nil.
func (m *Matrix) ToCDense() *mat.CDense {
	if m.IsEmpty() {
		return nil
	}
	return mat.NewCDense(m.rows, m.cols, m.Data())
}

// FromCMatrix copies any gonum complex matrix into a new Matrix. A nil a
// returns an empty 0×0 matrix.
func FromCMatrix(a mat.CMatrix) *Matrix {
	if a == nil {
		return &Matrix{}
	}
	if d, ok := a.(*mat.CDense); ok && d == nil {
		return &Matrix{}
	}
	rows, cols := a.Dims()
	m := New(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[i*cols+j] = a.At(i, j)
		}
	}
	return m
}
