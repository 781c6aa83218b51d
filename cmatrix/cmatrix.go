// Package cmatrix provides dense complex matrices and the algebraic primitives
// used by the mapper and channel packages. Every operation returns a freshly
// allocated result and never modifies its inputs.
package cmatrix

import (
	"fmt"
	"math/cmplx"
)

// MaxElements is the largest number of elements a single matrix may hold.
const MaxElements = 1 << 28

// Matrix is a rows×cols complex matrix stored row-major in one contiguous buffer.
// The zero value is a valid 0×0 matrix.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// Allocate returns a zero filled rows×cols matrix. Zero sized dimensions are allowed.
func Allocate(rows, cols int) (m *Matrix, err error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("cmatrix: allocate %vx%v: %w", rows, cols, ErrBadShape)
	}
	if cols != 0 && rows > MaxElements/cols {
		return nil, fmt.Errorf("cmatrix: allocate %vx%v: %w", rows, cols, ErrAllocation)
	}

	// make panics (it does not return nil) when the runtime refuses the size
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("cmatrix: allocate %vx%v: %v: %w", rows, cols, r, ErrAllocation)
		}
	}()

	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}, nil
}

// New creates a rows×cols matrix. If values are given there must be exactly
// rows*cols of them in row-major order. New panics on invalid input.
func New(rows, cols int, values ...complex128) *Matrix {
	m, err := Allocate(rows, cols)
	if err != nil {
		panic(err)
	}
	if len(values) == 0 {
		return m
	}
	if len(values) != rows*cols {
		panic(fmt.Sprintf("cmatrix: %v values required but found %v", rows*cols, len(values)))
	}
	copy(m.data, values)
	return m
}

// FromRows builds a matrix from a rectangular slice of rows.
func FromRows(rows [][]complex128) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := Allocate(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("cmatrix: row %v has %v columns, expected %v: %w", i, len(row), cols, ErrBadShape)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := Allocate(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// Len returns the number of elements.
func (m *Matrix) Len() int {
	return len(m.data)
}

func (m *Matrix) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cmatrix: index (%v,%v) out of range for %vx%v matrix", i, j, m.rows, m.cols))
	}
}

// At returns the element at row i and column j.
func (m *Matrix) At(i, j int) complex128 {
	m.checkIndex(i, j)
	return m.data[i*m.cols+j]
}

// Set sets the element at row i and column j.
func (m *Matrix) Set(i, j int, v complex128) {
	m.checkIndex(i, j)
	m.data[i*m.cols+j] = v
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []complex128 {
	if i < 0 || i >= m.rows {
		panic(fmt.Sprintf("cmatrix: row %v out of range for %vx%v matrix", i, m.rows, m.cols))
	}
	row := make([]complex128, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row
}

// Column returns a copy of column j.
func (m *Matrix) Column(j int) []complex128 {
	if j < 0 || j >= m.cols {
		panic(fmt.Sprintf("cmatrix: column %v out of range for %vx%v matrix", j, m.rows, m.cols))
	}
	col := make([]complex128, m.rows)
	for i := range col {
		col[i] = m.data[i*m.cols+j]
	}
	return col
}

// Data returns a row-major copy of the elements.
func (m *Matrix) Data() []complex128 {
	data := make([]complex128, len(m.data))
	copy(data, m.data)
	return data
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, data: m.Data()}
}

// Equals returns true when both matrices have the same shape and elements.
func (m *Matrix) Equals(b *Matrix) bool {
	if m == nil || b == nil {
		return m == b
	}
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox is Equals with an absolute tolerance on each element.
func (m *Matrix) EqualApprox(b *Matrix, tol float64) bool {
	if m == nil || b == nil {
		return m == b
	}
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-b.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsEmpty returns true when the matrix has no elements.
func (m *Matrix) IsEmpty() bool {
	return len(m.data) == 0
}
