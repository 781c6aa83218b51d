package cmatrix

import "errors"

var (
	// ErrAllocation is returned when the storage for a matrix cannot be obtained.
	ErrAllocation = errors.New("cmatrix: allocation failed")

	// ErrBadShape is returned for negative dimensions or ragged row input.
	ErrBadShape = errors.New("cmatrix: invalid shape")

	// ErrDimensionMismatch is returned when operand shapes are incompatible.
	ErrDimensionMismatch = errors.New("cmatrix: dimension mismatch")

	// ErrNilMatrix is returned when a nil *Matrix is passed to an operation.
	ErrNilMatrix = errors.New("cmatrix: nil matrix")

	// ErrNonSquare is returned when a square matrix is required.
	ErrNonSquare = errors.New("cmatrix: matrix is not square")

	// ErrSingular is returned when a matrix has no inverse.
	ErrSingular = errors.New("cmatrix: singular matrix")
)
