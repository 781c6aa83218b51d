package cmatrix

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

// singularTolerance is the smallest pivot magnitude Inverse accepts.
const singularTolerance = 1e-12

func sameShape(op string, a, b *Matrix) error {
	if a == nil || b == nil {
		return fmt.Errorf("cmatrix: %v: %w", op, ErrNilMatrix)
	}
	if a.rows != b.rows || a.cols != b.cols {
		return fmt.Errorf("cmatrix: %v %vx%v and %vx%v: %w", op, a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	return nil
}

// elementwise allocates a matrix shaped like a and fills it with f applied to each element.
func elementwise(a *Matrix, f func(i int) complex128) (*Matrix, error) {
	result, err := Allocate(a.rows, a.cols)
	if err != nil {
		return nil, err
	}
	for i := range result.data {
		result.data[i] = f(i)
	}
	return result, nil
}

// Transpose returns the cols×rows matrix with result[j][i] = m[i][j].
func Transpose(m *Matrix) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("cmatrix: transpose: %w", ErrNilMatrix)
	}
	result, err := Allocate(m.cols, m.rows)
	if err != nil {
		return nil, err
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return result, nil
}

// Conjugate returns m with every imaginary part negated.
func Conjugate(m *Matrix) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("cmatrix: conjugate: %w", ErrNilMatrix)
	}
	return elementwise(m, func(i int) complex128 {
		return cmplx.Conj(m.data[i])
	})
}

// Hermitian is the second step of the conjugate transpose. The caller passes
// the already transposed matrix t (see Transpose) and gets back conj(t).
// Use ConjugateTranspose to do both steps at once.
func Hermitian(t *Matrix) (*Matrix, error) {
	if t == nil {
		return nil, fmt.Errorf("cmatrix: hermitian: %w", ErrNilMatrix)
	}
	return Conjugate(t)
}

// ConjugateTranspose returns conj(transpose(m)) in a single pass using
// gonum's conjugate transpose view.
func ConjugateTranspose(m *Matrix) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("cmatrix: conjugate transpose: %w", ErrNilMatrix)
	}
	if m.IsEmpty() {
		return Allocate(m.cols, m.rows)
	}
	return FromCMatrix(m.ToCDense().H()), nil
}

// Add returns a+b.
func Add(a, b *Matrix) (*Matrix, error) {
	if err := sameShape("add", a, b); err != nil {
		return nil, err
	}
	return elementwise(a, func(i int) complex128 {
		return a.data[i] + b.data[i]
	})
}

// Subtract returns a-b.
func Subtract(a, b *Matrix) (*Matrix, error) {
	if err := sameShape("subtract", a, b); err != nil {
		return nil, err
	}
	return elementwise(a, func(i int) complex128 {
		return a.data[i] - b.data[i]
	})
}

// ScalarMultiply multiplies every element of m by the real scalar k.
func ScalarMultiply(m *Matrix, k float64) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("cmatrix: scalar multiply: %w", ErrNilMatrix)
	}
	return elementwise(m, func(i int) complex128 {
		return complex(real(m.data[i])*k, imag(m.data[i])*k)
	})
}

// ElementwiseMultiply multiplies the real parts and the imaginary parts of a
// and b independently: result = Re(a)Re(b) + Im(a)Im(b)i.
// This is NOT complex multiplication, see ComplexHadamard for that.
func ElementwiseMultiply(a, b *Matrix) (*Matrix, error) {
	if err := sameShape("elementwise multiply", a, b); err != nil {
		return nil, err
	}
	return elementwise(a, func(i int) complex128 {
		return complex(real(a.data[i])*real(b.data[i]), imag(a.data[i])*imag(b.data[i]))
	})
}

// ComplexHadamard returns the element-wise complex product of a and b.
func ComplexHadamard(a, b *Matrix) (*Matrix, error) {
	if err := sameShape("complex hadamard", a, b); err != nil {
		return nil, err
	}
	return elementwise(a, func(i int) complex128 {
		return a.data[i] * b.data[i]
	})
}

func (m *Matrix) general() cblas128.General {
	return cblas128.General{
		Rows:   m.rows,
		Cols:   m.cols,
		Stride: m.cols,
		Data:   m.data,
	}
}

// Multiply returns the matrix product a·b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("cmatrix: multiply: %w", ErrNilMatrix)
	}
	if a.cols != b.rows {
		return nil, fmt.Errorf("cmatrix: multiply %vx%v by %vx%v: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	result, err := Allocate(a.rows, b.cols)
	if err != nil {
		return nil, err
	}
	//blas rejects zero strides, and an empty inner dimension is already the zero matrix
	if result.IsEmpty() || a.cols == 0 {
		return result, nil
	}
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.general(), b.general(), 0, result.general())
	return result, nil
}

// Inverse returns the inverse of the square matrix m using Gauss-Jordan
// elimination with partial pivoting.
func Inverse(m *Matrix) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("cmatrix: inverse: %w", ErrNilMatrix)
	}
	if m.rows != m.cols {
		return nil, fmt.Errorf("cmatrix: inverse %vx%v: %w", m.rows, m.cols, ErrNonSquare)
	}
	n := m.rows
	work := m.Copy()
	result, err := Identity(n)
	if err != nil {
		return nil, err
	}

	swapRows := func(x *Matrix, i, j int) {
		for c := 0; c < n; c++ {
			x.data[i*n+c], x.data[j*n+c] = x.data[j*n+c], x.data[i*n+c]
		}
	}

	for col := 0; col < n; col++ {
		//find the largest pivot at or below the diagonal
		pivot := col
		for r := col + 1; r < n; r++ {
			if cmplx.Abs(work.data[r*n+col]) > cmplx.Abs(work.data[pivot*n+col]) {
				pivot = r
			}
		}
		if cmplx.Abs(work.data[pivot*n+col]) < singularTolerance {
			return nil, fmt.Errorf("cmatrix: inverse: column %v: %w", col, ErrSingular)
		}
		if pivot != col {
			swapRows(work, pivot, col)
			swapRows(result, pivot, col)
		}

		// normalize the pivot row
		p := work.data[col*n+col]
		for c := 0; c < n; c++ {
			work.data[col*n+c] /= p
			result.data[col*n+c] /= p
		}

		// eliminate every other row
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := work.data[r*n+col]
			if f == 0 {
				continue
			}
			for c := 0; c < n; c++ {
				work.data[r*n+c] -= f * work.data[col*n+c]
				result.data[r*n+c] -= f * result.data[col*n+c]
			}
		}
	}
	return result, nil
}
