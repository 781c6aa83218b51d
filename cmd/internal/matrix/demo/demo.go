package demo

import (
	"fmt"
	"io"
	"os"

	"github.com/nathanhack/mimo/cmatrix"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Rows    uint
	Cols    uint
	Scalar  float64
	Markers bool
)

var DemoRun = func(cmd *cobra.Command, args []string) {
	if err := Run(os.Stdout, int(Rows), int(Cols), Scalar, Markers); err != nil {
		fmt.Println(err)
	}
}

func fill(rows, cols int, re, im float64) (*cmatrix.Matrix, error) {
	m, err := cmatrix.Allocate(rows, cols)
	if err != nil {
		return nil, err
	}
	for l := 0; l < rows; l++ {
		for c := 0; c < cols; c++ {
			m.Set(l, c, complex(float64(l+c)+re, float64(l+c)+im))
		}
	}
	return m, nil
}

type section struct {
	title  string
	inputs []string
	result string
	op     func() (*cmatrix.Matrix, error)
}

// Run prints every matrix operation applied to rows×cols sample matrices.
func Run(w io.Writer, rows, cols int, scalar float64, markers bool) error {
	original, err := fill(rows, cols, 1.4, 4.0)
	if err != nil {
		return err
	}
	a, err := fill(rows, cols, 1.0, 2.0)
	if err != nil {
		return err
	}
	b, err := fill(rows, cols, 1.5, 2.5)
	if err != nil {
		return err
	}
	named := map[string]*cmatrix.Matrix{
		"Original": original,
		"A":        a,
		"B":        b,
	}

	var transposed *cmatrix.Matrix
	sections := []section{
		{"Transpose", []string{"Original"}, "Transposed", func() (*cmatrix.Matrix, error) {
			transposed, err = cmatrix.Transpose(original)
			return transposed, err
		}},
		{"Conjugate", []string{"Original"}, "Conjugate", func() (*cmatrix.Matrix, error) {
			return cmatrix.Conjugate(original)
		}},
		{"Hermitian", []string{"Original"}, "Hermitian", func() (*cmatrix.Matrix, error) {
			return cmatrix.Hermitian(transposed)
		}},
		{"Sum", []string{"A", "B"}, "A+B", func() (*cmatrix.Matrix, error) {
			return cmatrix.Add(a, b)
		}},
		{"Difference", []string{"A", "B"}, "A-B", func() (*cmatrix.Matrix, error) {
			return cmatrix.Subtract(a, b)
		}},
		{"Scalar product", []string{"Original"}, fmt.Sprintf("%v*Original", scalar), func() (*cmatrix.Matrix, error) {
			return cmatrix.ScalarMultiply(original, scalar)
		}},
		{"Element-wise product", []string{"A", "B"}, "A.*B", func() (*cmatrix.Matrix, error) {
			return cmatrix.ElementwiseMultiply(a, b)
		}},
		{"Complex element-wise product", []string{"A", "B"}, "A∘B", func() (*cmatrix.Matrix, error) {
			return cmatrix.ComplexHadamard(a, b)
		}},
	}
	if rows == cols {
		sections = append(sections, section{"Matrix product", []string{"A", "B"}, "A·B", func() (*cmatrix.Matrix, error) {
			return cmatrix.Multiply(a, b)
		}})
	} else {
		logrus.Infof("skipping the matrix product of %vx%v matrices", rows, cols)
	}

	for _, s := range sections {
		result, err := s.op()
		if err != nil {
			return fmt.Errorf("%v: %w", s.title, err)
		}

		fmt.Fprintf(w, "\n ======%v====== \n", s.title)
		for _, name := range s.inputs {
			fmt.Fprintf(w, "\n %v: \n", name)
			if err := cmatrix.Format(w, named[name], markers); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "\n %v: \n", s.result)
		if err := cmatrix.Format(w, result, markers); err != nil {
			return err
		}
	}
	return nil
}
