package demo

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		rows, cols int
		product    bool
	}{
		{3, 3, true},
		{2, 3, false},
		{1, 1, true},
		{0, 0, true},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var buf bytes.Buffer
			err := Run(&buf, test.rows, test.cols, 2.5, true)
			if err != nil {
				t.Fatalf("expected no error found :%v", err)
			}
			out := buf.String()
			for _, title := range []string{"Transpose", "Conjugate", "Hermitian", "Sum", "Difference", "Scalar product", "Element-wise product"} {
				if !strings.Contains(out, "======"+title+"======") {
					t.Fatalf("expected section %v in \n%v", title, out)
				}
			}
			if strings.Contains(out, "======Matrix product======") != test.product {
				t.Fatalf("expected matrix product %v in \n%v", test.product, out)
			}
		})
	}
}

func TestRunValues(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(&buf, 1, 1, 2, false); err != nil {
		t.Fatalf("expected no error found :%v", err)
	}
	out := buf.String()
	for _, expected := range []string{
		"1.40 + 4.00i",  // original
		"1.40 + -4.00i", // conjugate and hermitian
		"2.50 + 4.50i",  // A+B
		"-0.50 + -0.50i",
		"2.80 + 8.00i",  // 2*original
		"1.50 + 5.00i",  // literal element-wise product
		"-3.50 + 5.50i", // A·B and complex element-wise product
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected %v in \n%v", expected, out)
		}
	}

	if err := Run(&buf, -1, 2, 2, false); err == nil {
		t.Fatalf("expected an error for negative rows")
	}
}
