package cmd

import (
	"github.com/nathanhack/mimo/cmd/internal/matrix/demo"

	"github.com/spf13/cobra"
)

// matrixCmd represents the matrix command
var matrixCmd = &cobra.Command{
	Use:     "matrix",
	Aliases: []string{"m"},
	Short:   "Complex matrix operations",
	Long:    `Complex matrix operations`,
}

// matrixDemoCmd represents the demo command
var matrixDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Prints every matrix operation on sample matrices",
	Long: `Fills sample matrices with (l+c+offset) values and prints their transpose,
conjugate, hermitian, sum, difference, scalar and element-wise products.`,
	Args: cobra.NoArgs,
	Run:  demo.DemoRun,
}

func init() {
	rootCmd.AddCommand(matrixCmd)
	matrixCmd.AddCommand(matrixDemoCmd)
	matrixDemoCmd.Flags().UintVarP(&demo.Rows, "rows", "r", 3, "the number of rows")
	matrixDemoCmd.Flags().UintVarP(&demo.Cols, "cols", "c", 3, "the number of columns")
	matrixDemoCmd.Flags().Float64VarP(&demo.Scalar, "scalar", "s", 2.5, "the scalar for the scalar product")
	matrixDemoCmd.Flags().BoolVarP(&demo.Markers, "markers", "m", true, "print | markers around each row")
}
