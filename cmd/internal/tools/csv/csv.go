package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var SymbolError bool
var FrameError bool

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	stats, snrs, err := tools.LoadAllResults(args)
	if err != nil {
		fmt.Println(err)
		return
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	if err := Write(f, args, stats, snrs); err != nil {
		fmt.Println(err)
	}
}

// Value picks the error rate selected by the flags.
func Value(s benchmarking.Stats) float64 {
	switch {
	case SymbolError:
		return s.SymbolError.Mean
	case FrameError:
		return s.FrameError.Mean
	default:
		return s.BitError.Mean
	}
}

// Write emits one header row of SNRs and one row per results file.
func Write(out io.Writer, names []string, stats []*tools.SimulationStats, snrs []float64) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"Results File"}
	for _, p := range snrs {
		header = append(header, fmt.Sprintf("%v", p))
	}

	if err := w.Write(header); err != nil {
		return err
	}

	for i, s := range stats {
		record := make([]string, len(header))
		record[0] = strings.TrimSuffix(names[i], filepath.Ext(names[i]))

		for j, p := range snrs {
			if v, has := s.Stats[p]; has {
				record[j+1] = fmt.Sprintf("%v", Value(v))
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}
