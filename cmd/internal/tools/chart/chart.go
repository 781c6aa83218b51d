package chart

import (
	"fmt"
	"os"

	"github.com/nathanhack/mimo/cmd/internal/tools"
	"github.com/nathanhack/mimo/cmd/internal/tools/csv"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var LogScale bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RESULTS_JSON")
		return
	}

	// loop through all the results files and collect data needed for displaying
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

	line := NewLine(args, stats, snrs)

	if err := line.Render(f); err != nil {
		fmt.Println(err)
	}
}

// NewLine builds one error rate curve per results file against SNR.
func NewLine(names []string, stats []*tools.SimulationStats, snrs []float64) *charts.Line {
	yAxis := opts.YAxis{
		Name:      "Error Rate",
		SplitLine: &opts.SplitLine{Show: true},
	}
	if LogScale {
		yAxis.Type = "log"
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Results",
			Subtitle: "Error Rates vs SNR",
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "SNR (dB)",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(yAxis),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	xnames := make([]string, len(snrs))
	for i, n := range snrs {
		xnames[i] = fmt.Sprint(n)
	}
	line.SetXAxis(xnames)

	for i, s := range stats {
		line.AddSeries(names[i], series(s, snrs))
	}
	return line
}

func series(stat *tools.SimulationStats, values []float64) []opts.LineData {
	results := make([]opts.LineData, len(values))
	null := opts.LineData{Value: nil}
	for i, v := range values {
		x, has := stat.Stats[v]
		if !has {
			results[i] = null
			continue
		}

		mean := csv.Value(x)
		if LogScale && mean <= 0 {
			// a log axis cannot show zero
			results[i] = null
			continue
		}
		results[i] = opts.LineData{Value: mean}
	}
	return results
}
