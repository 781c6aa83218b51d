package cmd

import (
	"github.com/nathanhack/mimo/cmd/internal/tools/chart"
	"github.com/nathanhack/mimo/cmd/internal/tools/constellation"
	"github.com/nathanhack/mimo/cmd/internal/tools/csv"
	"github.com/nathanhack/mimo/cmd/internal/tools/qam/zeroforcing"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for MIMO links",
	Long:    `Tools for MIMO links`,
}

// toolsChansimCmd represents the chansim command
var toolsChansimCmd = &cobra.Command{
	Use:     "chansim",
	Aliases: []string{"cs", "c"},
	Short:   "Channel simulators",
	Long:    `Channel simulators for layered QAM links`,
}

// toolsQAMCmd represents the qam command
var toolsQAMCmd = &cobra.Command{
	Use:     "qam RESULT_JSON",
	Aliases: []string{"q"},
	Short:   "A 4-QAM Rayleigh channel simulator with zero forcing",
	Long: `A 4-QAM simulator over i.i.d. Rayleigh MIMO channels with AWGN and a zero
forcing receiver. Results are saved to RESULT_JSON and a run can be resumed.`,
	Run: zeroforcing.ZeroForcingRun,
}

// toolsConstellationCmd represents the constellation command
var toolsConstellationCmd = &cobra.Command{
	Use:   "constellation OUTPUT_HTML",
	Short: "Plots transmitted and equalized symbols",
	Long:  `Plots the transmitted and zero forcing equalized symbols of one channel realization.`,
	Args:  cobra.ExactArgs(1),
	Run:   constellation.ConstellationRun,
}

// toolsResultsCmd represents the results command
var toolsResultsCmd = &cobra.Command{
	Use:     "results",
	Aliases: []string{"r"},
	Short:   "A tool to organize results for graphing and comparison",
	Long:    `A tool to organize results for graphing and comparison`,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RESULTS_JSON [RESULTS_JSON] ...",
	Aliases: []string{"c"},
	Short:   "Export to a CSV file",
	Long:    `Export to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:   "chart RESULTS_JSON [RESULTS_JSON] ...",
	Short: "Export to an HTML line chart",
	Long:  `Export the error rates against SNR to an HTML line chart`,
	Run:   chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsChansimCmd)
	toolsCmd.AddCommand(toolsResultsCmd)
	toolsCmd.AddCommand(toolsConstellationCmd)

	toolsChansimCmd.AddCommand(toolsQAMCmd)
	toolsQAMCmd.Flags().UintVarP(&zeroforcing.Trials, "trials", "t", 10_000, "the number of trials per step")
	toolsQAMCmd.Flags().Float64SliceVarP(&zeroforcing.SNR, "snr", "s", []float64{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20}, "Es/N0 values in dB to test")
	toolsQAMCmd.Flags().UintVar(&zeroforcing.Threads, "threads", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")
	toolsQAMCmd.Flags().UintVarP(&zeroforcing.PayloadBytes, "bytes", "b", 64, "the payload size in bytes per trial")
	toolsQAMCmd.Flags().UintVar(&zeroforcing.Streams, "streams", 2, "the number of transmit streams")
	toolsQAMCmd.Flags().UintVar(&zeroforcing.Receive, "rx", 2, "the number of receive antennas (>= streams)")
	toolsQAMCmd.Flags().UintVarP(&zeroforcing.DataShards, "data", "d", 0, "the number of Reed-Solomon data shards; 0 disables the outer code")
	toolsQAMCmd.Flags().UintVarP(&zeroforcing.ParityShards, "parity", "p", 0, "the number of Reed-Solomon parity shards")
	toolsQAMCmd.Flags().StringVar(&zeroforcing.ProfileFile, "profile", "", "a JSON link profile; flags override its values")

	toolsConstellationCmd.Flags().UintVarP(&constellation.Symbols, "symbols", "n", 1000, "the number of symbols to plot")
	toolsConstellationCmd.Flags().Float64VarP(&constellation.SNR, "snr", "s", 20, "Es/N0 in dB")
	toolsConstellationCmd.Flags().UintVar(&constellation.Streams, "streams", 2, "the number of transmit streams")
	toolsConstellationCmd.Flags().UintVar(&constellation.Receive, "rx", 2, "the number of receive antennas (>= streams)")
	toolsConstellationCmd.Flags().StringVar(&constellation.ProfileFile, "profile", "", "a JSON link profile; flags override its values")

	toolsResultsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "results.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().BoolVarP(&csv.SymbolError, "symbol", "s", false, "outputs the SymbolError instead of BitError or FrameError")
	toolsCSVCmd.Flags().BoolVarP(&csv.FrameError, "frame", "f", false, "outputs the FrameError instead of BitError or SymbolError")

	toolsResultsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "results.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&csv.SymbolError, "symbol", "s", false, "charts the SymbolError instead of BitError or FrameError")
	toolsChartCmd.Flags().BoolVarP(&csv.FrameError, "frame", "f", false, "charts the FrameError instead of BitError or SymbolError")
	toolsChartCmd.Flags().BoolVarP(&chart.LogScale, "log", "l", false, "use a logarithmic error rate axis")
}
