package constellation

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/cmd/internal/tools"
	"github.com/nathanhack/mimo/link"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	Symbols     uint
	SNR         float64
	Streams     uint
	Receive     uint
	ProfileFile string
)

var ConstellationRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("requires OUTPUT_HTML")
		return
	}

	profile, err := tools.LoadProfile(ProfileFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	if cmd.Flags().Changed("snr") {
		profile.SNRDb = SNR
	}
	if cmd.Flags().Changed("streams") {
		profile.Streams = int(Streams)
	}
	if cmd.Flags().Changed("rx") {
		profile.ReceiveAntennas = int(Receive)
	}

	sent, received, err := Simulate(profile, int(Symbols))
	if err != nil {
		fmt.Println(err)
		return
	}

	f, err := os.Create(args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	if err := NewScatter(profile, sent, received).Render(f); err != nil {
		fmt.Println(err)
	}
}

// Simulate sends symbols random symbols over one Rayleigh channel realization
// and returns the transmitted and equalized frames.
func Simulate(p link.Profile, symbols int) (sent, received *link.Frame, err error) {
	p.DataShards, p.ParityShards = 0, 0
	indices := benchmarking.RandomIndices(symbols, rand.NewSource(p.Seed))

	sent, err = link.TransmitIndices(indices, p)
	if err != nil {
		return nil, nil, err
	}
	h, y, err := benchmarking.RandomRayleighChannel(p)(0, sent)
	if err != nil {
		return nil, nil, err
	}
	received, err = link.Equalize(sent, h, y)
	if err != nil {
		return nil, nil, err
	}

	errs, err := link.SymbolErrors(sent, received)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("%v of %v symbols in error at %vdB", errs, sent.Block.Len(), p.SNRDb)
	return sent, received, nil
}

func points(f *link.Frame) []opts.ScatterData {
	data := f.Block.Data()
	results := make([]opts.ScatterData, len(data))
	for i, v := range data {
		results[i] = opts.ScatterData{
			Value:      []float64{real(v), imag(v)},
			SymbolSize: 5,
		}
	}
	return results
}

// NewScatter plots the equalized symbols over the transmitted constellation.
func NewScatter(p link.Profile, sent, received *link.Frame) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Constellation",
			Subtitle: fmt.Sprintf("%vx%v zero forcing at %vdB", p.ReceiveAntennas, p.Streams, p.SNRDb),
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "In-phase",
			Type:      "value",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Quadrature",
			Type:      "value",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	scatter.AddSeries("equalized", points(received))
	scatter.AddSeries("transmitted", points(sent))
	return scatter
}
