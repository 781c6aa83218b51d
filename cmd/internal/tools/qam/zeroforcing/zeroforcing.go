package zeroforcing

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"reflect"
	"runtime"
	"sync"
	"syscall"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/channel"
	"github.com/nathanhack/mimo/cmd/internal/tools"
	"github.com/nathanhack/mimo/cmd/internal/tools/qam"
	"github.com/nathanhack/mimo/link"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Trials       uint
	SNR          []float64
	Threads      uint
	PayloadBytes uint
	Streams      uint
	Receive      uint
	DataShards   uint
	ParityShards uint
	ProfileFile  string
)

var ZeroForcingRun = func(cmd *cobra.Command, args []string) {
	if len(args) != 1 {
		fmt.Println("requires RESULT_JSON")
		return
	}

	profile, err := tools.LoadProfile(ProfileFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	if cmd.Flags().Changed("streams") {
		profile.Streams = int(Streams)
	}
	if cmd.Flags().Changed("rx") {
		profile.ReceiveAntennas = int(Receive)
	}
	if cmd.Flags().Changed("data") {
		profile.DataShards = int(DataShards)
	}
	if cmd.Flags().Changed("parity") {
		profile.ParityShards = int(ParityShards)
	}
	if err := profile.Validate(); err != nil {
		fmt.Println(err)
		return
	}

	data, err := loadOrCreate(args[0], profile, int(PayloadBytes))
	if err != nil {
		fmt.Println(err)
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		fmt.Println()
		fmt.Println(sig)
		cancel()
	}()

	runSimulation(ctx, data, profile, args[0])

	err = tools.SaveResults(args[0], data)
	if err != nil {
		fmt.Println(err)
	}
}

// typeInfo identifies the simulation kind; results with a different payload
// size are not comparable.
func typeInfo(payloadBytes int) string {
	t := reflect.TypeOf(channel.Rayleigh{})
	return fmt.Sprintf("QAM4/ZF:%v/%v:%vB", t.PkgPath(), t.Name(), payloadBytes)
}

// loadOrCreate loads the results at path, or starts new ones, and checks they
// were produced by the same kind of simulation with the same profile.
func loadOrCreate(path string, profile link.Profile, payloadBytes int) (*tools.SimulationStats, error) {
	data, err := tools.LoadResults(path)
	if err != nil {
		return nil, err
	}

	if data == nil {
		data = &tools.SimulationStats{
			TypeInfo:    typeInfo(payloadBytes),
			ProfileInfo: tools.Md5Sum(profile),
			Profile:     profile,
			Stats:       make(map[float64]benchmarking.Stats),
		}
	}

	if data.TypeInfo != typeInfo(payloadBytes) {
		return nil, fmt.Errorf("results loaded do not match the same type expected %v but found %v", typeInfo(payloadBytes), data.TypeInfo)
	}
	if data.ProfileInfo != tools.Md5Sum(profile) {
		return nil, fmt.Errorf("results loaded do not match the profile")
	}
	return data, nil
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, profile link.Profile, outputFilename string) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trialsPerIter := numberOfThread * 10
	bar := pb.StartNew(int(Trials) * len(SNR))
trialLoops:
	for t := trialsPerIter; ; t += trialsPerIter {
		select {
		case <-ctx.Done():
			break trialLoops
		default:
		}

		target := min(t, int(Trials))
		for _, snr := range SNR {
			snr := snr
			checkpoint := func(stats benchmarking.Stats) {
				//we want to save the checkpoint
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[snr] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			before := data.Stats[snr].Trials()
			data.Stats[snr] = qam.RunQAM(ctx, profile, snr, int(PayloadBytes), target, numberOfThread, data.Stats[snr], checkpoint, false)
			bar.Add(data.Stats[snr].Trials() - before)
			logrus.Debugf("SNR %vdB after %v trials: %v", snr, data.Stats[snr].Trials(), data.Stats[snr])
		}

		if target >= int(Trials) {
			break
		}
	}
	bar.Finish()
}
