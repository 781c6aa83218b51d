package tx

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathanhack/mimo/bitstream"
	"github.com/nathanhack/mimo/cmd/internal/tools"
	"github.com/nathanhack/mimo/link"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Streams      uint
	DataShards   uint
	ParityShards uint
	ProfileFile  string
)

var TxRun = func(cmd *cobra.Command, args []string) {
	profile, err := tools.LoadProfile(ProfileFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	if cmd.Flags().Changed("streams") {
		profile.Streams = int(Streams)
	}
	if cmd.Flags().Changed("data") {
		profile.DataShards = int(DataShards)
	}
	if cmd.Flags().Changed("parity") {
		profile.ParityShards = int(ParityShards)
	}

	if err := Transmit(args[0], args[1], profile); err != nil {
		fmt.Println(err)
	}
}

// Transmit maps the contents of inputFile onto a frame and saves it as JSON.
// Without an outer code the file is read straight into constellation indices.
func Transmit(inputFile, outputFile string, profile link.Profile) error {
	// the receive side is ideal here
	if profile.ReceiveAntennas < profile.Streams {
		profile.ReceiveAntennas = profile.Streams
	}

	var frame *link.Frame
	if profile.UsesFEC() {
		payload, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("error while reading file %v: %v", inputFile, err)
		}
		frame, err = link.Transmit(payload, profile)
		if err != nil {
			return err
		}
	} else {
		indices, err := bitstream.ReadFile(inputFile)
		if err != nil {
			return err
		}
		frame, err = link.TransmitIndices(indices, profile)
		if err != nil {
			return err
		}
	}

	bs, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("unable to serialize the frame: %v", err)
	}

	err = os.WriteFile(outputFile, bs, 0644)
	if err != nil {
		return fmt.Errorf("unable to write file: %v", err)
	}
	logrus.Infof("Wrote a %vx%v frame to %v", frame.Streams, frame.SymbolsPerStream(), outputFile)
	return nil
}
