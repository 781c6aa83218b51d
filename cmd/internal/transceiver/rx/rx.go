package rx

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nathanhack/mimo/bitstream"
	"github.com/nathanhack/mimo/cmatrix"
	"github.com/nathanhack/mimo/link"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var RxRun = func(cmd *cobra.Command, args []string) {
	if err := Receive(args[0], args[1]); err != nil {
		fmt.Println(err)
	}
}

// Receive decodes the frame saved in frameFile over an identity channel and
// writes the payload to outputFile.
func Receive(frameFile, outputFile string) error {
	bs, err := os.ReadFile(frameFile)
	if err != nil {
		return fmt.Errorf("error while reading file %v: %v", frameFile, err)
	}

	var frame link.Frame
	if err := json.Unmarshal(bs, &frame); err != nil {
		return fmt.Errorf("error while unmarshalling file %v: %v", frameFile, err)
	}

	h, err := cmatrix.Identity(frame.Streams)
	if err != nil {
		return err
	}

	if !frame.Encoded() {
		estimate, err := link.Equalize(&frame, h, frame.Block)
		if err != nil {
			return err
		}
		indices, err := link.Detect(estimate)
		if err != nil {
			return err
		}
		if err := bitstream.WriteFile(outputFile, indices); err != nil {
			return err
		}
		logrus.Infof("Recovered %v symbols from %v", len(indices), frameFile)
		return nil
	}

	payload, err := link.Receive(&frame, h, frame.Block)
	if err != nil {
		return err
	}

	err = os.WriteFile(outputFile, payload, 0644)
	if err != nil {
		return fmt.Errorf("unable to write file: %v", err)
	}
	logrus.Infof("Recovered %v bytes from %v", len(payload), frameFile)
	return nil
}
