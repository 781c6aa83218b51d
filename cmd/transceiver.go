package cmd

import (
	"github.com/nathanhack/mimo/cmd/internal/transceiver/rx"
	"github.com/nathanhack/mimo/cmd/internal/transceiver/tx"

	"github.com/spf13/cobra"
)

// txCmd represents the tx command
var txCmd = &cobra.Command{
	Use:   "tx INPUT_FILE OUTPUT_JSON",
	Short: "Maps a file onto a layered QAM frame",
	Long: `Maps the bytes of INPUT_FILE onto 4-QAM symbols, spreads them over the
transmit streams and saves the resulting frame as JSON.`,
	Args: cobra.ExactArgs(2),
	Run:  tx.TxRun,
}

// rxCmd represents the rx command
var rxCmd = &cobra.Command{
	Use:   "rx FRAME_JSON OUTPUT_FILE",
	Short: "Recovers a file from a layered QAM frame",
	Long:  `Recovers the payload of FRAME_JSON over an ideal channel and writes it to OUTPUT_FILE.`,
	Args:  cobra.ExactArgs(2),
	Run:   rx.RxRun,
}

func init() {
	rootCmd.AddCommand(txCmd)
	txCmd.Flags().UintVarP(&tx.Streams, "streams", "s", 2, "the number of transmit streams (>0)")
	txCmd.Flags().UintVarP(&tx.DataShards, "data", "d", 0, "the number of Reed-Solomon data shards; 0 disables the outer code")
	txCmd.Flags().UintVarP(&tx.ParityShards, "parity", "p", 0, "the number of Reed-Solomon parity shards")
	txCmd.Flags().StringVar(&tx.ProfileFile, "profile", "", "a JSON link profile; flags override its values")

	rootCmd.AddCommand(rxCmd)
}
