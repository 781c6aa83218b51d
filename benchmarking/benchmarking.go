package benchmarking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/avgstd"
	"github.com/nathanhack/mimo/bitstream"
	"github.com/nathanhack/mimo/cmatrix"
	"github.com/nathanhack/mimo/link"
	"github.com/nathanhack/threadpool"
	"github.com/sirupsen/logrus"
)

type Stats struct {
	SymbolError avgstd.AvgStd // probability of a symbol decision error after equalization
	BitError    avgstd.AvgStd // probability of a payload bit error after decoding
	FrameError  avgstd.AvgStd // probability that a frame was not recovered exactly

	NextTrial int   // first trial index never scheduled
	Pending   []int // scheduled trial indices not yet counted, retried first
}

func (s Stats) String() string {
	return fmt.Sprintf("{Symbol:%0.02f(+/-%0.02f), Bit:%0.02f(+/-%0.02f), Frame:%0.02f(+/-%0.02f)}",
		s.SymbolError.Mean, math.Sqrt(s.SymbolError.SampledVariance()),
		s.BitError.Mean, math.Sqrt(s.BitError.SampledVariance()),
		s.FrameError.Mean, math.Sqrt(s.FrameError.SampledVariance()),
	)
}

// Trials is the number of completed trials held in the stats.
func (s Stats) Trials() int {
	return s.SymbolError.Count
}

type Checkpoints func(updatedStats Stats)

type PayloadConstructor func(trial int) (payload []byte)

type LinkTransmitter func(payload []byte) (frame *link.Frame, err error)
type MIMOChannel func(trial int, frame *link.Frame) (h, y *cmatrix.Matrix, err error)
type LinkReceiver func(frame *link.Frame, h, y *cmatrix.Matrix) (estimate *link.Frame, err error)
type LinkMetrics func(payload []byte, sent, estimate *link.Frame) (percentSymbolErrors, percentBitErrors, percentFrameErrors float64)

func BenchmarkMIMO(ctx context.Context,
	trials int, threads int,
	createPayload PayloadConstructor,
	transmit LinkTransmitter,
	channel MIMOChannel,
	receive LinkReceiver,
	metrics LinkMetrics,
	checkpoints Checkpoints,
	showProgress bool) Stats {
	return BenchmarkMIMOContinueStats(ctx, trials, threads, createPayload, transmit, channel, receive, metrics, checkpoints, Stats{}, showProgress)
}

func BenchmarkMIMOContinueStats(ctx context.Context,
	trials int, threads int,
	createPayload PayloadConstructor,
	transmit LinkTransmitter,
	channel MIMOChannel,
	receive LinkReceiver,
	metrics LinkMetrics,
	checkpoints Checkpoints,
	previousStats Stats,
	showProgress bool) Stats {
	trialsToRun := trials - previousStats.Trials()
	if trialsToRun <= 0 {
		return previousStats
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(trialsToRun)
	}

	indices, next := schedule(previousStats, trialsToRun)
	pending := make(map[int]bool, len(previousStats.Pending)+len(indices))
	for _, i := range previousStats.Pending {
		pending[i] = true
	}
	for _, i := range indices {
		pending[i] = true
	}
	previousStats.NextTrial = next
	previousStats.Pending = sortedKeys(pending)

	pool := threadpool.NewFixedSize(ctx, threads, len(indices))
	statsMux := sync.Mutex{}

	trial := func(i int) {
		if showProgress {
			bar.Increment()
		}
		//we create a random payload
		payload := createPayload(i)

		// map it onto the transmit block
		sent, err := transmit(payload)
		if err != nil {
			logrus.Errorf("trial %v: transmit: %v", i, err)
			return
		}

		// send through the channel
		h, y, err := channel(i, sent)
		if err != nil {
			logrus.Errorf("trial %v: channel: %v", i, err)
			return
		}

		// equalize to get an estimate of the block
		estimate, err := receive(sent, h, y)
		if err != nil {
			logrus.Errorf("trial %v: receive: %v", i, err)
			return
		}

		// get metrics
		percentSymbolErrors, percentBitErrors, percentFrameErrors := metrics(payload, sent, estimate)

		statsMux.Lock()
		previousStats.SymbolError.Update(percentSymbolErrors)
		previousStats.BitError.Update(percentBitErrors)
		previousStats.FrameError.Update(percentFrameErrors)
		delete(pending, i)
		if checkpoints != nil {
			previousStats.Pending = sortedKeys(pending)
			checkpoints(previousStats) //give them the updated checkpoint
		}
		statsMux.Unlock()
	}

	for _, i := range indices {
		tmp := i
		pool.Add(func() { trial(tmp) })
	}
	pool.Wait()
	if showProgress {
		bar.Finish()
	}
	previousStats.Pending = sortedKeys(pending)
	return previousStats
}

// schedule picks count trial indices, pending ones first, then fresh ones
// starting at NextTrial. It returns them with the new NextTrial.
func schedule(s Stats, count int) (indices []int, next int) {
	next = s.NextTrial
	if pendingCount := s.Trials() + len(s.Pending); next < pendingCount {
		// stats saved without trial indices counted 0..Trials()-1
		next = pendingCount
	}

	indices = make([]int, 0, count)
	for _, i := range s.Pending {
		if len(indices) == count {
			return indices, next
		}
		indices = append(indices, i)
	}
	for len(indices) < count {
		indices = append(indices, next)
		next++
	}
	return indices, next
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// LinkErrorRates is a LinkMetrics that decodes the estimate and compares it
// to the payload. A frame that fails to decode counts every bit as wrong.
func LinkErrorRates(payload []byte, sent, estimate *link.Frame) (percentSymbolErrors, percentBitErrors, percentFrameErrors float64) {
	symbolErrors, err := link.SymbolErrors(sent, estimate)
	if err != nil {
		return 1, 1, 1
	}
	if n := sent.Block.Len(); n > 0 {
		percentSymbolErrors = float64(symbolErrors) / float64(n)
	}

	decoded, err := link.Decode(estimate)
	if err != nil {
		if len(payload) > 0 {
			percentBitErrors = 1
		}
		return percentSymbolErrors, percentBitErrors, 1
	}

	bitErrors := bitstream.BitErrors(payload, decoded)
	if len(payload) > 0 {
		percentBitErrors = float64(bitErrors) / float64(len(payload)*8)
	}
	if bitErrors > 0 {
		percentFrameErrors = 1
	}
	return
}
