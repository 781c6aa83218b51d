package qam

import (
	"context"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/link"
	"golang.org/x/exp/rand"
)

// RunQAM runs trials of payloadBytes random bytes through the link
// described by p at snrDb, continuing from previousStats.
func RunQAM(ctx context.Context,
	p link.Profile,
	snrDb float64, payloadBytes, trials, threads int,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {
	p.SNRDb = snrDb

	createPayload := func(trial int) []byte {
		return benchmarking.RandomPayload(payloadBytes, rand.NewSource(p.Seed^uint64(trial)<<20))
	}

	transmit := func(payload []byte) (*link.Frame, error) {
		return link.Transmit(payload, p)
	}

	return benchmarking.BenchmarkMIMOContinueStats(ctx, trials, threads, createPayload, transmit,
		benchmarking.RandomRayleighChannel(p), link.Equalize, benchmarking.LinkErrorRates,
		checkpoints, previousStats, showProgress)
}
