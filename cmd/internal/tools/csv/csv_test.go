package csv

import (
	"bytes"
	"testing"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/cmd/internal/tools"
)

func stats(means ...float64) benchmarking.Stats {
	var s benchmarking.Stats
	for _, m := range means {
		s.SymbolError.Update(m / 2)
		s.BitError.Update(m)
		s.FrameError.Update(1)
	}
	return s
}

func TestWrite(t *testing.T) {
	results := []*tools.SimulationStats{
		{Stats: map[float64]benchmarking.Stats{0: stats(0.5), 10: stats(0.25)}},
		{Stats: map[float64]benchmarking.Stats{10: stats(0.125)}},
	}

	var buf bytes.Buffer
	err := Write(&buf, []string{"a.json", "dir/b.json"}, results, []float64{0, 10})
	if err != nil {
		t.Fatalf("expected no error found :%v", err)
	}

	expected := "Results File,0,10\na,0.5,0.25\ndir/b,,0.125\n"
	if buf.String() != expected {
		t.Fatalf("expected %q but found %q", expected, buf.String())
	}

	SymbolError = true
	defer func() { SymbolError = false }()
	if v := Value(stats(0.5)); v != 0.25 {
		t.Fatalf("expected %v but found %v", 0.25, v)
	}
}
