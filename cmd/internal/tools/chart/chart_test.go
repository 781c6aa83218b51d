package chart

import (
	"strconv"
	"testing"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/cmd/internal/tools"
)

func TestSeries(t *testing.T) {
	var s benchmarking.Stats
	s.BitError.Update(0.5)
	stat := &tools.SimulationStats{Stats: map[float64]benchmarking.Stats{
		0:  s,
		10: {},
	}}

	tests := []struct {
		log      bool
		expected []interface{}
	}{
		{false, []interface{}{0.5, nil, 0.0}},
		{true, []interface{}{0.5, nil, nil}},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			LogScale = test.log
			defer func() { LogScale = false }()

			actual := series(stat, []float64{0, 5, 10})
			if len(actual) != len(test.expected) {
				t.Fatalf("expected %v but found %v", len(test.expected), len(actual))
			}
			for j := range actual {
				if actual[j].Value != test.expected[j] {
					t.Fatalf("expected %v but found %v", test.expected[j], actual[j].Value)
				}
			}
		})
	}
}
