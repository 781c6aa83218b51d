package tools

import (
	"path/filepath"
	"testing"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadResults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.json")

	missing, err := LoadResults(path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	var s benchmarking.Stats
	s.BitError.Update(0.25)
	s.BitError.Update(0.75)
	data := &SimulationStats{
		TypeInfo:    "type",
		ProfileInfo: Md5Sum(link.DefaultProfile()),
		Profile:     link.DefaultProfile(),
		Stats:       map[float64]benchmarking.Stats{-2.5: s, 10: {}},
	}
	require.NoError(t, SaveResults(path, data))

	loaded, err := LoadResults(path)
	require.NoError(t, err)
	assert.Equal(t, data.TypeInfo, loaded.TypeInfo)
	assert.Equal(t, data.ProfileInfo, loaded.ProfileInfo)
	assert.Equal(t, data.Profile, loaded.Profile)
	assert.Len(t, loaded.Stats, 2)
	assert.Equal(t, 2, loaded.Stats[-2.5].BitError.Count)
	assert.InDelta(t, 0.5, loaded.Stats[-2.5].BitError.Mean, 1e-12)

	stats, snrs, err := LoadAllResults([]string{path, path})
	require.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, []float64{-2.5, 10}, snrs)

	_, _, err = LoadAllResults([]string{filepath.Join(dir, "nope.json")})
	assert.Error(t, err)
}

func TestMd5Sum(t *testing.T) {
	a := link.DefaultProfile()
	b := a
	b.SNRDb = -3
	assert.Equal(t, Md5Sum(a), Md5Sum(b))

	b.Streams = 1
	assert.NotEqual(t, Md5Sum(a), Md5Sum(b))
}

func TestLoadProfileDefault(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, link.DefaultProfile(), p)
}
