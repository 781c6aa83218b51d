package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/nathanhack/mimo/benchmarking"
	"github.com/nathanhack/mimo/link"
)

// SimulationStats holds the results of a simulation keyed by SNR in dB.
type SimulationStats struct {
	TypeInfo    string
	ProfileInfo string
	Profile     link.Profile
	Stats       map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo    string
	ProfileInfo string
	Profile     link.Profile
	Stats       map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo:    s.TypeInfo,
		ProfileInfo: s.ProfileInfo,
		Profile:     s.Profile,
		Stats:       map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ProfileInfo = ss.ProfileInfo
	s.Profile = ss.Profile
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

// Md5Sum identifies a profile independent of its SNR, which is swept.
func Md5Sum(p link.Profile) string {
	p.SNRDb = 0
	return fmt.Sprintf("%x", md5.Sum([]byte(fmt.Sprintf("%+v", p))))
}

// LoadProfile returns the default profile when filepath is empty.
func LoadProfile(filepath string) (link.Profile, error) {
	if filepath == "" {
		return link.DefaultProfile(), nil
	}
	return link.LoadProfile(filepath)
}

func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v\n", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %v\n", filepath, err)
	}
	return &stat, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %v\n", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %v\n", filepath, err)
	}
	return nil
}

// LoadAllResults loads every results file and returns the sorted union of
// their SNRs.
func LoadAllResults(files []string) ([]*SimulationStats, []float64, error) {
	stats := make([]*SimulationStats, len(files))
	snrFloats := make(map[float64]bool)
	for i, resultFile := range files {
		s, err := LoadResults(resultFile)
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			return nil, nil, fmt.Errorf("results file %v does not exist", resultFile)
		}
		stats[i] = s
		for p := range s.Stats {
			snrFloats[p] = true
		}
	}

	snrList := make([]float64, 0, len(snrFloats))
	for p := range snrFloats {
		snrList = append(snrList, p)
	}
	sort.Float64s(snrList)
	return stats, snrList, nil
}
