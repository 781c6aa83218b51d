package link

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ErrBadProfile is returned when a profile fails validation.
var ErrBadProfile = errors.New("link: invalid profile")

// Profile holds the parameters of a simulated link.
type Profile struct {
	Streams         int     `mapstructure:"streams" json:"streams"`
	ReceiveAntennas int     `mapstructure:"receive_antennas" json:"receive_antennas"`
	SNRDb           float64 `mapstructure:"snr_db" json:"snr_db"`
	DataShards      int     `mapstructure:"data_shards" json:"data_shards"` // 0 disables the outer code
	ParityShards    int     `mapstructure:"parity_shards" json:"parity_shards"`
	Seed            uint64  `mapstructure:"seed" json:"seed"`
}

// DefaultProfile is a 2x2 link at 20dB without the outer code.
func DefaultProfile() Profile {
	return Profile{
		Streams:         2,
		ReceiveAntennas: 2,
		SNRDb:           20,
		Seed:            1,
	}
}

// UsesFEC reports whether the outer Reed-Solomon code is enabled.
func (p Profile) UsesFEC() bool {
	return p.DataShards > 0
}

// Validate checks the profile for consistency.
func (p Profile) Validate() error {
	switch {
	case p.Streams <= 0:
		return fmt.Errorf("%w: streams must be > 0 but found %v", ErrBadProfile, p.Streams)
	case p.ReceiveAntennas < p.Streams:
		return fmt.Errorf("%w: receive antennas (%v) must be >= streams (%v)", ErrBadProfile, p.ReceiveAntennas, p.Streams)
	case p.DataShards < 0 || p.ParityShards < 0:
		return fmt.Errorf("%w: shard counts must be >= 0", ErrBadProfile)
	case p.UsesFEC() && p.ParityShards == 0:
		return fmt.Errorf("%w: parity shards must be > 0 when data shards are set", ErrBadProfile)
	}
	return nil
}

// DecodeProfile fills a profile from a generic map, starting from the
// defaults. Values may be given as strings or numbers.
func DecodeProfile(raw map[string]interface{}) (Profile, error) {
	p := DefaultProfile()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &p,
	})
	if err != nil {
		return Profile{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrBadProfile, err)
	}
	return p, p.Validate()
}

// LoadProfile reads a JSON profile from path.
func LoadProfile(path string) (Profile, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("error while reading file %v: %w", path, err)
	}
	raw := map[string]interface{}{}
	if err := json.Unmarshal(bs, &raw); err != nil {
		return Profile{}, fmt.Errorf("error while unmarshalling file %v: %w", path, err)
	}
	return DecodeProfile(raw)
}
