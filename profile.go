package chunkbuf

import (
	"io/ioutil"

	"github.com/openziti/chunkbuf/cf"
	"github.com/openziti/chunkbuf/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const profileVersion = 1

// Profile carries the construction-time configuration for a buffer: the
// chunk size (auto-flush threshold for LooseBuffer, hard limit for
// StrictBuffer), an upper estimate of the number of chunks held at any
// moment (pre-sizes the queue), and the instrument receiving observability
// events.
type Profile struct {
	ChunkSize        int `cf:"chunk_size"`
	ChunkingCapacity int `cf:"chunking_capacity"`
	Instrument       Instrument
}

func NewBaselineProfile() *Profile {
	return &Profile{
		ChunkSize:        defaultChunkSize,
		ChunkingCapacity: defaultChunkingCapacity,
	}
}

// Load overlays recognized options from data onto the profile. A
// profile_version key, when present, must match.
func (self *Profile) Load(data map[string]interface{}) error {
	if v, found := data["profile_version"]; found {
		if i, ok := v.(int); ok {
			if i != profileVersion {
				return errors.Errorf("invalid profile version [%d != %d]", i, profileVersion)
			}
		} else {
			return errors.New("invalid 'profile_version' value")
		}
	}
	if err := cf.Load(data, self); err != nil {
		return errors.Wrap(err, "unable to load profile")
	}
	if v, found := data["instrument"]; found {
		submap, oks := v.(map[string]interface{})
		if !oks {
			return errors.New("invalid 'instrument' value")
		}
		name, oks := submap["name"].(string)
		if !oks {
			return errors.New("missing 'instrument/name'")
		}
		i, err := NewInstrument(name, submap)
		if err != nil {
			return errors.Wrap(err, "unable to create instrument")
		}
		self.Instrument = i
	}
	if self.ChunkSize < 1 {
		return errors.Errorf("invalid chunk_size [%d]", self.ChunkSize)
	}
	if self.ChunkingCapacity < 0 {
		return errors.Errorf("invalid chunking_capacity [%d]", self.ChunkingCapacity)
	}
	return nil
}

// LoadProfileFromPath reads a YAML profile file over the baseline profile.
func LoadProfileFromPath(path string) (*Profile, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read profile [%s]", path)
	}
	dataMap := make(map[interface{}]interface{})
	if err := yaml.Unmarshal(data, dataMap); err != nil {
		return nil, errors.Wrapf(err, "unable to unmarshal profile [%s]", path)
	}
	profile := NewBaselineProfile()
	if err := profile.Load(cf.MapIToMapS(dataMap)); err != nil {
		return nil, err
	}
	return profile, nil
}

func (self *Profile) Dump() string {
	return cf.Dump("profile", self)
}

func (self *Profile) instrumentInstance(id string) InstrumentInstance {
	i := self.Instrument
	if i == nil {
		i = NewNilInstrument()
	}
	return i.NewInstance(id)
}

var bufferSeq = util.NewSequence(0)
