// Package settings holds the user's conversion preferences: how each class
// of optional airspace is mapped into OpenAir, the altitude ceiling, output
// format and which letters of agreement, temporary restrictions and wave
// boxes are active.
package settings

import (
	"slices"

	"github.com/rotisserie/eris"
)

// Format selects the output flavour.
type Format string

const (
	FormatOpenAir     Format = "openair"
	FormatRATOnly     Format = "ratonly"
	FormatCompetition Format = "competition"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatOpenAir, FormatRATOnly, FormatCompetition:
		return true
	}
	return false
}

// Airspace controls the optional airspace categories.
//
// A zero AirType excludes the category, except for ILS where it means
// "classify as ATZ", the same as SameAsATZ.
type Airspace struct {
	ATZ        AirType `yaml:"atz" json:"atz"`
	ILS        AirType `yaml:"ils" json:"ils"`
	Unlicensed AirType `yaml:"unlicensed" json:"unlicensed"`
	Microlight AirType `yaml:"microlight" json:"microlight"`
	Gliding    AirType `yaml:"gliding" json:"gliding"`
	Home       string  `yaml:"home" json:"home"`
	HirtaGVS   AirType `yaml:"hirta_gvs" json:"hirta_gvs"`
	Obstacle   bool    `yaml:"obstacle" json:"obstacle"`
}

// Options holds the remaining output options.
type Options struct {
	MaxLevel int     `yaml:"max_level" json:"max_level"`
	Radio    bool    `yaml:"radio" json:"radio"`
	North    float64 `yaml:"north" json:"north"`
	South    float64 `yaml:"south" json:"south"`
	Format   Format  `yaml:"format" json:"format"`
}

// Settings is the complete set of user choices for one conversion.
type Settings struct {
	Airspace Airspace `yaml:"airspace" json:"airspace"`
	Options  Options  `yaml:"options" json:"options"`
	LOA      []string `yaml:"loa,omitempty" json:"loa"`
	RAT      []string `yaml:"rat,omitempty" json:"rat"`
	Wave     []string `yaml:"wave,omitempty" json:"wave"`
}

// Default returns the settings a new user starts with: ATZs as CTR, every
// optional category excluded, a FL600 ceiling and plain OpenAir output.
func Default() Settings {
	return Settings{
		Airspace: Airspace{ATZ: CTR},
		Options: Options{
			MaxLevel: 600,
			Format:   FormatOpenAir,
		},
	}
}

// Validate rejects settings the converter cannot act on.
func (s *Settings) Validate() error {
	if s.Options.MaxLevel < 0 {
		return eris.Errorf("settings: negative max_level %d", s.Options.MaxLevel)
	}
	if !s.Options.Format.Valid() {
		return eris.Errorf("settings: unknown format %q", s.Options.Format)
	}
	for _, f := range []struct {
		key string
		t   AirType
	}{
		{"atz", s.Airspace.ATZ},
		{"unlicensed", s.Airspace.Unlicensed},
		{"microlight", s.Airspace.Microlight},
		{"gliding", s.Airspace.Gliding},
		{"hirta_gvs", s.Airspace.HirtaGVS},
	} {
		if f.t == SameAsATZ {
			return eris.Errorf("settings: airspace.%s: \"atz\" applies only to ils", f.key)
		}
	}
	if s.Options.North != 0 && s.Options.South != 0 && s.Options.North < s.Options.South {
		return eris.Errorf("settings: north limit %g is south of south limit %g", s.Options.North, s.Options.South)
	}
	return nil
}

// LOASelected reports whether the named letter of agreement was chosen.
func (s *Settings) LOASelected(name string) bool { return slices.Contains(s.LOA, name) }

// RATSelected reports whether the named temporary restricted area was chosen.
func (s *Settings) RATSelected(name string) bool { return slices.Contains(s.RAT, name) }

// WaveSelected reports whether the named wave box was chosen.
func (s *Settings) WaveSelected(name string) bool { return slices.Contains(s.Wave, name) }
