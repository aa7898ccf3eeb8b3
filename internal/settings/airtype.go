package settings

import (
	"strings"
)

// AirType is the OpenAir class a category of airspace is written as. The
// zero value means the category is excluded.
type AirType string

const (
	Excluded   AirType = ""
	ClassA     AirType = "A"
	ClassB     AirType = "B"
	ClassC     AirType = "C"
	ClassD     AirType = "D"
	ClassE     AirType = "E"
	ClassF     AirType = "F"
	ClassG     AirType = "G"
	Prohibited AirType = "P"
	Danger     AirType = "Q"
	Restricted AirType = "R"
	Gliding    AirType = "W"
	CTA        AirType = "CTA"
	CTR        AirType = "CTR"
	MATZ       AirType = "MATZ"
	Other      AirType = "OTHER"
	RMZ        AirType = "RMZ"
	TMZ        AirType = "TMZ"

	// SameAsATZ writes ILS features with whatever class ATZs get. It is
	// not valid for any other category.
	SameAsATZ AirType = "ATZ"
)

var codes = map[AirType]bool{
	ClassA: true, ClassB: true, ClassC: true, ClassD: true, ClassE: true, ClassF: true,
	ClassG: true, Prohibited: true, Danger: true, Restricted: true, Gliding: true,
	CTA: true, CTR: true, MATZ: true, Other: true, RMZ: true, TMZ: true,
}

// tokens maps the form values offered to users onto OpenAir classes.
var tokens = map[string]AirType{
	"exclude":    Excluded,
	"atz":        SameAsATZ,
	"ctr":        CTR,
	"classd":     ClassD,
	"classf":     ClassF,
	"classg":     ClassG,
	"danger":     Danger,
	"restricted": Restricted,
	"gsec":       Gliding,
}

// ParseAirType accepts either a form token ("classd", "gsec", "exclude")
// or an OpenAir class code ("D", "W"). Unrecognised values are kept as
// given and written as OTHER.
func ParseAirType(s string) AirType {
	s = strings.TrimSpace(s)
	if t, ok := tokens[strings.ToLower(s)]; ok {
		return t
	}
	return AirType(strings.ToUpper(s))
}

// IsExcluded reports whether the category is switched off.
func (t AirType) IsExcluded() bool { return t == Excluded }

// FollowsATZ reports whether an ILS setting defers to the ATZ class.
func (t AirType) FollowsATZ() bool { return t == Excluded || t == SameAsATZ }

// Code returns the OpenAir class, falling back to OTHER for values that do
// not name a known class.
func (t AirType) Code() string {
	if codes[t] {
		return string(t)
	}
	return string(Other)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *AirType) UnmarshalText(b []byte) error {
	*t = ParseAirType(string(b))
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t AirType) MarshalText() ([]byte, error) {
	switch t {
	case Excluded:
		return []byte("exclude"), nil
	case SameAsATZ:
		return []byte("atz"), nil
	}
	return []byte(t), nil
}
