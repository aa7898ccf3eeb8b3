package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// KMPerNM is the number of kilometres in one nautical mile.
const KMPerNM = 1.852

// Distance is a parsed "<value> <unit>" token such as "2 nm" or "5 km".
type Distance struct {
	Raw   string
	Value float64
	Unit  string
}

// ParseDistance parses a distance token. The unit is required.
func ParseDistance(s string) (Distance, error) {
	raw, unit, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok || raw == "" || unit == "" {
		return Distance{}, eris.Errorf("geo: malformed distance %q", s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Distance{}, eris.Wrapf(err, "geo: distance value %q", s)
	}
	if v < 0 {
		return Distance{}, eris.Errorf("geo: negative distance %q", s)
	}

	return Distance{Raw: raw, Value: v, Unit: strings.ToLower(unit)}, nil
}

// NM returns the distance in nautical miles. Units other than km are taken
// to be nautical miles already.
func (d Distance) NM() float64 {
	if d.Unit == "km" {
		return d.Value / KMPerNM
	}
	return d.Value
}

// OpenAir returns the radius as written in a DC command: kilometres are
// converted to nautical miles with three decimals, anything else passes
// through as written. The conversion runs in float64, so a value that sits
// on a rounding boundary in float32 keeps its float64 rounding.
func (d Distance) OpenAir() string {
	if d.Unit == "km" {
		return fmt.Sprintf("%.3f", d.NM())
	}
	return d.Raw
}
