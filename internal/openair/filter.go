package openair

import (
	"github.com/twpayne/go-geom"

	"github.com/sells-group/asselect/internal/geo"
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// Included decides whether a volume is written. Optional categories the
// user excluded are dropped, except that the home gliding site is always
// kept; so is anything whose base is at or above the ceiling.
func Included(f *yaixm.Feature, v *yaixm.Volume, s settings.Settings) (bool, error) {
	if excluded(f, s) {
		return false, nil
	}

	lower, err := yaixm.FlightLevel(v.Lower)
	if err != nil {
		return false, err
	}
	if lower >= s.Options.MaxLevel {
		return false, nil
	}

	if s.Options.North != 0 || s.Options.South != 0 {
		b, err := extent(v.Boundary)
		if err != nil {
			return false, err
		}
		if geo.Outside(b, s.Options.North, s.Options.South) {
			return false, nil
		}
	}

	return true, nil
}

func excluded(f *yaixm.Feature, s settings.Settings) bool {
	a := s.Airspace

	switch f.LocalType {
	case yaixm.LocalNoATZ:
		return a.Unlicensed.IsExcluded()
	case yaixm.LocalUL:
		return a.Microlight.IsExcluded()
	case yaixm.LocalGlider:
		if f.Type == yaixm.IcaoDOther {
			return !s.WaveSelected(f.Name)
		}
		if a.Home != "" && f.Name == a.Home {
			return false
		}
		return a.Gliding.IsExcluded()
	case yaixm.LocalHIRTA, yaixm.LocalGVS, yaixm.LocalLaser:
		return a.HirtaGVS.IsExcluded()
	}
	return false
}

// extent returns the lateral bounds of a boundary.
func extent(b yaixm.Boundary) (*geom.Bounds, error) {
	var coords []geom.Coord
	add := func(p string) error {
		c, err := geo.ParseLatLon(p)
		if err != nil {
			return err
		}
		coords = append(coords, c)
		return nil
	}

	for _, seg := range b {
		switch s := seg.(type) {
		case yaixm.Line:
			for _, p := range s {
				if err := add(p); err != nil {
					return nil, err
				}
			}
		case yaixm.Arc:
			if err := add(s.To); err != nil {
				return nil, err
			}
		case yaixm.Circle:
			c, err := geo.ParseLatLon(s.Centre)
			if err != nil {
				return nil, err
			}
			d, err := geo.ParseDistance(s.Radius)
			if err != nil {
				return nil, err
			}
			coords = append(coords, geo.Circle(c, d.NM())...)
		}
	}
	return geo.Extent(coords), nil
}
