package yaixm

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asselect/internal/geo"
)

// Validate checks the structure the converter relies on. The first problem
// found is returned with its location in the document.
func (d *Dataset) Validate() error {
	for i := range d.Airspace {
		if err := d.Airspace[i].Validate(); err != nil {
			return eris.Wrapf(err, "airspace[%d]", i)
		}
	}

	for i := range d.RAT {
		if err := d.RAT[i].Validate(); err != nil {
			return eris.Wrapf(err, "rat[%d]", i)
		}
	}

	for i, loa := range d.LOA {
		if loa.Name == "" {
			return eris.Errorf("loa[%d]: missing name", i)
		}
		for j, area := range loa.Areas {
			for k := range area.Add {
				if err := area.Add[k].Validate(); err != nil {
					return eris.Wrapf(err, "loa[%d] %q: area[%d]: add[%d]", i, loa.Name, j, k)
				}
			}
			for k, r := range area.Replace {
				if r.ID == "" {
					return eris.Errorf("loa[%d] %q: area[%d]: replace[%d]: missing id", i, loa.Name, j, k)
				}
				for v := range r.Geometry {
					if err := r.Geometry[v].Validate(); err != nil {
						return eris.Wrapf(err, "loa[%d] %q: area[%d]: replace[%d]: volume[%d]", i, loa.Name, j, k, v)
					}
				}
			}
		}
	}

	for i, o := range d.Obstacle {
		if o.Name == "" && o.ID == "" {
			return eris.Errorf("obstacle[%d]: missing name", i)
		}
		if _, err := geo.ParseLatLon(o.Position); err != nil {
			return eris.Wrapf(err, "obstacle[%d]: position", i)
		}
		if o.Elevation == "" {
			return eris.Errorf("obstacle[%d]: missing elevation", i)
		}
		if _, err := FlightLevel(o.Elevation); err != nil {
			return eris.Wrapf(err, "obstacle[%d]: elevation", i)
		}
	}

	return nil
}

// Validate checks a single feature and all of its volumes.
func (f *Feature) Validate() error {
	if f.Name == "" {
		return eris.New("missing name")
	}
	label := fmt.Sprintf("%q", f.Name)

	if !f.Type.Valid() {
		return eris.Errorf("%s: unknown type %q", label, f.Type)
	}
	if !f.LocalType.Valid() {
		return eris.Errorf("%s: unknown localtype %q", label, f.LocalType)
	}
	if !f.Class.Valid() {
		return eris.Errorf("%s: unknown class %q", label, f.Class)
	}
	if len(f.Geometry) == 0 {
		return eris.Errorf("%s: no geometry", label)
	}

	for i := range f.Geometry {
		if err := f.Geometry[i].Validate(); err != nil {
			return eris.Wrapf(err, "%s: volume[%d]", label, i)
		}
	}
	return nil
}

// Validate checks a volume's levels and boundary.
func (v *Volume) Validate() error {
	if v.Lower == "" {
		return eris.New("missing lower level")
	}
	if v.Upper == "" {
		return eris.New("missing upper level")
	}
	if _, err := FlightLevel(v.Lower); err != nil {
		return eris.Wrap(err, "lower")
	}
	if _, err := FlightLevel(v.Upper); err != nil {
		return eris.Wrap(err, "upper")
	}
	if !v.Class.Valid() {
		return eris.Errorf("unknown class %q", v.Class)
	}
	return v.Boundary.Validate()
}

// Validate checks that a boundary is non-empty, does not start with an arc
// and only holds well formed coordinates and distances.
func (b Boundary) Validate() error {
	if len(b) == 0 {
		return eris.New("empty boundary")
	}
	if _, ok := b[0].(Arc); ok {
		return eris.New("boundary starts with an arc")
	}

	for i, seg := range b {
		var err error
		switch s := seg.(type) {
		case Line:
			err = validateLine(s)
		case Arc:
			err = validateArc(s)
		case Circle:
			err = validateCircle(s)
		default:
			err = eris.Errorf("unknown segment %T", seg)
		}
		if err != nil {
			return eris.Wrapf(err, "boundary[%d]", i)
		}
	}
	return nil
}

func validateLine(l Line) error {
	if len(l) == 0 {
		return eris.New("empty line")
	}
	for _, p := range l {
		if _, err := geo.ParseLatLon(p); err != nil {
			return err
		}
	}
	return nil
}

func validateArc(a Arc) error {
	if a.Dir != "cw" && a.Dir != "ccw" {
		return eris.Errorf("unknown arc direction %q", a.Dir)
	}
	if _, err := geo.ParseLatLon(a.Centre); err != nil {
		return eris.Wrap(err, "arc centre")
	}
	if _, err := geo.ParseLatLon(a.To); err != nil {
		return eris.Wrap(err, "arc end")
	}
	if a.Radius != "" {
		if _, err := geo.ParseDistance(a.Radius); err != nil {
			return eris.Wrap(err, "arc radius")
		}
	}
	return nil
}

func validateCircle(c Circle) error {
	if _, err := geo.ParseLatLon(c.Centre); err != nil {
		return eris.Wrap(err, "circle centre")
	}
	if _, err := geo.ParseDistance(c.Radius); err != nil {
		return eris.Wrap(err, "circle radius")
	}
	return nil
}
