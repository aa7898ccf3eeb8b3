package yaixm

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Segment is one piece of a lateral boundary: a Line, an Arc or a Circle.
type Segment interface {
	segment()
}

// Line is an ordered run of coordinate points.
type Line []string

// Arc runs from the end of the previous segment to To, around Centre.
type Arc struct {
	Dir    string `json:"dir"`
	Radius string `json:"radius"`
	Centre string `json:"centre"`
	To     string `json:"to"`
}

// Clockwise reports whether the arc turns clockwise.
func (a Arc) Clockwise() bool { return a.Dir == "cw" }

// Circle is a complete circle.
type Circle struct {
	Radius string `json:"radius"`
	Centre string `json:"centre"`
}

func (Line) segment()   {}
func (Arc) segment()    {}
func (Circle) segment() {}

// Boundary is the ordered outline of a volume.
type Boundary []Segment

// UnmarshalJSON decodes the YAIXM encoding, a list of single-key objects
// {"line": [...]}, {"arc": {...}} or {"circle": {...}}.
func (b *Boundary) UnmarshalJSON(data []byte) error {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "yaixm: decode boundary")
	}

	out := make(Boundary, 0, len(raw))
	for i, item := range raw {
		if len(item) != 1 {
			return eris.Errorf("yaixm: boundary[%d]: expected one segment key, got %d", i, len(item))
		}

		for kind, body := range item {
			seg, err := decodeSegment(kind, body)
			if err != nil {
				return eris.Wrapf(err, "yaixm: boundary[%d]", i)
			}
			out = append(out, seg)
		}
	}

	*b = out
	return nil
}

func decodeSegment(kind string, body json.RawMessage) (Segment, error) {
	switch kind {
	case "line":
		var l Line
		if err := json.Unmarshal(body, &l); err != nil {
			return nil, eris.Wrap(err, "line")
		}
		return l, nil
	case "arc":
		var a Arc
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, eris.Wrap(err, "arc")
		}
		return a, nil
	case "circle":
		var c Circle
		if err := json.Unmarshal(body, &c); err != nil {
			return nil, eris.Wrap(err, "circle")
		}
		return c, nil
	default:
		return nil, eris.Errorf("unknown segment type %q", kind)
	}
}

// MarshalJSON writes the YAIXM single-key object encoding.
func (b Boundary) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(b))
	for _, seg := range b {
		switch s := seg.(type) {
		case Line:
			out = append(out, map[string]any{"line": []string(s)})
		case Arc:
			out = append(out, map[string]any{"arc": s})
		case Circle:
			out = append(out, map[string]any{"circle": s})
		default:
			return nil, eris.Errorf("yaixm: unknown segment %T", seg)
		}
	}
	return json.Marshal(out)
}
