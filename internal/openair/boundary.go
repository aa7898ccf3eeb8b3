package openair

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/asselect/internal/geo"
	"github.com/sells-group/asselect/internal/yaixm"
)

// Boundary renders a volume outline as OpenAir DP, V and DB/DC commands.
// A boundary that starts with a line is closed back to its first point.
func Boundary(b yaixm.Boundary) (string, error) {
	if len(b) == 0 {
		return "", eris.New("openair: empty boundary")
	}

	var (
		out  strings.Builder
		prev string
	)

	for i, seg := range b {
		switch s := seg.(type) {
		case yaixm.Line:
			for _, p := range s {
				if err := writePoint(&out, p); err != nil {
					return "", eris.Wrapf(err, "openair: segment %d", i)
				}
			}
			if len(s) > 0 {
				prev = s[len(s)-1]
			}

		case yaixm.Arc:
			if prev == "" {
				return "", eris.Errorf("openair: segment %d: arc has no start point", i)
			}
			if err := writeArc(&out, s, prev); err != nil {
				return "", eris.Wrapf(err, "openair: segment %d", i)
			}
			prev = s.To

		case yaixm.Circle:
			if err := writeCircle(&out, s); err != nil {
				return "", eris.Wrapf(err, "openair: segment %d", i)
			}

		default:
			return "", eris.Errorf("openair: segment %d: unsupported type %T", i, seg)
		}
	}

	if first, ok := b[0].(yaixm.Line); ok && len(first) > 0 && first[0] != prev {
		if err := writePoint(&out, first[0]); err != nil {
			return "", err
		}
	}

	return out.String(), nil
}

func writePoint(out *strings.Builder, p string) error {
	ll, err := geo.FormatLatLon(p)
	if err != nil {
		return err
	}
	out.WriteString("DP " + ll + "\n")
	return nil
}

func writeArc(out *strings.Builder, a yaixm.Arc, from string) error {
	centre, err := geo.FormatLatLon(a.Centre)
	if err != nil {
		return err
	}
	start, err := geo.FormatLatLon(from)
	if err != nil {
		return err
	}
	end, err := geo.FormatLatLon(a.To)
	if err != nil {
		return err
	}

	dir := "-"
	if a.Clockwise() {
		dir = "+"
	}
	out.WriteString("V D=" + dir + "\n")
	out.WriteString("V X=" + centre + "\n")
	out.WriteString("DB " + start + ", " + end + "\n")
	return nil
}

func writeCircle(out *strings.Builder, c yaixm.Circle) error {
	centre, err := geo.FormatLatLon(c.Centre)
	if err != nil {
		return err
	}
	radius, err := geo.ParseDistance(c.Radius)
	if err != nil {
		return err
	}
	out.WriteString("V X=" + centre + "\n")
	out.WriteString("DC " + radius.OpenAir() + "\n")
	return nil
}
