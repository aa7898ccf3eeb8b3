package openair

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// Output is the result of a conversion.
type Output struct {
	Text      string
	Volumes   int // stanzas written for airspace volumes
	Excluded  int // volumes dropped by the filter
	Obstacles int
}

// Render converts a dataset to OpenAir text under the given settings.
func Render(ds *yaixm.Dataset, s settings.Settings) (string, error) {
	out, err := Convert(ds, s)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

// Convert runs the conversion: LOA overlay, RAT selection, frequency
// merge, then one stanza per included volume in dataset order, followed by
// obstacles when requested. ds is not modified.
func Convert(ds *yaixm.Dataset, s settings.Settings) (*Output, error) {
	if ds == nil {
		return nil, eris.New("openair: nil dataset")
	}
	if err := s.Validate(); err != nil {
		return nil, eris.Wrap(err, "openair: settings")
	}
	if err := ds.Validate(); err != nil {
		return nil, eris.Wrap(err, "openair: dataset")
	}

	features, err := workingSet(ds, s)
	if err != nil {
		return nil, err
	}
	MergeServices(features, ds.Service)

	var (
		text strings.Builder
		res  Output
	)

	for fi := range features {
		f := &features[fi]
		for vi := range f.Geometry {
			v := &f.Geometry[vi]

			ok, err := Included(f, v, s)
			if err != nil {
				return nil, eris.Wrapf(err, "openair: %q volume[%d]", f.Name, vi)
			}
			if !ok {
				res.Excluded++
				continue
			}

			if err := writeVolume(&text, f, v, vi, s); err != nil {
				return nil, eris.Wrapf(err, "openair: %q volume[%d]", f.Name, vi)
			}
			res.Volumes++
		}
	}

	if s.Airspace.Obstacle && s.Options.Format != settings.FormatRATOnly {
		for _, o := range ds.Obstacle {
			if err := writeObstacle(&text, o); err != nil {
				return nil, err
			}
			res.Obstacles++
		}
	}

	res.Text = text.String()

	zap.L().Debug("openair: converted",
		zap.String("format", string(s.Options.Format)),
		zap.Int("volumes", res.Volumes),
		zap.Int("excluded", res.Excluded),
		zap.Int("obstacles", res.Obstacles),
	)
	return &res, nil
}

// workingSet returns a private copy of the features to convert.
func workingSet(ds *yaixm.Dataset, s settings.Settings) ([]yaixm.Feature, error) {
	rats, err := yaixm.CloneFeatures(selectRATs(ds.RAT, s))
	if err != nil {
		return nil, eris.Wrap(err, "openair: copy rat")
	}
	if s.Options.Format == settings.FormatRATOnly {
		return rats, nil
	}

	features, err := yaixm.CloneFeatures(ds.Airspace)
	if err != nil {
		return nil, eris.Wrap(err, "openair: copy airspace")
	}
	features, err = MergeLOA(features, SelectLOAs(ds.LOA, s))
	if err != nil {
		return nil, eris.Wrap(err, "openair: merge loa")
	}
	return append(features, rats...), nil
}

func selectRATs(rats []yaixm.Feature, s settings.Settings) []yaixm.Feature {
	var out []yaixm.Feature
	for _, f := range rats {
		if s.RATSelected(f.Name) {
			out = append(out, f)
		}
	}
	return out
}

func writeVolume(out *strings.Builder, f *yaixm.Feature, v *yaixm.Volume, n int, s settings.Settings) error {
	boundary, err := Boundary(v.Boundary)
	if err != nil {
		return err
	}

	out.WriteString("*\n")
	out.WriteString("AC " + Classify(f, v, s) + "\n")
	out.WriteString("AN " + Name(f, v, n, s) + "\n")
	if v.Frequency != nil {
		out.WriteString("AF " + strconv.FormatFloat(*v.Frequency, 'f', 3, 64) + "\n")
	}
	out.WriteString("AL " + formatLevel(v.Lower) + "\n")
	out.WriteString("AH " + formatLevel(v.Upper) + "\n")
	out.WriteString(boundary)
	return nil
}
