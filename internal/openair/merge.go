// Package openair converts a YAIXM dataset and a set of user settings into
// OpenAir text.
package openair

import (
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// SelectLOAs returns the letters of agreement in force: those active by
// default plus those the user selected, in dataset order.
func SelectLOAs(loas []yaixm.LOA, s settings.Settings) []yaixm.LOA {
	var out []yaixm.LOA
	for _, loa := range loas {
		if loa.Default || s.LOASelected(loa.Name) {
			out = append(out, loa)
		}
	}
	return out
}

// MergeLOA applies letters of agreement to features. Added features are
// tagged with the LOA rule. A replace directive swaps the volume carrying
// its id for the replacement volumes, which inherit the replaced volume's
// sequence number; a feature left with no volumes is dropped. Unknown ids
// are ignored.
//
// features is modified and returned; callers pass a private copy.
func MergeLOA(features []yaixm.Feature, loas []yaixm.LOA) ([]yaixm.Feature, error) {
	for _, loa := range loas {
		for _, area := range loa.Areas {
			added, err := yaixm.CloneFeatures(area.Add)
			if err != nil {
				return nil, err
			}
			for _, f := range added {
				if !f.HasRule(yaixm.RuleLOA) {
					f.Rules = append(f.Rules, yaixm.RuleLOA)
				}
				features = append(features, f)
			}

			for _, r := range area.Replace {
				replacement, err := yaixm.CloneVolumes(r.Geometry)
				if err != nil {
					return nil, err
				}

				var found bool
				features, found = replaceVolume(features, r.ID, replacement)
				if !found {
					zap.L().Debug("openair: loa replace target not found",
						zap.String("loa", loa.Name),
						zap.String("id", r.ID),
					)
				}
			}
		}
	}
	return features, nil
}

// findVolume returns the feature and volume index of the volume with the
// given id.
func findVolume(features []yaixm.Feature, id string) (int, int, bool) {
	for f := range features {
		for v := range features[f].Geometry {
			if features[f].Geometry[v].ID == id {
				return f, v, true
			}
		}
	}
	return 0, 0, false
}

// replaceVolume builds new geometry and feature lists rather than deleting
// from the lists in place.
func replaceVolume(features []yaixm.Feature, id string, replacement []yaixm.Volume) ([]yaixm.Feature, bool) {
	fi, vi, ok := findVolume(features, id)
	if !ok {
		return features, false
	}

	target := features[fi].Geometry[vi]
	geometry := make([]yaixm.Volume, 0, len(features[fi].Geometry)-1+len(replacement))
	for i, v := range features[fi].Geometry {
		if i != vi {
			geometry = append(geometry, v)
		}
	}
	for _, v := range replacement {
		v.Seqno = copyInt(target.Seqno)
		geometry = append(geometry, v)
	}

	if len(geometry) > 0 {
		features[fi].Geometry = geometry
		return features, true
	}

	out := make([]yaixm.Feature, 0, len(features)-1)
	out = append(out, features[:fi]...)
	out = append(out, features[fi+1:]...)
	return out, true
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	n := *p
	return &n
}
