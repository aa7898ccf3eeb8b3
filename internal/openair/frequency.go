package openair

import (
	"go.uber.org/zap"

	"github.com/sells-group/asselect/internal/yaixm"
)

// FrequencyMap maps feature and volume ids to the frequency of the service
// controlling them. When two services control the same id the later one in
// the list wins.
func FrequencyMap(services []yaixm.Service) map[string]float64 {
	freqs := make(map[string]float64)
	for _, svc := range services {
		for _, id := range svc.Controls {
			if prev, ok := freqs[id]; ok && prev != svc.Frequency {
				zap.L().Debug("openair: frequency overridden",
					zap.String("id", id),
					zap.Float64("previous", prev),
					zap.Float64("frequency", svc.Frequency),
					zap.String("callsign", svc.Callsign),
				)
			}
			freqs[id] = svc.Frequency
		}
	}
	return freqs
}

// MergeServices stamps every volume with the frequency registered for its
// own id, else for its feature's id, else clears it.
func MergeServices(features []yaixm.Feature, services []yaixm.Service) {
	freqs := FrequencyMap(services)

	for f := range features {
		feature := &features[f]
		for v := range feature.Geometry {
			vol := &feature.Geometry[v]
			vol.Frequency = lookup(freqs, vol.ID, feature.ID)
		}
	}
}

func lookup(freqs map[string]float64, ids ...string) *float64 {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if f, ok := freqs[id]; ok {
			return &f
		}
	}
	return nil
}
