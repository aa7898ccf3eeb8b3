package openair

import (
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

var square = yaixm.Boundary{
	yaixm.Line{"510000N 0010000W", "510000N 0000000E", "500000N 0000000E", "500000N 0010000W"},
}

func vol(id, lower, upper string) yaixm.Volume {
	return yaixm.Volume{ID: id, Lower: lower, Upper: upper, Boundary: square}
}

func feature(name string, t yaixm.IcaoType, lt yaixm.LocalType, vols ...yaixm.Volume) yaixm.Feature {
	return yaixm.Feature{Name: name, Type: t, LocalType: lt, Geometry: vols}
}

func intp(n int) *int { return &n }

func floatp(f float64) *float64 { return &f }

func competition() settings.Settings {
	s := settings.Default()
	s.Options.Format = settings.FormatCompetition
	return s
}
