package openair

import (
	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// Classify returns the OpenAir class (the AC value) for a volume. The
// checks run in order and the first match wins.
func Classify(f *yaixm.Feature, v *yaixm.Volume, s settings.Settings) string {
	r := combinedRules(f, v)
	a := s.Airspace
	comp := s.Options.Format == settings.FormatCompetition

	if r.has(yaixm.RuleNOTAM) {
		return string(settings.ClassG)
	}

	switch f.Type {
	case yaixm.IcaoATZ:
		return a.ATZ.Code()

	case yaixm.IcaoD:
		if comp && r.has(yaixm.RuleSI) {
			return string(settings.Prohibited)
		}
		return string(settings.Danger)

	case yaixm.IcaoDOther:
		switch {
		case comp && f.LocalType == yaixm.LocalDZ && r.has(yaixm.RuleIntense):
			return string(settings.Prohibited)
		case isHirtaGVS(f.LocalType):
			return a.HirtaGVS.Code()
		case f.LocalType == yaixm.LocalGlider:
			return string(settings.Gliding)
		}
		return string(settings.Danger)

	case yaixm.IcaoOther:
		return classifyOther(f, r, a)

	case yaixm.IcaoP:
		return string(settings.Prohibited)

	case yaixm.IcaoR:
		return string(settings.Restricted)
	}

	switch {
	case r.has(yaixm.RuleTMZ):
		return string(settings.TMZ)
	case r.has(yaixm.RuleRMZ):
		return string(settings.RMZ)
	case v.Class != "":
		return string(v.Class)
	case f.Class != "":
		return string(f.Class)
	}
	return string(settings.ClassG)
}

func classifyOther(f *yaixm.Feature, r rules, a settings.Airspace) string {
	switch f.LocalType {
	case yaixm.LocalGlider:
		if r.has(yaixm.RuleLOA) {
			return string(settings.Gliding)
		}
		return a.Gliding.Code()
	case yaixm.LocalILS:
		if a.ILS.FollowsATZ() {
			return a.ATZ.Code()
		}
		return a.ILS.Code()
	case yaixm.LocalMATZ:
		return string(settings.MATZ)
	case yaixm.LocalNoATZ:
		return a.Unlicensed.Code()
	case yaixm.LocalRAT:
		return string(settings.Prohibited)
	case yaixm.LocalTMZ:
		return string(settings.TMZ)
	case yaixm.LocalUL:
		return a.Microlight.Code()
	case yaixm.LocalRMZ:
		return string(settings.RMZ)
	}
	return string(settings.Other)
}

func isHirtaGVS(t yaixm.LocalType) bool {
	return t == yaixm.LocalHIRTA || t == yaixm.LocalGVS || t == yaixm.LocalLaser
}
