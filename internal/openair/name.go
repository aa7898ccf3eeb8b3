package openair

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/asselect/internal/settings"
	"github.com/sells-group/asselect/internal/yaixm"
)

// Name builds the AN value for the n'th (zero based) volume of a feature.
// A volume name override is used verbatim.
func Name(f *yaixm.Feature, v *yaixm.Volume, n int, s settings.Settings) string {
	if v.Name != "" {
		return v.Name
	}

	r := combinedRules(f, v)

	var b strings.Builder
	b.WriteString(f.Name)

	switch f.LocalType {
	case yaixm.LocalNoATZ, yaixm.LocalUL:
		b.WriteString(" A/F")
	case yaixm.LocalMATZ, yaixm.LocalDZ, yaixm.LocalGVS, yaixm.LocalHIRTA, yaixm.LocalILS, yaixm.LocalLaser:
		b.WriteString(" " + string(f.LocalType))
	default:
		if f.Type == yaixm.IcaoATZ {
			b.WriteString(" ATZ")
		} else if r.has(yaixm.RuleRAZ) {
			b.WriteString(" RAZ")
		}
	}

	if s.Options.Format == settings.FormatCompetition && len(f.Geometry) > 1 {
		b.WriteByte('-')
		if v.Seqno != nil {
			b.WriteString(strconv.Itoa(*v.Seqno))
			b.WriteString(v.Subseq)
		} else {
			b.WriteString(sequenceLetter(n))
		}
	}

	// Reverse alphabetical: SI before NOTAM.
	var quals []string
	if r.has(yaixm.RuleSI) {
		quals = append(quals, string(yaixm.RuleSI))
	}
	if r.has(yaixm.RuleNOTAM) {
		quals = append(quals, string(yaixm.RuleNOTAM))
	}
	if len(quals) > 0 {
		b.WriteString(" (" + strings.Join(quals, "/") + ")")
	}

	if s.Options.Radio && v.Frequency != nil {
		fmt.Fprintf(&b, " %.3f", *v.Frequency)
	}

	return b.String()
}

// sequenceLetter maps 0, 1, ... 25, 26 to A, B, ... Z, AA.
func sequenceLetter(n int) string {
	var out []byte
	for n >= 0 {
		out = append([]byte{byte('A' + n%26)}, out...)
		n = n/26 - 1
	}
	return string(out)
}
