package openair

import (
	"slices"

	"github.com/sells-group/asselect/internal/yaixm"
)

// rules is the union of a feature's and a volume's rules, sorted.
type rules []yaixm.Rule

func combinedRules(f *yaixm.Feature, v *yaixm.Volume) rules {
	out := make(rules, 0, len(f.Rules)+len(v.Rules))
	out = append(out, f.Rules...)
	out = append(out, v.Rules...)
	slices.Sort(out)
	return slices.Compact(out)
}

func (r rules) has(rule yaixm.Rule) bool {
	_, ok := slices.BinarySearch(r, rule)
	return ok
}
