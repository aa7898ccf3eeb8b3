package yaixm

import (
	"github.com/rotisserie/eris"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameKinds are the selection lists Names understands.
var NameKinds = []string{"loa", "rat", "wave", "gliding"}

// ErrUnknownKind is returned by Names for an unrecognised list.
var ErrUnknownKind = eris.New("yaixm: unknown name list")

// Names returns the selection list of the given kind: "loa", "rat", "wave"
// or "gliding".
func Names(d *Dataset, kind string) ([]string, error) {
	switch kind {
	case "loa":
		return LOANames(d), nil
	case "rat":
		return RATNames(d), nil
	case "wave":
		return WaveNames(d), nil
	case "gliding":
		return GlidingSites(d), nil
	}
	return nil, eris.Wrapf(ErrUnknownKind, "%q", kind)
}

// LOANames lists the letters of agreement a user can opt into. LOAs that
// are active by default are not listed.
func LOANames(d *Dataset) []string {
	var names []string
	for _, loa := range d.LOA {
		if !loa.Default {
			names = append(names, loa.Name)
		}
	}
	return names
}

// RATNames lists the temporary restricted areas in dataset order.
func RATNames(d *Dataset) []string {
	names := make([]string, 0, len(d.RAT))
	for _, f := range d.RAT {
		names = append(names, f.Name)
	}
	return names
}

// WaveNames lists the wave boxes, sorted.
func WaveNames(d *Dataset) []string {
	var names []string
	for _, f := range d.Airspace {
		if f.IsWaveBox() {
			names = append(names, f.Name)
		}
	}
	sortNames(names)
	return names
}

// GlidingSites lists the gliding sites, sorted.
func GlidingSites(d *Dataset) []string {
	var names []string
	for _, f := range d.Airspace {
		if f.IsGlidingSite() {
			names = append(names, f.Name)
		}
	}
	sortNames(names)
	return names
}

// IsWaveBox reports whether the feature is a glider-only wave box.
func (f *Feature) IsWaveBox() bool {
	return f.LocalType == LocalGlider && f.Type == IcaoDOther
}

// IsGlidingSite reports whether the feature is a gliding site.
func (f *Feature) IsGlidingSite() bool {
	return f.LocalType == LocalGlider && f.Type != IcaoDOther
}

func sortNames(names []string) {
	collate.New(language.BritishEnglish, collate.IgnoreCase).SortStrings(names)
}
