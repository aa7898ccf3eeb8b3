// Package yaixm holds the YAIXM airspace dataset model: features and their
// volumes, letters of agreement, radio services and obstacles.
package yaixm

// IcaoType is the ICAO airspace type of a feature.
type IcaoType string

const (
	IcaoATZ    IcaoType = "ATZ"
	IcaoAirway IcaoType = "AWY"
	IcaoCTA    IcaoType = "CTA"
	IcaoCTR    IcaoType = "CTR"
	IcaoD      IcaoType = "D"
	IcaoDOther IcaoType = "D_OTHER"
	IcaoOther  IcaoType = "OTHER"
	IcaoP      IcaoType = "P"
	IcaoR      IcaoType = "R"
	IcaoTMA    IcaoType = "TMA"
)

var icaoTypes = map[IcaoType]bool{
	IcaoATZ: true, IcaoAirway: true, IcaoCTA: true, IcaoCTR: true, IcaoD: true,
	IcaoDOther: true, IcaoOther: true, IcaoP: true, IcaoR: true, IcaoTMA: true,
}

// Valid reports whether t is one of the known ICAO types.
func (t IcaoType) Valid() bool { return icaoTypes[t] }

// LocalType refines a feature's ICAO type with a UK-specific category.
type LocalType string

const (
	LocalNone   LocalType = ""
	LocalDZ     LocalType = "DZ"
	LocalGlider LocalType = "GLIDER"
	LocalGVS    LocalType = "GVS"
	LocalHIRTA  LocalType = "HIRTA"
	LocalILS    LocalType = "ILS"
	LocalLaser  LocalType = "LASER"
	LocalMATZ   LocalType = "MATZ"
	LocalNoATZ  LocalType = "NOATZ"
	LocalRAT    LocalType = "RAT"
	LocalRMZ    LocalType = "RMZ"
	LocalUL     LocalType = "UL"
	LocalTMZ    LocalType = "TMZ"
)

var localTypes = map[LocalType]bool{
	LocalNone: true, LocalDZ: true, LocalGlider: true, LocalGVS: true, LocalHIRTA: true,
	LocalILS: true, LocalLaser: true, LocalMATZ: true, LocalNoATZ: true, LocalRAT: true,
	LocalRMZ: true, LocalUL: true, LocalTMZ: true,
}

// Valid reports whether t is empty or one of the known local types.
func (t LocalType) Valid() bool { return localTypes[t] }

// IcaoClass is an ICAO airspace class, A to G. Empty means unset.
type IcaoClass string

// Valid reports whether c is empty or a class letter A to G.
func (c IcaoClass) Valid() bool {
	return c == "" || (len(c) == 1 && c[0] >= 'A' && c[0] <= 'G')
}

// Rule is an applicability flag on a feature or volume.
type Rule string

const (
	RuleIntense Rule = "INTENSE"
	RuleLOA     Rule = "LOA"
	RuleNoSSR   Rule = "NOSSR"
	RuleNOTAM   Rule = "NOTAM"
	RuleRAZ     Rule = "RAZ"
	RuleRMZ     Rule = "RMZ"
	RuleSI      Rule = "SI"
	RuleTRA     Rule = "TRA"
	RuleTMZ     Rule = "TMZ"
)

// Feature is one named airspace entity made up of one or more volumes.
type Feature struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Type      IcaoType  `json:"type"`
	LocalType LocalType `json:"localtype,omitempty"`
	Class     IcaoClass `json:"class,omitempty"`
	Rules     []Rule    `json:"rules,omitempty"`
	Geometry  []Volume  `json:"geometry"`
}

// HasRule reports whether the feature itself carries r.
func (f *Feature) HasRule(r Rule) bool {
	for _, x := range f.Rules {
		if x == r {
			return true
		}
	}
	return false
}

// Volume is one vertical and lateral slice of a feature.
type Volume struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Lower     string    `json:"lower"`
	Upper     string    `json:"upper"`
	Class     IcaoClass `json:"class,omitempty"`
	Rules     []Rule    `json:"rules,omitempty"`
	Seqno     *int      `json:"seqno,omitempty"`
	Subseq    string    `json:"subseq,omitempty"`
	Frequency *float64  `json:"frequency,omitempty"`
	Boundary  Boundary  `json:"boundary"`
}

// LOA is a letter of agreement overlay.
type LOA struct {
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
	Areas   []Area `json:"areas"`
}

// Area is one part of a letter of agreement.
type Area struct {
	Name    string    `json:"name,omitempty"`
	Add     []Feature `json:"add,omitempty"`
	Replace []Replace `json:"replace,omitempty"`
}

// Replace swaps the volume with the given id for new geometry.
type Replace struct {
	ID       string   `json:"id"`
	Geometry []Volume `json:"geometry"`
}

// Service is a radio service controlling a set of features or volumes.
type Service struct {
	Callsign  string   `json:"callsign"`
	Frequency float64  `json:"frequency"`
	Controls  []string `json:"controls"`
}

// Obstacle is a single point obstruction.
type Obstacle struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Position  string `json:"position"`
	Elevation string `json:"elevation"`
}

// Release describes the dataset issue.
type Release struct {
	AIRACDate  string `json:"airac_date,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
	SchemaVer  int    `json:"schema_version,omitempty"`
	Note       string `json:"note,omitempty"`
	CommitHash string `json:"commit,omitempty"`
}

// Dataset is a complete YAIXM document.
type Dataset struct {
	Airspace []Feature  `json:"airspace"`
	RAT      []Feature  `json:"rat,omitempty"`
	LOA      []LOA      `json:"loa,omitempty"`
	Service  []Service  `json:"service,omitempty"`
	Obstacle []Obstacle `json:"obstacle,omitempty"`
	Release  Release    `json:"release,omitempty"`
}
