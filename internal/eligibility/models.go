package eligibility

import (
	dErrors "ptz-simulator/pkg/domain-errors"
)

// Zone is a geographic eligibility tier reflecting local housing market
// tension. Thresholds and ceilings are keyed by zone.
type Zone string

const (
	ZoneA  Zone = "A"
	ZoneB1 Zone = "B1"
	ZoneB2 Zone = "B2"
	ZoneC  Zone = "C"
)

// Zones lists all valid zones in table order.
var Zones = []Zone{ZoneA, ZoneB1, ZoneB2, ZoneC}

// ParseZone validates a zone value coming from user input.
func ParseZone(s string) (Zone, error) {
	switch Zone(s) {
	case ZoneA, ZoneB1, ZoneB2, ZoneC:
		return Zone(s), nil
	default:
		return "", dErrors.NewField("zone", "zone inconnue: "+s)
	}
}

// HousingType distinguishes the two quota tables.
type HousingType string

const (
	HousingIndividual HousingType = "individual"
	HousingCollective HousingType = "collective"
)

// ParseHousingType validates a housing type value coming from user input.
func ParseHousingType(s string) (HousingType, error) {
	switch HousingType(s) {
	case HousingIndividual, HousingCollective:
		return HousingType(s), nil
	default:
		return "", dErrors.NewField("housingType", "type de logement inconnu: "+s)
	}
}

// Profile carries the household inputs to the eligibility calculation.
// Amounts are annual euros; HouseholdSize above 8 clamps to the 8-person
// bracket during calculation.
type Profile struct {
	HouseholdSize int         `json:"householdSize"`
	Zone          Zone        `json:"zone"`
	Income        int         `json:"income"`
	HousingType   HousingType `json:"housingType"`
	ProjectCost   int         `json:"projectCost"`
}

// Validate rejects malformed profiles before calculation. Unrecognized zone
// or housing type is an input error, never a silent default.
func (p Profile) Validate() error {
	if p.HouseholdSize < 1 {
		return dErrors.NewField("householdSize", "la taille du foyer doit être au moins 1")
	}
	if _, err := ParseZone(string(p.Zone)); err != nil {
		return err
	}
	if p.Income < 0 {
		return dErrors.NewField("income", "le revenu ne peut pas être négatif")
	}
	if _, err := ParseHousingType(string(p.HousingType)); err != nil {
		return err
	}
	if p.ProjectCost < 0 {
		return dErrors.NewField("projectCost", "le coût du projet ne peut pas être négatif")
	}
	return nil
}

// Result is the eligibility verdict. Ineligibility is a business outcome,
// not an error: Eligible=false with a human-readable Reason.
type Result struct {
	Eligible bool `json:"eligible"`

	// Set only when eligible.
	Bracket           int `json:"tranche,omitempty"`
	QuotaPercent      int `json:"quotity,omitempty"`
	CostCeiling       int `json:"costCeiling,omitempty"`
	CappedProjectCost int `json:"cappedProjectCost,omitempty"`
	LoanAmount        int `json:"ptzAmount,omitempty"`

	// Set only when ineligible.
	Reason string `json:"reason,omitempty"`
}
