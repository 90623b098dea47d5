package eligibility

import (
	"fmt"
	"math"

	dErrors "ptz-simulator/pkg/domain-errors"
)

// Calculate evaluates a household profile against the reference tables.
// This is pure domain logic - no I/O, no side effects. Identical input
// always produces identical output.
//
// Ineligibility is returned as a Result, not an error; an error means the
// profile itself was malformed (unknown zone or housing type).
func Calculate(tables *Tables, profile Profile) (Result, error) {
	if err := profile.Validate(); err != nil {
		return Result{}, err
	}

	maxIncome, ok := tables.IncomeCeiling(profile.Zone, profile.HouseholdSize)
	if !ok {
		return Result{}, dErrors.NewField("zone", "zone inconnue: "+string(profile.Zone))
	}

	if profile.Income > maxIncome {
		return Result{
			Eligible: false,
			Reason: fmt.Sprintf(
				"Vos revenus (%d €) dépassent le plafond d'éligibilité au PTZ (%d €) pour votre zone et la taille de votre foyer.",
				profile.Income, maxIncome),
		}, nil
	}

	thresholds, ok := tables.BracketThresholds(profile.Zone)
	if !ok {
		return Result{}, dErrors.NewField("zone", "zone inconnue: "+string(profile.Zone))
	}

	// First threshold not exceeded wins; bracket 4 catches everything up to
	// the ceiling. The no-bracket branch is unreachable after the ceiling
	// check but kept as an explicit business outcome.
	var bracket int
	switch {
	case profile.Income <= thresholds[0]:
		bracket = 1
	case profile.Income <= thresholds[1]:
		bracket = 2
	case profile.Income <= thresholds[2]:
		bracket = 3
	case profile.Income <= maxIncome:
		bracket = 4
	default:
		return Result{
			Eligible: false,
			Reason:   "Vos revenus ne correspondent à aucune tranche d'éligibilité au PTZ.",
		}, nil
	}

	quota, ok := tables.Quota(profile.HousingType, bracket)
	if !ok {
		return Result{}, dErrors.NewField("housingType", "type de logement inconnu: "+string(profile.HousingType))
	}

	ceiling, ok := tables.CostCeiling(profile.Zone, profile.HouseholdSize)
	if !ok {
		return Result{}, dErrors.NewField("zone", "zone inconnue: "+string(profile.Zone))
	}

	capped := profile.ProjectCost
	if capped > ceiling {
		capped = ceiling
	}
	loan := int(math.Round(float64(capped) * float64(quota) / 100))

	return Result{
		Eligible:          true,
		Bracket:           bracket,
		QuotaPercent:      quota,
		CostCeiling:       ceiling,
		CappedProjectCost: capped,
		LoanAmount:        loan,
	}, nil
}
