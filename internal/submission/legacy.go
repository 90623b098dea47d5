package submission

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"ptz-simulator/internal/eligibility"
)

// LegacySource reads a flat-file snapshot left behind by the previous
// system so pre-migration records keep showing up in the admin list and
// export. The old writer stored every numeric field as a string.
type LegacySource struct {
	path string
}

// NewLegacySource returns nil when no snapshot is configured.
func NewLegacySource(path string) *LegacySource {
	if path == "" {
		return nil
	}
	return &LegacySource{path: path}
}

// legacyNumber tolerates the old writer's habit of storing numerics as
// either JSON numbers or strings, sometimes with decimals.
type legacyNumber int

func (n *legacyNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*n = legacyNumber(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*n = legacyNumber(math.Round(f))
		return nil
	}
	*n = 0
	return nil
}

// legacyRecord mirrors the flat-file JSON shape.
type legacyRecord struct {
	SubmissionDate string       `json:"submissionDate"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Address        string       `json:"address"`
	Commune        string       `json:"commune"`
	NotPriorOwner  bool         `json:"notPriorOwner"`
	HouseholdSize  legacyNumber `json:"householdSize"`
	Zone           string       `json:"zone"`
	Income         legacyNumber `json:"income"`
	HousingType    string       `json:"housingType"`
	ProjectCost    legacyNumber `json:"projectCost"`
	Eligible       bool         `json:"eligible"`
	Tranche        legacyNumber `json:"tranche"`
	Quotity        legacyNumber `json:"quotity"`
	PtzAmount      legacyNumber `json:"ptzAmount"`
	Reason         string       `json:"reason"`
}

// Load reads and converts the snapshot. A missing file is not an error;
// the snapshot simply contributes nothing.
func (l *LegacySource) Load() ([]Submission, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read legacy snapshot: %w", err)
	}

	var records []legacyRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse legacy snapshot: %w", err)
	}

	subs := make([]Submission, 0, len(records))
	for _, r := range records {
		subs = append(subs, r.toSubmission())
	}
	return subs, nil
}

func (r legacyRecord) toSubmission() Submission {
	return Submission{
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		Email:         strings.TrimSpace(r.Email),
		Phone:         strings.TrimSpace(r.Phone),
		Address:       strings.TrimSpace(r.Address),
		Commune:       strings.TrimSpace(r.Commune),
		NotPriorOwner: r.NotPriorOwner,
		Profile: eligibility.Profile{
			HouseholdSize: int(r.HouseholdSize),
			Zone:          eligibility.Zone(r.Zone),
			Income:        int(r.Income),
			HousingType:   eligibility.HousingType(r.HousingType),
			ProjectCost:   int(r.ProjectCost),
		},
		Result: eligibility.Result{
			Eligible:     r.Eligible,
			Bracket:      int(r.Tranche),
			QuotaPercent: int(r.Quotity),
			LoanAmount:   int(r.PtzAmount),
			Reason:       r.Reason,
		},
		SubmittedAt: strings.TrimSpace(r.SubmissionDate),
	}
}
