// Package export renders the canonical submission list as CSV for the
// admin download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"ptz-simulator/internal/eligibility"
	"ptz-simulator/internal/submission"
)

// Filename is the download name the admin UI expects.
const Filename = "ptz_submissions.csv"

var headers = []string{
	"Date",
	"Prénom",
	"Nom",
	"Email",
	"Téléphone",
	"Zone",
	"Adresse",
	"Type de logement",
	"Taille du foyer",
	"Revenu fiscal",
	"Coût du projet",
	"Éligible",
	"Tranche",
	"Quotité",
	"Montant PTZ",
	"Primo-accédant",
	"Motif",
}

// CSV renders the submissions with fixed French column labels and locale
// formatting. Quoting and escaping follow RFC 4180 via encoding/csv.
func CSV(subs []submission.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, sub := range subs {
		if err := w.Write(row(sub)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func row(sub submission.Submission) []string {
	bracket := ""
	quota := ""
	loan := ""
	if sub.Eligible {
		bracket = strconv.Itoa(sub.Bracket)
		quota = strconv.Itoa(sub.QuotaPercent) + " %"
		loan = euros(sub.LoanAmount)
	}
	return []string{
		sub.SubmittedAt,
		sub.FirstName,
		sub.LastName,
		sub.Email,
		sub.Phone,
		string(sub.Zone),
		sub.Address,
		housingLabel(sub.HousingType),
		strconv.Itoa(sub.HouseholdSize),
		euros(sub.Income),
		euros(sub.ProjectCost),
		yesNo(sub.Eligible),
		bracket,
		quota,
		loan,
		yesNo(sub.NotPriorOwner),
		sub.Reason,
	}
}

func euros(amount int) string {
	return strconv.Itoa(amount) + " €"
}

func yesNo(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}

func housingLabel(h eligibility.HousingType) string {
	switch h {
	case eligibility.HousingIndividual:
		return "Individuel"
	case eligibility.HousingCollective:
		return "Collectif"
	default:
		return string(h)
	}
}
