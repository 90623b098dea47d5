package submission

import (
	"strings"
	"time"

	"ptz-simulator/internal/eligibility"
)

// SubmittedAtLayout is the fr-FR day-first format the flat-file era wrote
// and the merge still orders by.
const SubmittedAtLayout = "02/01/2006 15:04:05"

// Submission is one completed simulation: household profile, contact
// identity, and the computed verdict. Created once at form completion and
// never mutated afterwards; the admin surface owns bulk deletion and
// replacement.
type Submission struct {
	// ID is assigned at creation. Legacy flat-file records have none.
	ID string `json:"id,omitempty"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Commune   string `json:"commune,omitempty"`

	NotPriorOwner bool `json:"notPriorOwner"`

	eligibility.Profile
	eligibility.Result

	// SubmittedAt keeps the legacy locale format so identity keys stay
	// stable across the storage migration. CreatedAt is the machine
	// timestamp.
	SubmittedAt string    `json:"submissionDate"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// IdentityKey derives the deduplication key: timestamp plus contact when a
// timestamp exists, contact alone otherwise. At most one submission per key
// survives a merge.
func (s Submission) IdentityKey() string {
	contact := strings.ToLower(strings.TrimSpace(s.Email)) + "|" +
		strings.TrimSpace(s.FirstName) + "|" +
		strings.TrimSpace(s.LastName)
	if s.SubmittedAt == "" {
		return contact
	}
	return s.SubmittedAt + "|" + contact
}

// SubmittedTime parses the locale-formatted timestamp for ordering.
// Missing or malformed timestamps sort as the oldest possible value rather
// than failing the merge.
func (s Submission) SubmittedTime() time.Time {
	return ParseSubmittedAt(s.SubmittedAt)
}

// ParseSubmittedAt parses DD/MM/YYYY with an optional time part. Anything
// unparseable degrades to the epoch.
func ParseSubmittedAt(value string) time.Time {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{SubmittedAtLayout, "02/01/2006 15:04", "02/01/2006"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// FormatSubmittedAt renders a timestamp in the legacy locale format.
func FormatSubmittedAt(ts time.Time) string {
	return ts.Format(SubmittedAtLayout)
}
