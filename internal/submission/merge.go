package submission

import "sort"

// Merge reconciles two collections of submissions into one canonical,
// time-descending list with at most one record per identity key.
//
// Primary entries are inserted first; a secondary entry with the same key
// always overwrites, because the secondary set represents the latest write
// path. Within one set, insertion order decides (last write wins). The
// result is sorted by parsed timestamp, newest first; records whose
// timestamp is missing or malformed order as the oldest.
func Merge(primary, secondary []Submission) []Submission {
	byKey := make(map[string]Submission, len(primary)+len(secondary))
	order := make([]string, 0, len(primary)+len(secondary))

	insert := func(s Submission) {
		key := s.IdentityKey()
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = s
	}
	for _, s := range primary {
		insert(s)
	}
	for _, s := range secondary {
		insert(s)
	}

	merged := make([]Submission, 0, len(order))
	for _, key := range order {
		merged = append(merged, byKey[key])
	}

	// Stable so equal timestamps keep insertion order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SubmittedTime().After(merged[j].SubmittedTime())
	})
	return merged
}
