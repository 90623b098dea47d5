package submission

import "context"

// Store is the durable persistence boundary. Append must be atomic under
// concurrent writers; ReplaceAll swaps the whole collection in one shot for
// the admin bulk-edit flow.
type Store interface {
	Append(ctx context.Context, s Submission) error
	ListAll(ctx context.Context) ([]Submission, error)
	ReplaceAll(ctx context.Context, subs []Submission) error
	DeleteByKeys(ctx context.Context, keys []string) (int, error)
}