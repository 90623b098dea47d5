package submission

import (
	"context"
	"sync"
)

// InMemoryStore keeps submissions in process memory. Used by tests and as a
// dev fallback when no database is configured.
type InMemoryStore struct {
	mu   sync.RWMutex
	subs []Submission
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
	return nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Submission{}, s.subs...), nil
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, subs []Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append([]Submission{}, subs...)
	return nil
}

func (s *InMemoryStore) DeleteByKeys(_ context.Context, keys []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	kept := s.subs[:0]
	deleted := 0
	for _, sub := range s.subs {
		if _, gone := drop[sub.IdentityKey()]; gone {
			deleted++
			continue
		}
		kept = append(kept, sub)
	}
	s.subs = kept
	return deleted, nil
}
