package memory

import (
	"context"
	"sync"

	"carebase/pkg/domain"
	audit "carebase/pkg/platform/audit"
)

// Store is an in-memory audit store for tests and single-process deployments.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewStore creates an empty in-memory audit store.
func NewStore() *Store {
	return &Store{}
}

// Append records the event.
func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByOrg returns events for one org in append order.
func (s *Store) ListByOrg(_ context.Context, org domain.OrgID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.events {
		if e.OrgID == org {
			out = append(out, e)
		}
	}
	return out, nil
}
