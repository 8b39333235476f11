package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebase/internal/decision/models"
	"carebase/internal/shared/repository"
	"carebase/internal/shared/repository/memstore"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// ActionAcknowledge is the decision verb exposed beyond CRUD.
const ActionAcknowledge = "acknowledge"

// Store is the in-memory decision repository. Decision results are
// append-only: the store offers read, ingest and acknowledge, never update
// or delete. It satisfies repository.ReadRepository and
// repository.ActionRepository.
type Store struct {
	decisions *memstore.Collection[models.Decision]
	clock     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewStore creates an empty in-memory decision store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		decisions: memstore.NewCollection(func(d models.Decision) memstore.Key {
			return memstore.Key{CreatedAt: d.CreatedAt, ID: uuid.UUID(d.ID)}
		}),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Actions names the verbs this repository exposes beyond CRUD.
func (s *Store) Actions() []string {
	return []string{ActionAcknowledge}
}

// FindByID returns the decision within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(_ context.Context, org id.OrgID, decisionID uuid.UUID) (*models.Decision, error) {
	d, ok := s.decisions.Get(org, decisionID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &d, nil
}

// List returns one page of the org's decisions ordered by creation time.
func (s *Store) List(_ context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Decision], error) {
	return s.decisions.List(org, params)
}

// Create ingests a decision result in open state.
func (s *Store) Create(_ context.Context, org id.OrgID, input models.CreateDecision) (*models.Decision, error) {
	d, err := models.NewDecision(id.DecisionID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}
	s.decisions.Insert(org, *d)
	return d, nil
}

// Acknowledge records the acknowledging actor within the org scope.
func (s *Store) Acknowledge(_ context.Context, org id.OrgID, decisionID uuid.UUID, actor string) (*models.Decision, error) {
	d, ok := s.decisions.Get(org, decisionID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := d.Acknowledge(actor, s.clock()); err != nil {
		return nil, err
	}
	s.decisions.Replace(org, decisionID, d)
	return &d, nil
}
