package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"carebase/internal/knowledge/models"
	"carebase/internal/shared/repository"
	"carebase/internal/shared/repository/memstore"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// Store is the in-memory guideline repository. It satisfies
// repository.CrudRepository[models.Guideline, repository.ListParams,
// models.CreateGuideline, models.UpdateGuideline].
type Store struct {
	guidelines *memstore.Collection[models.Guideline]
	clock      func() time.Time
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

// NewStore creates an empty in-memory guideline store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		guidelines: memstore.NewCollection(func(g models.Guideline) memstore.Key {
			return memstore.Key{CreatedAt: g.CreatedAt, ID: uuid.UUID(g.ID)}
		}),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID returns the guideline within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(_ context.Context, org id.OrgID, guidelineID uuid.UUID) (*models.Guideline, error) {
	g, ok := s.guidelines.Get(org, guidelineID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &g, nil
}

// List returns one page of the org's guidelines ordered by creation time.
func (s *Store) List(_ context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Guideline], error) {
	return s.guidelines.List(org, params)
}

// Create validates, enforces per-org code uniqueness, and stores the
// guideline.
func (s *Store) Create(_ context.Context, org id.OrgID, input models.CreateGuideline) (*models.Guideline, error) {
	g, err := models.NewGuideline(id.GuidelineID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}
	if s.codeTaken(org, input.Code) {
		return nil, sentinel.ErrConflict
	}
	s.guidelines.Insert(org, *g)
	return g, nil
}

// Update applies a partial update within the org scope.
func (s *Store) Update(_ context.Context, org id.OrgID, guidelineID uuid.UUID, input models.UpdateGuideline) (*models.Guideline, error) {
	g, ok := s.guidelines.Get(org, guidelineID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := g.Apply(input, s.clock()); err != nil {
		return nil, err
	}
	s.guidelines.Replace(org, guidelineID, g)
	return &g, nil
}

// Delete removes the guideline within the org scope.
func (s *Store) Delete(_ context.Context, org id.OrgID, guidelineID uuid.UUID) error {
	if !s.guidelines.Remove(org, guidelineID) {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) codeTaken(org id.OrgID, code string) bool {
	taken := false
	s.guidelines.Each(org, func(g models.Guideline) bool {
		if strings.EqualFold(g.Code, code) {
			taken = true
			return false
		}
		return true
	})
	return taken
}
