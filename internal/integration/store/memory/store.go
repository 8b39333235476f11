package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"carebase/internal/integration/models"
	"carebase/internal/shared/repository"
	"carebase/internal/shared/repository/memstore"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// Store is the in-memory endpoint repository. It satisfies
// repository.CrudRepository[models.Endpoint, repository.ListParams,
// models.CreateEndpoint, models.UpdateEndpoint].
type Store struct {
	endpoints *memstore.Collection[models.Endpoint]
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

// NewStore creates an empty in-memory endpoint store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		endpoints: memstore.NewCollection(func(e models.Endpoint) memstore.Key {
			return memstore.Key{CreatedAt: e.CreatedAt, ID: uuid.UUID(e.ID)}
		}),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID returns the endpoint within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(_ context.Context, org id.OrgID, endpointID uuid.UUID) (*models.Endpoint, error) {
	e, ok := s.endpoints.Get(org, endpointID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &e, nil
}

// List returns one page of the org's endpoints ordered by creation time.
func (s *Store) List(_ context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Endpoint], error) {
	return s.endpoints.List(org, params)
}

// Create validates, enforces per-org name uniqueness, and stores the
// endpoint.
func (s *Store) Create(_ context.Context, org id.OrgID, input models.CreateEndpoint) (*models.Endpoint, error) {
	e, err := models.NewEndpoint(id.EndpointID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}
	if s.nameTaken(org, input.Name) {
		return nil, sentinel.ErrConflict
	}
	s.endpoints.Insert(org, *e)
	return e, nil
}

// Update applies a partial update within the org scope.
func (s *Store) Update(_ context.Context, org id.OrgID, endpointID uuid.UUID, input models.UpdateEndpoint) (*models.Endpoint, error) {
	e, ok := s.endpoints.Get(org, endpointID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := e.Apply(input, s.clock()); err != nil {
		return nil, err
	}
	s.endpoints.Replace(org, endpointID, e)
	return &e, nil
}

// Delete removes the endpoint within the org scope.
func (s *Store) Delete(_ context.Context, org id.OrgID, endpointID uuid.UUID) error {
	if !s.endpoints.Remove(org, endpointID) {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) nameTaken(org id.OrgID, name string) bool {
	taken := false
	s.endpoints.Each(org, func(e models.Endpoint) bool {
		if strings.EqualFold(e.Name, name) {
			taken = true
			return false
		}
		return true
	})
	return taken
}
