package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebase/internal/shared/repository"
	"carebase/internal/shared/repository/memstore"
	"carebase/internal/workflow/models"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// ActionComplete is the workflow verb exposed beyond CRUD.
const ActionComplete = "complete"

// Store is the in-memory task repository. It satisfies
// repository.CrudRepository and repository.ActionRepository: Complete is the
// one workflow verb beyond CRUD.
type Store struct {
	tasks *memstore.Collection[models.Task]
	clock func() time.Time
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

// NewStore creates an empty in-memory task store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		tasks: memstore.NewCollection(func(t models.Task) memstore.Key {
			return memstore.Key{CreatedAt: t.CreatedAt, ID: uuid.UUID(t.ID)}
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
	return []string{ActionComplete}
}

// FindByID returns the task within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(_ context.Context, org id.OrgID, taskID uuid.UUID) (*models.Task, error) {
	t, ok := s.tasks.Get(org, taskID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &t, nil
}

// List returns one page of the org's tasks ordered by creation time.
func (s *Store) List(_ context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Task], error) {
	return s.tasks.List(org, params)
}

// Create validates and stores the task.
func (s *Store) Create(_ context.Context, org id.OrgID, input models.CreateTask) (*models.Task, error) {
	t, err := models.NewTask(id.TaskID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}
	s.tasks.Insert(org, *t)
	return t, nil
}

// Update applies a partial update within the org scope.
func (s *Store) Update(_ context.Context, org id.OrgID, taskID uuid.UUID, input models.UpdateTask) (*models.Task, error) {
	t, ok := s.tasks.Get(org, taskID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := t.Apply(input, s.clock()); err != nil {
		return nil, err
	}
	s.tasks.Replace(org, taskID, t)
	return &t, nil
}

// Delete removes the task within the org scope.
func (s *Store) Delete(_ context.Context, org id.OrgID, taskID uuid.UUID) error {
	if !s.tasks.Remove(org, taskID) {
		return sentinel.ErrNotFound
	}
	return nil
}

// Complete transitions the task to completed within the org scope.
func (s *Store) Complete(_ context.Context, org id.OrgID, taskID uuid.UUID) (*models.Task, error) {
	t, ok := s.tasks.Get(org, taskID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := t.Complete(s.clock()); err != nil {
		return nil, err
	}
	s.tasks.Replace(org, taskID, t)
	return &t, nil
}
