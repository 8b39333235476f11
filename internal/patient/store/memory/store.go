package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"carebase/internal/patient/models"
	"carebase/internal/shared/repository"
	"carebase/internal/shared/repository/memstore"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// Store is the in-memory patient repository. It satisfies
// repository.CrudRepository[models.Patient, repository.ListParams,
// models.CreatePatient, models.UpdatePatient].
type Store struct {
	patients *memstore.Collection[models.Patient]
	clock    func() time.Time
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

// NewStore creates an empty in-memory patient store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		patients: memstore.NewCollection(func(p models.Patient) memstore.Key {
			return memstore.Key{CreatedAt: p.CreatedAt, ID: uuid.UUID(p.ID)}
		}),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByID returns the patient within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(_ context.Context, org id.OrgID, patientID uuid.UUID) (*models.Patient, error) {
	p, ok := s.patients.Get(org, patientID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

// List returns one page of the org's patients ordered by creation time.
func (s *Store) List(_ context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Patient], error) {
	return s.patients.List(org, params)
}

// Create validates, enforces per-org MRN uniqueness, and stores the record.
func (s *Store) Create(_ context.Context, org id.OrgID, input models.CreatePatient) (*models.Patient, error) {
	p, err := models.NewPatient(id.PatientID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}
	if s.mrnTaken(org, input.MRN) {
		return nil, sentinel.ErrConflict
	}
	s.patients.Insert(org, *p)
	return p, nil
}

// Update applies a partial update within the org scope.
func (s *Store) Update(_ context.Context, org id.OrgID, patientID uuid.UUID, input models.UpdatePatient) (*models.Patient, error) {
	p, ok := s.patients.Get(org, patientID)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if err := p.Apply(input, s.clock()); err != nil {
		return nil, err
	}
	s.patients.Replace(org, patientID, p)
	return &p, nil
}

// Delete removes the patient within the org scope.
func (s *Store) Delete(_ context.Context, org id.OrgID, patientID uuid.UUID) error {
	if !s.patients.Remove(org, patientID) {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Store) mrnTaken(org id.OrgID, mrn string) bool {
	taken := false
	s.patients.Each(org, func(p models.Patient) bool {
		if strings.EqualFold(p.MRN, mrn) {
			taken = true
			return false
		}
		return true
	})
	return taken
}
