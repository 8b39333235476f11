package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"carebase/internal/patient/models"
	"carebase/internal/shared/repository"
	id "carebase/pkg/domain"
	"carebase/pkg/platform/sentinel"
)

// Store is the PostgreSQL patient repository.
//
// Schema:
//
//	CREATE TABLE patients (
//	    id          UUID PRIMARY KEY,
//	    org_id      TEXT NOT NULL,
//	    mrn         TEXT NOT NULL,
//	    given_name  TEXT NOT NULL,
//	    family_name TEXT NOT NULL,
//	    birth_date  TEXT NOT NULL DEFAULT '',
//	    status      TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL,
//	    UNIQUE (org_id, mrn)
//	);
//	CREATE INDEX patients_org_created_idx ON patients (org_id, created_at, id);
type Store struct {
	pool  *pgxpool.Pool
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

// NewStore creates a PostgreSQL-backed patient store.
func NewStore(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const patientColumns = "id, org_id, mrn, given_name, family_name, birth_date, status, created_at, updated_at"

func scanPatient(row pgx.Row) (*models.Patient, error) {
	var p models.Patient
	var pid uuid.UUID
	var org string
	err := row.Scan(&pid, &org, &p.MRN, &p.GivenName, &p.FamilyName, &p.BirthDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	p.ID = id.PatientID(pid)
	p.OrgID = id.OrgID(org)
	return &p, nil
}

// FindByID returns the patient within the org scope, or sentinel.ErrNotFound.
func (s *Store) FindByID(ctx context.Context, org id.OrgID, patientID uuid.UUID) (*models.Patient, error) {
	query := fmt.Sprintf("SELECT %s FROM patients WHERE org_id = $1 AND id = $2", patientColumns)
	return scanPatient(s.pool.QueryRow(ctx, query, org.String(), patientID))
}

// List returns one page of the org's patients using keyset pagination over
// (created_at, id).
func (s *Store) List(ctx context.Context, org id.OrgID, params repository.ListParams) (repository.Page[models.Patient], error) {
	limit := params.EffectiveLimit()

	var (
		rows pgx.Rows
		err  error
		desc bool
	)
	if params.Cursor == "" {
		query := fmt.Sprintf(
			"SELECT %s FROM patients WHERE org_id = $1 ORDER BY created_at, id LIMIT $2",
			patientColumns)
		rows, err = s.pool.Query(ctx, query, org.String(), limit+1)
	} else {
		cur, decodeErr := repository.DecodeCursor(params.Cursor)
		if decodeErr != nil {
			return repository.Page[models.Patient]{}, decodeErr
		}
		switch cur.Dir {
		case repository.After:
			query := fmt.Sprintf(
				"SELECT %s FROM patients WHERE org_id = $1 AND (created_at, id) > ($2, $3) ORDER BY created_at, id LIMIT $4",
				patientColumns)
			rows, err = s.pool.Query(ctx, query, org.String(), cur.CreatedAt, cur.ID, limit+1)
		case repository.Before:
			desc = true
			query := fmt.Sprintf(
				"SELECT %s FROM patients WHERE org_id = $1 AND (created_at, id) < ($2, $3) ORDER BY created_at DESC, id DESC LIMIT $4",
				patientColumns)
			rows, err = s.pool.Query(ctx, query, org.String(), cur.CreatedAt, cur.ID, limit+1)
		}
	}
	if err != nil {
		return repository.Page[models.Patient]{}, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var items []models.Patient
	for rows.Next() {
		p, scanErr := scanPatient(rows)
		if scanErr != nil {
			return repository.Page[models.Patient]{}, scanErr
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return repository.Page[models.Patient]{}, fmt.Errorf("list patients: %w", err)
	}

	overflow := len(items) > limit
	if overflow {
		items = items[:limit]
	}
	if desc {
		reverse(items)
	}

	page := repository.Page[models.Patient]{Items: items}
	if len(items) == 0 {
		return page, nil
	}

	first, last := items[0], items[len(items)-1]
	moreAfter, moreBefore := overflow, overflow
	if desc {
		// Overflow on a backward walk means more rows BEFORE the page;
		// rows after it must be probed explicitly, and vice versa.
		moreAfter, err = s.exists(ctx, org, last.CreatedAt, uuid.UUID(last.ID), ">")
	} else {
		moreBefore, err = s.exists(ctx, org, first.CreatedAt, uuid.UUID(first.ID), "<")
	}
	if err != nil {
		return repository.Page[models.Patient]{}, err
	}

	if moreAfter {
		next := repository.EncodeAfter(last.CreatedAt, uuid.UUID(last.ID))
		page.NextCursor = &next
	}
	if moreBefore {
		prev := repository.EncodeBefore(first.CreatedAt, uuid.UUID(first.ID))
		page.PrevCursor = &prev
	}
	return page, nil
}

func (s *Store) exists(ctx context.Context, org id.OrgID, createdAt time.Time, pid uuid.UUID, op string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM patients WHERE org_id = $1 AND (created_at, id) %s ($2, $3))", op)
	var exists bool
	if err := s.pool.QueryRow(ctx, query, org.String(), createdAt, pid).Scan(&exists); err != nil {
		return false, fmt.Errorf("probe patient keyset: %w", err)
	}
	return exists, nil
}

// Create validates and inserts a patient; duplicate MRNs within the org map
// to sentinel.ErrConflict.
func (s *Store) Create(ctx context.Context, org id.OrgID, input models.CreatePatient) (*models.Patient, error) {
	p, err := models.NewPatient(id.PatientID(uuid.New()), org, input, s.clock())
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO patients (id, org_id, mrn, given_name, family_name, birth_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.pool.Exec(ctx, query,
		uuid.UUID(p.ID), org.String(), p.MRN, p.GivenName, p.FamilyName, p.BirthDate, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

// Update applies a partial update within the org scope.
func (s *Store) Update(ctx context.Context, org id.OrgID, patientID uuid.UUID, input models.UpdatePatient) (*models.Patient, error) {
	p, err := s.FindByID(ctx, org, patientID)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(input, s.clock()); err != nil {
		return nil, err
	}

	const query = `
		UPDATE patients
		SET given_name = $3, family_name = $4, birth_date = $5, status = $6, updated_at = $7
		WHERE org_id = $1 AND id = $2
	`
	tag, err := s.pool.Exec(ctx, query,
		org.String(), patientID, p.GivenName, p.FamilyName, p.BirthDate, p.Status, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrNotFound
	}
	return p, nil
}

// Delete removes the patient within the org scope.
func (s *Store) Delete(ctx context.Context, org id.OrgID, patientID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM patients WHERE org_id = $1 AND id = $2", org.String(), patientID)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func reverse(items []models.Patient) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
