//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"carebase/internal/patient/models"
	"carebase/internal/shared/repository"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/sentinel"
	"carebase/pkg/testutil/containers"
)

const patientsSchema = `
	CREATE TABLE patients (
	    id          UUID PRIMARY KEY,
	    org_id      TEXT NOT NULL,
	    mrn         TEXT NOT NULL,
	    given_name  TEXT NOT NULL,
	    family_name TEXT NOT NULL,
	    birth_date  TEXT NOT NULL DEFAULT '',
	    status      TEXT NOT NULL,
	    created_at  TIMESTAMPTZ NOT NULL,
	    updated_at  TIMESTAMPTZ NOT NULL,
	    UNIQUE (org_id, mrn)
	);
	CREATE INDEX patients_org_created_idx ON patients (org_id, created_at, id);
`

const (
	orgEast id.OrgID = "clinic-east"
	orgWest id.OrgID = "clinic-west"
)

type PatientPostgresSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *Store
}

func (s *PatientPostgresSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T(), patientsSchema)

	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	s.store = NewStore(s.pg.Pool, WithClock(func() time.Time {
		tick++
		return now.Add(time.Duration(tick) * time.Second)
	}))
}

func (s *PatientPostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateAll(context.Background(), "patients"))
}

func TestPatientPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PatientPostgresSuite))
}

func (s *PatientPostgresSuite) create(org id.OrgID, mrn string) *models.Patient {
	p, err := s.store.Create(context.Background(), org, models.CreatePatient{
		MRN:        mrn,
		GivenName:  "Ada",
		FamilyName: "Lovelace",
	})
	s.Require().NoError(err)
	return p
}

func (s *PatientPostgresSuite) TestCreateAndFind() {
	created := s.create(orgEast, "MRN-1")

	found, err := s.store.FindByID(context.Background(), orgEast, uuid.UUID(created.ID))
	s.Require().NoError(err)
	s.Equal(created.MRN, found.MRN)
	s.Equal(models.PatientStatusActive, found.Status)

	s.Run("unique MRN enforced by the database", func() {
		_, err := s.store.Create(context.Background(), orgEast, models.CreatePatient{
			MRN: "MRN-1", GivenName: "B", FamilyName: "C",
		})
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("same MRN in another org is fine", func() {
		_, err := s.store.Create(context.Background(), orgWest, models.CreatePatient{
			MRN: "MRN-1", GivenName: "B", FamilyName: "C",
		})
		s.NoError(err)
	})

	s.Run("tenant isolation on lookup", func() {
		_, err := s.store.FindByID(context.Background(), orgWest, uuid.UUID(created.ID))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *PatientPostgresSuite) TestUpdateAndDelete() {
	p := s.create(orgEast, "MRN-U")

	name := "Grace"
	updated, err := s.store.Update(context.Background(), orgEast, uuid.UUID(p.ID), models.UpdatePatient{GivenName: &name})
	s.Require().NoError(err)
	s.Equal("Grace", updated.GivenName)
	s.True(updated.UpdatedAt.After(p.UpdatedAt))

	s.Require().ErrorIs(s.store.Delete(context.Background(), orgWest, uuid.UUID(p.ID)), sentinel.ErrNotFound)
	s.Require().NoError(s.store.Delete(context.Background(), orgEast, uuid.UUID(p.ID)))

	_, err = s.store.FindByID(context.Background(), orgEast, uuid.UUID(p.ID))
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PatientPostgresSuite) TestListPagination() {
	ctx := context.Background()
	var created []*models.Patient
	for i := range 5 {
		created = append(created, s.create(orgEast, fmt.Sprintf("MRN-%02d", i)))
	}

	s.Run("forward walk visits every row exactly once", func() {
		var seen []id.PatientID
		params := repository.ListParams{Limit: 2}
		for {
			page, err := s.store.List(ctx, orgEast, params)
			s.Require().NoError(err)
			for _, item := range page.Items {
				seen = append(seen, item.ID)
			}
			if page.NextCursor == nil {
				break
			}
			params.Cursor = *page.NextCursor
		}
		s.Require().Len(seen, 5)
		for i, p := range created {
			s.Equal(p.ID, seen[i])
		}
	})

	s.Run("walking back from the middle", func() {
		first, err := s.store.List(ctx, orgEast, repository.ListParams{Limit: 2})
		s.Require().NoError(err)
		second, err := s.store.List(ctx, orgEast, repository.ListParams{Limit: 2, Cursor: *first.NextCursor})
		s.Require().NoError(err)
		s.Require().NotNil(second.PrevCursor)

		back, err := s.store.List(ctx, orgEast, repository.ListParams{Limit: 2, Cursor: *second.PrevCursor})
		s.Require().NoError(err)
		s.Require().Len(back.Items, 2)
		s.Equal(created[0].ID, back.Items[0].ID)
		s.Equal(created[1].ID, back.Items[1].ID)
		s.Nil(back.PrevCursor)
	})

	s.Run("garbage cursor is invalid input", func() {
		_, err := s.store.List(ctx, orgEast, repository.ListParams{Cursor: "garbage!!"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
