package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"carebase/internal/workflow/models"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/sentinel"
)

const (
	orgEast id.OrgID = "clinic-east"
	orgWest id.OrgID = "clinic-west"
)

type TaskStoreSuite struct {
	suite.Suite
	store *Store
	now   time.Time
}

func (s *TaskStoreSuite) SetupTest() {
	s.now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	s.store = NewStore(WithClock(func() time.Time {
		tick++
		return s.now.Add(time.Duration(tick) * time.Second)
	}))
}

func TestTaskStoreSuite(t *testing.T) {
	suite.Run(t, new(TaskStoreSuite))
}

func (s *TaskStoreSuite) create(org id.OrgID) *models.Task {
	t, err := s.store.Create(context.Background(), org, models.CreateTask{
		Title:    "Review labs",
		Assignee: "dr.hart",
	})
	s.Require().NoError(err)
	return t
}

func (s *TaskStoreSuite) TestCreate() {
	t := s.create(orgEast)
	s.Equal(models.TaskStatusPending, t.Status)
	s.Nil(t.CompletedAt)

	s.Run("rejects an empty title", func() {
		_, err := s.store.Create(context.Background(), orgEast, models.CreateTask{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *TaskStoreSuite) TestComplete() {
	t := s.create(orgEast)

	s.Run("sets completedAt and the terminal status", func() {
		completed, err := s.store.Complete(context.Background(), orgEast, uuid.UUID(t.ID))
		s.Require().NoError(err)
		s.Equal(models.TaskStatusCompleted, completed.Status)
		s.Require().NotNil(completed.CompletedAt)
		s.Equal(*completed.CompletedAt, completed.UpdatedAt)
	})

	s.Run("completing twice is a conflict", func() {
		_, err := s.store.Complete(context.Background(), orgEast, uuid.UUID(t.ID))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown task", func() {
		_, err := s.store.Complete(context.Background(), orgEast, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("other tenants cannot complete", func() {
		other := s.create(orgEast)
		_, err := s.store.Complete(context.Background(), orgWest, uuid.UUID(other.ID))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *TaskStoreSuite) TestUpdate() {
	t := s.create(orgEast)

	s.Run("status cannot jump to completed through update", func() {
		completed := models.TaskStatusCompleted
		_, err := s.store.Update(context.Background(), orgEast, uuid.UUID(t.ID), models.UpdateTask{Status: &completed})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("moves to in_progress", func() {
		inProgress := models.TaskStatusInProgress
		updated, err := s.store.Update(context.Background(), orgEast, uuid.UUID(t.ID), models.UpdateTask{Status: &inProgress})
		s.Require().NoError(err)
		s.Equal(models.TaskStatusInProgress, updated.Status)
	})

	s.Run("terminal tasks reject status changes", func() {
		_, err := s.store.Complete(context.Background(), orgEast, uuid.UUID(t.ID))
		s.Require().NoError(err)

		pending := models.TaskStatusPending
		_, err = s.store.Update(context.Background(), orgEast, uuid.UUID(t.ID), models.UpdateTask{Status: &pending})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *TaskStoreSuite) TestActions() {
	s.Equal([]string{ActionComplete}, s.store.Actions())
}
