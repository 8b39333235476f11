package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"carebase/internal/decision/models"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/sentinel"
)

const (
	orgEast id.OrgID = "clinic-east"
	orgWest id.OrgID = "clinic-west"
)

type DecisionStoreSuite struct {
	suite.Suite
	store *Store
	now   time.Time
}

func (s *DecisionStoreSuite) SetupTest() {
	s.now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	tick := 0
	s.store = NewStore(WithClock(func() time.Time {
		tick++
		return s.now.Add(time.Duration(tick) * time.Second)
	}))
}

func TestDecisionStoreSuite(t *testing.T) {
	suite.Run(t, new(DecisionStoreSuite))
}

func (s *DecisionStoreSuite) ingest(org id.OrgID, severity models.Severity) *models.Decision {
	d, err := s.store.Create(context.Background(), org, models.CreateDecision{
		PatientID: id.PatientID(uuid.New()),
		RuleID:    "rule/drug-interaction",
		Summary:   "Potential interaction between warfarin and aspirin",
		Severity:  severity,
	})
	s.Require().NoError(err)
	return d
}

func (s *DecisionStoreSuite) TestCreate() {
	s.Run("ingests an open result", func() {
		d := s.ingest(orgEast, models.SeverityWarning)
		s.False(d.ID.IsNil())
		s.Equal(models.DecisionStatusOpen, d.Status)
		s.Equal(models.SeverityWarning, d.Severity)
		s.Nil(d.AcknowledgedAt)
	})

	s.Run("defaults severity to info", func() {
		d := s.ingest(orgEast, "")
		s.Equal(models.SeverityInfo, d.Severity)
	})

	s.Run("rejects a missing patient", func() {
		_, err := s.store.Create(context.Background(), orgEast, models.CreateDecision{
			RuleID: "rule/x", Summary: "summary",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects an unknown severity", func() {
		_, err := s.store.Create(context.Background(), orgEast, models.CreateDecision{
			PatientID: id.PatientID(uuid.New()),
			RuleID:    "rule/x",
			Summary:   "summary",
			Severity:  "catastrophic",
		})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *DecisionStoreSuite) TestAcknowledge() {
	d := s.ingest(orgEast, models.SeverityCritical)

	s.Run("records the actor and timestamp", func() {
		acked, err := s.store.Acknowledge(context.Background(), orgEast, uuid.UUID(d.ID), "dr.hart")
		s.Require().NoError(err)
		s.Equal(models.DecisionStatusAcknowledged, acked.Status)
		s.Equal("dr.hart", acked.AcknowledgedBy)
		s.Require().NotNil(acked.AcknowledgedAt)
		s.True(acked.UpdatedAt.After(d.UpdatedAt))
	})

	s.Run("acknowledging twice is a conflict", func() {
		_, err := s.store.Acknowledge(context.Background(), orgEast, uuid.UUID(d.ID), "dr.hart")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown decision", func() {
		_, err := s.store.Acknowledge(context.Background(), orgEast, uuid.New(), "dr.hart")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("other tenants cannot acknowledge", func() {
		other := s.ingest(orgEast, models.SeverityInfo)
		_, err := s.store.Acknowledge(context.Background(), orgWest, uuid.UUID(other.ID), "mallory")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)

		current, err := s.store.FindByID(context.Background(), orgEast, uuid.UUID(other.ID))
		s.Require().NoError(err)
		s.Equal(models.DecisionStatusOpen, current.Status)
	})
}

func (s *DecisionStoreSuite) TestActions() {
	s.Equal([]string{ActionAcknowledge}, s.store.Actions())
}
