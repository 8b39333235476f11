package models

import (
	"time"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// Severity ranks how urgently a decision result needs clinician attention.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// IsValid checks the severity against the supported values.
func (s Severity) IsValid() bool {
	return s == SeverityInfo || s == SeverityWarning || s == SeverityCritical
}

// DecisionStatus tracks whether a clinician has acknowledged the result.
type DecisionStatus string

const (
	DecisionStatusOpen         DecisionStatus = "open"
	DecisionStatusAcknowledged DecisionStatus = "acknowledged"
)

// Decision is one decision-support result produced for a patient. Results
// are immutable once ingested; acknowledgement is the only state change.
type Decision struct {
	ID             id.DecisionID  `json:"id"`
	OrgID          id.OrgID       `json:"orgId"`
	PatientID      id.PatientID   `json:"patientId"`
	RuleID         string         `json:"ruleId"`
	Summary        string         `json:"summary"`
	Severity       Severity       `json:"severity"`
	Status         DecisionStatus `json:"status"`
	AcknowledgedBy string         `json:"acknowledgedBy"`
	AcknowledgedAt *time.Time     `json:"acknowledgedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CreateDecision is the ingest input for a decision result.
type CreateDecision struct {
	PatientID id.PatientID
	RuleID    string
	Summary   string
	Severity  Severity
}

// NewDecision validates and constructs an open decision result.
func NewDecision(decisionID id.DecisionID, org id.OrgID, input CreateDecision, now time.Time) (*Decision, error) {
	if input.PatientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "decision requires a patient")
	}
	if input.RuleID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "decision requires a rule id")
	}
	if input.Summary == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "decision summary cannot be empty")
	}
	severity := input.Severity
	if severity == "" {
		severity = SeverityInfo
	}
	if !severity.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid decision severity")
	}
	return &Decision{
		ID:        decisionID,
		OrgID:     org,
		PatientID: input.PatientID,
		RuleID:    input.RuleID,
		Summary:   input.Summary,
		Severity:  severity,
		Status:    DecisionStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Acknowledge records the acknowledging actor. Acknowledging twice is a
// conflict, not a no-op, so repeated clicks surface to the caller.
func (d *Decision) Acknowledge(actor string, now time.Time) error {
	if d.Status == DecisionStatusAcknowledged {
		return dErrors.New(dErrors.CodeConflict, "decision is already acknowledged")
	}
	d.Status = DecisionStatusAcknowledged
	d.AcknowledgedBy = actor
	acknowledgedAt := now
	d.AcknowledgedAt = &acknowledgedAt
	d.UpdatedAt = now
	return nil
}
