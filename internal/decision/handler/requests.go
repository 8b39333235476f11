package handler

import (
	"carebase/internal/decision/models"
	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// CreateDecisionRequest is the HTTP input for POST /decisions: a decision
// result ingested from an upstream rules engine.
type CreateDecisionRequest struct {
	PatientID string `json:"patientId"`
	RuleID    string `json:"ruleId"`
	Summary   string `json:"summary"`
	Severity  string `json:"severity"`
}

func (r CreateDecisionRequest) Validate() error {
	if _, err := id.ParsePatientID(r.PatientID); err != nil {
		return dErrors.New(dErrors.CodeValidation, "patientId must be a valid uuid")
	}
	if r.RuleID == "" {
		return dErrors.New(dErrors.CodeValidation, "ruleId is required")
	}
	if r.Summary == "" {
		return dErrors.New(dErrors.CodeValidation, "summary is required")
	}
	if r.Severity != "" && !models.Severity(r.Severity).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "severity must be info, warning or critical")
	}
	return nil
}

func (r CreateDecisionRequest) ToInput() models.CreateDecision {
	input := models.CreateDecision{
		RuleID:   r.RuleID,
		Summary:  r.Summary,
		Severity: models.Severity(r.Severity),
	}
	if pid, err := id.ParsePatientID(r.PatientID); err == nil {
		input.PatientID = pid
	}
	return input
}
