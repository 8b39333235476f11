package handler

import (
	"carebase/internal/decision/models"
	"carebase/internal/shared/timefmt"
)

// DecisionResponse is the wire DTO for a decision result.
type DecisionResponse struct {
	ID             string `json:"id"`
	OrgID          string `json:"orgId"`
	PatientID      string `json:"patientId"`
	RuleID         string `json:"ruleId"`
	Summary        string `json:"summary"`
	Severity       string `json:"severity"`
	Status         string `json:"status"`
	AcknowledgedBy string `json:"acknowledgedBy,omitempty"`
	AcknowledgedAt string `json:"acknowledgedAt,omitempty"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// FromModel converts a stored decision to its wire shape.
func FromModel(d *models.Decision) *DecisionResponse {
	resp := &DecisionResponse{
		ID:             d.ID.String(),
		OrgID:          d.OrgID.String(),
		PatientID:      d.PatientID.String(),
		RuleID:         d.RuleID,
		Summary:        d.Summary,
		Severity:       string(d.Severity),
		Status:         string(d.Status),
		AcknowledgedBy: d.AcknowledgedBy,
		CreatedAt:      timefmt.ISO(d.CreatedAt),
		UpdatedAt:      timefmt.ISO(d.UpdatedAt),
	}
	if d.AcknowledgedAt != nil {
		resp.AcknowledgedAt = timefmt.ISO(*d.AcknowledgedAt)
	}
	return resp
}

// FromModels converts a page of decisions.
func FromModels(decisions []models.Decision) []*DecisionResponse {
	out := make([]*DecisionResponse, len(decisions))
	for i := range decisions {
		out[i] = FromModel(&decisions[i])
	}
	return out
}
