package handler

import (
	"carebase/internal/patient/models"
	"carebase/internal/shared/timefmt"
)

// PatientResponse is the wire DTO for a patient record. Timestamps are
// ISO-8601 strings with offset, per the platform envelope contract.
type PatientResponse struct {
	ID         string `json:"id"`
	OrgID      string `json:"orgId"`
	MRN        string `json:"mrn"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
	BirthDate  string `json:"birthDate,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// FromModel converts a stored patient to its wire shape.
func FromModel(p *models.Patient) *PatientResponse {
	return &PatientResponse{
		ID:         p.ID.String(),
		OrgID:      p.OrgID.String(),
		MRN:        p.MRN,
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
		BirthDate:  p.BirthDate,
		Status:     string(p.Status),
		CreatedAt:  timefmt.ISO(p.CreatedAt),
		UpdatedAt:  timefmt.ISO(p.UpdatedAt),
	}
}

// FromModels converts a page of patients.
func FromModels(patients []models.Patient) []*PatientResponse {
	out := make([]*PatientResponse, len(patients))
	for i := range patients {
		out[i] = FromModel(&patients[i])
	}
	return out
}
