package handler

import (
	"carebase/internal/knowledge/models"
	"carebase/internal/shared/timefmt"
)

// GuidelineResponse is the wire DTO for a guideline.
type GuidelineResponse struct {
	ID            string `json:"id"`
	OrgID         string `json:"orgId"`
	Code          string `json:"code"`
	Title         string `json:"title"`
	Body          string `json:"body,omitempty"`
	Version       int    `json:"version"`
	EffectiveDate string `json:"effectiveDate,omitempty"`
	ReviewDate    string `json:"reviewDate,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// FromModel converts a stored guideline to its wire shape.
func FromModel(g *models.Guideline) *GuidelineResponse {
	return &GuidelineResponse{
		ID:            g.ID.String(),
		OrgID:         g.OrgID.String(),
		Code:          g.Code,
		Title:         g.Title,
		Body:          g.Body,
		Version:       g.Version,
		EffectiveDate: g.EffectiveDate,
		ReviewDate:    g.ReviewDate,
		Status:        string(g.Status),
		CreatedAt:     timefmt.ISO(g.CreatedAt),
		UpdatedAt:     timefmt.ISO(g.UpdatedAt),
	}
}

// FromModels converts a page of guidelines.
func FromModels(guidelines []models.Guideline) []*GuidelineResponse {
	out := make([]*GuidelineResponse, len(guidelines))
	for i := range guidelines {
		out[i] = FromModel(&guidelines[i])
	}
	return out
}
