package handler

import (
	"carebase/internal/integration/models"
	"carebase/internal/shared/timefmt"
)

// EndpointResponse is the wire DTO for an endpoint. The secret hash never
// leaves the server.
type EndpointResponse struct {
	ID         string   `json:"id"`
	OrgID      string   `json:"orgId"`
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Kind       string   `json:"kind"`
	DateFields []string `json:"dateFields,omitempty"`
	Active     bool     `json:"active"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

// FromModel converts a stored endpoint to its wire shape.
func FromModel(e *models.Endpoint) *EndpointResponse {
	return &EndpointResponse{
		ID:         e.ID.String(),
		OrgID:      e.OrgID.String(),
		Name:       e.Name,
		URL:        e.URL,
		Kind:       string(e.Kind),
		DateFields: e.DateFields,
		Active:     e.Active,
		CreatedAt:  timefmt.ISO(e.CreatedAt),
		UpdatedAt:  timefmt.ISO(e.UpdatedAt),
	}
}

// FromModels converts a page of endpoints.
func FromModels(endpoints []models.Endpoint) []*EndpointResponse {
	out := make([]*EndpointResponse, len(endpoints))
	for i := range endpoints {
		out[i] = FromModel(&endpoints[i])
	}
	return out
}
