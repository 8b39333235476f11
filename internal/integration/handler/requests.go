package handler

import (
	"net/url"

	"carebase/internal/integration/models"
	dErrors "carebase/pkg/domain-errors"
)

// CreateEndpointRequest is the HTTP input for POST /endpoints. The secret is
// write-only: it is hashed on arrival and never echoed back.
type CreateEndpointRequest struct {
	Name       string   `json:"name"`
	URL        string   `json:"url"`
	Kind       string   `json:"kind"`
	Secret     string   `json:"secret"`
	DateFields []string `json:"dateFields"`
}

func (r CreateEndpointRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if _, err := url.ParseRequestURI(r.URL); err != nil {
		return dErrors.New(dErrors.CodeValidation, "url must be absolute")
	}
	if !models.EndpointKind(r.Kind).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "kind must be fhir, hl7 or webhook")
	}
	if len(r.Secret) < 16 {
		return dErrors.New(dErrors.CodeValidation, "secret must be at least 16 characters")
	}
	return nil
}

func (r CreateEndpointRequest) ToInput() models.CreateEndpoint {
	return models.CreateEndpoint{
		Name:       r.Name,
		URL:        r.URL,
		Kind:       models.EndpointKind(r.Kind),
		Secret:     r.Secret,
		DateFields: r.DateFields,
	}
}

// UpdateEndpointRequest is the HTTP input for PATCH /endpoints/{id}.
// Absent fields are left unchanged.
type UpdateEndpointRequest struct {
	Name       *string   `json:"name"`
	URL        *string   `json:"url"`
	DateFields *[]string `json:"dateFields"`
	Active     *bool     `json:"active"`
	Secret     *string   `json:"secret"`
}

func (r UpdateEndpointRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if r.URL != nil {
		if _, err := url.ParseRequestURI(*r.URL); err != nil {
			return dErrors.New(dErrors.CodeValidation, "url must be absolute")
		}
	}
	if r.Secret != nil && len(*r.Secret) < 16 {
		return dErrors.New(dErrors.CodeValidation, "secret must be at least 16 characters")
	}
	return nil
}

func (r UpdateEndpointRequest) ToInput() models.UpdateEndpoint {
	return models.UpdateEndpoint{
		Name:       r.Name,
		URL:        r.URL,
		DateFields: r.DateFields,
		Active:     r.Active,
		Secret:     r.Secret,
	}
}

// IngestDocumentsRequest is the HTTP input for POST /endpoints/{id}/documents:
// a batch of schemaless documents whose date fields get normalized to the
// wire layout.
type IngestDocumentsRequest struct {
	Documents []map[string]any `json:"documents"`
}

func (r IngestDocumentsRequest) Validate() error {
	if len(r.Documents) == 0 {
		return dErrors.New(dErrors.CodeValidation, "documents cannot be empty")
	}
	return nil
}
