package models

import (
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

// EndpointKind names the upstream protocol an endpoint speaks.
type EndpointKind string

const (
	EndpointKindFHIR    EndpointKind = "fhir"
	EndpointKindHL7     EndpointKind = "hl7"
	EndpointKindWebhook EndpointKind = "webhook"
)

// IsValid checks the kind against the supported values.
func (k EndpointKind) IsValid() bool {
	return k == EndpointKindFHIR || k == EndpointKindHL7 || k == EndpointKindWebhook
}

// Endpoint is one configured upstream integration within an org. The shared
// secret is stored only as a bcrypt hash; the plaintext exists for the
// duration of the create request and never again.
type Endpoint struct {
	ID         id.EndpointID `json:"id"`
	OrgID      id.OrgID      `json:"orgId"`
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Kind       EndpointKind  `json:"kind"`
	SecretHash []byte        `json:"-"`
	DateFields []string      `json:"dateFields"`
	Active     bool          `json:"active"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// CreateEndpoint is the input for registering an endpoint.
type CreateEndpoint struct {
	Name       string
	URL        string
	Kind       EndpointKind
	Secret     string
	DateFields []string
}

// UpdateEndpoint is the partial-update input; nil fields are left unchanged.
type UpdateEndpoint struct {
	Name       *string
	URL        *string
	DateFields *[]string
	Active     *bool
	Secret     *string
}

// NewEndpoint validates the input, hashes the shared secret and constructs
// an active endpoint.
func NewEndpoint(endpointID id.EndpointID, org id.OrgID, input CreateEndpoint, now time.Time) (*Endpoint, error) {
	if input.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "endpoint name cannot be empty")
	}
	if _, err := url.ParseRequestURI(input.URL); err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "endpoint url must be absolute")
	}
	if !input.Kind.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid endpoint kind")
	}
	if len(input.Secret) < 16 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "endpoint secret must be at least 16 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "hashing endpoint secret")
	}
	return &Endpoint{
		ID:         endpointID,
		OrgID:      org,
		Name:       input.Name,
		URL:        input.URL,
		Kind:       input.Kind,
		SecretHash: hash,
		DateFields: input.DateFields,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Apply merges a partial update, bumping UpdatedAt. A new secret is
// re-hashed; the old hash is discarded.
func (e *Endpoint) Apply(input UpdateEndpoint, now time.Time) error {
	if input.Name != nil {
		if *input.Name == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "endpoint name cannot be empty")
		}
		e.Name = *input.Name
	}
	if input.URL != nil {
		if _, err := url.ParseRequestURI(*input.URL); err != nil {
			return dErrors.New(dErrors.CodeInvariantViolation, "endpoint url must be absolute")
		}
		e.URL = *input.URL
	}
	if input.DateFields != nil {
		e.DateFields = *input.DateFields
	}
	if input.Active != nil {
		e.Active = *input.Active
	}
	if input.Secret != nil {
		if len(*input.Secret) < 16 {
			return dErrors.New(dErrors.CodeInvariantViolation, "endpoint secret must be at least 16 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Secret), bcrypt.DefaultCost)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "hashing endpoint secret")
		}
		e.SecretHash = hash
	}
	e.UpdatedAt = now
	return nil
}

// VerifySecret compares a presented plaintext secret against the stored
// hash.
func (e *Endpoint) VerifySecret(secret string) bool {
	return bcrypt.CompareHashAndPassword(e.SecretHash, []byte(secret)) == nil
}
