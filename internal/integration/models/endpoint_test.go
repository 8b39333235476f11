package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
)

const testSecret = "a-very-long-shared-secret"

func newTestEndpoint(t *testing.T) *Endpoint {
	t.Helper()
	e, err := NewEndpoint(id.EndpointID(uuid.New()), "clinic-east", CreateEndpoint{
		Name:   "regional-lab",
		URL:    "https://lab.example.org/fhir",
		Kind:   EndpointKindFHIR,
		Secret: testSecret,
	}, time.Now())
	require.NoError(t, err)
	return e
}

func TestNewEndpointHashesSecret(t *testing.T) {
	e := newTestEndpoint(t)

	assert.True(t, e.Active)
	assert.NotContains(t, string(e.SecretHash), testSecret)
	assert.True(t, e.VerifySecret(testSecret))
	assert.False(t, e.VerifySecret("wrong-secret-entirely"))
	assert.False(t, e.VerifySecret(""))
}

func TestNewEndpointValidation(t *testing.T) {
	cases := []struct {
		name  string
		input CreateEndpoint
	}{
		{"empty name", CreateEndpoint{URL: "https://x.example", Kind: EndpointKindHL7, Secret: testSecret}},
		{"relative url", CreateEndpoint{Name: "x", URL: "not a url", Kind: EndpointKindHL7, Secret: testSecret}},
		{"unknown kind", CreateEndpoint{Name: "x", URL: "https://x.example", Kind: "soap", Secret: testSecret}},
		{"short secret", CreateEndpoint{Name: "x", URL: "https://x.example", Kind: EndpointKindHL7, Secret: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEndpoint(id.EndpointID(uuid.New()), "clinic-east", tc.input, time.Now())
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestApplyRotatesSecret(t *testing.T) {
	e := newTestEndpoint(t)

	rotated := "another-sixteen-plus-chars"
	require.NoError(t, e.Apply(UpdateEndpoint{Secret: &rotated}, time.Now()))

	assert.True(t, e.VerifySecret(rotated))
	assert.False(t, e.VerifySecret(testSecret))
}

func TestSecretHashNeverSerialized(t *testing.T) {
	e := newTestEndpoint(t)

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "secretHash")
	assert.NotContains(t, fields, "SecretHash")
}
