package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carebase/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the shared parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePatientID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePatientID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParsePatientID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParsePatientID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, PatientID(validUUID), id)
	})
}

// TestParseConsistency verifies that every ID type routes through the same
// validation.
func TestParseConsistency(t *testing.T) {
	for _, input := range []string{"", "invalid", uuid.Nil.String(), uuid.NewString()} {
		_, errPatient := ParsePatientID(input)
		_, errTask := ParseTaskID(input)
		_, errDecision := ParseDecisionID(input)
		_, errGuideline := ParseGuidelineID(input)
		_, errEndpoint := ParseEndpointID(input)

		wantErr := errPatient != nil
		assert.Equal(t, wantErr, errTask != nil, "TaskID disagrees on %q", input)
		assert.Equal(t, wantErr, errDecision != nil, "DecisionID disagrees on %q", input)
		assert.Equal(t, wantErr, errGuideline != nil, "GuidelineID disagrees on %q", input)
		assert.Equal(t, wantErr, errEndpoint != nil, "EndpointID disagrees on %q", input)
	}
}

func TestIsNil(t *testing.T) {
	assert.True(t, PatientID(uuid.Nil).IsNil())
	assert.False(t, PatientID(uuid.New()).IsNil())
}
