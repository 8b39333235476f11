package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carebase/pkg/domain-errors"
)

const testKey = "test-signing-key-32-bytes-long!!"

func newTestService() *Service {
	return NewService(testKey, "carebase", "carebase-api")
}

func TestGenerateValidateRoundTrip(t *testing.T) {
	svc := newTestService()

	tok, err := svc.Generate("dr.hart", time.Hour)
	require.NoError(t, err)

	claims, err := svc.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "dr.hart", claims.Subject)
	assert.Equal(t, "carebase", claims.Issuer)
}

func TestValidateExpired(t *testing.T) {
	svc := newTestService()

	tok, err := svc.Generate("dr.hart", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(tok)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateWrongKey(t *testing.T) {
	tok, err := NewService("some-other-signing-key-material", "carebase", "carebase-api").Generate("dr.hart", time.Hour)
	require.NoError(t, err)

	_, err = newTestService().Validate(tok)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsNonHMAC(t *testing.T) {
	// alg=none tokens must never validate, whatever the payload says.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Subject: "mallory"})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService().Validate(tok)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateGarbage(t *testing.T) {
	_, err := newTestService().Validate("not.a.jwt")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
