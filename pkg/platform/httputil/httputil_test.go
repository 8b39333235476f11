package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "carebase/pkg/domain-errors"
)

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeInvalidInput, http.StatusBadRequest},
		{dErrors.CodeValidation, http.StatusBadRequest},
		{dErrors.CodeBadRequest, http.StatusBadRequest},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeInvariantViolation, http.StatusConflict},
		{dErrors.CodeRateLimited, http.StatusTooManyRequests},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout},
		{dErrors.CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, dErrors.New(tc.code, "boom"))
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, string(tc.code), decodeBody(t, rr)["error"])
		})
	}
}

func TestWriteErrorDescription(t *testing.T) {
	t.Run("client errors carry the message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, dErrors.New(dErrors.CodeValidation, "name is required"))
		assert.Equal(t, "name is required", decodeBody(t, rr)["error_description"])
	})

	t.Run("internal errors omit the description", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "query failed"))
		body := decodeBody(t, rr)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("uncoded errors fall back to internal", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteError(rr, errors.New("something unexpected"))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "something unexpected")
	})

	t.Run("wrapped coded errors keep their mapping", func(t *testing.T) {
		rr := httptest.NewRecorder()
		err := fmt.Errorf("loading patient: %w", dErrors.New(dErrors.CodeNotFound, "patient not found"))
		WriteError(rr, err)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestWriteJSONContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"ok": "yes"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
