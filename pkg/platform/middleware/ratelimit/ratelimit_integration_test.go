//go:build integration

package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebase/internal/platform/logger"
	id "carebase/pkg/domain"
	"carebase/pkg/requestcontext"
	"carebase/pkg/testutil/containers"
)

func doScoped(handler http.Handler, org string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	if org != "" {
		req = req.WithContext(requestcontext.WithOrgID(req.Context(), id.OrgID(org)))
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestMiddlewareEnforcesPerOrgWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)

	mw := New(rc.Client, logger.New(), 3, time.Minute)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := range 3 {
		rr := doScoped(handler, "clinic-east")
		require.Equal(t, http.StatusOK, rr.Code, "request %d inside the window", i+1)
	}

	rr := doScoped(handler, "clinic-east")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate_limited")

	t.Run("other orgs have their own window", func(t *testing.T) {
		rr := doScoped(handler, "clinic-west")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unscoped requests pass through", func(t *testing.T) {
		rr := doScoped(handler, "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestMiddlewareAllowsOnRedisFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	mw := New(rc.Client, logger.New(), 1, time.Minute)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, rc.Client.Close())

	rr := doScoped(handler, "clinic-east")
	assert.Equal(t, http.StatusOK, rr.Code, "availability wins when the window store is down")
}
