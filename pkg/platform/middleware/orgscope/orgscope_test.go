package orgscope

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"carebase/internal/platform/logger"
	id "carebase/pkg/domain"
	"carebase/pkg/requestcontext"
)

func scoped(t *testing.T, header string) (*httptest.ResponseRecorder, id.OrgID) {
	t.Helper()
	var captured id.OrgID
	handler := Require(logger.New())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestcontext.OrgID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, captured
}

func TestRequire(t *testing.T) {
	t.Run("injects the org scope", func(t *testing.T) {
		rr, org := scoped(t, "clinic-east")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, id.OrgID("clinic-east"), org)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		rr, _ := scoped(t, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "bad_request")
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, header := range []string{"has spaces", "semi;colon", strings.Repeat("x", 65)} {
			rr, _ := scoped(t, header)
			assert.Equal(t, http.StatusBadRequest, rr.Code, "header %q", header)
		}
	})
}
