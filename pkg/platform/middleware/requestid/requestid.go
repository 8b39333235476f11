// Package requestid propagates or creates the per-request identifier used in
// logs. Distinct from correlation IDs: request IDs tie log lines to one HTTP
// exchange, correlation IDs tag the response envelope and audit trail.
package requestid

import (
	"net/http"

	"carebase/internal/shared/correlation"
	"carebase/pkg/requestcontext"
)

// Header carries an inbound request ID from the edge proxy, if any.
const Header = "X-Request-Id"

// Middleware reuses the inbound request ID or generates one, stores it in the
// context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" {
			id = correlation.Generic()
		}
		w.Header().Set(Header, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
