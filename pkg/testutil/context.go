package testutil

import (
	"net/http"

	id "carebase/pkg/domain"
	"carebase/pkg/requestcontext"
)

// WithOrg adds a tenant scope to the request context, simulating the
// org-scope middleware. Invalid org IDs are silently ignored.
func WithOrg(req *http.Request, org string) *http.Request {
	parsed, err := id.ParseOrgID(org)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithOrgID(req.Context(), parsed))
}

// WithRequestID adds a request ID to the request context, simulating the
// request-id middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithSubject adds an authenticated subject to the request context,
// simulating the bearer-auth middleware.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithAuthSubject(req.Context(), subject))
}
