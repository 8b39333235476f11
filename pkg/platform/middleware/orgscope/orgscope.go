// Package orgscope translates the X-Org-Id header into the tenant scope every
// repository call requires.
//
// The header value is trusted to have been authenticated and authorized
// upstream; this middleware only validates its shape. Requests without a
// usable org scope never reach a handler.
package orgscope

import (
	"log/slog"
	"net/http"

	"carebase/pkg/domain"
	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// Header is the tenant header attached by the dashboard's HTTP client.
const Header = "X-Org-Id"

// Require parses the org header and injects the scope into the context,
// rejecting requests that lack a valid value.
func Require(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			org, err := domain.ParseOrgID(r.Header.Get(Header))
			if err != nil {
				logger.WarnContext(ctx, "rejected request without valid org scope",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "missing or invalid X-Org-Id header"))
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithOrgID(ctx, org)))
		})
	}
}
