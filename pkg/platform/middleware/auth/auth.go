package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// TokenValidator validates bearer tokens and yields the authenticated
// subject.
type TokenValidator interface {
	Validate(tokenString string) (subject string, err error)
}

// RequireBearer rejects requests without a valid Authorization: Bearer token
// and records the subject in the context. The org scope itself stays with the
// orgscope middleware; authentication and tenancy are separate contracts.
func RequireBearer(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			subject, err := validator.Validate(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithAuthSubject(ctx, subject)))
		})
	}
}
