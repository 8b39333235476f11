// Package ratelimit applies a per-org fixed window limit in front of the
// domain handlers. The window lives in Redis so all replicas share it; with
// no Redis configured the middleware passes everything through.
package ratelimit

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "carebase/pkg/domain-errors"
	"carebase/pkg/platform/httputil"
	"carebase/pkg/requestcontext"
)

// Middleware counts requests per org per window.
type Middleware struct {
	client   *redis.Client
	logger   *slog.Logger
	limit    int
	window   time.Duration
	disabled bool
}

// Option configures the middleware.
type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// New builds the middleware. A nil client disables limiting.
func New(client *redis.Client, logger *slog.Logger, limit int, window time.Duration, opts ...Option) *Middleware {
	m := &Middleware{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
	if client == nil {
		m.disabled = true
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handler enforces the limit for the org scope already present in the
// context. On Redis failure the request is allowed: availability over strict
// enforcement for an internal admin API.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		org := requestcontext.OrgID(ctx)
		if org.IsNil() {
			next.ServeHTTP(w, r)
			return
		}

		key := fmt.Sprintf("carebase:ratelimit:%s:%d", org, time.Now().Unix()/int64(m.window.Seconds()))
		count, err := m.client.Incr(ctx, key).Result()
		if err != nil {
			m.logger.WarnContext(ctx, "rate limit check failed, allowing request",
				"request_id", requestcontext.RequestID(ctx),
				"org_id", org.String(),
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			m.client.Expire(ctx, key, m.window)
		}

		if count > int64(m.limit) {
			m.logger.WarnContext(ctx, "org rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"org_id", org.String(),
				"count", count,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
