// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by handlers and the audit
// publisher. Keeping this package free of net/http lets domain code import
// only what it needs.
//
// Usage in handlers (read values):
//
//	org := requestcontext.OrgID(ctx)
//	requestID := requestcontext.RequestID(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithOrgID(ctx, org)
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithOrgID(ctx, domain.OrgID("org-1"))
package requestcontext

import (
	"context"

	"carebase/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	orgIDKey      struct{}
	requestIDKey  struct{}
	clientIPKey   struct{}
	userAgentKey  struct{}
	browserKey    struct{}
	authSubjectKey struct{}
)

// OrgID retrieves the tenant scope from the context. Returns the zero value
// when no org-scope middleware ran; handlers must treat that as a bad request.
func OrgID(ctx context.Context) domain.OrgID {
	if org, ok := ctx.Value(orgIDKey{}).(domain.OrgID); ok {
		return org
	}
	return ""
}

// WithOrgID injects a tenant scope into the context.
func WithOrgID(ctx context.Context, org domain.OrgID) context.Context {
	return context.WithValue(ctx, orgIDKey{}, org)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ClientIP retrieves the client IP captured by the metadata middleware.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// WithClientIP injects a client IP into the context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// UserAgent retrieves the raw User-Agent header value.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// WithUserAgent injects a raw User-Agent value into the context.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// Browser retrieves the parsed browser description ("Firefox 143" style)
// recorded by the metadata middleware for audit enrichment.
func Browser(ctx context.Context) string {
	if b, ok := ctx.Value(browserKey{}).(string); ok {
		return b
	}
	return ""
}

// WithBrowser injects a parsed browser description into the context.
func WithBrowser(ctx context.Context, browser string) context.Context {
	return context.WithValue(ctx, browserKey{}, browser)
}

// AuthSubject retrieves the authenticated subject set by the auth middleware.
// Empty when the deployment runs without token auth.
func AuthSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(authSubjectKey{}).(string); ok {
		return sub
	}
	return ""
}

// WithAuthSubject injects an authenticated subject into the context.
func WithAuthSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, authSubjectKey{}, subject)
}
